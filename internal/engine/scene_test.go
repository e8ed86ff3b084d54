package engine

import "testing"

func TestSceneAddGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")

	scene.AddGameObject(obj)

	if len(scene.GameObjects) != 1 {
		t.Errorf("Expected 1 GameObject, got %d", len(scene.GameObjects))
	}

	if scene.GameObjects[0] != obj {
		t.Error("GameObject not added to scene")
	}

	if obj.Scene != scene {
		t.Error("GameObject.Scene not set")
	}
}

func TestSceneSequentialIDs(t *testing.T) {
	scene := NewScene("Test")
	objs := []*GameObject{NewGameObject("A"), NewGameObject("B"), NewGameObject("C")}

	for _, obj := range objs {
		scene.AddGameObject(obj)
	}

	for i, obj := range objs {
		if obj.ID != i+1 {
			t.Errorf("Expected %s to get ID %d, got %d", obj.Name, i+1, obj.ID)
		}
	}
}

func TestSceneKeepsExplicitID(t *testing.T) {
	scene := NewScene("Test")
	explicit := NewGameObject("Explicit")
	explicit.ID = 10
	scene.AddGameObject(explicit)

	next := NewGameObject("Next")
	scene.AddGameObject(next)

	if explicit.ID != 10 {
		t.Errorf("Explicit ID should be kept, got %d", explicit.ID)
	}
	if next.ID != 11 {
		t.Errorf("Expected next ID 11, got %d", next.ID)
	}
}

func TestSceneIDLookup(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")

	scene.AddGameObject(obj)

	found := scene.FindByID(obj.ID)
	if found != obj {
		t.Errorf("FindByID failed: expected %v, got %v", obj, found)
	}

	if scene.FindByID(99999) != nil {
		t.Error("FindByID should return nil for non-existent ID")
	}

	var nilScene *Scene
	if nilScene.FindByID(obj.ID) != nil {
		t.Error("FindByID on nil scene should return nil")
	}
}

func TestSceneRemoveGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Player")
	obj2 := NewGameObject("Enemy")

	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)

	scene.RemoveGameObject(obj1)

	if len(scene.GameObjects) != 1 {
		t.Errorf("Expected 1 GameObject after removal, got %d", len(scene.GameObjects))
	}

	if scene.GameObjects[0] != obj2 {
		t.Error("Wrong GameObject removed")
	}

	if scene.FindByID(obj1.ID) != nil {
		t.Error("Removed GameObject still in ID map")
	}

	if scene.FindByID(obj2.ID) != obj2 {
		t.Error("Remaining GameObject not in ID map")
	}
}

func TestSceneRemoveWithChildren(t *testing.T) {
	scene := NewScene("Test")
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	scene.AddGameObject(parent)
	scene.AddGameObject(child)
	parent.AddChild(child)

	scene.RemoveGameObject(parent)

	if len(scene.GameObjects) != 0 {
		t.Errorf("Expected 0 GameObjects, got %d", len(scene.GameObjects))
	}

	if scene.FindByID(parent.ID) != nil {
		t.Error("Parent still in ID map after removal")
	}
	if scene.FindByID(child.ID) != nil {
		t.Error("Child still in ID map after removal")
	}
}

func TestSceneFindByNameAndTag(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Enemy1")
	obj2 := NewGameObject("Enemy2")
	obj3 := NewGameObject("Player")

	obj1.Tags = []string{"enemy", "ai"}
	obj2.Tags = []string{"enemy"}
	obj3.Tags = []string{"player"}

	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)
	scene.AddGameObject(obj3)

	if scene.FindByName("Player") != obj3 {
		t.Error("FindByName failed")
	}
	if scene.FindByName("DoesNotExist") != nil {
		t.Error("FindByName should return nil for non-existent name")
	}

	if enemies := scene.FindByTag("enemy"); len(enemies) != 2 {
		t.Errorf("Expected 2 enemies, got %d", len(enemies))
	}
	if notFound := scene.FindByTag("nonexistent"); len(notFound) != 0 {
		t.Error("FindByTag should return empty slice for non-existent tag")
	}
}

func TestEventWithArgInvoke(t *testing.T) {
	var ev EventWithArg[int]
	var got []int

	ev.AddListener(func(v int) { got = append(got, v) })
	ev.AddListener(func(v int) { got = append(got, v*10) })
	ev.AddListener(nil)

	if ev.GetListenerCount() != 2 {
		t.Errorf("Expected 2 listeners, got %d", ev.GetListenerCount())
	}

	ev.Invoke(3)
	if len(got) != 2 || got[0] != 3 || got[1] != 30 {
		t.Errorf("Expected [3 30], got %v", got)
	}

	ev.RemoveAllListeners()
	ev.Invoke(4)
	if len(got) != 2 {
		t.Error("Listeners should not run after RemoveAllListeners")
	}
}
