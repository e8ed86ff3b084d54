package world

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"mirgo/internal/components"
	"mirgo/internal/engine"
	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const testScene = `
name: test
objects:
  - name: ground
    tags: [floor]
    position: [0, -0.5, 0]
    components:
      - type: MeshRenderer
        mesh: cube
        size: [20, 1, 20]
        color: Gray
      - type: BoxCollider
        size: [20, 1, 20]
      - type: Rigidbody
        static: true
  - name: ball
    position: [0, 5, 0]
    rotation: [0, 45, 0]
    scale: [2, 2, 2]
    components:
      - type: MeshRenderer
        mesh: sphere
        size: [0.5, 0.5, 0.5]
        color: "#ff000080"
      - type: SphereCollider
        radius: 0.5
      - type: Rigidbody
        mass: 3
  - name: crate
    position: [2, 1, 0]
    components:
      - type: Rigidbody
  - name: ramp
    components:
      - type: MeshCollider
        triangles:
          - [[0, 0, 0], [1, 0, 0], [0, 0, 1]]
`

func buildTestScene(t *testing.T) []*engine.GameObject {
	t.Helper()
	sf, err := ParseScene([]byte(testScene))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}
	objects, err := sf.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return objects
}

func TestParseSceneBuildsObjects(t *testing.T) {
	objects := buildTestScene(t)
	if len(objects) != 4 {
		t.Fatalf("Expected 4 objects, got %d", len(objects))
	}

	ground := objects[0]
	if ground.Name != "ground" || !ground.HasTag("floor") {
		t.Errorf("Unexpected ground %s %v", ground.Name, ground.Tags)
	}
	if ground.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Missing scale should default to 1, got %v", ground.Transform.Scale)
	}
	if rb := engine.GetComponent[*components.Rigidbody](ground); rb == nil || !rb.IsStatic {
		t.Error("Expected static rigidbody on ground")
	}
	mr := engine.GetComponent[*components.MeshRenderer](ground)
	if mr == nil || mr.MeshType != components.MeshCube || mr.Color != rl.Gray {
		t.Errorf("Unexpected ground renderer %+v", mr)
	}

	ball := objects[1]
	if rb := engine.GetComponent[*components.Rigidbody](ball); rb == nil || rb.Mass != 3 {
		t.Errorf("Expected mass 3, got %+v", rb)
	}
	if sc := engine.GetComponent[*components.SphereCollider](ball); sc == nil || sc.Radius != 0.5 {
		t.Errorf("Expected sphere collider radius 0.5, got %+v", sc)
	}
	if c := engine.GetComponent[*components.MeshRenderer](ball).Color; c != (rl.Color{R: 255, A: 128}) {
		t.Errorf("Expected hex color, got %v", c)
	}
	euler := ball.Transform.Euler()
	if math.Abs(float64(euler.Y-45)) > 0.01 {
		t.Errorf("Expected 45 degrees about Y, got %v", euler)
	}

	if rb := engine.GetComponent[*components.Rigidbody](objects[2]); rb == nil || rb.Mass != 1 {
		t.Errorf("Missing mass should default to 1, got %+v", rb)
	}

	mc := engine.GetComponent[*components.MeshCollider](objects[3])
	if mc == nil || len(mc.Triangles) != 1 || mc.Triangles[0].B != (rl.Vector3{X: 1}) {
		t.Errorf("Unexpected mesh collider %+v", mc)
	}
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "objects: [", "parse scene"},
		{"unknown component", "objects:\n  - name: a\n    components:\n      - type: Light\n", "unknown component"},
		{"unknown mesh", "objects:\n  - name: a\n    components:\n      - type: MeshRenderer\n        mesh: torus\n", "unknown mesh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf, err := ParseScene([]byte(tt.yaml))
			if err == nil {
				_, err = sf.Build()
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveAndLoadScene(t *testing.T) {
	objects := buildTestScene(t)
	path := filepath.Join(t.TempDir(), "saved.yaml")

	sf, err := NewSceneFile("saved", objects)
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveSceneFile(path, sf); err != nil {
		t.Fatalf("SaveSceneFile failed: %v", err)
	}

	loaded, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}
	if loaded.Name != "saved" {
		t.Errorf("Expected name saved, got %s", loaded.Name)
	}
	again, err := loaded.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(again) != len(objects) {
		t.Fatalf("Expected %d objects, got %d", len(objects), len(again))
	}

	ball := again[1]
	if ball.Transform.Position != (rl.Vector3{Y: 5}) {
		t.Errorf("Expected position kept, got %v", ball.Transform.Position)
	}
	if ball.Transform.Scale != (rl.Vector3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("Expected scale kept, got %v", ball.Transform.Scale)
	}
	if rb := engine.GetComponent[*components.Rigidbody](ball); rb == nil || rb.Mass != 3 {
		t.Errorf("Expected mass kept, got %+v", rb)
	}
	shape := components.GetCollider(ball).Shape()
	if _, ok := shape.(physics.Sphere); !ok {
		t.Errorf("Expected sphere shape, got %T", shape)
	}
	if c := engine.GetComponent[*components.MeshRenderer](ball).Color; c != (rl.Color{R: 255, A: 128}) {
		t.Errorf("Expected color kept, got %v", c)
	}
}

func TestLoadSceneFileMissing(t *testing.T) {
	if _, err := LoadSceneFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
