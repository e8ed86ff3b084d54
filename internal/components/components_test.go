package components

import (
	"math"
	"testing"

	"mirgo/internal/engine"
	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestBoxColliderShape(t *testing.T) {
	box := NewBoxCollider(rl.Vector3{X: 2, Y: -4, Z: 6})

	shape, ok := box.Shape().(physics.Box)
	if !ok {
		t.Fatalf("Expected physics.Box, got %T", box.Shape())
	}
	want := rl.Vector3{X: 1, Y: 2, Z: 3}
	if shape.HalfExtents != want {
		t.Errorf("Expected half extents %v, got %v", want, shape.HalfExtents)
	}
}

func TestBoxColliderOBBFollowsTransform(t *testing.T) {
	obj := engine.NewGameObject("Crate")
	obj.Transform.Position = rl.Vector3{X: 3}
	obj.Transform.SetEuler(rl.Vector3{Y: 90})
	box := NewBoxCollider(rl.Vector3{X: 4, Y: 1, Z: 1})
	obj.AddComponent(box)

	obb := box.GetOBB()
	if obb.Center != obj.Transform.Position {
		t.Errorf("Expected center %v, got %v", obj.Transform.Position, obb.Center)
	}
	// Local X now points along -Z
	if math.Abs(float64(obb.Axes[0].Z+1)) > 1e-4 {
		t.Errorf("Expected rotated X axis along -Z, got %v", obb.Axes[0])
	}
}

func TestSphereColliderShape(t *testing.T) {
	s := NewSphereCollider(0.75)
	obj := engine.NewGameObject("Ball")
	obj.Transform.Position = rl.Vector3{Y: 4}
	obj.AddComponent(s)

	if s.Shape().(physics.Sphere).Radius != 0.75 {
		t.Errorf("Expected radius 0.75, got %v", s.Shape())
	}
	if s.GetCenter() != obj.Transform.Position {
		t.Errorf("Expected center %v, got %v", obj.Transform.Position, s.GetCenter())
	}
}

func TestMeshColliderShapeAndBounds(t *testing.T) {
	m := NewMeshCollider([]physics.Triangle{
		{A: rl.Vector3{X: -1}, B: rl.Vector3{X: 1}, C: rl.Vector3{Y: 2}},
		{A: rl.Vector3{Z: -3}, B: rl.Vector3{Z: 3}, C: rl.Vector3{Y: -1}},
	})

	if m.Shape().Kind() != physics.KindMesh {
		t.Errorf("Expected mesh kind, got %v", m.Shape().Kind())
	}

	b := m.Bounds()
	if b.Min != (rl.Vector3{X: -1, Y: -1, Z: -3}) || b.Max != (rl.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Unexpected bounds %+v", b)
	}

	if (NewMeshCollider(nil).Bounds() != physics.AABB{}) {
		t.Error("Empty mesh should have zero bounds")
	}
}

func TestGetCollider(t *testing.T) {
	obj := engine.NewGameObject("Thing")
	if GetCollider(obj) != nil {
		t.Error("Expected no collider")
	}

	obj.AddComponent(NewRigidbody(1))
	sphere := NewSphereCollider(1)
	obj.AddComponent(sphere)

	if GetCollider(obj) != sphere {
		t.Error("GetCollider should find the sphere collider")
	}
}

func TestRigidbodyHandles(t *testing.T) {
	rb := NewRigidbody(2)
	if rb.IsStatic || rb.Mass != 2 {
		t.Errorf("Unexpected rigidbody %+v", rb)
	}
	if rb.IsRegistered() {
		t.Error("New rigidbody should not be registered")
	}

	if !NewStaticRigidbody().IsStatic {
		t.Error("NewStaticRigidbody should be static")
	}

	sim := physics.NewSimulation(nil, physics.DefaultSettings())
	rb.ShapeIndex = sim.Shapes.AddSphere(physics.Sphere{Radius: 1})
	rb.DynamicHandle = sim.Bodies.Add(physics.BodyDescription{Collidable: physics.CollidableDescription{Shape: rb.ShapeIndex}})
	if !rb.IsRegistered() {
		t.Error("Rigidbody with a body handle should be registered")
	}

	rb.ClearHandles()
	if rb.IsRegistered() || rb.ShapeIndex.IsValid() {
		t.Error("ClearHandles should reset every handle")
	}
}

func TestParseMeshType(t *testing.T) {
	tests := []struct {
		name string
		want MeshType
		ok   bool
	}{
		{"cube", MeshCube, true},
		{"box", MeshCube, true},
		{"ball", MeshSphere, true},
		{"plane", MeshPlane, true},
		{"teapot", MeshCube, false},
	}
	for _, tt := range tests {
		got, ok := ParseMeshType(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMeshType(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAxisAngle(t *testing.T) {
	axis, angle := axisAngle(rl.QuaternionIdentity())
	if angle != 0 || axis.Y != 1 {
		t.Errorf("Identity should map to zero angle, got %v %v", axis, angle)
	}

	q := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, math.Pi/2)
	axis, angle = axisAngle(q)
	if math.Abs(float64(angle-90)) > 1e-3 || math.Abs(float64(axis.X-1)) > 1e-4 {
		t.Errorf("Expected 90 degrees about X, got %v about %v", angle, axis)
	}
}
