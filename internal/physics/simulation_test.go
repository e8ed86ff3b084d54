package physics

import (
	"errors"
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const testDt = float32(1.0 / 60.0)

func newTestSimulation() *Simulation {
	return NewSimulation(NewPool(), DefaultSettings())
}

func addFloor(sim *Simulation) StaticHandle {
	shape := sim.Shapes.AddBox(NewBox(20, 1, 20))
	return sim.Statics.Add(StaticDescription{Pose: NewRigidPose(rl.Vector3{}), Shape: shape})
}

func addBall(sim *Simulation, pos rl.Vector3) BodyHandle {
	sphere := Sphere{Radius: 0.5}
	shape := sim.Shapes.AddSphere(sphere)
	return sim.Bodies.Add(CreateDynamic(
		NewRigidPose(pos),
		sphere.ComputeInertia(1),
		CollidableDescription{Shape: shape, SpeculativeMargin: 0.1},
		BodyActivityDescription{SleepThreshold: 0.01},
	))
}

func TestHandleZeroValueInvalid(t *testing.T) {
	if (BodyHandle{}).IsValid() || (StaticHandle{}).IsValid() || (ShapeIndex{}).IsValid() {
		t.Error("Zero handles should be invalid")
	}
}

func TestBodiesStaleHandle(t *testing.T) {
	sim := newTestSimulation()
	h := addBall(sim, rl.Vector3{})

	if !sim.Bodies.Contains(h) {
		t.Fatal("New body should be present")
	}
	if !sim.Bodies.Remove(h) {
		t.Fatal("Remove should succeed")
	}
	if sim.Bodies.Get(h) != nil {
		t.Error("Removed handle should not resolve")
	}
	if sim.Bodies.Remove(h) {
		t.Error("Second Remove should fail")
	}

	h2 := addBall(sim, rl.Vector3{})
	if h2.index != h.index {
		t.Errorf("Expected slot %d to be reused, got %d", h.index, h2.index)
	}
	if h2 == h {
		t.Error("Reused slot must carry a new generation")
	}
	if sim.Bodies.Get(h) != nil {
		t.Error("Stale handle resolved after slot reuse")
	}
}

func TestShapesRejectMesh(t *testing.T) {
	sim := newTestSimulation()
	_, err := sim.Shapes.Add(Mesh{})
	if !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("Expected ErrUnsupportedShape, got %v", err)
	}
	if sim.Shapes.Count() != 0 {
		t.Error("Rejected shape should not be stored")
	}

	idx, err := sim.Shapes.Add(Sphere{Radius: 2})
	if err != nil {
		t.Fatal(err)
	}
	got, ok := sim.Shapes.Get(idx)
	if !ok || got.(Sphere).Radius != 2 {
		t.Errorf("Expected stored sphere, got %v", got)
	}
}

func TestBoxInertia(t *testing.T) {
	in := NewBox(1, 1, 1).ComputeInertia(12)
	if math.Abs(float64(in.InverseMass-1.0/12)) > 1e-6 {
		t.Errorf("Expected inverse mass 1/12, got %v", in.InverseMass)
	}
	// I = m/3 * (0.25 + 0.25) = 2
	if math.Abs(float64(in.InverseInertia.X-0.5)) > 1e-6 {
		t.Errorf("Expected inverse inertia 0.5, got %v", in.InverseInertia.X)
	}
}

func TestFreeFall(t *testing.T) {
	sim := newTestSimulation()
	h := addBall(sim, rl.Vector3{Y: 100})

	for i := 0; i < 60; i++ {
		sim.Timestep(testDt)
	}

	body := sim.Bodies.Get(h)
	if math.Abs(float64(body.Velocity.Linear.Y+9.81)) > 1e-3 {
		t.Errorf("Expected velocity -9.81 after one second, got %v", body.Velocity.Linear.Y)
	}
	if body.Pose.Position.Y > 96 || body.Pose.Position.Y < 94 {
		t.Errorf("Expected to fall about 5m, at %v", body.Pose.Position.Y)
	}
	if sim.Timesteps() != 60 {
		t.Errorf("Expected 60 timesteps, got %d", sim.Timesteps())
	}
}

func TestNonPositiveTimestepIgnored(t *testing.T) {
	sim := newTestSimulation()
	h := addBall(sim, rl.Vector3{Y: 5})

	sim.Timestep(0)
	sim.Timestep(-1)

	if sim.Timesteps() != 0 {
		t.Error("Non-positive dt should not advance")
	}
	if sim.Bodies.Get(h).Pose.Position.Y != 5 {
		t.Error("Body moved on ignored timestep")
	}
}

func TestSphereRestsOnFloor(t *testing.T) {
	sim := newTestSimulation()
	addFloor(sim)
	h := addBall(sim, rl.Vector3{Y: 3})

	for i := 0; i < 240; i++ {
		sim.Timestep(testDt)
	}

	y := sim.Bodies.Get(h).Pose.Position.Y
	if math.Abs(float64(y-1)) > 0.05 {
		t.Errorf("Expected ball to rest at y=1, got %v", y)
	}
}

func TestRestingBodyFallsAsleep(t *testing.T) {
	sim := newTestSimulation()
	addFloor(sim)
	h := addBall(sim, rl.Vector3{Y: 1.02})

	for i := 0; i < 600; i++ {
		sim.Timestep(testDt)
	}

	if sim.Bodies.Get(h).Awake {
		t.Error("Resting ball should be asleep")
	}
	if sim.Bodies.ActiveCount() != 0 {
		t.Errorf("Expected no active bodies, got %d", sim.Bodies.ActiveCount())
	}

	sim.Bodies.Awaken(h)
	if !sim.Bodies.Get(h).Awake {
		t.Error("Awaken should wake the body")
	}
}

func TestBoxRestsOnFloor(t *testing.T) {
	sim := newTestSimulation()
	addFloor(sim)
	box := NewBox(1, 1, 1)
	shape := sim.Shapes.AddBox(box)
	h := sim.Bodies.Add(CreateDynamic(
		NewRigidPose(rl.Vector3{Y: 1.05}),
		box.ComputeInertia(1),
		CollidableDescription{Shape: shape, SpeculativeMargin: 0.1},
		BodyActivityDescription{SleepThreshold: 0.01},
	))

	for i := 0; i < 300; i++ {
		sim.Timestep(testDt)
	}

	body := sim.Bodies.Get(h)
	if math.Abs(float64(body.Pose.Position.Y-1)) > 0.05 {
		t.Errorf("Expected box to rest at y=1, got %v", body.Pose.Position.Y)
	}
	up := rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, body.Pose.Orientation)
	if up.Y < 0.99 {
		t.Errorf("Box should stay upright, up=%v", up)
	}
}

func TestDisposeReleasesPool(t *testing.T) {
	pool := NewPool()
	sim := NewSimulation(pool, DefaultSettings())
	addFloor(sim)
	addBall(sim, rl.Vector3{Y: 2})

	if pool.Outstanding("body") != 1 || pool.Outstanding("static") != 1 || pool.Outstanding("shape") != 2 {
		t.Fatalf("Unexpected allocations: body=%d static=%d shape=%d",
			pool.Outstanding("body"), pool.Outstanding("static"), pool.Outstanding("shape"))
	}

	sim.Dispose()

	if pool.Bytes() != 0 {
		t.Errorf("Expected empty pool after dispose, %d bytes left", pool.Bytes())
	}
	if !sim.Disposed() {
		t.Error("Disposed should report true")
	}

	sim.Timestep(testDt)
	if sim.Timesteps() != 0 {
		t.Error("Disposed simulation should not step")
	}
}

func TestSeparatingAxis(t *testing.T) {
	a := NewOBB(NewRigidPose(rl.Vector3{X: 0.8}), rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})
	b := NewOBB(NewRigidPose(rl.Vector3{}), rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})

	normal, depth := a.SeparatingAxis(b)
	if math.Abs(float64(depth-0.2)) > 1e-4 {
		t.Errorf("Expected depth 0.2, got %v", depth)
	}
	if normal.X < 0.999 {
		t.Errorf("Expected normal +X, got %v", normal)
	}

	far := NewOBB(NewRigidPose(rl.Vector3{X: 3}), rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})
	if far.IntersectsOBB(b) {
		t.Error("Separated boxes should not intersect")
	}
	if mtv := a.ResolveOBB(b); math.Abs(float64(mtv.X-0.2)) > 1e-4 {
		t.Errorf("Expected MTV (0.2,0,0), got %v", mtv)
	}
}

func settle(sim *Simulation, steps int) {
	for i := 0; i < steps; i++ {
		sim.Timestep(testDt)
	}
}

func TestRemoveStaticWakesRestingBodies(t *testing.T) {
	sim := newTestSimulation()
	floor := addFloor(sim)
	h := addBall(sim, rl.Vector3{Y: 1.02})
	settle(sim, 600)
	if sim.Bodies.Get(h).Awake {
		t.Fatal("Ball should be asleep before the floor is removed")
	}

	if !sim.RemoveStatic(floor) {
		t.Fatal("RemoveStatic should succeed")
	}
	if !sim.Bodies.Get(h).Awake {
		t.Error("Removing the floor should wake the ball resting on it")
	}

	settle(sim, 60)
	if y := sim.Bodies.Get(h).Pose.Position.Y; y > 0.9 {
		t.Errorf("Expected ball to fall after losing its floor, got y=%v", y)
	}
	if sim.RemoveStatic(floor) {
		t.Error("Second RemoveStatic should fail")
	}
}

func TestRemoveBodyWakesOnlyNeighbours(t *testing.T) {
	sim := newTestSimulation()
	addFloor(sim)
	a := addBall(sim, rl.Vector3{Y: 1.02})
	b := addBall(sim, rl.Vector3{X: 1.05, Y: 1.02})
	far := addBall(sim, rl.Vector3{X: 8, Y: 1.02})
	settle(sim, 600)
	if sim.Bodies.ActiveCount() != 0 {
		t.Fatalf("Expected all balls asleep, %d awake", sim.Bodies.ActiveCount())
	}

	if !sim.RemoveBody(a) {
		t.Fatal("RemoveBody should succeed")
	}
	if sim.Bodies.Contains(a) {
		t.Error("Removed body should not resolve")
	}
	if !sim.Bodies.Get(b).Awake {
		t.Error("Neighbour of the removed body should wake")
	}
	if sim.Bodies.Get(far).Awake {
		t.Error("Distant body should stay asleep")
	}
}

func TestApplyLinearImpulse(t *testing.T) {
	settings := DefaultSettings()
	settings.Gravity = rl.Vector3{}
	sim := NewSimulation(NewPool(), settings)
	h := addBall(sim, rl.Vector3{})
	sim.Bodies.Get(h).Awake = false

	if !sim.Bodies.ApplyLinearImpulse(h, rl.Vector3{X: 2}) {
		t.Fatal("ApplyLinearImpulse should succeed")
	}
	body := sim.Bodies.Get(h)
	if !body.Awake {
		t.Error("Impulse should wake the body")
	}
	if body.Velocity.Linear != (rl.Vector3{X: 2}) {
		t.Errorf("Expected velocity (2,0,0) for unit mass, got %v", body.Velocity.Linear)
	}

	settle(sim, 60)
	p := sim.Bodies.Get(h).Pose.Position
	if math.Abs(float64(p.X-2)) > 0.01 || p.Y != 0 || p.Z != 0 {
		t.Errorf("Expected body near (2,0,0) after one second, got %v", p)
	}

	sim.Bodies.Remove(h)
	if sim.Bodies.ApplyLinearImpulse(h, rl.Vector3{X: 1}) {
		t.Error("Impulse on a stale handle should fail")
	}
}
