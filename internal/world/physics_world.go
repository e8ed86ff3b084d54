package world

import (
	"fmt"
	"math"

	"mirgo/internal/components"
	"mirgo/internal/config"
	"mirgo/internal/engine"
	"mirgo/internal/physics"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PhysicsWorld binds scene objects to a physics Simulation. It owns the
// simulation and its pool between Initialize and Dispose, steps it with a
// fixed timestep and writes dynamic poses back into transforms.
//
// A PhysicsWorld is driven by one frame loop and is not safe for concurrent use.
type PhysicsWorld struct {
	// Registered fires after an object has been added to the simulation.
	Registered engine.EventWithArg[*engine.GameObject]
	// Unregistered fires after an object has been removed from the simulation.
	Unregistered engine.EventWithArg[*engine.GameObject]

	cfg    config.PhysicsConfig
	logger *log.Logger

	pool  *physics.Pool
	sim   *physics.Simulation
	index *bodyIndex

	accumulator float64
	stepCount   uint64
	nextID      int
}

func NewPhysicsWorld(cfg config.PhysicsConfig, logger *log.Logger) *PhysicsWorld {
	if logger == nil {
		logger = log.Default().WithPrefix("physics")
	}
	return &PhysicsWorld{
		cfg:    cfg,
		logger: logger,
		index:  newBodyIndex(),
	}
}

// Initialize creates the pool and the simulation. Calling it on a live world does nothing.
func (p *PhysicsWorld) Initialize() error {
	if p.IsRunning() {
		p.logger.Warn("physics world already initialized")
		return nil
	}
	if err := p.cfg.Validate(); err != nil {
		return fmt.Errorf("initialize physics: %w", err)
	}

	p.pool = physics.NewPool()
	p.sim = physics.NewSimulation(p.pool, p.cfg.Settings())
	p.index = newBodyIndex()
	p.accumulator = 0
	p.stepCount = 0

	p.logger.Info("physics world initialized",
		"timestep", p.cfg.FixedTimestep,
		"iterations", p.cfg.VelocityIterations,
		"substeps", p.cfg.Substeps,
		"gravity", p.cfg.GravityVector())
	return nil
}

// Dispose tears down the simulation and releases the pool. Registered
// objects keep their transforms but lose their handles.
func (p *PhysicsWorld) Dispose() {
	if !p.IsRunning() {
		return
	}
	for _, obj := range p.index.objects {
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil {
			rb.ClearHandles()
		}
	}
	bodies := p.index.len()

	p.sim.Dispose()
	p.pool.Clear()
	p.sim = nil
	p.pool = nil
	p.index = newBodyIndex()
	p.accumulator = 0

	p.logger.Info("physics world disposed", "bodies", bodies, "steps", p.stepCount)
}

func (p *PhysicsWorld) IsRunning() bool {
	return p.sim != nil
}

// Simulation is nil while the world is not live.
func (p *PhysicsWorld) Simulation() *physics.Simulation {
	return p.sim
}

func (p *PhysicsWorld) Config() config.PhysicsConfig {
	return p.cfg
}

// RegisterBody adds obj to the simulation. Objects without a Rigidbody are
// static, objects without a collider get a 1x1x1 box. Nothing is changed
// when an error is returned.
func (p *PhysicsWorld) RegisterBody(obj *engine.GameObject) error {
	if !p.IsRunning() {
		p.logger.Error("cannot register body", "err", ErrNotInitialized)
		return ErrNotInitialized
	}
	if obj == nil {
		return ErrNilObject
	}

	rb := engine.GetComponent[*components.Rigidbody](obj)
	if p.index.contains(obj) || (rb != nil && rb.IsRegistered()) {
		return fmt.Errorf("register %q: %w", obj.Name, ErrAlreadyRegistered)
	}

	var shape physics.Shape = physics.NewBox(1, 1, 1)
	if collider := components.GetCollider(obj); collider != nil {
		shape = collider.Shape()
	}

	var addShape func() physics.ShapeIndex
	var inertia func(mass float32) physics.BodyInertia
	switch s := shape.(type) {
	case physics.Box:
		addShape = func() physics.ShapeIndex { return p.sim.Shapes.AddBox(s) }
		inertia = s.ComputeInertia
	case physics.Sphere:
		addShape = func() physics.ShapeIndex { return p.sim.Shapes.AddSphere(s) }
		inertia = s.ComputeInertia
	default:
		return &UnsupportedShapeError{Object: obj.Name, Type: fmt.Sprintf("%T", shape)}
	}

	isStatic := rb == nil || rb.IsStatic
	if !isStatic && (!(rb.Mass > 0) || math.IsInf(float64(rb.Mass), 0)) {
		return fmt.Errorf("register %q: %w (got %v)", obj.Name, ErrInvalidMass, rb.Mass)
	}

	if rb == nil {
		rb = components.NewStaticRigidbody()
		obj.AddComponent(rb)
	}
	if obj.ID == 0 {
		p.nextID++
		obj.ID = p.nextID
	} else if obj.ID > p.nextID {
		p.nextID = obj.ID
	}

	pose := physics.RigidPose{Position: obj.Transform.Position, Orientation: obj.Transform.Rotation}
	if pose.Orientation == (rl.Quaternion{}) {
		pose.Orientation = rl.QuaternionIdentity()
	} else {
		pose.Orientation = rl.QuaternionNormalize(pose.Orientation)
	}

	idx := addShape()
	rb.ShapeIndex = idx

	if isStatic {
		h := p.sim.Statics.Add(physics.StaticDescription{Pose: pose, Shape: idx})
		rb.StaticHandle = h
		p.index.addStatic(h, obj)
	} else {
		h := p.sim.Bodies.Add(physics.CreateDynamic(
			pose,
			inertia(rb.Mass),
			physics.CollidableDescription{Shape: idx, SpeculativeMargin: p.cfg.SpeculativeMargin},
			physics.BodyActivityDescription{SleepThreshold: p.cfg.SleepThreshold},
		))
		rb.DynamicHandle = h
		p.index.addBody(h, obj)
	}

	p.logger.Debug("registered body",
		"name", obj.Name,
		"id", obj.ID,
		"static", isStatic,
		"shape", idx.Kind())
	p.Registered.Invoke(obj)
	return nil
}

// UnregisterBody removes obj from the simulation and clears its handles.
// It returns false if obj was not registered here.
func (p *PhysicsWorld) UnregisterBody(obj *engine.GameObject) bool {
	if !p.IsRunning() {
		p.logger.Error("cannot unregister body", "err", ErrNotInitialized)
		return false
	}
	if obj == nil || !p.index.contains(obj) {
		name := "<nil>"
		if obj != nil {
			name = obj.Name
		}
		p.logger.Warn("unregister of unknown object", "name", name)
		return false
	}

	if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil {
		if rb.DynamicHandle.IsValid() {
			p.sim.RemoveBody(rb.DynamicHandle)
			p.index.removeBody(rb.DynamicHandle)
		}
		if rb.StaticHandle.IsValid() {
			p.sim.RemoveStatic(rb.StaticHandle)
			p.index.removeStatic(rb.StaticHandle)
		}
		rb.ClearHandles()
	}
	p.index.remove(obj)

	p.logger.Debug("unregistered body", "name", obj.Name, "id", obj.ID)
	p.Unregistered.Invoke(obj)
	return true
}

// ApplyLinearImpulse wakes obj's dynamic body and adds impulse/mass to its velocity.
func (p *PhysicsWorld) ApplyLinearImpulse(obj *engine.GameObject, impulse rl.Vector3) error {
	if !p.IsRunning() {
		p.logger.Error("cannot apply impulse", "err", ErrNotInitialized)
		return ErrNotInitialized
	}
	if obj == nil {
		return ErrNilObject
	}
	rb := engine.GetComponent[*components.Rigidbody](obj)
	if !p.index.contains(obj) || rb == nil || !p.sim.Bodies.ApplyLinearImpulse(rb.DynamicHandle, impulse) {
		return fmt.Errorf("impulse on %q: %w", obj.Name, ErrNotDynamic)
	}
	return nil
}

// IsRegistered reports whether obj is registered with this world.
func (p *PhysicsWorld) IsRegistered(obj *engine.GameObject) bool {
	return p.index.contains(obj)
}

// Objects returns registered objects in registration order.
func (p *PhysicsWorld) Objects() []*engine.GameObject {
	out := make([]*engine.GameObject, len(p.index.objects))
	copy(out, p.index.objects)
	return out
}

func (p *PhysicsWorld) BodyCount() int {
	return p.index.len()
}

// Step feeds frameDelta into the accumulator and runs as many fixed
// timesteps as it holds. frameDelta is clamped to [0, MaxFrameDelta].
// Dynamic transforms are updated only if at least one timestep ran.
func (p *PhysicsWorld) Step(frameDelta float32) error {
	if !p.IsRunning() {
		p.logger.Error("cannot step", "err", ErrNotInitialized)
		return ErrNotInitialized
	}

	dt := frameDelta
	if !(dt > 0) {
		dt = 0
	}
	if dt > p.cfg.MaxFrameDelta {
		dt = p.cfg.MaxFrameDelta
	}

	p.accumulator += float64(dt)
	fixed := float64(p.cfg.FixedTimestep)
	steps := 0
	for p.accumulator >= fixed {
		p.sim.Timestep(p.cfg.FixedTimestep)
		p.accumulator -= fixed
		p.stepCount++
		steps++
	}

	if steps > 0 {
		p.syncTransforms()
	}
	return nil
}

func (p *PhysicsWorld) syncTransforms() {
	for _, obj := range p.index.objects {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || rb.IsStatic || !rb.DynamicHandle.IsValid() {
			continue
		}
		body := p.sim.Bodies.Get(rb.DynamicHandle)
		if body == nil {
			continue
		}
		obj.Transform.Position = body.Pose.Position
		obj.Transform.Rotation = body.Pose.Orientation
	}
}

// Accumulator is the simulation time carried into the next Step.
func (p *PhysicsWorld) Accumulator() float64 {
	return p.accumulator
}

// StepCount is the number of fixed timesteps run since Initialize.
func (p *PhysicsWorld) StepCount() uint64 {
	return p.stepCount
}

// PickEntity returns the nearest registered object along the ray within maxDistance.
func (p *PhysicsWorld) PickEntity(origin, direction rl.Vector3, maxDistance float32) (*engine.GameObject, bool) {
	res, ok := p.Pick(origin, direction, maxDistance)
	return res.Object, ok
}

// Pick is PickEntity with hit details.
func (p *PhysicsWorld) Pick(origin, direction rl.Vector3, maxDistance float32) (PickResult, bool) {
	return p.PickFiltered(origin, direction, maxDistance, nil)
}

// PickFiltered skips objects for which filter returns false. A nil filter accepts everything.
func (p *PhysicsWorld) PickFiltered(origin, direction rl.Vector3, maxDistance float32, filter func(*engine.GameObject) bool) (PickResult, bool) {
	if !p.IsRunning() {
		p.logger.Error("cannot pick", "err", ErrNotInitialized)
		return PickResult{}, false
	}

	h := newPickHandler(p.index, filter)
	p.sim.RayCast(origin, direction, maxDistance, h)
	if h.Object == nil {
		return PickResult{}, false
	}

	dir := rl.Vector3Normalize(direction)
	return PickResult{
		Object:     h.Object,
		Collidable: h.Collidable,
		Distance:   h.HitT,
		Point:      rl.Vector3Add(origin, rl.Vector3Scale(dir, h.HitT)),
		Normal:     h.Normal,
	}, true
}

// Stats is a snapshot for HUDs and reports.
type Stats struct {
	Registered int
	Bodies     int
	Awake      int
	Statics    int
	Shapes     int
	Contacts   int
	Steps      uint64
	PoolBytes  int
}

func (p *PhysicsWorld) Stats() Stats {
	if !p.IsRunning() {
		return Stats{Steps: p.stepCount}
	}
	return Stats{
		Registered: p.index.len(),
		Bodies:     p.sim.Bodies.Count(),
		Awake:      p.sim.Bodies.ActiveCount(),
		Statics:    p.sim.Statics.Count(),
		Shapes:     p.sim.Shapes.Count(),
		Contacts:   p.sim.ContactCount(),
		Steps:      p.stepCount,
		PoolBytes:  p.pool.Bytes(),
	}
}
