package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type SolveDescription struct {
	VelocityIterations int
	Substeps           int
}

type Settings struct {
	Gravity  rl.Vector3
	Solve    SolveDescription
	Material Material
}

// DefaultSettings: earth gravity, 8 velocity iterations, 1 substep, friction 1,
// recovery capped at 2 m/s and a 30 Hz critically damped contact spring.
func DefaultSettings() Settings {
	return Settings{
		Gravity: rl.Vector3{X: 0, Y: -9.81, Z: 0},
		Solve:   SolveDescription{VelocityIterations: 8, Substeps: 1},
		Material: Material{
			Friction:            1,
			MaxRecoveryVelocity: 2,
			SpringFrequency:     30,
			SpringDampingRatio:  1,
		},
	}
}

// Simulation owns shapes, bodies and statics and advances them in time.
// It is not safe for concurrent use.
type Simulation struct {
	Shapes  *Shapes
	Bodies  *Bodies
	Statics *Statics

	settings  Settings
	pool      *Pool
	broad     broadPhase
	contacts  []contact
	timesteps uint64
	disposed  bool
}

func NewSimulation(pool *Pool, settings Settings) *Simulation {
	if pool == nil {
		pool = NewPool()
	}
	if settings.Solve.VelocityIterations < 1 {
		settings.Solve.VelocityIterations = 1
	}
	if settings.Solve.Substeps < 1 {
		settings.Solve.Substeps = 1
	}
	return &Simulation{
		Shapes:   newShapes(pool),
		Bodies:   &Bodies{pool: pool},
		Statics:  &Statics{pool: pool},
		settings: settings,
		pool:     pool,
	}
}

func (s *Simulation) Settings() Settings { return s.settings }

func (s *Simulation) Pool() *Pool { return s.pool }

// Timesteps counts completed calls to Timestep.
func (s *Simulation) Timesteps() uint64 { return s.timesteps }

// ContactCount is the number of contact constraints solved in the last substep.
func (s *Simulation) ContactCount() int { return len(s.contacts) }

func (s *Simulation) Disposed() bool { return s.disposed }

// Timestep advances the simulation by dt seconds. Non-positive dt and
// disposed simulations are ignored.
func (s *Simulation) Timestep(dt float32) {
	if s.disposed || !(dt > 0) || math.IsInf(float64(dt), 0) {
		return
	}
	h := dt / float32(s.settings.Solve.Substeps)
	for i := 0; i < s.settings.Solve.Substeps; i++ {
		s.substep(h)
	}
	s.timesteps++
}

func (s *Simulation) substep(h float32) {
	gravity := rl.Vector3Scale(s.settings.Gravity, h)
	s.Bodies.Each(func(_ BodyHandle, b *Body) {
		if b.Awake && b.LocalInertia.InverseMass > 0 {
			b.Velocity.Linear = rl.Vector3Add(b.Velocity.Linear, gravity)
		}
	})

	s.findContacts()

	mat := s.settings.Material
	for i := range s.contacts {
		s.contacts[i].prepare(h, mat)
	}
	for iter := 0; iter < s.settings.Solve.VelocityIterations; iter++ {
		for i := range s.contacts {
			s.contacts[i].solve(mat.Friction)
		}
	}

	s.Bodies.Each(func(_ BodyHandle, b *Body) {
		if !b.Awake {
			return
		}
		b.Pose.Position = rl.Vector3Add(b.Pose.Position, rl.Vector3Scale(b.Velocity.Linear, h))
		b.Pose.Orientation = integrateOrientation(b.Pose.Orientation, b.Velocity.Angular, h)
		s.updateActivity(b)
	})
}

func (s *Simulation) updateActivity(b *Body) {
	v := b.Velocity
	energy := rl.Vector3DotProduct(v.Linear, v.Linear) + rl.Vector3DotProduct(v.Angular, v.Angular)
	if energy >= b.Activity.SleepThreshold {
		b.restingSteps = 0
		return
	}
	b.restingSteps++
	if b.restingSteps >= b.Activity.MinimumTimestepsUnderThreshold {
		b.sleep()
	}
}

func (s *Simulation) findContacts() {
	s.broad.reset()
	s.contacts = s.contacts[:0]

	s.Bodies.Each(func(h BodyHandle, b *Body) {
		shape, ok := s.Shapes.Get(b.Collidable.Shape)
		if !ok {
			return
		}
		s.broad.add(collidable{
			ref:    BodyReference(h),
			body:   b,
			pose:   b.Pose,
			shape:  shape,
			margin: b.Collidable.SpeculativeMargin,
			bounds: boundsOf(shape, b.Pose).Expand(b.Collidable.SpeculativeMargin),
		})
	})
	s.Statics.Each(func(h StaticHandle, st *Static) {
		shape, ok := s.Shapes.Get(st.Shape)
		if !ok {
			return
		}
		s.broad.add(collidable{
			ref:    StaticReference(h),
			pose:   st.Pose,
			shape:  shape,
			bounds: boundsOf(shape, st.Pose),
		})
	})

	s.broad.pairs(func(a, b *collidable) {
		// Keep the dynamic side first so statics always end up as b.
		if a.static() {
			a, b = b, a
		}
		margin := max(a.margin, b.margin)
		m, ok := collide(a.shape, a.pose, b.shape, b.pose, margin)
		if !ok {
			return
		}
		wakePair(a.body, b.body)
		for _, p := range m.points {
			c := contact{
				a:      a.body,
				b:      b.body,
				normal: m.normal,
				depth:  p.depth,
				rA:     rl.Vector3Subtract(p.point, a.pose.Position),
				rB:     rl.Vector3Subtract(p.point, b.pose.Position),
			}
			s.contacts = append(s.contacts, c)
		}
	})
}

// RemoveBody removes a body and wakes sleeping bodies that were touching it.
func (s *Simulation) RemoveBody(h BodyHandle) bool {
	b := s.Bodies.Get(h)
	if b == nil {
		return false
	}
	bounds, ok := s.collidableBounds(b.Collidable.Shape, b.Pose, b.Collidable.SpeculativeMargin)
	s.Bodies.Remove(h)
	if ok {
		s.wakeOverlapping(bounds)
	}
	return true
}

// RemoveStatic removes a static and wakes sleeping bodies that rested on it.
func (s *Simulation) RemoveStatic(h StaticHandle) bool {
	st := s.Statics.Get(h)
	if st == nil {
		return false
	}
	bounds, ok := s.collidableBounds(st.Shape, st.Pose, 0)
	s.Statics.Remove(h)
	if ok {
		s.wakeOverlapping(bounds)
	}
	return true
}

func (s *Simulation) collidableBounds(idx ShapeIndex, pose RigidPose, margin float32) (AABB, bool) {
	shape, ok := s.Shapes.Get(idx)
	if !ok {
		return AABB{}, false
	}
	return boundsOf(shape, pose).Expand(margin), true
}

// wakeOverlapping wakes every sleeping body whose margin-expanded bounds touch bounds.
func (s *Simulation) wakeOverlapping(bounds AABB) {
	s.Bodies.Each(func(_ BodyHandle, b *Body) {
		if b.Awake {
			return
		}
		if own, ok := s.collidableBounds(b.Collidable.Shape, b.Pose, b.Collidable.SpeculativeMargin); ok && own.Intersects(bounds) {
			b.wake()
		}
	})
}

// wakePair wakes a sleeping body when an awake one runs into it fast enough.
func wakePair(a, b *Body) {
	if a == nil || b == nil || a.Awake == b.Awake {
		return
	}
	mover, sleeper := a, b
	if !a.Awake {
		mover, sleeper = b, a
	}
	v := mover.Velocity.Linear
	if rl.Vector3DotProduct(v, v) > 2*max(mover.Activity.SleepThreshold, sleeper.Activity.SleepThreshold) {
		sleeper.wake()
	}
}

// Dispose returns every allocation to the pool. The simulation cannot be stepped afterwards.
func (s *Simulation) Dispose() {
	if s.disposed {
		return
	}
	s.Bodies.clear()
	s.Statics.clear()
	s.Shapes.clear()
	s.contacts = nil
	s.broad = broadPhase{}
	s.disposed = true
}
