package physics

import (
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RigidPose struct {
	Position    rl.Vector3
	Orientation rl.Quaternion
}

func NewRigidPose(position rl.Vector3) RigidPose {
	return RigidPose{Position: position, Orientation: rl.QuaternionIdentity()}
}

type BodyVelocity struct {
	Linear  rl.Vector3
	Angular rl.Vector3
}

type CollidableDescription struct {
	Shape ShapeIndex
	// SpeculativeMargin is how far apart two collidables may be and still
	// generate contacts.
	SpeculativeMargin float32
}

type BodyActivityDescription struct {
	// SleepThreshold is compared against the squared linear plus angular speed.
	SleepThreshold float32
	// MinimumTimestepsUnderThreshold consecutive resting steps put the body to sleep.
	MinimumTimestepsUnderThreshold int
}

// DefaultTimestepsUnderThreshold is used when an activity description leaves it zero.
const DefaultTimestepsUnderThreshold = 32

type BodyDescription struct {
	Pose         RigidPose
	Velocity     BodyVelocity
	LocalInertia BodyInertia
	Collidable   CollidableDescription
	Activity     BodyActivityDescription
}

func CreateDynamic(pose RigidPose, inertia BodyInertia, collidable CollidableDescription, activity BodyActivityDescription) BodyDescription {
	return BodyDescription{
		Pose:         pose,
		LocalInertia: inertia,
		Collidable:   collidable,
		Activity:     activity,
	}
}

type StaticDescription struct {
	Pose  RigidPose
	Shape ShapeIndex
}

// Body is the simulation state of a dynamic body.
type Body struct {
	Pose         RigidPose
	Velocity     BodyVelocity
	LocalInertia BodyInertia
	Collidable   CollidableDescription
	Activity     BodyActivityDescription
	Awake        bool

	restingSteps int
}

// worldInverseInertia applies the inverse inertia tensor, rotated into world space, to v.
func (b *Body) worldInverseInertia(v rl.Vector3) rl.Vector3 {
	q := b.Pose.Orientation
	local := rl.Vector3RotateByQuaternion(v, rl.QuaternionInvert(q))
	local = rl.Vector3Multiply(local, b.LocalInertia.InverseInertia)
	return rl.Vector3RotateByQuaternion(local, q)
}

func (b *Body) sleep() {
	b.Awake = false
	b.Velocity = BodyVelocity{}
	b.restingSteps = 0
}

func (b *Body) wake() {
	b.Awake = true
	b.restingSteps = 0
}

// Bodies owns every dynamic body of a Simulation.
type Bodies struct {
	slots slotMap[Body]
	pool  *Pool
}

// Add inserts a body. New bodies start awake.
func (b *Bodies) Add(desc BodyDescription) BodyHandle {
	if desc.Pose.Orientation == (rl.Quaternion{}) {
		desc.Pose.Orientation = rl.QuaternionIdentity()
	}
	if desc.Activity.MinimumTimestepsUnderThreshold <= 0 {
		desc.Activity.MinimumTimestepsUnderThreshold = DefaultTimestepsUnderThreshold
	}
	idx, gen := b.slots.insert(Body{
		Pose:         desc.Pose,
		Velocity:     desc.Velocity,
		LocalInertia: desc.LocalInertia,
		Collidable:   desc.Collidable,
		Activity:     desc.Activity,
		Awake:        true,
	})
	b.pool.take("body", unsafe.Sizeof(Body{}))
	return BodyHandle{index: idx, generation: gen}
}

func (b *Bodies) Remove(h BodyHandle) bool {
	if !b.slots.remove(h.index, h.generation) {
		return false
	}
	b.pool.give("body", unsafe.Sizeof(Body{}))
	return true
}

// Get returns nil for stale or invalid handles. The pointer is valid until the next Add.
func (b *Bodies) Get(h BodyHandle) *Body {
	return b.slots.get(h.index, h.generation)
}

func (b *Bodies) Contains(h BodyHandle) bool {
	return b.Get(h) != nil
}

func (b *Bodies) Awaken(h BodyHandle) {
	if body := b.Get(h); body != nil {
		body.wake()
	}
}

// ApplyLinearImpulse wakes the body and changes its linear velocity by
// impulse times its inverse mass. It returns false for stale handles.
func (b *Bodies) ApplyLinearImpulse(h BodyHandle, impulse rl.Vector3) bool {
	body := b.Get(h)
	if body == nil {
		return false
	}
	body.wake()
	body.Velocity.Linear = rl.Vector3Add(body.Velocity.Linear, rl.Vector3Scale(impulse, body.LocalInertia.InverseMass))
	return true
}

func (b *Bodies) Count() int {
	return b.slots.live
}

func (b *Bodies) ActiveCount() int {
	n := 0
	b.slots.each(func(_ int32, _ uint32, body *Body) {
		if body.Awake {
			n++
		}
	})
	return n
}

func (b *Bodies) Each(fn func(h BodyHandle, body *Body)) {
	b.slots.each(func(idx int32, gen uint32, body *Body) {
		fn(BodyHandle{index: idx, generation: gen}, body)
	})
}

func (b *Bodies) clear() {
	b.slots.each(func(int32, uint32, *Body) {
		b.pool.give("body", unsafe.Sizeof(Body{}))
	})
	b.slots.clear()
}

type Static struct {
	Pose  RigidPose
	Shape ShapeIndex
}

// Statics owns every static collidable of a Simulation.
type Statics struct {
	slots slotMap[Static]
	pool  *Pool
}

func (s *Statics) Add(desc StaticDescription) StaticHandle {
	if desc.Pose.Orientation == (rl.Quaternion{}) {
		desc.Pose.Orientation = rl.QuaternionIdentity()
	}
	idx, gen := s.slots.insert(Static{Pose: desc.Pose, Shape: desc.Shape})
	s.pool.take("static", unsafe.Sizeof(Static{}))
	return StaticHandle{index: idx, generation: gen}
}

func (s *Statics) Remove(h StaticHandle) bool {
	if !s.slots.remove(h.index, h.generation) {
		return false
	}
	s.pool.give("static", unsafe.Sizeof(Static{}))
	return true
}

func (s *Statics) Get(h StaticHandle) *Static {
	return s.slots.get(h.index, h.generation)
}

func (s *Statics) Contains(h StaticHandle) bool {
	return s.Get(h) != nil
}

func (s *Statics) Count() int {
	return s.slots.live
}

func (s *Statics) Each(fn func(h StaticHandle, st *Static)) {
	s.slots.each(func(idx int32, gen uint32, st *Static) {
		fn(StaticHandle{index: idx, generation: gen}, st)
	})
}

func (s *Statics) clear() {
	s.slots.each(func(int32, uint32, *Static) {
		s.pool.give("static", unsafe.Sizeof(Static{}))
	})
	s.slots.clear()
}
