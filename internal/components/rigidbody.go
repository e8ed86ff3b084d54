package components

import (
	"mirgo/internal/engine"
	"mirgo/internal/physics"
)

// Rigidbody marks a GameObject as physical. The handles are filled in when the
// object is registered with a physics world and cleared when it leaves.
type Rigidbody struct {
	engine.BaseComponent
	IsStatic bool
	Mass     float32

	StaticHandle  physics.StaticHandle
	DynamicHandle physics.BodyHandle
	ShapeIndex    physics.ShapeIndex
}

func NewRigidbody(mass float32) *Rigidbody {
	return &Rigidbody{Mass: mass}
}

func NewStaticRigidbody() *Rigidbody {
	return &Rigidbody{IsStatic: true}
}

// IsRegistered reports whether either handle is set.
func (r *Rigidbody) IsRegistered() bool {
	return r.StaticHandle.IsValid() || r.DynamicHandle.IsValid()
}

// ClearHandles forgets every backend handle.
func (r *Rigidbody) ClearHandles() {
	r.StaticHandle = physics.StaticHandle{}
	r.DynamicHandle = physics.BodyHandle{}
	r.ShapeIndex = physics.ShapeIndex{}
}
