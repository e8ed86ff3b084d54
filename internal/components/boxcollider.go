package components

import (
	"mirgo/internal/engine"
	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type BoxCollider struct {
	engine.BaseComponent
	Size rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{Size: size}
}

// Shape ignores the transform scale.
func (b *BoxCollider) Shape() physics.Shape {
	return physics.NewBox(absf(b.Size.X), absf(b.Size.Y), absf(b.Size.Z))
}

// GetOBB returns the collider in world space.
func (b *BoxCollider) GetOBB() physics.OBB {
	g := b.GetGameObject()
	pose := physics.RigidPose{Position: g.WorldPosition(), Orientation: g.WorldRotation()}
	return physics.NewOBB(pose, b.Shape().(physics.Box).HalfExtents)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
