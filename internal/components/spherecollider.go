package components

import (
	"mirgo/internal/engine"
	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type SphereCollider struct {
	engine.BaseComponent
	Radius float32
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{Radius: radius}
}

func (s *SphereCollider) Shape() physics.Shape {
	return physics.Sphere{Radius: absf(s.Radius)}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	return s.GetGameObject().WorldPosition()
}
