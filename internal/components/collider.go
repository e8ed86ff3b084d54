package components

import (
	"mirgo/internal/engine"
	"mirgo/internal/physics"
)

// Collider supplies the collision shape of its GameObject.
type Collider interface {
	engine.Component
	Shape() physics.Shape
}

// GetCollider returns the first collider on g, or nil.
func GetCollider(g *engine.GameObject) Collider {
	return engine.GetComponent[Collider](g)
}
