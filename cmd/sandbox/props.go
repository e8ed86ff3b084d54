package main

import (
	"mirgo/internal/components"
	"mirgo/internal/engine"
	"mirgo/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// launchImpulse is the impulse given to a launched unit-mass prop.
const launchImpulse = 20

// newProp builds a unit-mass cube or ball at pos.
func newProp(name string, mesh components.MeshType, color rl.Color, pos rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	switch mesh {
	case components.MeshSphere:
		g.AddComponent(components.NewMeshRenderer(mesh, color, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}))
		g.AddComponent(components.NewSphereCollider(0.5))
	default:
		g.AddComponent(components.NewMeshRenderer(mesh, color, rl.Vector3{X: 1, Y: 1, Z: 1}))
		g.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	}
	g.AddComponent(components.NewRigidbody(1))
	return g
}

// launch spawns g and pushes it along forward.
func launch(w *world.World, g *engine.GameObject, forward rl.Vector3) error {
	if err := w.Spawn(g); err != nil {
		return err
	}
	impulse := rl.Vector3Scale(rl.Vector3Normalize(forward), launchImpulse)
	return w.Physics.ApplyLinearImpulse(g, impulse)
}
