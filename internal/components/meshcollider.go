package components

import (
	"mirgo/internal/engine"
	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MeshCollider describes triangle geometry in local space. Physics worlds
// refuse to register it, the renderer can still draw it.
type MeshCollider struct {
	engine.BaseComponent
	Triangles []physics.Triangle
}

func NewMeshCollider(triangles []physics.Triangle) *MeshCollider {
	return &MeshCollider{Triangles: triangles}
}

func (m *MeshCollider) Shape() physics.Shape {
	return physics.Mesh{Triangles: m.Triangles}
}

// Bounds returns the local-space AABB of all triangles.
func (m *MeshCollider) Bounds() physics.AABB {
	if len(m.Triangles) == 0 {
		return physics.AABB{}
	}
	b := physics.AABB{Min: m.Triangles[0].A, Max: m.Triangles[0].A}
	for _, tri := range m.Triangles {
		for _, v := range [3]rl.Vector3{tri.A, tri.B, tri.C} {
			b.Min = vector3Min(b.Min, v)
			b.Max = vector3Max(b.Max, v)
		}
	}
	return b
}

func vector3Min(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: min(a.X, b.X),
		Y: min(a.Y, b.Y),
		Z: min(a.Z, b.Z),
	}
}

func vector3Max(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: max(a.X, b.X),
		Y: max(a.Y, b.Y),
		Z: max(a.Z, b.Z),
	}
}
