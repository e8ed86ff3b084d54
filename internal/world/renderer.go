package world

import (
	"mirgo/internal/components"
	"mirgo/internal/engine"
	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colliderColor = rl.Lime
	sleepingColor = rl.SkyBlue
	staticColor   = rl.DarkGray
)

// Renderer draws MeshRenderers and, optionally, collider wireframes.
// Objects outside the camera frustum are skipped.
type Renderer struct {
	ShowColliders bool
	ShowGrid      bool

	// Drawn and Culled count objects in the last Draw.
	Drawn  int
	Culled int

	frustum Frustum
}

func NewRenderer() *Renderer {
	return &Renderer{ShowGrid: true}
}

// Draw must run inside BeginMode3D(camera). sim may be nil.
func (r *Renderer) Draw(camera rl.Camera3D, aspect float32, objects []*engine.GameObject, sim *physics.Simulation) {
	r.frustum = ExtractFrustum(camera, aspect)
	r.Drawn, r.Culled = 0, 0

	if r.ShowGrid {
		rl.DrawGrid(40, 1)
	}

	for _, g := range objects {
		if !g.Active {
			continue
		}
		if bounds, ok := objectBounds(g); ok && !r.frustum.ContainsAABB(bounds) {
			r.Culled++
			continue
		}
		if renderer := engine.GetComponent[*components.MeshRenderer](g); renderer != nil {
			renderer.Draw()
		}
		if r.ShowColliders {
			drawCollider(g, sim)
		}
		r.Drawn++
	}
}

func drawCollider(g *engine.GameObject, sim *physics.Simulation) {
	collider := components.GetCollider(g)
	if collider == nil {
		return
	}
	color := colliderStateColor(g, sim)

	switch s := collider.Shape().(type) {
	case physics.Box:
		pose := physics.RigidPose{Position: g.WorldPosition(), Orientation: g.WorldRotation()}
		corners := physics.NewOBB(pose, s.HalfExtents).Corners()
		// Corners are ordered by sign bits (x, y, z), so edges join indices one bit apart.
		for i := 0; i < 8; i++ {
			for bit := 1; bit < 8; bit <<= 1 {
				if j := i | bit; j != i {
					rl.DrawLine3D(corners[i], corners[j], color)
				}
			}
		}
	case physics.Sphere:
		rl.DrawSphereWires(g.WorldPosition(), s.Radius, 8, 12, color)
	case physics.Mesh:
		pose := physics.RigidPose{Position: g.WorldPosition(), Orientation: g.WorldRotation()}
		for _, t := range s.Triangles {
			a, b, c := toWorld(pose, t.A), toWorld(pose, t.B), toWorld(pose, t.C)
			rl.DrawLine3D(a, b, color)
			rl.DrawLine3D(b, c, color)
			rl.DrawLine3D(c, a, color)
		}
	}
}

func colliderStateColor(g *engine.GameObject, sim *physics.Simulation) rl.Color {
	rb := engine.GetComponent[*components.Rigidbody](g)
	if rb == nil || rb.IsStatic {
		return staticColor
	}
	if sim != nil {
		if body := sim.Bodies.Get(rb.DynamicHandle); body != nil && !body.Awake {
			return sleepingColor
		}
	}
	return colliderColor
}

// objectBounds is the world-space box used for culling. Objects with
// neither a collider nor a mesh have no bounds and are always drawn.
func objectBounds(g *engine.GameObject) (physics.AABB, bool) {
	pose := physics.RigidPose{Position: g.WorldPosition(), Orientation: g.WorldRotation()}

	if collider := components.GetCollider(g); collider != nil {
		switch s := collider.Shape().(type) {
		case physics.Box:
			return physics.NewOBB(pose, s.HalfExtents).Bounds(), true
		case physics.Sphere:
			d := 2 * s.Radius
			return physics.NewAABBFromCenter(pose.Position, rl.Vector3{X: d, Y: d, Z: d}), true
		}
	}
	if mc := engine.GetComponent[*components.MeshCollider](g); mc != nil && len(mc.Triangles) > 0 {
		local := mc.Bounds()
		center := rl.Vector3Scale(rl.Vector3Add(local.Min, local.Max), 0.5)
		half := rl.Vector3Scale(rl.Vector3Subtract(local.Max, local.Min), 0.5)
		pose.Position = toWorld(pose, center)
		return physics.NewOBB(pose, half).Bounds(), true
	}

	if mr := engine.GetComponent[*components.MeshRenderer](g); mr != nil {
		size := mr.Size
		if mr.MeshType == components.MeshSphere {
			d := 2 * size.X
			size = rl.Vector3{X: d, Y: d, Z: d}
		}
		return physics.NewOBB(pose, rl.Vector3Scale(size, 0.5)).Bounds(), true
	}
	return physics.AABB{}, false
}

func toWorld(pose physics.RigidPose, local rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(pose.Position, rl.Vector3RotateByQuaternion(local, pose.Orientation))
}
