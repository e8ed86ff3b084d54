package components

import (
	"math"

	"mirgo/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshPlane
)

func (m MeshType) String() string {
	switch m {
	case MeshCube:
		return "cube"
	case MeshSphere:
		return "sphere"
	case MeshPlane:
		return "plane"
	}
	return "unknown"
}

// ParseMeshType maps scene file names to mesh types.
func ParseMeshType(name string) (MeshType, bool) {
	switch name {
	case "cube", "box":
		return MeshCube, true
	case "sphere", "ball":
		return MeshSphere, true
	case "plane":
		return MeshPlane, true
	}
	return MeshCube, false
}

type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Color    rl.Color
	Size     rl.Vector3
	// Highlight draws a wire overlay, used for the picked object.
	Highlight bool
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
	}
}

// Draw must run inside BeginMode3D.
func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	pos := g.WorldPosition()
	axis, angle := axisAngle(g.WorldRotation())

	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(angle, axis.X, axis.Y, axis.Z)

	origin := rl.Vector3{}
	switch m.MeshType {
	case MeshCube:
		rl.DrawCubeV(origin, m.Size, m.Color)
		if m.Highlight {
			rl.DrawCubeWiresV(origin, rl.Vector3Scale(m.Size, 1.02), rl.Yellow)
		}
	case MeshSphere:
		rl.DrawSphere(origin, m.Size.X, m.Color)
		if m.Highlight {
			rl.DrawSphereWires(origin, m.Size.X*1.02, 8, 12, rl.Yellow)
		}
	case MeshPlane:
		rl.DrawPlane(origin, rl.Vector2{X: m.Size.X, Y: m.Size.Z}, m.Color)
	}

	rl.PopMatrix()
}

// axisAngle converts a unit quaternion to an axis and an angle in degrees.
func axisAngle(q rl.Quaternion) (rl.Vector3, float32) {
	if q.W > 1 || q.W < -1 {
		q = rl.QuaternionNormalize(q)
	}
	s := float32(math.Sqrt(float64(1 - q.W*q.W)))
	if s < 0.0001 {
		return rl.Vector3{Y: 1}, 0
	}
	angle := 2 * float32(math.Acos(float64(q.W)))
	return rl.Vector3{X: q.X / s, Y: q.Y / s, Z: q.Z / s}, angle * rl.Rad2deg
}
