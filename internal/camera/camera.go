package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a target point. Yaw and Pitch are in degrees.
type OrbitCamera struct {
	Target    rl.Vector3
	Distance  float32
	Yaw       float32
	Pitch     float32
	LookSpeed float32
	ZoomSpeed float32

	MinDistance float32
	MaxDistance float32
}

func New(target rl.Vector3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Distance:    distance,
		Yaw:         -135.0,
		Pitch:       30.0,
		LookSpeed:   0.3,
		ZoomSpeed:   1.5,
		MinDistance: 2,
		MaxDistance: 200,
	}
}

// Update reads the mouse: right drag orbits, the wheel zooms.
func (c *OrbitCamera) Update() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		c.Orbit(delta.X*c.LookSpeed, delta.Y*c.LookSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Zoom(-wheel * c.ZoomSpeed)
	}
}

func (c *OrbitCamera) Orbit(yaw, pitch float32) {
	c.Yaw += yaw
	c.Pitch += pitch

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

func (c *OrbitCamera) Zoom(amount float32) {
	c.Distance += amount
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Position is the eye point on the orbit sphere.
func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180

	offset := rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
	return rl.Vector3Add(c.Target, rl.Vector3Scale(offset, c.Distance))
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
