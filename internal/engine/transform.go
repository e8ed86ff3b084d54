package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is the local pose of a GameObject. Rotation is a unit quaternion.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

func NewTransform() Transform {
	return Transform{
		Position: rl.Vector3{},
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// SetEuler sets the rotation from euler angles in degrees (X, Y, Z).
func (t *Transform) SetEuler(degrees rl.Vector3) {
	t.Rotation = rl.QuaternionFromEuler(
		degrees.X*rl.Deg2rad,
		degrees.Y*rl.Deg2rad,
		degrees.Z*rl.Deg2rad,
	)
}

// Euler returns the rotation as euler angles in degrees.
func (t Transform) Euler() rl.Vector3 {
	return rl.Vector3Scale(rl.QuaternionToEuler(t.Rotation), rl.Rad2deg)
}

// Forward is the local -Z axis rotated into world space.
func (t Transform) Forward() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{X: 0, Y: 0, Z: -1}, t.Rotation)
}
