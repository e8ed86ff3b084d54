package camera

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOrbitPositionDistance(t *testing.T) {
	c := New(rl.Vector3{X: 1, Y: 2, Z: 3}, 10)

	d := rl.Vector3Distance(c.Position(), c.Target)
	if math.Abs(float64(d-10)) > 1e-4 {
		t.Errorf("Expected eye 10 units from target, got %v", d)
	}

	c.Yaw, c.Pitch = 0, 0
	pos := c.Position()
	if math.Abs(float64(pos.X-11)) > 1e-4 || math.Abs(float64(pos.Y-2)) > 1e-4 {
		t.Errorf("Expected eye at (11,2,3), got %v", pos)
	}
}

func TestOrbitClampsPitchAndZoom(t *testing.T) {
	c := New(rl.Vector3{}, 10)

	c.Orbit(0, 500)
	if c.Pitch != 89 {
		t.Errorf("Expected pitch clamped to 89, got %v", c.Pitch)
	}

	c.Zoom(-100)
	if c.Distance != c.MinDistance {
		t.Errorf("Expected distance clamped to %v, got %v", c.MinDistance, c.Distance)
	}

	c.Zoom(1000)
	if c.Distance != c.MaxDistance {
		t.Errorf("Expected distance clamped to %v, got %v", c.MaxDistance, c.Distance)
	}
}

func TestGetRaylibCamera(t *testing.T) {
	c := New(rl.Vector3{Y: 1}, 5)
	cam := c.GetRaylibCamera()

	if cam.Target != c.Target {
		t.Errorf("Expected target %v, got %v", c.Target, cam.Target)
	}
	if cam.Projection != rl.CameraPerspective {
		t.Error("Expected perspective projection")
	}
}
