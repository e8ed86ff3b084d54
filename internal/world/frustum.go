package world

import (
	"math"

	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	frustumNear float32 = 0.1
	frustumFar  float32 = 1000.0
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0).
// The normal points into the frustum.
type Plane struct {
	normal   rl.Vector3
	distance float32
}

func planeThrough(normal, point rl.Vector3) Plane {
	n := rl.Vector3Normalize(normal)
	return Plane{normal: n, distance: -rl.Vector3DotProduct(n, point)}
}

func (p Plane) signedDistance(point rl.Vector3) float32 {
	return rl.Vector3DotProduct(p.normal, point) + p.distance
}

// ExtractFrustum builds the frustum of camera for a viewport with the given
// aspect ratio. Fovy is in degrees for perspective cameras and is the view
// height for orthographic ones.
func ExtractFrustum(camera rl.Camera3D, aspect float32) Frustum {
	eye := camera.Position
	forward := rl.Vector3Normalize(rl.Vector3Subtract(camera.Target, eye))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, camera.Up))
	up := rl.Vector3CrossProduct(right, forward)

	var f Frustum
	if camera.Projection == rl.CameraOrthographic {
		halfH := camera.Fovy / 2
		halfW := halfH * aspect
		f.planes[0] = planeThrough(right, rl.Vector3Subtract(eye, rl.Vector3Scale(right, halfW)))
		f.planes[1] = planeThrough(rl.Vector3Negate(right), rl.Vector3Add(eye, rl.Vector3Scale(right, halfW)))
		f.planes[2] = planeThrough(up, rl.Vector3Subtract(eye, rl.Vector3Scale(up, halfH)))
		f.planes[3] = planeThrough(rl.Vector3Negate(up), rl.Vector3Add(eye, rl.Vector3Scale(up, halfH)))
	} else {
		halfV := float64(camera.Fovy*rl.Deg2rad) / 2
		halfH := math.Atan(math.Tan(halfV) * float64(aspect))
		sinV, cosV := float32(math.Sin(halfV)), float32(math.Cos(halfV))
		sinH, cosH := float32(math.Sin(halfH)), float32(math.Cos(halfH))

		// Side planes pass through the eye, tilted in from the view direction.
		f.planes[0] = planeThrough(rl.Vector3Add(rl.Vector3Scale(forward, sinH), rl.Vector3Scale(right, cosH)), eye)
		f.planes[1] = planeThrough(rl.Vector3Subtract(rl.Vector3Scale(forward, sinH), rl.Vector3Scale(right, cosH)), eye)
		f.planes[2] = planeThrough(rl.Vector3Add(rl.Vector3Scale(forward, sinV), rl.Vector3Scale(up, cosV)), eye)
		f.planes[3] = planeThrough(rl.Vector3Subtract(rl.Vector3Scale(forward, sinV), rl.Vector3Scale(up, cosV)), eye)
	}
	f.planes[4] = planeThrough(forward, rl.Vector3Add(eye, rl.Vector3Scale(forward, frustumNear)))
	f.planes[5] = planeThrough(rl.Vector3Negate(forward), rl.Vector3Add(eye, rl.Vector3Scale(forward, frustumFar)))
	return f
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.planes {
		if f.planes[i].signedDistance(center) < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	for i := range f.planes {
		if f.planes[i].signedDistance(point) < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB is conservative: boxes near a frustum corner may pass.
func (f *Frustum) ContainsAABB(box physics.AABB) bool {
	for i := range f.planes {
		n := f.planes[i].normal
		// Corner furthest along the plane normal.
		p := box.Min
		if n.X >= 0 {
			p.X = box.Max.X
		}
		if n.Y >= 0 {
			p.Y = box.Max.Y
		}
		if n.Z >= 0 {
			p.Z = box.Max.Z
		}
		if f.planes[i].signedDistance(p) < 0 {
			return false
		}
	}
	return true
}
