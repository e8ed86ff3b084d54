package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RayData is the ray being cast. Direction is normalized.
type RayData struct {
	Origin    rl.Vector3
	Direction rl.Vector3
}

// RayHitHandler filters and receives ray hits. OnRayHit may lower *maximumT
// to stop farther hits from being reported.
type RayHitHandler interface {
	AllowTest(c CollidableReference) bool
	OnRayHit(ray RayData, maximumT *float32, t float32, normal rl.Vector3, c CollidableReference)
}

// RayCast tests every body and static against the ray. Hits beyond the
// current maximum are skipped. A zero direction tests nothing.
func (s *Simulation) RayCast(origin, direction rl.Vector3, maximumT float32, handler RayHitHandler) {
	if s.disposed || handler == nil {
		return
	}
	length := rl.Vector3Length(direction)
	if length < 1e-8 || math.IsNaN(float64(length)) {
		return
	}
	ray := RayData{Origin: origin, Direction: rl.Vector3Scale(direction, 1/length)}
	maxT := maximumT

	test := func(ref CollidableReference, idx ShapeIndex, pose RigidPose) {
		if !handler.AllowTest(ref) {
			return
		}
		shape, ok := s.Shapes.Get(idx)
		if !ok {
			return
		}
		if t, normal, hit := rayShape(ray, shape, pose, maxT); hit {
			handler.OnRayHit(ray, &maxT, t, normal, ref)
		}
	}

	s.Bodies.Each(func(h BodyHandle, b *Body) {
		test(BodyReference(h), b.Collidable.Shape, b.Pose)
	})
	s.Statics.Each(func(h StaticHandle, st *Static) {
		test(StaticReference(h), st.Shape, st.Pose)
	})
}

func rayShape(ray RayData, shape Shape, pose RigidPose, maxT float32) (float32, rl.Vector3, bool) {
	switch sh := shape.(type) {
	case Box:
		return raycastBox(ray, sh.HalfExtents, pose, maxT)
	case Sphere:
		return raycastSphere(ray, sh.Radius, pose.Position, maxT)
	}
	return 0, rl.Vector3{}, false
}

// raycastBox runs the slab test in box space. A ray starting inside the box
// reports where it leaves.
func raycastBox(ray RayData, half rl.Vector3, pose RigidPose, maxT float32) (float32, rl.Vector3, bool) {
	inv := rl.QuaternionInvert(pose.Orientation)
	o := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(ray.Origin, pose.Position), inv)
	d := rl.Vector3RotateByQuaternion(ray.Direction, inv)

	origin := [3]float32{o.X, o.Y, o.Z}
	dir := [3]float32{d.X, d.Y, d.Z}
	extent := [3]float32{half.X, half.Y, half.Z}

	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)
	enterAxis, exitAxis := -1, -1
	var enterSign, exitSign float32

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < -extent[i] || origin[i] > extent[i] {
				return 0, rl.Vector3{}, false
			}
			continue
		}
		t1 := (-extent[i] - origin[i]) / dir[i]
		t2 := (extent[i] - origin[i]) / dir[i]
		// Entering through the face the ray points into
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			enterAxis = i
			enterSign = sign
		}
		if t2 < tmax {
			tmax = t2
			exitAxis = i
			exitSign = -sign
		}
		if tmin > tmax {
			return 0, rl.Vector3{}, false
		}
	}

	if tmax < 0 {
		return 0, rl.Vector3{}, false
	}

	t, axis, sign := tmin, enterAxis, enterSign
	if t < 0 {
		t, axis, sign = tmax, exitAxis, exitSign
	}
	if t > maxT || axis < 0 {
		return 0, rl.Vector3{}, false
	}

	var local rl.Vector3
	switch axis {
	case 0:
		local.X = sign
	case 1:
		local.Y = sign
	case 2:
		local.Z = sign
	}
	return t, rl.Vector3RotateByQuaternion(local, pose.Orientation), true
}

func raycastSphere(ray RayData, radius float32, center rl.Vector3, maxT float32) (float32, rl.Vector3, bool) {
	oc := rl.Vector3Subtract(ray.Origin, center)
	b := rl.Vector3DotProduct(oc, ray.Direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - c
	if discriminant < 0 {
		return 0, rl.Vector3{}, false
	}

	root := float32(math.Sqrt(float64(discriminant)))
	t := -b - root
	if t < 0 {
		t = -b + root
	}
	if t < 0 || t > maxT {
		return 0, rl.Vector3{}, false
	}

	point := rl.Vector3Add(ray.Origin, rl.Vector3Scale(ray.Direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))
	return t, normal, true
}
