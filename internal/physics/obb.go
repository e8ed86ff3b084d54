package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from a pose and half extents.
func NewOBB(pose RigidPose, halfSize rl.Vector3) OBB {
	q := pose.Orientation
	return OBB{
		Center:   pose.Position,
		HalfSize: halfSize,
		Axes: [3]rl.Vector3{
			rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, q),
			rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, q),
			rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, q),
		},
	}
}

func (o OBB) half(i int) float32 {
	switch i {
	case 0:
		return o.HalfSize.X
	case 1:
		return o.HalfSize.Y
	}
	return o.HalfSize.Z
}

// project returns the radius of the box projected onto axis.
func (o OBB) project(axis rl.Vector3) float32 {
	return o.HalfSize.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

// Corners returns the eight vertices of the box.
func (o OBB) Corners() [8]rl.Vector3 {
	var out [8]rl.Vector3
	for i := 0; i < 8; i++ {
		p := o.Center
		for axis := 0; axis < 3; axis++ {
			sign := float32(1)
			if i&(1<<axis) != 0 {
				sign = -1
			}
			p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[axis], sign*o.half(axis)))
		}
		out[i] = p
	}
	return out
}

// Bounds returns the world-space AABB enclosing the box.
func (o OBB) Bounds() AABB {
	ext := rl.Vector3{
		X: o.project(rl.Vector3{X: 1}),
		Y: o.project(rl.Vector3{Y: 1}),
		Z: o.project(rl.Vector3{Z: 1}),
	}
	return AABB{Min: rl.Vector3Subtract(o.Center, ext), Max: rl.Vector3Add(o.Center, ext)}
}

// ToLocal transforms a world point into box space.
func (o OBB) ToLocal(point rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(point, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

// Contains reports whether point lies inside the box grown by tolerance.
func (o OBB) Contains(point rl.Vector3, tolerance float32) bool {
	l := o.ToLocal(point)
	return absf(l.X) <= o.HalfSize.X+tolerance &&
		absf(l.Y) <= o.HalfSize.Y+tolerance &&
		absf(l.Z) <= o.HalfSize.Z+tolerance
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	_, depth := a.SeparatingAxis(b)
	return depth >= 0
}

// SeparatingAxis tests the 15 SAT axes and returns the one of least overlap,
// oriented from b towards a. A negative depth is the separation along that axis.
func (a OBB) SeparatingAxis(b OBB) (rl.Vector3, float32) {
	t := rl.Vector3Subtract(a.Center, b.Center)
	best := float32(math.MaxFloat32)
	var minDepth float32
	var normal rl.Vector3

	testAxis := func(axis rl.Vector3, bias float32) {
		length := rl.Vector3Length(axis)
		if length < 0.0001 {
			return
		}
		axis = rl.Vector3Scale(axis, 1/length)
		dist := rl.Vector3DotProduct(t, axis)
		depth := a.project(axis) + b.project(axis) - absf(dist)
		// Edge axes get a small bias so face axes win ties.
		if depth+bias < best {
			best = depth + bias
			minDepth = depth
			if dist < 0 {
				normal = rl.Vector3Negate(axis)
			} else {
				normal = axis
			}
		}
	}

	for i := 0; i < 3; i++ {
		testAxis(a.Axes[i], 0)
	}
	for i := 0; i < 3; i++ {
		testAxis(b.Axes[i], 0)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			testAxis(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j]), 0.001)
		}
	}
	return normal, minDepth
}

// ResolveOBB returns the minimum translation vector to push 'a' out of 'b'
// Returns zero vector if no overlap
func (a OBB) ResolveOBB(b OBB) rl.Vector3 {
	normal, depth := a.SeparatingAxis(b)
	if depth < 0 {
		return rl.Vector3Zero()
	}
	return rl.Vector3Scale(normal, depth)
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(center rl.Vector3, radius float32) bool {
	d := rl.Vector3Subtract(center, ClosestPointOnOBB(o, center))
	return rl.Vector3DotProduct(d, d) <= radius*radius
}

// ClosestPointOnOBB returns the closest point on or in the OBB to the given point
func ClosestPointOnOBB(o OBB, point rl.Vector3) rl.Vector3 {
	l := o.ToLocal(point)

	closestX := clampf(l.X, -o.HalfSize.X, o.HalfSize.X)
	closestY := clampf(l.Y, -o.HalfSize.Y, o.HalfSize.Y)
	closestZ := clampf(l.Z, -o.HalfSize.Z, o.HalfSize.Z)

	result := o.Center
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[0], closestX))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[1], closestY))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[2], closestZ))

	return result
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
