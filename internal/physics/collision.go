package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// featureTolerance is how close to the support plane a box vertex must be
// to join a face contact.
const featureTolerance = 0.02

const maxManifoldPoints = 8

type contactPoint struct {
	point rl.Vector3
	depth float32
}

// manifold is the contact set between two collidables. Normal points from b towards a.
type manifold struct {
	normal rl.Vector3
	points []contactPoint
}

// collide runs the narrow phase for one pair. Only pairs closer than margin
// produce contacts; negative depths are speculative.
func collide(shapeA Shape, poseA RigidPose, shapeB Shape, poseB RigidPose, margin float32) (manifold, bool) {
	switch a := shapeA.(type) {
	case Sphere:
		switch b := shapeB.(type) {
		case Sphere:
			return sphereVsSphere(poseA.Position, a.Radius, poseB.Position, b.Radius, margin)
		case Box:
			return sphereVsBox(poseA.Position, a.Radius, NewOBB(poseB, b.HalfExtents), margin)
		}
	case Box:
		switch b := shapeB.(type) {
		case Sphere:
			m, ok := sphereVsBox(poseB.Position, b.Radius, NewOBB(poseA, a.HalfExtents), margin)
			m.normal = rl.Vector3Negate(m.normal)
			return m, ok
		case Box:
			return boxVsBox(NewOBB(poseA, a.HalfExtents), NewOBB(poseB, b.HalfExtents), margin)
		}
	}
	return manifold{}, false
}

func sphereVsSphere(ca rl.Vector3, ra float32, cb rl.Vector3, rb float32, margin float32) (manifold, bool) {
	diff := rl.Vector3Subtract(ca, cb)
	dist := rl.Vector3Length(diff)
	depth := ra + rb - dist
	if depth < -margin {
		return manifold{}, false
	}

	normal := rl.Vector3{Y: 1}
	if dist > 0.0001 {
		normal = rl.Vector3Scale(diff, 1/dist)
	}
	// Midway between the two surfaces
	point := rl.Vector3Add(cb, rl.Vector3Scale(normal, rb-depth/2))
	return manifold{normal: normal, points: []contactPoint{{point: point, depth: depth}}}, true
}

// sphereVsBox treats the sphere as a and the box as b.
func sphereVsBox(center rl.Vector3, radius float32, box OBB, margin float32) (manifold, bool) {
	closest := ClosestPointOnOBB(box, center)
	diff := rl.Vector3Subtract(center, closest)
	dist := rl.Vector3Length(diff)

	if dist > 0.0001 {
		depth := radius - dist
		if depth < -margin {
			return manifold{}, false
		}
		normal := rl.Vector3Scale(diff, 1/dist)
		return manifold{normal: normal, points: []contactPoint{{point: closest, depth: depth}}}, true
	}

	// Center inside the box: push out through the nearest face.
	local := box.ToLocal(center)
	coords := [3]float32{local.X, local.Y, local.Z}
	axis := 0
	best := box.half(0) - absf(coords[0])
	for i := 1; i < 3; i++ {
		if d := box.half(i) - absf(coords[i]); d < best {
			best = d
			axis = i
		}
	}
	normal := box.Axes[axis]
	if coords[axis] < 0 {
		normal = rl.Vector3Negate(normal)
	}
	point := rl.Vector3Add(center, rl.Vector3Scale(normal, best))
	return manifold{normal: normal, points: []contactPoint{{point: point, depth: radius + best}}}, true
}

func boxVsBox(a, b OBB, margin float32) (manifold, bool) {
	normal, depth := a.SeparatingAxis(b)
	if depth < -margin {
		return manifold{}, false
	}

	maxB := rl.Vector3DotProduct(normal, b.Center) + b.project(normal)
	minA := rl.Vector3DotProduct(normal, a.Center) - a.project(normal)
	reach := margin + featureTolerance

	m := manifold{normal: normal}
	var sumA, sumB rl.Vector3
	var nA, nB float32

	// Vertices of a on its face towards b that sit over b.
	for _, v := range a.Corners() {
		d := rl.Vector3DotProduct(normal, v)
		if d-minA > featureTolerance {
			continue
		}
		sumA = rl.Vector3Add(sumA, v)
		nA++
		pen := maxB - d
		if pen >= -margin && b.Contains(v, reach) && len(m.points) < maxManifoldPoints {
			m.points = append(m.points, contactPoint{point: v, depth: pen})
		}
	}
	// Vertices of b on its face towards a that sit under a.
	for _, w := range b.Corners() {
		d := rl.Vector3DotProduct(normal, w)
		if maxB-d > featureTolerance {
			continue
		}
		sumB = rl.Vector3Add(sumB, w)
		nB++
		pen := d - minA
		if pen >= -margin && a.Contains(w, reach) && len(m.points) < maxManifoldPoints {
			m.points = append(m.points, contactPoint{point: w, depth: pen})
		}
	}

	if len(m.points) == 0 {
		// Edge on edge: one contact between the two support features.
		fa := rl.Vector3Scale(sumA, 1/nA)
		fb := rl.Vector3Scale(sumB, 1/nB)
		m.points = append(m.points, contactPoint{point: rl.Vector3Lerp(fa, fb, 0.5), depth: depth})
	}
	return m, true
}

// Spatial grid cell size - collidables within the same cell are paired
const CellSize = 5.0

// maxCellsPerEntry caps grid insertion; larger collidables are tested against everything.
const maxCellsPerEntry = 512

// Cell key for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: floorDiv(pos.X),
		Y: floorDiv(pos.Y),
		Z: floorDiv(pos.Z),
	}
}

func floorDiv(v float32) int {
	c := v / CellSize
	i := int(c)
	if c < 0 && float32(i) != c {
		i--
	}
	return i
}

type collidable struct {
	ref    CollidableReference
	body   *Body
	pose   RigidPose
	shape  Shape
	margin float32
	bounds AABB
}

func (c *collidable) static() bool { return c.body == nil }

func (c *collidable) awake() bool { return c.body != nil && c.body.Awake }

// broadPhase pairs collidables whose bounds share a grid cell.
type broadPhase struct {
	entries  []collidable
	grid     map[CellKey][]int
	oversize []int
	seen     map[[2]int]struct{}
}

func (bp *broadPhase) reset() {
	bp.entries = bp.entries[:0]
	bp.oversize = bp.oversize[:0]
	if bp.grid == nil {
		bp.grid = make(map[CellKey][]int)
		bp.seen = make(map[[2]int]struct{})
	}
	for k := range bp.grid {
		delete(bp.grid, k)
	}
	for k := range bp.seen {
		delete(bp.seen, k)
	}
}

func (bp *broadPhase) add(c collidable) {
	idx := len(bp.entries)
	bp.entries = append(bp.entries, c)

	lo := posToCell(c.bounds.Min)
	hi := posToCell(c.bounds.Max)
	cells := (hi.X - lo.X + 1) * (hi.Y - lo.Y + 1) * (hi.Z - lo.Z + 1)
	if cells > maxCellsPerEntry || cells <= 0 {
		bp.oversize = append(bp.oversize, idx)
		return
	}
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				key := CellKey{X: x, Y: y, Z: z}
				bp.grid[key] = append(bp.grid[key], idx)
			}
		}
	}
}

// pairs calls fn once for every candidate pair that can interact.
func (bp *broadPhase) pairs(fn func(a, b *collidable)) {
	try := func(i, j int) {
		if i == j {
			return
		}
		if i > j {
			i, j = j, i
		}
		a, b := &bp.entries[i], &bp.entries[j]
		// Nothing moves unless one side is awake.
		if !a.awake() && !b.awake() {
			return
		}
		key := [2]int{i, j}
		if _, ok := bp.seen[key]; ok {
			return
		}
		bp.seen[key] = struct{}{}
		if !a.bounds.Intersects(b.bounds) {
			return
		}
		fn(a, b)
	}

	for _, cell := range bp.grid {
		for x := 0; x < len(cell); x++ {
			for y := x + 1; y < len(cell); y++ {
				try(cell[x], cell[y])
			}
		}
	}
	for _, big := range bp.oversize {
		for j := range bp.entries {
			try(big, j)
		}
	}
}

func boundsOf(shape Shape, pose RigidPose) AABB {
	switch s := shape.(type) {
	case Box:
		return NewOBB(pose, s.HalfExtents).Bounds()
	case Sphere:
		r := rl.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}
		return AABB{Min: rl.Vector3Subtract(pose.Position, r), Max: rl.Vector3Add(pose.Position, r)}
	}
	return AABB{Min: pose.Position, Max: pose.Position}
}
