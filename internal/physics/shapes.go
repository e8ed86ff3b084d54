package physics

import (
	"errors"
	"fmt"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrUnsupportedShape is returned when a shape kind cannot back a collidable.
var ErrUnsupportedShape = errors.New("physics: unsupported shape")

type Kind int

const (
	KindBox Kind = iota + 1
	KindSphere
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindSphere:
		return "sphere"
	case KindMesh:
		return "mesh"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Shape is a collision shape description. The set of implementations is closed.
type Shape interface {
	Kind() Kind
	shape()
}

// Box is a cuboid centered on its pose.
type Box struct {
	HalfExtents rl.Vector3
}

// NewBox takes full dimensions.
func NewBox(width, height, length float32) Box {
	return Box{HalfExtents: rl.Vector3{X: width / 2, Y: height / 2, Z: length / 2}}
}

func (Box) Kind() Kind { return KindBox }
func (Box) shape()     {}

func (b Box) Size() rl.Vector3 {
	return rl.Vector3Scale(b.HalfExtents, 2)
}

// ComputeInertia returns the inertia of a solid box with uniform density.
func (b Box) ComputeInertia(mass float32) BodyInertia {
	x2 := b.HalfExtents.X * b.HalfExtents.X
	y2 := b.HalfExtents.Y * b.HalfExtents.Y
	z2 := b.HalfExtents.Z * b.HalfExtents.Z
	k := mass / 3
	return newBodyInertia(mass, rl.Vector3{X: k * (y2 + z2), Y: k * (x2 + z2), Z: k * (x2 + y2)})
}

// Sphere is centered on its pose.
type Sphere struct {
	Radius float32
}

func (Sphere) Kind() Kind { return KindSphere }
func (Sphere) shape()     {}

// ComputeInertia returns the inertia of a solid sphere with uniform density.
func (s Sphere) ComputeInertia(mass float32) BodyInertia {
	i := 0.4 * mass * s.Radius * s.Radius
	return newBodyInertia(mass, rl.Vector3{X: i, Y: i, Z: i})
}

type Triangle struct {
	A, B, C rl.Vector3
}

// Mesh is a triangle soup. It can be described but not simulated.
type Mesh struct {
	Triangles []Triangle
}

func (Mesh) Kind() Kind { return KindMesh }
func (Mesh) shape()     {}

// BodyInertia holds inverse mass and the inverse of the diagonal local inertia tensor.
type BodyInertia struct {
	InverseMass    float32
	InverseInertia rl.Vector3
}

func newBodyInertia(mass float32, inertia rl.Vector3) BodyInertia {
	var bi BodyInertia
	if mass > 0 {
		bi.InverseMass = 1 / mass
	}
	if inertia.X > 0 {
		bi.InverseInertia.X = 1 / inertia.X
	}
	if inertia.Y > 0 {
		bi.InverseInertia.Y = 1 / inertia.Y
	}
	if inertia.Z > 0 {
		bi.InverseInertia.Z = 1 / inertia.Z
	}
	return bi
}

// Shapes is the registry of shapes referenced by bodies and statics.
type Shapes struct {
	entries []Shape
	pool    *Pool
}

func newShapes(pool *Pool) *Shapes {
	return &Shapes{pool: pool}
}

func (s *Shapes) AddBox(b Box) ShapeIndex {
	return s.add(b)
}

func (s *Shapes) AddSphere(sp Sphere) ShapeIndex {
	return s.add(sp)
}

// Add registers any simulatable shape.
func (s *Shapes) Add(shape Shape) (ShapeIndex, error) {
	switch v := shape.(type) {
	case Box:
		return s.AddBox(v), nil
	case Sphere:
		return s.AddSphere(v), nil
	case nil:
		return ShapeIndex{}, fmt.Errorf("%w: nil", ErrUnsupportedShape)
	default:
		return ShapeIndex{}, fmt.Errorf("%w: %s", ErrUnsupportedShape, shape.Kind())
	}
}

func (s *Shapes) add(shape Shape) ShapeIndex {
	s.entries = append(s.entries, shape)
	s.pool.take("shape", unsafe.Sizeof(shape))
	return ShapeIndex{kind: shape.Kind(), index: int32(len(s.entries) - 1)}
}

func (s *Shapes) Get(idx ShapeIndex) (Shape, bool) {
	if !idx.IsValid() || idx.index < 0 || int(idx.index) >= len(s.entries) {
		return nil, false
	}
	return s.entries[idx.index], true
}

func (s *Shapes) Count() int {
	return len(s.entries)
}

func (s *Shapes) clear() {
	for range s.entries {
		s.pool.give("shape", unsafe.Sizeof(Shape(nil)))
	}
	s.entries = nil
}
