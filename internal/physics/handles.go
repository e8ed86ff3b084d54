package physics

import "fmt"

// BodyHandle identifies a dynamic body in a Simulation. The zero value is invalid.
type BodyHandle struct {
	index      int32
	generation uint32
}

func (h BodyHandle) IsValid() bool { return h.generation != 0 }

func (h BodyHandle) String() string {
	if !h.IsValid() {
		return "body(invalid)"
	}
	return fmt.Sprintf("body(%d.%d)", h.index, h.generation)
}

// StaticHandle identifies a static collidable in a Simulation. The zero value is invalid.
type StaticHandle struct {
	index      int32
	generation uint32
}

func (h StaticHandle) IsValid() bool { return h.generation != 0 }

func (h StaticHandle) String() string {
	if !h.IsValid() {
		return "static(invalid)"
	}
	return fmt.Sprintf("static(%d.%d)", h.index, h.generation)
}

// ShapeIndex points at an entry in Shapes. The zero value is invalid.
type ShapeIndex struct {
	kind  Kind
	index int32
}

func (i ShapeIndex) IsValid() bool { return i.kind != 0 }
func (i ShapeIndex) Kind() Kind    { return i.kind }

func (i ShapeIndex) String() string {
	if !i.IsValid() {
		return "shape(invalid)"
	}
	return fmt.Sprintf("shape(%s:%d)", i.kind, i.index)
}

type Mobility int

const (
	MobilityDynamic Mobility = iota
	MobilityStatic
)

func (m Mobility) String() string {
	switch m {
	case MobilityDynamic:
		return "dynamic"
	case MobilityStatic:
		return "static"
	}
	return fmt.Sprintf("Mobility(%d)", int(m))
}

// CollidableReference names either a body or a static.
type CollidableReference struct {
	Mobility Mobility
	body     BodyHandle
	static   StaticHandle
}

func BodyReference(h BodyHandle) CollidableReference {
	return CollidableReference{Mobility: MobilityDynamic, body: h}
}

func StaticReference(h StaticHandle) CollidableReference {
	return CollidableReference{Mobility: MobilityStatic, static: h}
}

// BodyHandle is only meaningful when Mobility is MobilityDynamic.
func (c CollidableReference) BodyHandle() BodyHandle { return c.body }

// StaticHandle is only meaningful when Mobility is MobilityStatic.
func (c CollidableReference) StaticHandle() StaticHandle { return c.static }

func (c CollidableReference) String() string {
	if c.Mobility == MobilityStatic {
		return c.static.String()
	}
	return c.body.String()
}
