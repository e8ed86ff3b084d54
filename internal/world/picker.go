package world

import (
	"math"

	"mirgo/internal/engine"
	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PickResult is the nearest object hit by a ray.
type PickResult struct {
	Object     *engine.GameObject
	Collidable physics.CollidableReference
	Distance   float32
	Point      rl.Vector3
	Normal     rl.Vector3
}

// pickHandler keeps the closest hit that resolves to a registered object.
type pickHandler struct {
	index  *bodyIndex
	filter func(*engine.GameObject) bool

	HitT       float32
	Object     *engine.GameObject
	Normal     rl.Vector3
	Collidable physics.CollidableReference
}

func newPickHandler(index *bodyIndex, filter func(*engine.GameObject) bool) *pickHandler {
	return &pickHandler{
		index:  index,
		filter: filter,
		HitT:   float32(math.Inf(1)),
	}
}

func (h *pickHandler) AllowTest(c physics.CollidableReference) bool {
	if h.filter == nil {
		return true
	}
	obj := h.index.resolve(c)
	return obj != nil && h.filter(obj)
}

func (h *pickHandler) OnRayHit(ray physics.RayData, maximumT *float32, t float32, normal rl.Vector3, c physics.CollidableReference) {
	if t >= h.HitT {
		return
	}
	obj := h.index.resolve(c)
	if obj == nil {
		return
	}
	h.HitT = t
	*maximumT = t
	h.Object = obj
	h.Normal = normal
	h.Collidable = c
}
