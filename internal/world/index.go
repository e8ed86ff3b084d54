package world

import (
	"mirgo/internal/engine"
	"mirgo/internal/physics"
)

// bodyIndex records registered objects in registration order and maps
// backend handles straight back to them.
type bodyIndex struct {
	objects []*engine.GameObject
	members map[*engine.GameObject]struct{}
	bodies  map[physics.BodyHandle]*engine.GameObject
	statics map[physics.StaticHandle]*engine.GameObject
}

func newBodyIndex() *bodyIndex {
	return &bodyIndex{
		members: make(map[*engine.GameObject]struct{}),
		bodies:  make(map[physics.BodyHandle]*engine.GameObject),
		statics: make(map[physics.StaticHandle]*engine.GameObject),
	}
}

func (ix *bodyIndex) addBody(h physics.BodyHandle, obj *engine.GameObject) {
	ix.bodies[h] = obj
	ix.append(obj)
}

func (ix *bodyIndex) addStatic(h physics.StaticHandle, obj *engine.GameObject) {
	ix.statics[h] = obj
	ix.append(obj)
}

func (ix *bodyIndex) append(obj *engine.GameObject) {
	ix.objects = append(ix.objects, obj)
	ix.members[obj] = struct{}{}
}

func (ix *bodyIndex) contains(obj *engine.GameObject) bool {
	_, ok := ix.members[obj]
	return ok
}

// resolve returns nil for collidables that belong to no registered object.
func (ix *bodyIndex) resolve(ref physics.CollidableReference) *engine.GameObject {
	switch ref.Mobility {
	case physics.MobilityDynamic:
		return ix.bodies[ref.BodyHandle()]
	case physics.MobilityStatic:
		return ix.statics[ref.StaticHandle()]
	}
	return nil
}

func (ix *bodyIndex) removeBody(h physics.BodyHandle) {
	delete(ix.bodies, h)
}

func (ix *bodyIndex) removeStatic(h physics.StaticHandle) {
	delete(ix.statics, h)
}

func (ix *bodyIndex) remove(obj *engine.GameObject) bool {
	if !ix.contains(obj) {
		return false
	}
	delete(ix.members, obj)
	for i, o := range ix.objects {
		if o == obj {
			ix.objects = append(ix.objects[:i], ix.objects[i+1:]...)
			break
		}
	}
	return true
}

func (ix *bodyIndex) len() int {
	return len(ix.objects)
}
