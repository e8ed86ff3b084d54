package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
	idMap       map[int]*GameObject
	nextID      int
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		idMap:       make(map[int]*GameObject),
		nextID:      1,
	}
}

// AddGameObject appends g and assigns the next sequential ID if g has none.
func (s *Scene) AddGameObject(g *GameObject) {
	if s.idMap == nil {
		s.idMap = make(map[int]*GameObject)
	}
	if s.nextID == 0 {
		s.nextID = 1
	}
	if g.ID == 0 {
		g.ID = s.nextID
		s.nextID++
	} else if g.ID >= s.nextID {
		s.nextID = g.ID + 1
	}
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.idMap[g.ID] = g
}

// RemoveGameObject removes g and all of its children.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for _, child := range g.Children {
		s.RemoveGameObject(child)
	}
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			delete(s.idMap, g.ID)
			g.Scene = nil
			return
		}
	}
}

func (s *Scene) FindByID(id int) *GameObject {
	if s == nil || id == 0 {
		return nil
	}
	return s.idMap[id]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}
