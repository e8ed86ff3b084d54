package world

import (
	"errors"
	"fmt"

	"mirgo/internal/config"
	"mirgo/internal/engine"

	"github.com/charmbracelet/log"
)

// World ties a scene to the physics world that simulates it.
type World struct {
	Scene     *engine.Scene
	Physics   *PhysicsWorld
	ScenePath string

	logger *log.Logger
}

func New(cfg config.PhysicsConfig, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	return &World{
		Scene:   engine.NewScene("Main"),
		Physics: NewPhysicsWorld(cfg, logger.WithPrefix("physics")),
		logger:  logger,
	}
}

func (w *World) Initialize() error {
	return w.Physics.Initialize()
}

// LoadScene reads a YAML scene file and populates the world with it.
func (w *World) LoadScene(path string) error {
	sf, err := LoadSceneFile(path)
	if err != nil {
		return err
	}
	if err := w.Populate(sf); err != nil {
		return err
	}
	w.ScenePath = path
	return nil
}

// Populate adds every object of sf to the scene and registers it with
// physics. Objects that fail to register stay in the scene without a body.
func (w *World) Populate(sf *SceneFile) error {
	objects, err := sf.Build()
	if err != nil {
		return err
	}
	w.add(sf.Name, objects)
	return nil
}

func (w *World) add(name string, objects []*engine.GameObject) {
	if name != "" {
		w.Scene.Name = name
	}

	failed := 0
	for _, g := range objects {
		w.Scene.AddGameObject(g)
		if err := w.Physics.RegisterBody(g); err != nil {
			failed++
			w.logger.Warn("object left out of physics", "name", g.Name, "err", err)
		}
	}
	w.Scene.Start()

	w.logger.Info("scene loaded", "name", w.Scene.Name, "objects", len(objects), "unregistered", failed)
}

// Spawn adds g to the scene and registers it. If registration fails the
// scene is left as it was.
func (w *World) Spawn(g *engine.GameObject) error {
	added := g.Scene != w.Scene
	if added {
		w.Scene.AddGameObject(g)
	}
	if err := w.Physics.RegisterBody(g); err != nil {
		if added {
			w.Scene.RemoveGameObject(g)
		}
		return fmt.Errorf("spawn %s: %w", g.Name, err)
	}
	g.Start()
	return nil
}

// Destroy unregisters g and its children and removes them from the scene.
func (w *World) Destroy(g *engine.GameObject) {
	w.unregisterTree(g)
	w.Scene.RemoveGameObject(g)
}

func (w *World) unregisterTree(g *engine.GameObject) {
	for _, child := range g.Children {
		w.unregisterTree(child)
	}
	if w.Physics.IsRegistered(g) {
		w.Physics.UnregisterBody(g)
	}
}

// Update runs scene components, then advances physics.
func (w *World) Update(deltaTime float32) error {
	w.Scene.Update(deltaTime)
	return w.Physics.Step(deltaTime)
}

// Reload rebuilds the world from ScenePath with a fresh physics world.
func (w *World) Reload() error {
	if w.ScenePath == "" {
		return errors.New("reload: no scene loaded")
	}
	sf, err := LoadSceneFile(w.ScenePath)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	// Build before tearing down so a broken file keeps the old scene.
	objects, err := sf.Build()
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}

	w.Physics.Dispose()
	w.Scene = engine.NewScene(w.Scene.Name)
	if err := w.Physics.Initialize(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	w.add(sf.Name, objects)
	w.logger.Info("scene reloaded", "path", w.ScenePath)
	return nil
}

// SaveScene writes the current scene, with simulated poses, to path.
func (w *World) SaveScene(path string) error {
	sf, err := NewSceneFile(w.Scene.Name, w.Scene.GameObjects)
	if err != nil {
		return err
	}
	return SaveSceneFile(path, sf)
}

func (w *World) Dispose() {
	w.Physics.Dispose()
}
