package main

import (
	"fmt"
	"math/rand"

	"mirgo/internal/camera"
	"mirgo/internal/components"
	"mirgo/internal/engine"
	"mirgo/internal/world"

	"github.com/charmbracelet/log"
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
)

var (
	colorBgDark    = rl.NewColor(30, 30, 40, 230)
	colorBgElement = rl.NewColor(45, 45, 60, 255)
	colorAccent    = rl.NewColor(80, 140, 220, 255)
	colorText      = rl.NewColor(220, 220, 230, 255)
)

const hudWidth = 220

// sandbox is the interactive session state.
type sandbox struct {
	world    *world.World
	logger   *log.Logger
	camera   *camera.OrbitCamera
	renderer *world.Renderer
	watcher  *world.Watcher

	picked  *engine.GameObject
	paused  bool
	spawned int
	rng     *rand.Rand
}

func newRunCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "open the scene in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
			rl.InitWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
			defer rl.CloseWindow()
			rl.SetTargetFPS(cfg.Window.TargetFPS)

			w, logger, err := openWorld(cfg)
			if err != nil {
				return err
			}
			defer w.Dispose()

			s := &sandbox{
				world:    w,
				logger:   logger,
				camera:   camera.New(rl.Vector3{}, 18),
				renderer: world.NewRenderer(),
				rng:      rand.New(rand.NewSource(1)),
			}
			if watch {
				if s.watcher, err = world.NewWatcher(cfg.Scene); err != nil {
					return err
				}
				defer s.watcher.Close()
				logger.Info("watching scene", "path", cfg.Scene)
			}

			applyStyle()
			for !rl.WindowShouldClose() {
				s.update()
				s.draw()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the scene when its file changes")
	return cmd
}

func applyStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

func (s *sandbox) update() {
	s.pollWatcher()

	if rl.IsKeyPressed(rl.KeyR) {
		s.reload()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		s.paused = !s.paused
	}
	if rl.IsKeyPressed(rl.KeyF) {
		s.launch()
	}

	s.camera.Update()

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && mouse.X > hudWidth {
		ray := rl.GetScreenToWorldRay(mouse, s.camera.GetRaylibCamera())
		obj, _ := s.world.Physics.PickEntity(ray.Position, ray.Direction, 1000)
		s.selectObject(obj)
	}

	if s.paused {
		return
	}
	if err := s.world.Update(rl.GetFrameTime()); err != nil {
		s.logger.Error("update failed", "err", err)
	}
}

func (s *sandbox) pollWatcher() {
	if s.watcher == nil {
		return
	}
	select {
	case path, ok := <-s.watcher.Events:
		if ok {
			s.logger.Info("scene changed", "path", path)
			s.reload()
		}
	case err, ok := <-s.watcher.Errors:
		if ok {
			s.logger.Warn("watcher error", "err", err)
		}
	default:
	}
}

func (s *sandbox) reload() {
	s.selectObject(nil)
	if err := s.world.Reload(); err != nil {
		s.logger.Error("reload failed", "err", err)
	}
}

func (s *sandbox) selectObject(obj *engine.GameObject) {
	if s.picked != nil {
		if mr := engine.GetComponent[*components.MeshRenderer](s.picked); mr != nil {
			mr.Highlight = false
		}
	}
	s.picked = obj
	if obj != nil {
		if mr := engine.GetComponent[*components.MeshRenderer](obj); mr != nil {
			mr.Highlight = true
		}
		s.logger.Debug("picked", "name", obj.Name, "id", obj.ID)
	}
}

func (s *sandbox) randomColor() rl.Color {
	return rl.NewColor(uint8(80+s.rng.Intn(176)), uint8(80+s.rng.Intn(176)), uint8(80+s.rng.Intn(176)), 255)
}

// spawn drops a new body above the origin with a little horizontal jitter.
func (s *sandbox) spawn(mesh components.MeshType) {
	s.spawned++
	pos := rl.Vector3{
		X: s.rng.Float32()*2 - 1,
		Y: 8,
		Z: s.rng.Float32()*2 - 1,
	}
	g := newProp(fmt.Sprintf("%s_%d", mesh, s.spawned), mesh, s.randomColor(), pos)
	if err := s.world.Spawn(g); err != nil {
		s.logger.Error("spawn failed", "err", err)
	}
}

// launch fires a cube from the camera towards the orbit target.
func (s *sandbox) launch() {
	s.spawned++
	from := s.camera.Position()
	g := newProp(fmt.Sprintf("shot_%d", s.spawned), components.MeshCube, s.randomColor(), from)
	if err := launch(s.world, g, rl.Vector3Subtract(s.camera.Target, from)); err != nil {
		s.logger.Error("launch failed", "err", err)
	}
}

func (s *sandbox) draw() {
	cam := s.camera.GetRaylibCamera()
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	rl.BeginMode3D(cam)
	s.renderer.Draw(cam, aspect, s.world.Scene.GameObjects, s.world.Physics.Simulation())
	rl.EndMode3D()

	s.drawHUD()
	rl.EndDrawing()
}

func (s *sandbox) drawHUD() {
	h := float32(rl.GetScreenHeight())
	rl.DrawRectangleRec(rl.Rectangle{X: 0, Y: 0, Width: hudWidth, Height: h}, colorBgDark)
	rl.DrawText(s.world.Scene.Name, 10, 10, 18, colorAccent)

	x, y := float32(10), float32(34)
	row := func() rl.Rectangle {
		r := rl.Rectangle{X: x, Y: y, Width: hudWidth - 20, Height: 24}
		y += 28
		return r
	}

	if gui.Button(row(), "Spawn Box") {
		s.spawn(components.MeshCube)
	}
	if gui.Button(row(), "Spawn Ball") {
		s.spawn(components.MeshSphere)
	}
	if gui.Button(row(), "Launch (F)") {
		s.launch()
	}
	if gui.Button(row(), "Reload (R)") {
		s.reload()
	}
	s.paused = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 18, Height: 18}, "Paused (Space)", s.paused)
	y += 26
	s.renderer.ShowColliders = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 18, Height: 18}, "Colliders", s.renderer.ShowColliders)
	y += 26
	s.renderer.ShowGrid = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 18, Height: 18}, "Grid", s.renderer.ShowGrid)
	y += 34

	st := s.world.Physics.Stats()
	lines := []string{
		fmt.Sprintf("Steps: %d", st.Steps),
		fmt.Sprintf("Bodies: %d (%d awake)", st.Bodies, st.Awake),
		fmt.Sprintf("Statics: %d", st.Statics),
		fmt.Sprintf("Contacts: %d", st.Contacts),
		fmt.Sprintf("Drawn: %d  Culled: %d", s.renderer.Drawn, s.renderer.Culled),
		fmt.Sprintf("Pool: %.1f KB", float64(st.PoolBytes)/1024),
	}
	if s.picked != nil {
		p := s.picked.Transform.Position
		lines = append(lines, "",
			fmt.Sprintf("Picked: %s (#%d)", s.picked.Name, s.picked.ID),
			fmt.Sprintf("  %.2f %.2f %.2f", p.X, p.Y, p.Z))
		if gui.Button(rl.Rectangle{X: x, Y: h - 34, Width: hudWidth - 20, Height: 24}, "Destroy") {
			s.world.Destroy(s.picked)
			s.selectObject(nil)
		}
	}
	for _, line := range lines {
		rl.DrawText(line, int32(x), int32(y), 15, colorText)
		y += 20
	}

	rl.DrawFPS(int32(rl.GetScreenWidth())-90, 10)
}
