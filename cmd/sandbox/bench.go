package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"mirgo/internal/components"
	"mirgo/internal/config"
	"mirgo/internal/engine"
	"mirgo/internal/world"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
)

type benchResult struct {
	Bodies   int
	Frames   int
	PerFrame time.Duration
	Awake    int
	Contacts int
}

func newBenchCmd() *cobra.Command {
	var (
		counts []int
		frames int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "time physics steps for piles of random bodies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			var results []benchResult
			for _, n := range counts {
				res, err := runBench(cfg.Physics, n, frames)
				if err != nil {
					return err
				}
				results = append(results, res)
			}
			fmt.Println(benchTable(results))
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&counts, "bodies", []int{100, 250, 500, 1000}, "body counts to run")
	cmd.Flags().IntVar(&frames, "frames", 120, "frames stepped per run")
	return cmd
}

// runBench drops n random boxes and balls onto a floor and times frames of one fixed step each.
func runBench(cfg config.PhysicsConfig, n, frames int) (benchResult, error) {
	pw := world.NewPhysicsWorld(cfg, log.New(io.Discard))
	if err := pw.Initialize(); err != nil {
		return benchResult{}, err
	}
	defer pw.Dispose()

	floor := engine.NewGameObject("floor")
	floor.Transform.Position = rl.Vector3{Y: -0.5}
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: 200, Y: 1, Z: 200}))
	if err := pw.RegisterBody(floor); err != nil {
		return benchResult{}, err
	}

	rng := rand.New(rand.NewSource(42))
	// Spawn volume grows with count to keep density reasonable.
	spawnSize := float32(10) + float32(n)/50
	for i := 0; i < n; i++ {
		g := engine.NewGameObject(fmt.Sprintf("body_%d", i))
		g.Transform.Position = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: 1 + rng.Float32()*spawnSize,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		if i%2 == 0 {
			g.AddComponent(components.NewSphereCollider(0.3 + rng.Float32()*0.3))
		} else {
			s := 0.5 + rng.Float32()*0.5
			g.AddComponent(components.NewBoxCollider(rl.Vector3{X: s, Y: s, Z: s}))
		}
		g.AddComponent(components.NewRigidbody(1))
		if err := pw.RegisterBody(g); err != nil {
			return benchResult{}, err
		}
	}

	// Warm up
	if err := pw.Step(cfg.FixedTimestep); err != nil {
		return benchResult{}, err
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		if err := pw.Step(cfg.FixedTimestep); err != nil {
			return benchResult{}, err
		}
	}
	elapsed := time.Since(start)

	st := pw.Stats()
	res := benchResult{Bodies: n, Frames: frames, Awake: st.Awake, Contacts: st.Contacts}
	if frames > 0 {
		res.PerFrame = elapsed / time.Duration(frames)
	}
	return res, nil
}

func benchTable(results []benchResult) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			fmt.Sprint(r.Bodies),
			fmt.Sprint(r.Frames),
			r.PerFrame.Round(time.Microsecond).String(),
			fmt.Sprint(r.Awake),
			fmt.Sprint(r.Contacts),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("BODIES", "FRAMES", "PER FRAME", "AWAKE", "CONTACTS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
