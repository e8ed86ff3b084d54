package main

import (
	"fmt"
	"math"

	"mirgo/internal/components"
	"mirgo/internal/engine"
	"mirgo/internal/world"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
)

func newSimulateCmd() *cobra.Command {
	var (
		seconds float64
		frameDt float64
		plot    string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "step the scene headless and print final transforms",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w, _, err := openWorld(cfg)
			if err != nil {
				return err
			}
			defer w.Dispose()

			var tracked *engine.GameObject
			if plot != "" {
				if tracked = w.Scene.FindByName(plot); tracked == nil {
					return fmt.Errorf("no object named %q", plot)
				}
			}

			heights, err := simulate(w, seconds, float32(frameDt), tracked)
			if err != nil {
				return err
			}

			stats := w.Physics.Stats()
			fmt.Println(titleStyle.Render(fmt.Sprintf("%s after %.2fs (%d steps, %d/%d awake, %d contacts)",
				w.Scene.Name, seconds, stats.Steps, stats.Awake, stats.Bodies, stats.Contacts)))
			fmt.Println(transformTable(w))

			if tracked != nil && len(heights) > 1 {
				fmt.Println(asciigraph.Plot(heights,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(fmt.Sprintf("%s height (y)", tracked.Name)),
				))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&seconds, "seconds", 5, "simulated duration")
	cmd.Flags().Float64Var(&frameDt, "frame-dt", 1.0/60.0, "frame delta fed to each Step")
	cmd.Flags().StringVar(&plot, "plot", "", "plot the height of the named object")
	return cmd
}

// simulate feeds frames of frameDt until seconds have elapsed and returns
// the tracked object's height after every frame.
func simulate(w *world.World, seconds float64, frameDt float32, tracked *engine.GameObject) ([]float64, error) {
	if !(frameDt > 0) {
		return nil, fmt.Errorf("frame-dt must be positive, got %v", frameDt)
	}
	frames := int(math.Ceil(seconds / float64(frameDt)))
	var heights []float64
	for i := 0; i < frames; i++ {
		if err := w.Update(frameDt); err != nil {
			return nil, err
		}
		if tracked != nil {
			heights = append(heights, float64(tracked.Transform.Position.Y))
		}
	}
	return heights, nil
}

func transformTable(w *world.World) string {
	rows := make([][]string, 0, len(w.Scene.GameObjects))
	for _, g := range w.Scene.GameObjects {
		rows = append(rows, transformRow(w, g))
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "NAME", "KIND", "POSITION", "ROTATION (DEG)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2 && rows[row][col] != "dynamic":
				return dimStyle
			}
			return cellStyle
		}).
		String()
}

func transformRow(w *world.World, g *engine.GameObject) []string {
	kind := "none"
	if w.Physics.IsRegistered(g) {
		kind = "static"
		if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil && !rb.IsStatic {
			kind = "dynamic"
		}
	}
	p := g.Transform.Position
	e := g.Transform.Euler()
	return []string{
		fmt.Sprint(g.ID),
		g.Name,
		kind,
		fmt.Sprintf("%7.3f %7.3f %7.3f", p.X, p.Y, p.Z),
		fmt.Sprintf("%6.1f %6.1f %6.1f", e.X, e.Y, e.Z),
	}
}
