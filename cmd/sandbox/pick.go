package main

import (
	"fmt"

	"mirgo/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
)

func newPickCmd() *cobra.Command {
	var (
		from   string
		dir    string
		maxDst float32
		settle float64
	)
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "cast a ray into the scene and report the nearest object",
		RunE: func(cmd *cobra.Command, args []string) error {
			origin, err := parseVec3(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			direction, err := parseVec3(dir)
			if err != nil {
				return fmt.Errorf("--dir: %w", err)
			}
			if rl.Vector3Length(direction) == 0 {
				return fmt.Errorf("--dir must be non-zero")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w, _, err := openWorld(cfg)
			if err != nil {
				return err
			}
			defer w.Dispose()

			if settle > 0 {
				if _, err := simulate(w, settle, cfg.Physics.FixedTimestep, nil); err != nil {
					return err
				}
			}

			res, ok := w.Physics.Pick(origin, direction, maxDst)
			fmt.Println(describePick(res, ok))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "0,10,10", "ray origin x,y,z")
	cmd.Flags().StringVar(&dir, "dir", "0,-1,-1", "ray direction x,y,z")
	cmd.Flags().Float32Var(&maxDst, "max", 1000, "maximum hit distance")
	cmd.Flags().Float64Var(&settle, "settle", 0, "seconds to simulate before casting")
	return cmd
}

func describePick(res world.PickResult, ok bool) string {
	if !ok {
		return "no hit"
	}
	return fmt.Sprintf("hit %s (#%d) at distance %.3f, point (%.3f, %.3f, %.3f), normal (%.2f, %.2f, %.2f)",
		res.Object.Name, res.Object.ID, res.Distance,
		res.Point.X, res.Point.Y, res.Point.Z,
		res.Normal.X, res.Normal.Y, res.Normal.Z)
}
