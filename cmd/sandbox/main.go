// Command sandbox loads a YAML scene into a physics world and runs it in a
// window or headless.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mirgo/internal/config"
	"mirgo/internal/world"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	preset     string
	scenePath  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "sandbox",
		Short:        "rigid body physics sandbox",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "physics preset")
	rootCmd.PersistentFlags().StringVar(&scenePath, "scene", "", "scene file (yaml)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list physics presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(newRunCmd(), newSimulateCmd(), newPickCmd(), newBenchCmd(), presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig applies, in order: defaults, --config, --preset, --scene, --log-level.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg.Physics = *p
	}
	if scenePath != "" {
		cfg.Scene = scenePath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, cfg.Validate()
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// openWorld builds a live world from the config and loads its scene.
func openWorld(cfg *config.Config) (*world.World, *log.Logger, error) {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	w := world.New(cfg.Physics, logger)
	if err := w.Initialize(); err != nil {
		return nil, nil, err
	}
	if err := w.LoadScene(cfg.Scene); err != nil {
		w.Dispose()
		return nil, nil, err
	}
	return w, logger, nil
}

// parseVec3 reads "x,y,z".
func parseVec3(s string) (rl.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return rl.Vector3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return rl.Vector3{}, fmt.Errorf("bad component %q: %w", p, err)
		}
		v[i] = float32(f)
	}
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}, nil
}
