package config

import "sort"

// Solver presets trade accuracy for speed. "default" matches DefaultPhysics.
var presets = map[string]func(*PhysicsConfig){
	"default": func(*PhysicsConfig) {},
	"fast": func(p *PhysicsConfig) {
		p.VelocityIterations = 4
		p.FixedTimestep = 1.0 / 30.0
	},
	"precise": func(p *PhysicsConfig) {
		p.VelocityIterations = 16
		p.Substeps = 4
		p.FixedTimestep = 1.0 / 120.0
	},
	"moon": func(p *PhysicsConfig) {
		p.Gravity = [3]float32{0, -1.62, 0}
	},
}

// GetPreset returns the default physics config with the named preset applied, or nil.
func GetPreset(name string) *PhysicsConfig {
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	p := DefaultPhysics()
	apply(&p)
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
