package config

import "sort"

// Presets maps engine name to named engine sections.
var Presets = map[string]map[string]EngineConfig{
	"life": {
		"small": {
			Name: "life", Width: 32, Height: 32, Density: 0.3, Rule: "B3/S23",
		},
		"classic": {
			Name: "life", Width: 64, Height: 64, Density: 0.5, Rule: "B3/S23",
		},
		"large": {
			Name: "life", Width: 256, Height: 128, Density: 0.25, Rule: "B3/S23",
		},
		"highlife": {
			Name: "life", Width: 64, Height: 64, Density: 0.35, Rule: "B36/S23",
		},
	},
}

func GetPreset(engineName, preset string) *EngineConfig {
	enginePresets, ok := Presets[engineName]
	if !ok {
		return nil
	}
	cfg, ok := enginePresets[preset]
	if !ok {
		return nil
	}
	return &cfg
}

func ListPresets(engineName string) []string {
	enginePresets, ok := Presets[engineName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(enginePresets))
	for name := range enginePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply replaces the engine section with the preset, keeping the seed.
func (c *Config) Apply(engineName, preset string) bool {
	p := GetPreset(engineName, preset)
	if p == nil {
		return false
	}
	seed := c.Engine.Seed
	c.Engine = *p
	c.Engine.Seed = seed
	return true
}
