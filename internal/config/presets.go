package config

import "sort"

var Presets = map[string]SceneConfig{
	"dipole": {
		Charges: []ChargeConfig{{X: -120, Y: 0, Q: 1}, {X: 120, Y: 0, Q: -1}},
	},
	"like": {
		Charges: []ChargeConfig{{X: -120, Y: 0, Q: 1}, {X: 120, Y: 0, Q: 1}},
	},
	"quadrupole": {
		Charges: []ChargeConfig{
			{X: -100, Y: -100, Q: 1}, {X: 100, Y: -100, Q: -1},
			{X: 100, Y: 100, Q: 1}, {X: -100, Y: 100, Q: -1},
		},
	},
	"slab": {
		Charges:     []ChargeConfig{{X: -200, Y: 0, Q: 1}, {X: 200, Y: 0, Q: -1}},
		Dielectrics: []RegionConfig{{X: -40, Y: -150, Width: 80, Height: 300, EpsilonR: 10}},
	},
	"shielded": {
		Charges: []ChargeConfig{{X: -180, Y: 0, Q: 1}, {X: 180, Y: 0, Q: -1}},
		Shields: []RegionConfig{{X: -20, Y: -120, Width: 40, Height: 240}},
	},
	"overlap": {
		Charges: []ChargeConfig{{X: -220, Y: 0, Q: 2}},
		Dielectrics: []RegionConfig{
			{X: -100, Y: -100, Width: 160, Height: 200, EpsilonR: 4},
			{X: -20, Y: -60, Width: 160, Height: 120, EpsilonR: 40},
		},
		Shields: []RegionConfig{{X: 160, Y: -40, Width: 60, Height: 80}},
	},
}

func GetPreset(name string) *SceneConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
