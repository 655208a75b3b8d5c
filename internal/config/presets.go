package config

import "sort"

var Presets = map[string]map[string]*Config{
	"cobb_douglas": {
		"baseline": {
			Family: "cobb_douglas",
			Params: map[string]float64{
				"g": 0.02, "n": 0.01, "s": 0.2, "delta": 0.05,
				"A0": 1.0, "L0": 1.0, "alpha": 0.33,
			},
			Solver: SolverConfig{Method: "brent", Lower: 1e-6, Upper: 1e6},
			Path:   PathConfig{K0: 1.0, Dt: 0.1, Horizon: 200.0, Stepper: "rk4"},
		},
		"high_saving": {
			Family: "cobb_douglas",
			Params: map[string]float64{
				"g": 0.02, "n": 0.01, "s": 0.35, "delta": 0.05,
				"A0": 1.0, "L0": 1.0, "alpha": 0.33,
			},
			Solver: SolverConfig{Method: "brent", Lower: 1e-6, Upper: 1e6},
			Path:   PathConfig{K0: 1.0, Dt: 0.1, Horizon: 200.0, Stepper: "rk4"},
		},
		"capital_heavy": {
			Family: "cobb_douglas",
			Params: map[string]float64{
				"g": 0.02, "n": 0.01, "s": 0.2, "delta": 0.05,
				"A0": 1.0, "L0": 1.0, "alpha": 0.6,
			},
			Solver: SolverConfig{Method: "brent", Lower: 1e-6, Upper: 1e6},
			Path:   PathConfig{K0: 1.0, Dt: 0.1, Horizon: 400.0, Stepper: "rk4"},
		},
	},
	"ces": {
		"baseline": {
			Family: "ces",
			Params: map[string]float64{
				"g": 0.02, "n": 0.03, "s": 0.15, "delta": 0.05,
				"A0": 1.0, "L0": 1.0, "alpha": 0.33, "sigma": 0.95,
			},
			Solver: SolverConfig{Method: "brent", Lower: 1e-6, Upper: 1e6},
			Path:   PathConfig{K0: 1.0, Dt: 0.1, Horizon: 200.0, Stepper: "rk4"},
		},
		"low_substitution": {
			Family: "ces",
			Params: map[string]float64{
				"g": 0.02, "n": 0.03, "s": 0.15, "delta": 0.05,
				"A0": 1.0, "L0": 1.0, "alpha": 0.33, "sigma": 0.5,
			},
			Solver: SolverConfig{Method: "brent", Lower: 1e-6, Upper: 1e6},
			Path:   PathConfig{K0: 1.0, Dt: 0.1, Horizon: 200.0, Stepper: "rk4"},
		},
		"high_substitution": {
			Family: "ces",
			Params: map[string]float64{
				"g": 0.02, "n": 0.03, "s": 0.15, "delta": 0.05,
				"A0": 1.0, "L0": 1.0, "alpha": 0.33, "sigma": 1.5,
			},
			Solver: SolverConfig{Method: "brent", Lower: 1e-6, Upper: 1e6},
			Path:   PathConfig{K0: 1.0, Dt: 0.1, Horizon: 200.0, Stepper: "rk4"},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil when the family
// or preset does not exist. Callers may mutate the copy freely.
func GetPreset(family, name string) *Config {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	cfg, ok := familyPresets[name]
	if !ok {
		return nil
	}
	out := *cfg
	out.Params = make(map[string]float64, len(cfg.Params))
	for k, v := range cfg.Params {
		out.Params[k] = v
	}
	return &out
}

func ListPresets(family string) []string {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(familyPresets))
	for name := range familyPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
