package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jonduan/solow/internal/dynamics"
	"github.com/jonduan/solow/internal/roots"
	"github.com/jonduan/solow/internal/solow"
	"github.com/jonduan/solow/internal/symbolic"
)

const (
	DefaultLower   = 1e-6
	DefaultUpper   = 1e6
	DefaultK0      = 1.0
	DefaultDt      = 0.1
	DefaultHorizon = 200.0
)

type Config struct {
	Family     string             `yaml:"family"`
	Production string             `yaml:"production,omitempty"`
	Params     map[string]float64 `yaml:"params"`
	Solver     SolverConfig       `yaml:"solver"`
	Path       PathConfig         `yaml:"path"`
}

type SolverConfig struct {
	Method        string  `yaml:"method"`
	Lower         float64 `yaml:"lower"`
	Upper         float64 `yaml:"upper"`
	Tolerance     float64 `yaml:"tolerance,omitempty"`
	MaxIterations int     `yaml:"max_iterations,omitempty"`
}

type PathConfig struct {
	K0      float64 `yaml:"k0"`
	Dt      float64 `yaml:"dt"`
	Horizon float64 `yaml:"horizon"`
	Stepper string  `yaml:"stepper"`
}

func DefaultConfig() *Config {
	return &Config{
		Family: "cobb_douglas",
		Params: map[string]float64{
			"g": 0.02, "n": 0.01, "s": 0.2, "delta": 0.05,
			"A0": 1.0, "L0": 1.0, "alpha": 0.33,
		},
		Solver: SolverConfig{
			Method: "brent",
			Lower:  DefaultLower,
			Upper:  DefaultUpper,
		},
		Path: PathConfig{
			K0:      DefaultK0,
			Dt:      DefaultDt,
			Horizon: DefaultHorizon,
			Stepper: "rk4",
		},
	}
}

// Load reads path over DefaultConfig, so fields the file omits keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Model builds the configured model. A non-empty Production expression
// takes precedence over Family.
func (c *Config) Model() (*solow.Model, error) {
	params := solow.Params(c.Params)
	if c.Production != "" {
		expr, err := symbolic.Parse(c.Production)
		if err != nil {
			return nil, err
		}
		return solow.New(expr, params)
	}
	return solow.NewFamily(c.Family, params)
}

func (c *Config) Method() (roots.Method, error) {
	return roots.New(c.Solver.Method)
}

func (c *Config) Options() roots.Options {
	return roots.Options{
		Tolerance:     c.Solver.Tolerance,
		MaxIterations: c.Solver.MaxIterations,
	}
}

func (c *Config) Sim() (dynamics.Config, error) {
	stepper, err := dynamics.NewStepper(c.Path.Stepper)
	if err != nil {
		return dynamics.Config{}, err
	}
	return dynamics.Config{Dt: c.Path.Dt, Horizon: c.Path.Horizon, Stepper: stepper}, nil
}
