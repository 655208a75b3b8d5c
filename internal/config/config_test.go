package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonduan/solow/internal/solow"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "cobb_douglas", cfg.Family)
	assert.Equal(t, "brent", cfg.Solver.Method)
	assert.Positive(t, cfg.Path.Dt)
	assert.Positive(t, cfg.Path.Horizon)

	m, err := cfg.Model()
	require.NoError(t, err)
	kstar, err := m.SteadyState()
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(0.2/0.08, 1/0.67), kstar, 1e-9)
}

func TestLoadKeepsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ces.yaml")
	doc := []byte(`family: ces
params:
  n: 0.03
  s: 0.15
  sigma: 0.95
`)
	require.NoError(t, os.WriteFile(path, doc, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ces", cfg.Family)
	assert.Equal(t, 0.03, cfg.Params["n"])
	assert.Equal(t, 0.02, cfg.Params["g"], "omitted params inherit defaults")
	assert.Equal(t, 0.33, cfg.Params["alpha"])
	assert.Equal(t, "brent", cfg.Solver.Method)
	assert.Equal(t, "rk4", cfg.Path.Stepper)

	m, err := cfg.Model()
	require.NoError(t, err)
	kstar, err := m.SteadyState()
	require.NoError(t, err)
	assert.InDelta(t, 1.82583173106, kstar, 1e-6)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Family = "ces"
	cfg.Params["sigma"] = 0.95
	cfg.Solver.Method = "ridder"
	cfg.Solver.Tolerance = 1e-12
	cfg.Path.K0 = 0.5

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("family: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestModelSurfacesCoreErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Family = "translog"
	_, err := cfg.Model()
	assert.ErrorIs(t, err, solow.ErrUnknownFamily)

	cfg = DefaultConfig()
	cfg.Production = "K^0.5 * ("
	_, err = cfg.Model()
	assert.Error(t, err)
}

func TestModelCustomProduction(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Production = "K^0.33 * (A*L)^0.67"

	m, err := cfg.Model()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, m.Output(1.0), 1e-12)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("ces", "baseline")
	require.NotNil(t, cfg)
	assert.Equal(t, 0.15, cfg.Params["s"])
	assert.Equal(t, 0.95, cfg.Params["sigma"])

	cfg.Params["s"] = 0.99
	again := GetPreset("ces", "baseline")
	assert.Equal(t, 0.15, again.Params["s"], "presets hand out copies")
}

func TestGetPreset_NotFound(t *testing.T) {
	assert.Nil(t, GetPreset("ces", "nonexistent"))
	assert.Nil(t, GetPreset("nonexistent", "baseline"))
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"baseline", "capital_heavy", "high_saving"}, ListPresets("cobb_douglas"))
	assert.Nil(t, ListPresets("nonexistent"))
}

func TestPresetsSolve(t *testing.T) {
	for family, names := range Presets {
		for name := range names {
			cfg := GetPreset(family, name)
			m, err := cfg.Model()
			require.NoError(t, err, "%s/%s", family, name)

			method, err := cfg.Method()
			require.NoError(t, err, "%s/%s", family, name)

			res, err := m.FindSteadyState(cfg.Solver.Lower, cfg.Solver.Upper, method, cfg.Options())
			require.NoError(t, err, "%s/%s", family, name)
			assert.True(t, res.Converged, "%s/%s", family, name)
			assert.Positive(t, res.Root, "%s/%s", family, name)

			if _, err := cfg.Sim(); err != nil {
				t.Errorf("%s/%s: %v", family, name, err)
			}
		}
	}
}
