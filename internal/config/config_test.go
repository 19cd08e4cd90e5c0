package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"shopAlloc/internal/config"
	"shopAlloc/internal/shopping"
	"shopAlloc/internal/simplex"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, 10, cfg.Problem.Goods)
	require.Equal(t, 5, cfg.Problem.Requirements)
	require.Equal(t, int64(1), cfg.Problem.Seed)
	require.True(t, cfg.Problem.Integer)
	require.Equal(t, shopping.DefaultBounds(), cfg.Bounds())
	require.Equal(t, simplex.DefaultConfig(), cfg.Simplex())
	require.Equal(t, "simplex", cfg.Solver.Backend)
	require.Equal(t, "info", cfg.Logging().Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	body := `
problem:
  goods: 20
  requirements: 8
  seed: 99
  integer: false
  bounds:
    cost_max: 3
solver:
  branching: first
log:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 20, cfg.Problem.Goods)
	require.Equal(t, 8, cfg.Problem.Requirements)
	require.Equal(t, int64(99), cfg.Problem.Seed)
	require.False(t, cfg.Problem.Integer)
	require.Equal(t, 3, cfg.Problem.Bounds.CostMax)
	require.Equal(t, 1, cfg.Problem.Bounds.CostMin)
	require.Equal(t, simplex.BranchFirst, cfg.Simplex().Branching)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SHOP_PROBLEM_GOODS", "17")
	t.Setenv("SHOP_LOG_LEVEL", "debug")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, 17, cfg.Problem.Goods)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	body := `
problem:
  bounds:
    cost_min: 5
    cost_max: 2
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	_, err := config.Load(path)
	require.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidateAfterOverride(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	cfg.Problem.Goods = 0
	require.Error(t, cfg.Validate())

	cfg.Problem.Goods = 3
	cfg.Solver.Backend = "cplex"
	require.Error(t, cfg.Validate())
}
