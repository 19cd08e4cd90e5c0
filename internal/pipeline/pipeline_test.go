package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"shopAlloc/internal/opt"
	"shopAlloc/internal/pipeline"
	"shopAlloc/internal/shopping"
	"shopAlloc/internal/simplex"
)

type stubSolver struct {
	res opt.Result
	err error
}

func (s stubSolver) Solve(context.Context, *opt.Problem) (opt.Result, error) {
	return s.res, s.err
}

func newSimplex(t *testing.T) opt.Solver {
	t.Helper()
	s, err := simplex.New(simplex.DefaultConfig())
	require.NoError(t, err)
	return s
}

func TestRunOptimal(t *testing.T) {
	inst, err := shopping.NewInstance(2, 1, []int{3, 5}, []int{1, 2}, []int{3})
	require.NoError(t, err)

	var out, logs bytes.Buffer
	p := pipeline.Pipeline{
		Solver:      newSimplex(t),
		Integer:     true,
		RoundingTol: 1e-6,
		Out:         &out,
		Log:         slog.New(slog.NewTextHandler(&logs, nil)),
	}
	got, err := p.Run(context.Background(), inst)
	require.NoError(t, err)
	require.True(t, got.Result.Optimal())
	require.NotNil(t, got.Verification)
	require.Equal(t, []int{1, 1}, got.Verification.Plan)
	require.True(t, got.Verification.Feasible)
	require.True(t, got.Problem.Integer)

	require.Contains(t, out.String(), "Стоимость: [3 5]")
	require.Contains(t, out.String(), "Статус: optimal")
	require.Contains(t, out.String(), "Решение x: [1 1]")
	require.Contains(t, logs.String(), "solve finished")
}

func TestRunRelaxation(t *testing.T) {
	inst, err := shopping.NewInstance(2, 1, []int{3, 5}, []int{1, 2}, []int{3})
	require.NoError(t, err)

	var out bytes.Buffer
	p := pipeline.Pipeline{Solver: newSimplex(t), RoundingTol: 1e-6, Out: &out}
	got, err := p.Run(context.Background(), inst)
	require.NoError(t, err)
	require.InDelta(t, 7.5, got.Result.Objective, 1e-6)
	require.Equal(t, []int{1}, got.Verification.Suspect)
	require.Contains(t, out.String(), "до округления")
}

func TestRunInfeasible(t *testing.T) {
	inst, err := shopping.NewInstance(3, 2, []int{1, 1, 1}, make([]int, 6), []int{5, 1})
	require.NoError(t, err)

	var out bytes.Buffer
	p := pipeline.Pipeline{Solver: newSimplex(t), Integer: true, RoundingTol: 1e-6, Out: &out}
	got, err := p.Run(context.Background(), inst)
	require.NoError(t, err)
	require.Equal(t, opt.StatusInfeasible, got.Result.Status)
	require.Nil(t, got.Verification)
	require.Contains(t, out.String(), "Статус: infeasible")
	require.NotContains(t, out.String(), "Решение x")
}

func TestRunZeroTargets(t *testing.T) {
	inst, err := shopping.NewInstance(3, 2, []int{2, 4, 1}, []int{1, 0, 2, 2, 1, 0}, []int{0, 0})
	require.NoError(t, err)

	var out bytes.Buffer
	p := pipeline.Pipeline{Solver: newSimplex(t), Integer: true, RoundingTol: 1e-6, Out: &out}
	got, err := p.Run(context.Background(), inst)
	require.NoError(t, err)
	require.Equal(t, 0.0, got.Result.Objective)
	require.Equal(t, []int{0, 0, 0}, got.Verification.Plan)
}

func TestRunSolverError(t *testing.T) {
	inst, err := shopping.NewInstance(1, 1, []int{1}, []int{1}, []int{1})
	require.NoError(t, err)

	boom := errors.New("boom")
	var out bytes.Buffer
	p := pipeline.Pipeline{Solver: stubSolver{err: boom}, Out: &out}
	_, err = p.Run(context.Background(), inst)
	require.ErrorIs(t, err, boom)
}

func TestRunRejectsNilSolver(t *testing.T) {
	inst, err := shopping.NewInstance(1, 1, []int{1}, []int{1}, []int{1})
	require.NoError(t, err)

	_, err = pipeline.Pipeline{Out: &bytes.Buffer{}}.Run(context.Background(), inst)
	require.Error(t, err)
}
