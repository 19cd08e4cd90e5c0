package bench

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"shopAlloc/internal/opt"
	"shopAlloc/internal/shopping"
	"shopAlloc/internal/simplex"
)

func simplexVariant(name string, integer bool) Variant {
	return Variant{
		Name:    name,
		Integer: integer,
		Factory: func() opt.Solver {
			s, err := simplex.New(simplex.DefaultConfig())
			if err != nil {
				panic(err)
			}
			return s
		},
	}
}

func TestCalcStats(t *testing.T) {
	s := CalcStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.Equal(t, 8, s.N)
	require.Equal(t, 2.0, s.Min)
	require.Equal(t, 9.0, s.Max)
	require.InDelta(t, 5.0, s.Mean, 1e-12)
	require.InDelta(t, 2.13809, s.Std, 1e-5)

	require.Equal(t, Stats{}, CalcStats(nil))

	one := CalcIntStats([]int{3})
	require.Equal(t, 3.0, one.Mean)
	require.Zero(t, one.Std)
}

func TestRunCaseSameSeeds(t *testing.T) {
	r := Runner{Runs: 4, BaseSeed: 10, Bounds: shopping.DefaultBounds()}
	c := Case{Goods: 6, Requirements: 3}

	ilp, err := r.RunCase(context.Background(), c, simplexVariant("ILP", true))
	require.NoError(t, err)
	lp, err := r.RunCase(context.Background(), c, simplexVariant("LP", false))
	require.NoError(t, err)

	require.Equal(t, 4, ilp.Runs)
	require.Equal(t, ilp.Optimal+ilp.Infeasible+ilp.Unbounded+ilp.Failed, ilp.Runs)
	require.Equal(t, ilp.Optimal, lp.Optimal)
	require.Equal(t, ilp.Infeasible, lp.Infeasible)
	if ilp.Optimal > 0 {
		require.LessOrEqual(t, lp.ObjectiveMean, ilp.ObjectiveMean+1e-6)
		require.GreaterOrEqual(t, ilp.NodesMean, 1.0)
		require.Equal(t, 1.0, lp.NodesMean)
	}
}

func TestRunCaseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := Runner{Runs: 1, BaseSeed: 1, Bounds: shopping.DefaultBounds()}
	_, err := r.RunCase(ctx, Case{Goods: 4, Requirements: 2}, simplexVariant("ILP", true))
	require.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")
	records := []Record{
		{Variant: "ILP", Goods: 10, Requirements: 5, Runs: 2, Optimal: 2, ObjectiveMin: 41, ObjectiveMean: 44.5, NodesMean: 7},
		{Variant: "LP", Goods: 10, Requirements: 5, Runs: 2, Optimal: 2, ObjectiveMin: 40.25, ObjectiveMean: 43.1, NodesMean: 1},
	}
	require.NoError(t, WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	require.Equal(t, "variant", rows[0][0])
	require.Len(t, rows[0], 14)
	require.Equal(t, []string{"ILP", "10", "5", "2"}, rows[1][:4])
	require.Equal(t, "40.250000", rows[2][8])
}

func TestDirOf(t *testing.T) {
	require.Equal(t, "", dirOf("results.csv"))
	require.Equal(t, "out", dirOf("out/results.csv"))
}
