package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"shopAlloc/internal/logging"
	"shopAlloc/internal/opt"
	"shopAlloc/internal/report"
	"shopAlloc/internal/shopping"
)

// Variant — постановка задачи (целочисленная или релаксация) и решатель.
type Variant struct {
	Name    string
	Integer bool
	Factory func() opt.Solver
}

type Case struct {
	Goods        int
	Requirements int
}

type Record struct {
	Variant      string
	Goods        int
	Requirements int
	Runs         int

	Optimal    int
	Infeasible int
	Unbounded  int
	Failed     int

	ObjectiveMin  float64
	ObjectiveMean float64
	ObjectiveStd  float64

	NodesMean float64

	TimeMeanMs float64
	TimeStdMs  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	Bounds        shopping.Bounds
	PerRunTimeout time.Duration // 0 = no timeout
	Log           *slog.Logger
}

// RunCase решает Runs экземпляров с сидами BaseSeed+i. Сиды не зависят
// от варианта, поэтому ILP и LP сравниваются на одних и тех же данных.
func (r Runner) RunCase(ctx context.Context, c Case, v Variant) (Record, error) {
	log := r.Log
	if log == nil {
		log = logging.Discard()
	}

	rec := Record{
		Variant:      v.Name,
		Goods:        c.Goods,
		Requirements: c.Requirements,
		Runs:         r.Runs,
	}
	objectives := make([]float64, 0, r.Runs)
	nodes := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		seed := r.BaseSeed + int64(i)
		inst := shopping.RandomInstance(c.Goods, c.Requirements, r.Bounds, randForSeed(seed))
		prob, err := shopping.Encode(inst, v.Integer)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: encode: %w", i, err)
		}

		solver := v.Factory()

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := solver.Solve(runCtx, prob)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}

		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
		log.DebugContext(ctx, "run finished",
			"variant", v.Name, "seed", seed, "status", res.Status.String(), "nodes", res.Nodes)

		switch res.Status {
		case opt.StatusOptimal:
			rec.Optimal++
		case opt.StatusInfeasible:
			rec.Infeasible++
			continue
		case opt.StatusUnbounded:
			rec.Unbounded++
			continue
		default:
			rec.Failed++
			log.WarnContext(ctx, "solver failed", "variant", v.Name, "seed", seed, "error", res.Err)
			continue
		}

		if v.Integer {
			ver, err := report.Verify(inst, res, 1e-6)
			if err != nil {
				return Record{}, fmt.Errorf("run %d: %w", i, err)
			}
			if !ver.Feasible {
				return Record{}, fmt.Errorf("run %d (seed %d): rounded plan violates requirements", i, seed)
			}
		}
		objectives = append(objectives, res.Objective)
		nodes = append(nodes, res.Nodes)
	}

	objStats := CalcStats(objectives)
	tStats := CalcStats(timesMs)

	rec.ObjectiveMin = objStats.Min
	rec.ObjectiveMean = objStats.Mean
	rec.ObjectiveStd = objStats.Std
	rec.NodesMean = CalcIntStats(nodes).Mean
	rec.TimeMeanMs = tStats.Mean
	rec.TimeStdMs = tStats.Std
	return rec, nil
}

func WriteCSV(path string, records []Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"variant", "goods", "requirements", "runs",
		"optimal", "infeasible", "unbounded", "failed",
		"objective_min", "objective_mean", "objective_std",
		"nodes_mean", "time_mean_ms", "time_std_ms",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Variant,
			itoa(r.Goods),
			itoa(r.Requirements),
			itoa(r.Runs),

			itoa(r.Optimal),
			itoa(r.Infeasible),
			itoa(r.Unbounded),
			itoa(r.Failed),

			ftoa(r.ObjectiveMin),
			ftoa(r.ObjectiveMean),
			ftoa(r.ObjectiveStd),

			ftoa(r.NodesMean),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
