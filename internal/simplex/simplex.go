// Package simplex решает задачи opt.Problem симплекс-методом gonum;
// целочисленные задачи решаются методом ветвей и границ поверх LP-релаксаций.
package simplex

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"shopAlloc/internal/opt"
)

var ErrNodeLimit = errors.New("branch-and-bound node limit reached")

type Solver struct {
	Cfg Config
}

func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// node — подзадача дерева ветвлений: границы переменных.
type node struct {
	lower []float64
	upper []float64
}

func (nd node) child(k int, lo, hi float64) node {
	c := node{
		lower: append([]float64(nil), nd.lower...),
		upper: append([]float64(nil), nd.upper...),
	}
	c.lower[k] = math.Max(c.lower[k], lo)
	c.upper[k] = math.Min(c.upper[k], hi)
	return c
}

func (s *Solver) Solve(ctx context.Context, p *opt.Problem) (opt.Result, error) {
	start := time.Now()

	if err := p.Validate(); err != nil {
		return opt.Result{Status: opt.StatusError, Err: err}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{Status: opt.StatusError, Err: err}, err
	}
	if err := ctx.Err(); err != nil {
		return opt.Result{Status: opt.StatusError, Err: err}, err
	}

	n := p.Vars()
	root := node{lower: make([]float64, n), upper: make([]float64, n)}
	for i := range root.upper {
		root.upper[i] = math.Inf(1)
	}

	meta := map[string]any{
		"backend": "simplex",
		"integer": p.Integer,
	}

	if !p.Integer {
		rel := relax(p, root.lower, root.upper, s.Cfg.Tolerance)
		res := opt.Result{
			Status:   rel.status,
			Nodes:    1,
			Duration: time.Since(start),
			Err:      rel.err,
			Meta:     meta,
		}
		if rel.status == opt.StatusOptimal {
			res.X = rel.x
			res.Objective = rel.obj
		}
		return res, nil
	}

	meta["branching"] = string(s.Cfg.Branching)
	return s.branchAndBound(ctx, p, root, start, meta)
}

func (s *Solver) branchAndBound(ctx context.Context, p *opt.Problem, root node, start time.Time, meta map[string]any) (opt.Result, error) {
	var (
		best    []float64
		bestObj = math.Inf(1)
		nodes   int
	)

	stack := []node{root}
	for len(stack) > 0 {
		// Поддержка отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Status:   opt.StatusError,
				Nodes:    nodes,
				Duration: time.Since(start),
				Err:      err,
				Meta:     meta,
			}, err
		}
		if nodes >= s.Cfg.MaxNodes {
			meta["incumbent"] = bestObj
			return opt.Result{
				Status:   opt.StatusError,
				Nodes:    nodes,
				Duration: time.Since(start),
				Err:      fmt.Errorf("%w (%d nodes)", ErrNodeLimit, nodes),
				Meta:     meta,
			}, nil
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rel := relax(p, nd.lower, nd.upper, s.Cfg.Tolerance)
		nodes++

		switch rel.status {
		case opt.StatusInfeasible:
			continue
		case opt.StatusUnbounded:
			// Неограниченная релаксация при рациональных данных означает
			// неограниченность целочисленной задачи, если она допустима.
			return opt.Result{
				Status:   opt.StatusUnbounded,
				Nodes:    nodes,
				Duration: time.Since(start),
				Meta:     meta,
			}, nil
		case opt.StatusError:
			return opt.Result{
				Status:   opt.StatusError,
				Nodes:    nodes,
				Duration: time.Since(start),
				Err:      rel.err,
				Meta:     meta,
			}, nil
		}

		// Отсечение по границе
		if best != nil && rel.obj >= bestObj-pruneEps(bestObj) {
			continue
		}

		// Округление вверх как дешёвая эвристика для первого рекорда
		if cand, ok := s.roundUp(p, rel.x, nd); ok {
			if obj := floats.Dot(p.Objective, cand); obj < bestObj {
				best, bestObj = cand, obj
			}
		}

		k := s.pick(rel.x)
		if k < 0 {
			snapped := snap(rel.x)
			if obj := floats.Dot(p.Objective, snapped); obj < bestObj {
				best, bestObj = snapped, obj
			}
			continue
		}

		fl := math.Floor(rel.x[k])
		down := nd.child(k, math.Inf(-1), fl)
		up := nd.child(k, fl+1, math.Inf(1))
		// up исследуется первым
		stack = append(stack, down, up)
	}

	if best == nil {
		return opt.Result{
			Status:   opt.StatusInfeasible,
			Nodes:    nodes,
			Duration: time.Since(start),
			Meta:     meta,
		}, nil
	}
	return opt.Result{
		Status:    opt.StatusOptimal,
		X:         best,
		Objective: bestObj,
		Nodes:     nodes,
		Duration:  time.Since(start),
		Meta:      meta,
	}, nil
}

// pick возвращает индекс дробной переменной для ветвления или -1.
func (s *Solver) pick(x []float64) int {
	k := -1
	bestDist := 0.0
	for i, v := range x {
		frac := v - math.Floor(v)
		dist := math.Min(frac, 1-frac)
		if dist <= s.Cfg.IntegralityTol {
			continue
		}
		if s.Cfg.Branching == BranchFirst {
			return i
		}
		if dist > bestDist {
			k, bestDist = i, dist
		}
	}
	return k
}

// roundUp пробует ceil(x) и проверяет его допустимость напрямую.
func (s *Solver) roundUp(p *opt.Problem, x []float64, nd node) ([]float64, bool) {
	cand := make([]float64, len(x))
	for i, v := range x {
		c := integral(math.Ceil(v - s.Cfg.IntegralityTol))
		if c > nd.upper[i] || c < nd.lower[i] {
			return nil, false
		}
		cand[i] = c
	}
	for _, con := range p.Constraints {
		lhs := floats.Dot(con.Coeffs, cand)
		if !satisfied(con.Sense, con.RHS-lhs, s.Cfg.Tolerance) {
			return nil, false
		}
	}
	return cand, true
}

func snap(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = integral(math.Round(v))
	}
	return out
}

// integral убирает отрицательный ноль после Ceil/Round.
func integral(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

func pruneEps(obj float64) float64 {
	return 1e-9 * math.Max(1, math.Abs(obj))
}
