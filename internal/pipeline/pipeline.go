// Package pipeline связывает генерацию, кодирование, решение и отчёт
// в один линейный проход.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"shopAlloc/internal/logging"
	"shopAlloc/internal/opt"
	"shopAlloc/internal/report"
	"shopAlloc/internal/shopping"
)

type Pipeline struct {
	Solver      opt.Solver
	Integer     bool
	RoundingTol float64
	Out         io.Writer
	Log         *slog.Logger
}

type Outcome struct {
	Problem      *opt.Problem
	Result       opt.Result
	Verification *report.Verification
}

// Run печатает параметры, решает задачу и печатает отчёт.
// Неоптимальный статус ошибкой не считается: он виден в Outcome.Result.
func (p Pipeline) Run(ctx context.Context, inst *shopping.Instance) (Outcome, error) {
	log := p.Log
	if log == nil {
		log = logging.Discard()
	}
	if p.Solver == nil {
		return Outcome{}, fmt.Errorf("solver is nil")
	}

	if err := report.WriteInstance(p.Out, inst); err != nil {
		return Outcome{}, err
	}

	prob, err := shopping.Encode(inst, p.Integer)
	if err != nil {
		return Outcome{}, fmt.Errorf("encode: %w", err)
	}
	log.InfoContext(ctx, "solve started",
		"goods", inst.Goods,
		"requirements", inst.Requirements,
		"integer", p.Integer,
	)

	res, err := p.Solver.Solve(ctx, prob)
	if err != nil {
		log.ErrorContext(ctx, "solve failed", "error", err)
		return Outcome{Problem: prob, Result: res}, fmt.Errorf("solve: %w", err)
	}
	log.InfoContext(ctx, "solve finished",
		"status", res.Status.String(),
		"objective", res.Objective,
		"nodes", res.Nodes,
		"duration", res.Duration,
		"meta", res.Meta,
	)

	out := Outcome{Problem: prob, Result: res}
	if res.Optimal() {
		v, err := report.Verify(inst, res, p.RoundingTol)
		if err != nil {
			return out, fmt.Errorf("verify: %w", err)
		}
		if len(v.Suspect) > 0 {
			log.WarnContext(ctx, "solution is not integral within tolerance",
				"max_deviation", v.MaxDeviation,
				"indices", v.Suspect,
			)
		}
		if !v.Feasible {
			log.WarnContext(ctx, "rounded solution violates requirements")
		}
		out.Verification = &v
	} else {
		log.WarnContext(ctx, "no optimal solution", "status", res.Status.String(), "reason", res.Err)
	}

	if err := report.Write(p.Out, res, out.Verification); err != nil {
		return out, err
	}
	return out, nil
}
