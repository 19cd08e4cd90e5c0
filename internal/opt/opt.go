package opt

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidProblem = errors.New("invalid problem")

// Solver — узкий интерфейс внешнего LP/ILP-решателя.
// Неоптимальный исход возвращается статусом, а не ошибкой.
type Solver interface {
	Solve(ctx context.Context, p *Problem) (Result, error)
}

type Status int

const (
	StatusError Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "error"
	}
}

type Sense int

const (
	GreaterEqual Sense = iota
	LessEqual
)

func (s Sense) String() string {
	switch s {
	case GreaterEqual:
		return ">="
	case LessEqual:
		return "<="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

type Constraint struct {
	Coeffs []float64
	Sense  Sense
	RHS    float64
}

// Problem: minimize Objective·x при Constraints, x >= 0.
// Integer включает требование целочисленности для всех переменных.
type Problem struct {
	Objective   []float64
	Constraints []Constraint
	Integer     bool
}

func (p *Problem) Vars() int { return len(p.Objective) }

func (p *Problem) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: problem is nil", ErrInvalidProblem)
	}
	n := len(p.Objective)
	if n == 0 {
		return fmt.Errorf("%w: no variables", ErrInvalidProblem)
	}
	for i, c := range p.Objective {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: objective[%d] is not finite", ErrInvalidProblem, i)
		}
	}
	for j, con := range p.Constraints {
		if len(con.Coeffs) != n {
			return fmt.Errorf("%w: constraint %d has %d coefficients, want %d", ErrInvalidProblem, j, len(con.Coeffs), n)
		}
		switch con.Sense {
		case GreaterEqual, LessEqual:
		default:
			return fmt.Errorf("%w: constraint %d has unknown sense %v", ErrInvalidProblem, j, con.Sense)
		}
		if math.IsNaN(con.RHS) || math.IsInf(con.RHS, 0) {
			return fmt.Errorf("%w: constraint %d rhs is not finite", ErrInvalidProblem, j)
		}
		for i, a := range con.Coeffs {
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return fmt.Errorf("%w: constraint %d coefficient %d is not finite", ErrInvalidProblem, j, i)
			}
		}
	}
	return nil
}

type Result struct {
	Status    Status
	X         []float64
	Objective float64
	// Nodes — количество решённых LP-подзадач.
	Nodes    int
	Duration time.Duration
	// Err — причина StatusError со стороны решателя.
	Err  error
	Meta map[string]any
}

func (r Result) Optimal() bool { return r.Status == StatusOptimal }
