package simplex

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"shopAlloc/internal/opt"
)

// relaxation — результат одной LP-подзадачи.
type relaxation struct {
	status opt.Status
	x      []float64
	obj    float64
	err    error
}

// relax решает LP-релаксацию p при lower <= x <= upper.
//
// Стандартная форма для lp.Simplex строится так:
//   - переменные сдвигаются на нижнюю границу (y = x - lower >= 0);
//   - переменные с lower == upper фиксируются и в LP не попадают;
//   - столбцы без ненулевых коэффициентов решаются аналитически;
//   - строки без свободных переменных проверяются напрямую;
//   - каждая оставшаяся строка получает свою балансовую переменную,
//     каждая конечная верхняя граница даёт строку y + t = upper - lower.
//
// Так в матрице не бывает нулевых строк и столбцов (ErrZeroRow/ErrZeroColumn),
// а строк всегда меньше, чем столбцов.
func relax(p *opt.Problem, lower, upper []float64, tol float64) relaxation {
	n := p.Vars()
	x := make([]float64, n)
	copy(x, lower)

	for i := 0; i < n; i++ {
		if upper[i] < lower[i] {
			return relaxation{status: opt.StatusInfeasible}
		}
	}

	// Свободные столбцы с хотя бы одним ненулевым коэффициентом.
	var free []int
	unboundedRay := false
	for i := 0; i < n; i++ {
		if upper[i] == lower[i] {
			continue
		}
		if columnUsed(p, i) {
			free = append(free, i)
			continue
		}
		switch c := p.Objective[i]; {
		case c >= 0:
			// x = lower
		case !math.IsInf(upper[i], 1):
			x[i] = upper[i]
		default:
			unboundedRay = true
		}
	}

	// Правые части с учётом сдвига на нижние границы.
	var rows []int
	rhs := make([]float64, len(p.Constraints))
	for j, con := range p.Constraints {
		r := con.RHS
		for i, a := range con.Coeffs {
			if a != 0 {
				r -= a * x[i]
			}
		}
		rhs[j] = r

		if rowUsed(con.Coeffs, free) {
			rows = append(rows, j)
			continue
		}
		if !satisfied(con.Sense, r, tol) {
			return relaxation{status: opt.StatusInfeasible}
		}
	}

	if len(rows) == 0 {
		if unboundedRay {
			return relaxation{status: opt.StatusUnbounded}
		}
		return relaxation{status: opt.StatusOptimal, x: x, obj: floats.Dot(p.Objective, x)}
	}

	var bounded []int
	for _, i := range free {
		if !math.IsInf(upper[i], 1) {
			bounded = append(bounded, i)
		}
	}

	nf := len(free)
	m := len(rows) + len(bounded)
	cols := nf + m

	c := make([]float64, cols)
	for k, i := range free {
		c[k] = p.Objective[i]
	}
	A := mat.NewDense(m, cols, nil)
	b := make([]float64, m)

	for r, j := range rows {
		con := p.Constraints[j]
		for k, i := range free {
			A.Set(r, k, con.Coeffs[i])
		}
		if con.Sense == opt.GreaterEqual {
			A.Set(r, nf+r, -1)
		} else {
			A.Set(r, nf+r, 1)
		}
		b[r] = rhs[j]
	}

	pos := make(map[int]int, nf)
	for k, i := range free {
		pos[i] = k
	}
	for t, i := range bounded {
		r := len(rows) + t
		A.Set(r, pos[i], 1)
		A.Set(r, nf+r, 1)
		b[r] = upper[i] - lower[i]
	}

	_, y, err := lp.Simplex(c, A, b, tol, nil)
	switch {
	case err == nil:
	case errors.Is(err, lp.ErrInfeasible):
		return relaxation{status: opt.StatusInfeasible}
	case errors.Is(err, lp.ErrUnbounded):
		return relaxation{status: opt.StatusUnbounded}
	default:
		return relaxation{status: opt.StatusError, err: err}
	}
	if unboundedRay {
		return relaxation{status: opt.StatusUnbounded}
	}

	for k, i := range free {
		x[i] = lower[i] + math.Max(y[k], 0)
	}
	return relaxation{status: opt.StatusOptimal, x: x, obj: floats.Dot(p.Objective, x)}
}

func columnUsed(p *opt.Problem, i int) bool {
	for _, con := range p.Constraints {
		if con.Coeffs[i] != 0 {
			return true
		}
	}
	return false
}

func rowUsed(coeffs []float64, free []int) bool {
	for _, i := range free {
		if coeffs[i] != 0 {
			return true
		}
	}
	return false
}

func satisfied(s opt.Sense, rhs, tol float64) bool {
	eps := math.Max(tol, 1e-9)
	if s == opt.GreaterEqual {
		return rhs <= eps
	}
	return rhs >= -eps
}
