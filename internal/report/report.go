// Package report проверяет решение на допустимость и печатает сводку.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"shopAlloc/internal/opt"
	"shopAlloc/internal/shopping"
)

var ErrNotOptimal = errors.New("result is not optimal")

type Verification struct {
	// Plan — решение, округлённое до ближайшего целого.
	Plan []int
	// Raw — значения решателя до округления.
	Raw []float64
	// MaxDeviation — максимум |x - round(x)|.
	MaxDeviation float64
	// Suspect — индексы, где отклонение превышает допуск.
	Suspect []int

	Fulfilled  []int
	Targets    []int
	Satisfied  []bool
	Feasible   bool
	TotalGoods int
	TotalCost  int
}

// Verify округляет решение и пересчитывает Q·x, sum(x) и cost·x.
func Verify(inst *shopping.Instance, res opt.Result, tol float64) (Verification, error) {
	if res.Status != opt.StatusOptimal {
		return Verification{}, fmt.Errorf("%w: status %s", ErrNotOptimal, res.Status)
	}
	eval, err := shopping.NewEvaluator(inst)
	if err != nil {
		return Verification{}, err
	}
	if len(res.X) != inst.Goods {
		return Verification{}, fmt.Errorf("solution length must be %d (got %d)", inst.Goods, len(res.X))
	}

	v := Verification{
		Plan: make([]int, inst.Goods),
		Raw:  append([]float64(nil), res.X...),
	}
	for i, x := range res.X {
		r := math.Round(x)
		if r < 0 {
			r = 0
		}
		dev := math.Abs(x - r)
		if dev > v.MaxDeviation {
			v.MaxDeviation = dev
		}
		if dev > tol {
			v.Suspect = append(v.Suspect, i)
		}
		v.Plan[i] = int(r)
	}

	got, err := eval.Fulfilled(v.Plan)
	if err != nil {
		return Verification{}, err
	}
	v.Fulfilled = append([]int(nil), got...)
	v.Targets = append([]int(nil), inst.Targets...)
	v.Satisfied = make([]bool, inst.Requirements)
	v.Feasible = true
	for j := range v.Fulfilled {
		v.Satisfied[j] = v.Fulfilled[j] >= v.Targets[j]
		v.Feasible = v.Feasible && v.Satisfied[j]
	}
	v.TotalGoods = shopping.TotalGoods(v.Plan)
	v.TotalCost = eval.MustTotalCost(v.Plan)
	return v, nil
}

// WriteInstance печатает сгенерированные параметры задачи.
func WriteInstance(w io.Writer, inst *shopping.Instance) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Товаров: %d, потребностей: %d\n", inst.Goods, inst.Requirements)
	fmt.Fprintf(&b, "Стоимость: %v\n", inst.Costs)
	b.WriteString("Матрица покрытия Q:\n")
	for j := 0; j < inst.Requirements; j++ {
		fmt.Fprintf(&b, "  %v\n", inst.Row(j))
	}
	fmt.Fprintf(&b, "Потребности: %v\n", inst.Targets)
	_, err := io.WriteString(w, b.String())
	return err
}

// Write печатает статус решателя и, если решение оптимально, сводку по нему.
// v игнорируется для неоптимального результата.
func Write(w io.Writer, res opt.Result, v *Verification) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Статус: %s\n", res.Status)
	if res.Status != opt.StatusOptimal || v == nil {
		if res.Err != nil {
			fmt.Fprintf(&b, "Причина: %v\n", res.Err)
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Значение целевой функции: %s\n", ftoa(res.Objective))
	fmt.Fprintf(&b, "Решение x: %v\n", v.Plan)
	if len(v.Suspect) > 0 {
		fmt.Fprintf(&b, "  до округления: %v\n", formatRaw(v.Raw))
		fmt.Fprintf(&b, "  отклонение от целых: max=%.3g, индексы %v\n", v.MaxDeviation, v.Suspect)
	}
	fmt.Fprintf(&b, "Выполнено:   %v\n", v.Fulfilled)
	fmt.Fprintf(&b, "Потребности: %v\n", v.Targets)
	for j, ok := range v.Satisfied {
		if !ok {
			fmt.Fprintf(&b, "  потребность %d не покрыта: %d < %d\n", j, v.Fulfilled[j], v.Targets[j])
		}
	}
	fmt.Fprintf(&b, "Всего товаров: %d\n", v.TotalGoods)
	fmt.Fprintf(&b, "Общая стоимость: %d\n", v.TotalCost)
	fmt.Fprintf(&b, "LP-подзадач: %d\n", res.Nodes)

	_, err := io.WriteString(w, b.String())
	return err
}

func ftoa(v float64) string {
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		return fmt.Sprintf("%.0f", r)
	}
	return fmt.Sprintf("%.4f", v)
}

func formatRaw(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = ftoa(x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
