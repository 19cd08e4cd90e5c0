package shopping

import "fmt"

type Evaluator struct {
	inst      *Instance
	fulfilled []int
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst, fulfilled: make([]int, inst.Requirements)}, nil
}

// Fulfilled считает Q·x. Возвращаемый срез переиспользуется следующим вызовом.
func (e *Evaluator) Fulfilled(plan []int) ([]int, error) {
	if e == nil || e.inst == nil {
		return nil, fmt.Errorf("nil evaluator")
	}
	if err := ValidatePlan(plan, e.inst.Goods); err != nil {
		return nil, err
	}

	for j := 0; j < e.inst.Requirements; j++ {
		sum := 0
		for i, q := range e.inst.Row(j) {
			sum += q * plan[i]
		}
		e.fulfilled[j] = sum
	}
	return e.fulfilled, nil
}

func (e *Evaluator) TotalCost(plan []int) (int, error) {
	if e == nil || e.inst == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if err := ValidatePlan(plan, e.inst.Goods); err != nil {
		return 0, err
	}
	total := 0
	for i, c := range e.inst.Costs {
		total += c * plan[i]
	}
	return total, nil
}

func TotalGoods(plan []int) int {
	total := 0
	for _, v := range plan {
		total += v
	}
	return total
}

// Feasible сообщает, покрывает ли план все потребности.
func (e *Evaluator) Feasible(plan []int) (bool, error) {
	got, err := e.Fulfilled(plan)
	if err != nil {
		return false, err
	}
	for j, v := range got {
		if v < e.inst.Targets[j] {
			return false, nil
		}
	}
	return true, nil
}

func (e *Evaluator) MustTotalCost(plan []int) int {
	c, err := e.TotalCost(plan)
	if err != nil {
		panic(err)
	}
	return c
}
