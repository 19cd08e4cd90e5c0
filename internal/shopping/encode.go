package shopping

import "shopAlloc/internal/opt"

// Encode строит задачу: minimize cost·x при Q·x >= target, x >= 0.
// integer=false даёт непрерывную релаксацию той же задачи.
func Encode(inst *Instance, integer bool) (*opt.Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	obj := make([]float64, inst.Goods)
	for i, c := range inst.Costs {
		obj[i] = float64(c)
	}

	cons := make([]opt.Constraint, inst.Requirements)
	for j := range cons {
		row := make([]float64, inst.Goods)
		for i, q := range inst.Row(j) {
			row[i] = float64(q)
		}
		cons[j] = opt.Constraint{
			Coeffs: row,
			Sense:  opt.GreaterEqual,
			RHS:    float64(inst.Targets[j]),
		}
	}

	p := &opt.Problem{
		Objective:   obj,
		Constraints: cons,
		Integer:     integer,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
