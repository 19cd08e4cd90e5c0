package shopping

import (
	"errors"
	"fmt"
	"math/rand"
)

type Instance struct {
	Goods        int
	Requirements int
	// Costs length must be Goods.
	Costs []int
	// Coverage length must be Requirements*Goods, row j holds Q[j][*].
	Coverage []int
	// Targets length must be Requirements.
	Targets []int
}

func NewInstance(goods, requirements int, costs, coverage, targets []int) (*Instance, error) {
	inst := &Instance{
		Goods:        goods,
		Requirements: requirements,
		Costs:        costs,
		Coverage:     coverage,
		Targets:      targets,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Goods <= 0 {
		return fmt.Errorf("goods must be > 0 (got %d)", inst.Goods)
	}
	if inst.Requirements <= 0 {
		return fmt.Errorf("requirements must be > 0 (got %d)", inst.Requirements)
	}
	if len(inst.Costs) != inst.Goods {
		return fmt.Errorf("costs length must be goods=%d (got %d)", inst.Goods, len(inst.Costs))
	}
	for i, c := range inst.Costs {
		if c <= 0 {
			return fmt.Errorf("costs[%d] must be > 0 (got %d)", i, c)
		}
	}
	if len(inst.Coverage) != inst.Goods*inst.Requirements {
		return fmt.Errorf("coverage length must be requirements*goods=%d (got %d)", inst.Goods*inst.Requirements, len(inst.Coverage))
	}
	for k, q := range inst.Coverage {
		if q < 0 {
			return fmt.Errorf("coverage[%d][%d] must be >= 0 (got %d)", k/inst.Goods, k%inst.Goods, q)
		}
	}
	if len(inst.Targets) != inst.Requirements {
		return fmt.Errorf("targets length must be requirements=%d (got %d)", inst.Requirements, len(inst.Targets))
	}
	for j, t := range inst.Targets {
		if t < 0 {
			return fmt.Errorf("targets[%d] must be >= 0 (got %d)", j, t)
		}
	}
	return nil
}

// Q возвращает вклад одной единицы товара good в потребность req.
func (inst *Instance) Q(req, good int) int {
	return inst.Coverage[req*inst.Goods+good]
}

// Row возвращает строку матрицы покрытия для потребности req (без копирования).
func (inst *Instance) Row(req int) []int {
	return inst.Coverage[req*inst.Goods : (req+1)*inst.Goods]
}

// WithTargets возвращает копию экземпляра с другими целевыми значениями.
func (inst *Instance) WithTargets(targets []int) (*Instance, error) {
	costs := append([]int(nil), inst.Costs...)
	coverage := append([]int(nil), inst.Coverage...)
	return NewInstance(inst.Goods, inst.Requirements, costs, coverage, append([]int(nil), targets...))
}

// Bounds задаёт диапазоны случайной генерации (границы включительно).
type Bounds struct {
	CostMin     int
	CostMax     int
	CoverageMax int
	TargetMin   int
	TargetMax   int
}

func DefaultBounds() Bounds {
	return Bounds{
		CostMin:     1,
		CostMax:     9,
		CoverageMax: 2,
		TargetMin:   1,
		TargetMax:   99,
	}
}

func (b Bounds) Validate() error {
	if b.CostMin <= 0 || b.CostMax < b.CostMin {
		return fmt.Errorf("invalid cost bounds [%d,%d]", b.CostMin, b.CostMax)
	}
	if b.CoverageMax < 0 {
		return fmt.Errorf("coverage max must be >= 0 (got %d)", b.CoverageMax)
	}
	if b.TargetMin <= 0 || b.TargetMax < b.TargetMin {
		return fmt.Errorf("invalid target bounds [%d,%d]", b.TargetMin, b.TargetMax)
	}
	return nil
}

func RandomInstance(goods, requirements int, b Bounds, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if err := b.Validate(); err != nil {
		panic(err)
	}

	costs := make([]int, goods)
	for i := range costs {
		costs[i] = uniform(b.CostMin, b.CostMax, rng)
	}
	coverage := make([]int, goods*requirements)
	for k := range coverage {
		coverage[k] = uniform(0, b.CoverageMax, rng)
	}
	targets := make([]int, requirements)
	for j := range targets {
		targets[j] = uniform(b.TargetMin, b.TargetMax, rng)
	}

	inst, err := NewInstance(goods, requirements, costs, coverage, targets)
	if err != nil {
		panic(err)
	}
	return inst
}

func uniform(lo, hi int, rng *rand.Rand) int {
	v := lo
	if span := hi - lo + 1; span > 1 {
		v += rng.Intn(span)
	}
	return v
}
