package simplex

import "fmt"

// Branching определяет выбор переменной для ветвления.
type Branching string

const (
	BranchMostInfeasible Branching = "most-infeasible"
	BranchFirst          Branching = "first"
)

type Config struct {
	// Tolerance передаётся в lp.Simplex.
	Tolerance float64

	IntegralityTol float64

	MaxNodes int

	Branching Branching
}

func DefaultConfig() Config {
	return Config{
		Tolerance:      1e-10,
		IntegralityTol: 1e-6,
		MaxNodes:       200000,
		Branching:      BranchMostInfeasible,
	}
}

func (c Config) Validate() error {
	if c.Tolerance < 0 {
		return fmt.Errorf(
			"Tolerance должно быть >= 0 (получено %g)",
			c.Tolerance,
		)
	}
	if c.IntegralityTol <= 0 || c.IntegralityTol >= 0.5 {
		return fmt.Errorf(
			"IntegralityTol должно лежать в интервале (0,0.5) (получено %g)",
			c.IntegralityTol,
		)
	}
	if c.MaxNodes <= 0 {
		return fmt.Errorf(
			"MaxNodes должно быть > 0 (получено %d)",
			c.MaxNodes,
		)
	}
	switch c.Branching {
	case BranchMostInfeasible, BranchFirst:
		// ok
	default:
		return fmt.Errorf(
			"неизвестное правило ветвления %q",
			c.Branching,
		)
	}
	return nil
}
