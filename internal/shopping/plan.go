package shopping

import "fmt"

func ValidatePlan(plan []int, n int) error {
	if len(plan) != n {
		return fmt.Errorf("plan length must be %d (got %d)", n, len(plan))
	}
	for i, v := range plan {
		if v < 0 {
			return fmt.Errorf("plan[%d]=%d must be >= 0", i, v)
		}
	}
	return nil
}
