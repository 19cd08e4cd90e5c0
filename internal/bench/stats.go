package bench

import "math"

type Stats struct {
	N    int
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

func CalcIntStats(values []int) Stats {
	fs := make([]float64, len(values))
	for i, v := range values {
		fs[i] = float64(v)
	}
	return CalcStats(fs)
}

// CalcStats считает выборочное стандартное отклонение (n-1).
func CalcStats(values []float64) Stats {
	s := Stats{N: len(values)}
	if s.N == 0 {
		return s
	}

	lo, hi := values[0], values[0]
	sum := 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
	}
	mean := sum / float64(s.N)

	variance := 0.0
	if s.N >= 2 {
		for _, v := range values {
			d := v - mean
			variance += d * d
		}
		variance /= float64(s.N - 1)
	}

	s.Min = lo
	s.Max = hi
	s.Mean = mean
	s.Std = math.Sqrt(variance)
	return s
}
