package mapstats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds summary statistics of the finite pixels of a map.
type Stats struct {
	Count    int // finite pixels
	NaNCount int
	Sum      float64
	Mean     float64
	StdDev   float64 // sample standard deviation
	Median   float64
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	Skewness float64
	Kurtosis float64 // excess kurtosis
}

func emptyStats(nan int) Stats {
	return Stats{
		NaNCount: nan,
		Sum:      math.NaN(),
		Mean:     math.NaN(),
		StdDev:   math.NaN(),
		Median:   math.NaN(),
		Min:      math.NaN(),
		MinPos:   -1,
		Max:      math.NaN(),
		MaxPos:   -1,
		Skewness: math.NaN(),
		Kurtosis: math.NaN(),
	}
}

// Calculate computes the statistics of values. Infinite values count as
// non-finite together with NaN.
func Calculate(values []float64) Stats {
	finite := make([]float64, 0, len(values))
	pos := make([]int, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite = append(finite, v)
		pos = append(pos, i)
	}
	if len(finite) == 0 {
		return emptyStats(len(values))
	}

	s := Stats{
		Count:    len(finite),
		NaNCount: len(values) - len(finite),
		Sum:      floats.Sum(finite),
	}
	s.Mean, s.StdDev = stat.MeanStdDev(finite, nil)

	minIdx, maxIdx := floats.MinIdx(finite), floats.MaxIdx(finite)
	s.Min, s.MinPos = finite[minIdx], pos[minIdx]
	s.Max, s.MaxPos = finite[maxIdx], pos[maxIdx]

	if len(finite) > 2 {
		s.Skewness = stat.Skew(finite, nil)
		s.Kurtosis = stat.ExKurtosis(finite, nil)
	} else {
		s.Skewness, s.Kurtosis = math.NaN(), math.NaN()
	}

	sorted := append([]float64(nil), finite...)
	sort.Float64s(sorted)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)

	return s
}

// Mean returns the mean of the finite values, or NaN if there are none.
func Mean(values []float64) float64 {
	return Calculate(values).Mean
}
