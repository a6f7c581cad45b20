package analysis

import "math"

// Stats summarizes one metric series.
type Stats struct {
	Count       int
	Min, Max    float64
	Mean, Std   float64
	First, Last float64
}

// Describe computes summary statistics. A nil or empty series yields a
// zero Stats.
func Describe(series []float64) Stats {
	if len(series) == 0 {
		return Stats{}
	}

	st := Stats{
		Count: len(series),
		Min:   series[0],
		Max:   series[0],
		First: series[0],
		Last:  series[len(series)-1],
	}
	for _, v := range series {
		st.Mean += v
		if v < st.Min {
			st.Min = v
		}
		if v > st.Max {
			st.Max = v
		}
	}
	st.Mean /= float64(st.Count)

	var sq float64
	for _, v := range series {
		d := v - st.Mean
		sq += d * d
	}
	st.Std = math.Sqrt(sq / float64(st.Count))
	return st
}
