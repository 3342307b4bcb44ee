package series

import "math"

// Series is a float64 sequence aligned to a table's row order. NaN marks
// entries that are not (yet) computable.
type Series []float64

// Defined reports whether index i holds a computed value.
func (s Series) Defined(i int) bool {
	return i >= 0 && i < len(s) && !math.IsNaN(s[i])
}

// Diff returns the element-wise difference to the previous row. The
// first entry is NaN.
func (s Series) Diff() Series {
	out := make(Series, len(s))
	for i := range s {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = s[i] - s[i-1]
	}
	return out
}

// Shift moves values forward by n rows, filling the head with NaN.
func (s Series) Shift(n int) Series {
	out := make(Series, len(s))
	for i := range s {
		if i < n {
			out[i] = math.NaN()
			continue
		}
		out[i] = s[i-n]
	}
	return out
}

// PctChange returns the fractional change over period rows. Entries with
// no reference row, or a zero reference value, are NaN.
func (s Series) PctChange(period int) Series {
	out := make(Series, len(s))
	for i := range s {
		if i < period || s[i-period] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (s[i] - s[i-period]) / s[i-period]
	}
	return out
}

// CumSum returns the running total. NaN inputs stay NaN in place and do
// not contribute to the total.
func (s Series) CumSum() Series {
	out := make(Series, len(s))
	total := 0.0
	for i, v := range s {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		total += v
		out[i] = total
	}
	return out
}

// RollingMean returns the mean over a trailing window. Entries are NaN
// until the window is full, and whenever the window contains a NaN.
func (s Series) RollingMean(window int) Series {
	return s.rolling(window, func(win Series) float64 {
		return mean(win)
	})
}

// RollingSum returns the sum over a trailing window with the same NaN
// semantics as RollingMean.
func (s Series) RollingSum(window int) Series {
	return s.rolling(window, func(win Series) float64 {
		total := 0.0
		for _, v := range win {
			total += v
		}
		return total
	})
}

// RollingStd returns the sample standard deviation (n-1 denominator)
// over a trailing window. A window of 1 is always NaN.
func (s Series) RollingStd(window int) Series {
	return s.rolling(window, func(win Series) float64 {
		return SampleStdDev(win)
	})
}

func (s Series) rolling(window int, fn func(Series) float64) Series {
	out := make(Series, len(s))
	for i := range s {
		if window <= 0 || i < window-1 {
			out[i] = math.NaN()
			continue
		}
		win := s[i-window+1 : i+1]
		if hasNaN(win) {
			out[i] = math.NaN()
			continue
		}
		out[i] = fn(win)
	}
	return out
}

// EWMSpan returns the exponentially weighted mean with smoothing
// alpha = 2/(span+1) and no bias adjustment: the first defined input
// seeds the series, so output is defined from the first defined row on.
// NaN inputs produce a NaN entry without disturbing the running state.
func (s Series) EWMSpan(span int) Series {
	out := make(Series, len(s))
	alpha := 2.0 / float64(span+1)
	state := math.NaN()
	for i, v := range s {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		if math.IsNaN(state) {
			state = v
		} else {
			state = alpha*v + (1-alpha)*state
		}
		out[i] = state
	}
	return out
}

// Mean returns the arithmetic mean of the whole series.
func Mean(s Series) float64 {
	if len(s) == 0 || hasNaN(s) {
		return math.NaN()
	}
	return mean(s)
}

// SampleStdDev returns the sample standard deviation (n-1 denominator)
// of the whole series. Fewer than two values is NaN.
func SampleStdDev(s Series) float64 {
	if len(s) < 2 || hasNaN(s) {
		return math.NaN()
	}
	m := mean(s)
	total := 0.0
	for _, v := range s {
		d := v - m
		total += d * d
	}
	return math.Sqrt(total / float64(len(s)-1))
}

func mean(s Series) float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total / float64(len(s))
}

func hasNaN(s Series) bool {
	for _, v := range s {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
