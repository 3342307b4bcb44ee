package series

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func assertSeries(t *testing.T, got, want Series) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if math.IsNaN(want[i]) {
			if !math.IsNaN(got[i]) {
				t.Fatalf("index %d: expected NaN, got %v", i, got[i])
			}
			continue
		}
		if !almostEqual(got[i], want[i]) {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestRollingMean(t *testing.T) {
	s := Series{1, 2, 3, 4}
	assertSeries(t, s.RollingMean(2), Series{math.NaN(), 1.5, 2.5, 3.5})
}

func TestRollingMeanNaNWindow(t *testing.T) {
	s := Series{1, math.NaN(), 3, 4}
	assertSeries(t, s.RollingMean(2), Series{math.NaN(), math.NaN(), math.NaN(), 3.5})
}

func TestRollingSum(t *testing.T) {
	s := Series{1, 2, 3}
	assertSeries(t, s.RollingSum(3), Series{math.NaN(), math.NaN(), 6})
}

func TestRollingStdIsSample(t *testing.T) {
	s := Series{1, 2, 3, 4}
	// sample std of {1,2,3} and {2,3,4} is 1
	assertSeries(t, s.RollingStd(3), Series{math.NaN(), math.NaN(), 1, 1})
}

func TestRollingStdWindowOfOne(t *testing.T) {
	s := Series{1, 2}
	assertSeries(t, s.RollingStd(1), Series{math.NaN(), math.NaN()})
}

func TestEWMSpanDefinedFromFirstRow(t *testing.T) {
	s := Series{2, 4, 8}
	// span=3 means alpha=0.5
	assertSeries(t, s.EWMSpan(3), Series{2, 3, 5.5})
}

func TestEWMSpanSkipsNaNWithoutResetting(t *testing.T) {
	s := Series{2, math.NaN(), 4}
	assertSeries(t, s.EWMSpan(3), Series{2, math.NaN(), 3})
}

func TestDiffShiftPctChange(t *testing.T) {
	s := Series{10, 11, 13}
	assertSeries(t, s.Diff(), Series{math.NaN(), 1, 2})
	assertSeries(t, s.Shift(1), Series{math.NaN(), 10, 11})
	assertSeries(t, s.PctChange(2), Series{math.NaN(), math.NaN(), 0.3})
}

func TestPctChangeZeroReference(t *testing.T) {
	s := Series{0, 5}
	out := s.PctChange(1)
	if !math.IsNaN(out[1]) {
		t.Fatalf("expected NaN for zero reference, got %v", out[1])
	}
}

func TestCumSumSkipsNaN(t *testing.T) {
	s := Series{1, math.NaN(), 2}
	assertSeries(t, s.CumSum(), Series{1, math.NaN(), 3})
}

func TestMeanAndSampleStdDev(t *testing.T) {
	s := Series{0.9, 1.0, 1.1}
	if !almostEqual(Mean(s), 1.0) {
		t.Fatalf("expected mean 1.0, got %v", Mean(s))
	}
	if !almostEqual(SampleStdDev(s), 0.1) {
		t.Fatalf("expected sample stddev 0.1, got %v", SampleStdDev(s))
	}
	if !math.IsNaN(SampleStdDev(Series{1})) {
		t.Fatalf("expected NaN stddev for a single value")
	}
}
