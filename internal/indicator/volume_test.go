package indicator

import (
	"math"
	"testing"
)

func TestOBVAddsAndSubtracts(t *testing.T) {
	closes := []float64{10, 10, 11, 9}
	volumes := []float64{100, 200, 300, 400}
	engine := New(ohlcvTable(t, closes, closes, closes, volumes))

	r, err := engine.OBV()
	if err != nil {
		t.Fatalf("OBV returned error: %v", err)
	}
	want := []float64{100, 300, 600, 200}
	for i, w := range want {
		if math.Abs(r.Values[i]-w) > 1e-9 {
			t.Fatalf("index %d: expected OBV %v, got %v", i, w, r.Values[i])
		}
	}
	wantSig := []int{-1, 1, 1, -1}
	for i, w := range wantSig {
		if r.Signal[i] != w {
			t.Fatalf("index %d: expected signal %d, got %d", i, w, r.Signal[i])
		}
	}
}

func TestOBVMonotonicOnNonDecreasingClose(t *testing.T) {
	closes := []float64{5, 5, 6, 6, 7}
	volumes := []float64{10, 20, 30, 40, 50}
	engine := New(ohlcvTable(t, closes, closes, closes, volumes))

	r, err := engine.OBV()
	if err != nil {
		t.Fatalf("OBV returned error: %v", err)
	}
	for i := 1; i < len(closes); i++ {
		if r.Values[i] < r.Values[i-1] {
			t.Fatalf("index %d: OBV decreased on non-decreasing closes", i)
		}
	}
}

func TestVolumeSMA(t *testing.T) {
	closes := []float64{1, 1, 1}
	volumes := []float64{100, 200, 300}
	engine := New(ohlcvTable(t, closes, closes, closes, volumes))

	r, err := engine.VolumeSMA(2)
	if err != nil {
		t.Fatalf("VolumeSMA returned error: %v", err)
	}
	if r.Values.Defined(0) {
		t.Fatalf("window not full at index 0")
	}
	if math.Abs(r.Values[1]-150) > 1e-9 || math.Abs(r.Values[2]-250) > 1e-9 {
		t.Fatalf("unexpected values: %v", r.Values)
	}
	if r.Signal[1] != 1 || r.Signal[2] != 1 || r.Signal[0] != -1 {
		t.Fatalf("unexpected signals: %v", r.Signal)
	}
}
