package series

import (
	"errors"
	"testing"
	"time"
)

func TestFromColumnsNormalizesAliases(t *testing.T) {
	table, err := FromColumns(map[string][]float64{
		"close":     {1, 2},
		"HIGH":      {2, 3},
		"Low":       {0.5, 1.5},
		"vol":       {10, 20},
		"unrelated": {9, 9},
	}, nil)
	if err != nil {
		t.Fatalf("FromColumns returned error: %v", err)
	}

	for _, name := range []string{ColClose, ColHigh, ColLow, ColVolume} {
		if _, ok := table.Column(name); !ok {
			t.Fatalf("expected canonical column %s", name)
		}
	}
	if _, ok := table.Column("unrelated"); ok {
		t.Fatalf("unrecognized column should be dropped")
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
}

func TestFromColumnsSortsByDate(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	table, err := FromColumns(map[string][]float64{
		"close": {30, 10, 20},
	}, []time.Time{d(3), d(1), d(2)})
	if err != nil {
		t.Fatalf("FromColumns returned error: %v", err)
	}

	closes, _ := table.Column(ColClose)
	want := Series{10, 20, 30}
	for i := range want {
		if closes[i] != want[i] {
			t.Fatalf("row %d: expected close %.0f, got %.0f", i, want[i], closes[i])
		}
	}
	dates := table.Dates()
	if !dates[0].Equal(d(1)) || !dates[2].Equal(d(3)) {
		t.Fatalf("dates not sorted ascending: %v", dates)
	}
}

func TestFromColumnsLengthMismatch(t *testing.T) {
	_, err := FromColumns(map[string][]float64{
		"close": {1, 2, 3},
		"high":  {1, 2},
	}, nil)
	var mismatch *LengthMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected LengthMismatchError, got %v", err)
	}
}

func TestFromBarsSorts(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	table := FromBars([]Bar{
		{Date: d(2), Close: 20},
		{Date: d(1), Close: 10},
	})
	closes, _ := table.Column(ColClose)
	if closes[0] != 10 || closes[1] != 20 {
		t.Fatalf("bars not sorted by date: %v", closes)
	}
}
