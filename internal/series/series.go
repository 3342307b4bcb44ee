// Package series provides OHLCV price tables and the rolling math the
// indicator catalogue is built from. math.NaN() is the single marker for
// "not computable" values throughout.
package series

import (
	"sort"
	"strings"
	"time"
)

// Canonical column names after normalization.
const (
	ColClose  = "Close"
	ColHigh   = "High"
	ColLow    = "Low"
	ColVolume = "Volume"
)

// columnAliases maps lowercased incoming column names to canonical ones.
// Consulted once at table construction, never inside computations.
var columnAliases = map[string]string{
	"close":     ColClose,
	"high":      ColHigh,
	"low":       ColLow,
	"volume":    ColVolume,
	"vol":       ColVolume,
	"adj close": ColClose,
}

// Bar is a single OHLCV observation for one trading period.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Table is an ordered set of price columns sharing one date index.
// Rows are sorted ascending by date at construction; dates are assumed
// unique per trading period.
type Table struct {
	cols  map[string]Series
	dates []time.Time
}

// FromBars builds a table from a bar slice. The input is not mutated.
func FromBars(bars []Bar) *Table {
	sorted := make([]Bar, len(bars))
	copy(sorted, bars)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	n := len(sorted)
	closes := make(Series, n)
	highs := make(Series, n)
	lows := make(Series, n)
	volumes := make(Series, n)
	dates := make([]time.Time, n)
	for i, b := range sorted {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
		volumes[i] = b.Volume
		dates[i] = b.Date
	}
	return &Table{
		cols: map[string]Series{
			ColClose:  closes,
			ColHigh:   highs,
			ColLow:    lows,
			ColVolume: volumes,
		},
		dates: dates,
	}
}

// FromColumns builds a table from named columns, normalizing names
// case-insensitively through the alias map. Unrecognized columns are
// dropped. When dates are provided, every column is reordered by
// ascending date. Column lengths must agree with each other (and with
// dates when present).
func FromColumns(cols map[string][]float64, dates []time.Time) (*Table, error) {
	table := &Table{cols: make(map[string]Series, len(cols))}

	n := -1
	for name, values := range cols {
		canonical, ok := canonicalName(name)
		if !ok {
			continue
		}
		if n >= 0 && len(values) != n {
			return nil, &LengthMismatchError{Column: name, Got: len(values), Want: n}
		}
		n = len(values)
		copied := make(Series, len(values))
		copy(copied, values)
		table.cols[canonical] = copied
	}
	if n < 0 {
		n = 0
	}

	if len(dates) > 0 {
		if len(dates) != n {
			return nil, &LengthMismatchError{Column: "Date", Got: len(dates), Want: n}
		}
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(i, j int) bool { return dates[order[i]].Before(dates[order[j]]) })

		table.dates = make([]time.Time, n)
		for i, src := range order {
			table.dates[i] = dates[src]
		}
		for name, col := range table.cols {
			reordered := make(Series, n)
			for i, src := range order {
				reordered[i] = col[src]
			}
			table.cols[name] = reordered
		}
	}
	return table, nil
}

func canonicalName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := columnAliases[strings.ToLower(trimmed)]; ok {
		return canonical, true
	}
	switch trimmed {
	case ColClose, ColHigh, ColLow, ColVolume:
		return trimmed, true
	}
	return "", false
}

// Len returns the number of rows.
func (t *Table) Len() int {
	for _, col := range t.cols {
		return len(col)
	}
	return len(t.dates)
}

// Column returns the named canonical column, if present.
func (t *Table) Column(name string) (Series, bool) {
	col, ok := t.cols[name]
	return col, ok
}

// Dates returns the date index, or nil when the table has none.
func (t *Table) Dates() []time.Time { return t.dates }

// LengthMismatchError reports ragged input columns at construction.
type LengthMismatchError struct {
	Column string
	Got    int
	Want   int
}

func (e *LengthMismatchError) Error() string {
	return "column " + e.Column + " length mismatch"
}
