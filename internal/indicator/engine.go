// Package indicator computes the technical indicator catalogue over a
// price table. Every indicator is a pure function of the table: a value
// series plus a derived ±1 signal series. Rows the math cannot reach yet
// carry NaN values and a -1 signal.
package indicator

import (
	"fmt"
	"math"

	"github.com/shreyssinha/angela/internal/series"
)

// Engine wraps one table for indicator computation. It never mutates
// the table.
type Engine struct {
	table *series.Table
}

// New builds an engine over the given table.
func New(table *series.Table) *Engine { return &Engine{table: table} }

// MissingColumnError reports that an indicator's required input column
// is absent from the table. Other indicators remain computable.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %s is missing", e.Column)
}

func (e *Engine) column(name string) (series.Series, error) {
	col, ok := e.table.Column(name)
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	return col, nil
}

// Result is one computed indicator: the value series and its signal,
// aligned to the table's rows.
type Result struct {
	Name   string
	Values series.Series
	Signal []int
}

// Last returns the most recent defined value and its signal, walking
// back over trailing NaN rows. ok is false when nothing is defined.
func (r Result) Last() (value float64, sig int, ok bool) {
	for i := len(r.Values) - 1; i >= 0; i-- {
		if r.Values.Defined(i) {
			return r.Values[i], r.Signal[i], true
		}
	}
	return math.NaN(), 0, false
}

// The shared signal comparator. Every indicator derives its ±1 signal
// from exactly this: a strict comparison that maps true to 1 and
// everything else, including NaN on either side, to -1.

func signalAbove(values, ref series.Series) []int {
	return compare(values, ref, func(v, r float64) bool { return v > r })
}

func signalBelow(values, ref series.Series) []int {
	return compare(values, ref, func(v, r float64) bool { return v < r })
}

func compare(values, ref series.Series, strict func(v, r float64) bool) []int {
	out := make([]int, len(values))
	for i := range values {
		if strict(values[i], ref[i]) {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}

func constSeries(n int, v float64) series.Series {
	out := make(series.Series, n)
	for i := range out {
		out[i] = v
	}
	return out
}
