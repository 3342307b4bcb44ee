package indicator

import (
	"fmt"

	"github.com/shreyssinha/angela/internal/series"
)

// SMA computes the simple moving average of close over period bars.
// Signal: close strictly above the average.
func (e *Engine) SMA(period int) (Result, error) {
	closes, err := e.column(series.ColClose)
	if err != nil {
		return Result{}, err
	}
	values := closes.RollingMean(period)
	return Result{
		Name:   fmt.Sprintf("SMA_%d", period),
		Values: values,
		Signal: signalAbove(closes, values),
	}, nil
}

// EMA computes the exponential moving average of close with smoothing
// span=period and no bias adjustment, so it is defined from the first
// bar. Signal: close strictly above the average.
func (e *Engine) EMA(period int) (Result, error) {
	closes, err := e.column(series.ColClose)
	if err != nil {
		return Result{}, err
	}
	values := closes.EWMSpan(period)
	return Result{
		Name:   fmt.Sprintf("EMA_%d", period),
		Values: values,
		Signal: signalAbove(closes, values),
	}, nil
}

// MACDResult carries the MACD line, its signal line, and the derived
// ±1 signal (line strictly above signal line).
type MACDResult struct {
	Line       series.Series
	SignalLine series.Series
	Signal     []int
}

// MACD computes EMA(fast) − EMA(slow) and an EMA(signalPeriod) of that
// difference as the signal line.
func (e *Engine) MACD(fast, slow, signalPeriod int) (MACDResult, error) {
	closes, err := e.column(series.ColClose)
	if err != nil {
		return MACDResult{}, err
	}
	emaFast := closes.EWMSpan(fast)
	emaSlow := closes.EWMSpan(slow)
	line := make(series.Series, len(closes))
	for i := range line {
		line[i] = emaFast[i] - emaSlow[i]
	}
	signalLine := line.EWMSpan(signalPeriod)
	return MACDResult{
		Line:       line,
		SignalLine: signalLine,
		Signal:     signalAbove(line, signalLine),
	}, nil
}
