package indicator

import (
	"math"

	"github.com/shreyssinha/angela/internal/series"
)

// RSI computes the Relative Strength Index over rolling means of gains
// and losses. The first bar has no delta and contributes zero to both
// sides. A zero average loss makes the ratio undefined, so the value is
// NaN rather than a clamped 100. Signal: RSI strictly above 50.
func (e *Engine) RSI(period int) (Result, error) {
	closes, err := e.column(series.ColClose)
	if err != nil {
		return Result{}, err
	}
	deltas := closes.Diff()
	gains := make(series.Series, len(deltas))
	losses := make(series.Series, len(deltas))
	for i, d := range deltas {
		switch {
		case math.IsNaN(d):
			// first bar: no movement either way
		case d > 0:
			gains[i] = d
		case d < 0:
			losses[i] = -d
		}
	}
	avgGain := gains.RollingMean(period)
	avgLoss := losses.RollingMean(period)

	values := make(series.Series, len(closes))
	for i := range values {
		if !avgGain.Defined(i) || !avgLoss.Defined(i) || avgLoss[i] == 0 {
			values[i] = math.NaN()
			continue
		}
		rs := avgGain[i] / avgLoss[i]
		values[i] = 100 - 100/(1+rs)
	}
	return Result{
		Name:   "RSI",
		Values: values,
		Signal: signalAbove(values, constSeries(len(values), 50)),
	}, nil
}

// MFI computes the Money Flow Index from typical price and volume. The
// first bar's flow is neither positive nor negative. A zero negative
// flow sum makes the ratio undefined (NaN). Signal: MFI strictly
// above 50.
func (e *Engine) MFI(period int) (Result, error) {
	highs, err := e.column(series.ColHigh)
	if err != nil {
		return Result{}, err
	}
	lows, err := e.column(series.ColLow)
	if err != nil {
		return Result{}, err
	}
	closes, err := e.column(series.ColClose)
	if err != nil {
		return Result{}, err
	}
	volumes, err := e.column(series.ColVolume)
	if err != nil {
		return Result{}, err
	}

	n := len(closes)
	positive := make(series.Series, n)
	negative := make(series.Series, n)
	prevTypical := math.NaN()
	for i := 0; i < n; i++ {
		typical := (highs[i] + lows[i] + closes[i]) / 3
		flow := typical * volumes[i]
		switch {
		case math.IsNaN(prevTypical):
			// first bar: no prior typical price to compare against
		case typical > prevTypical:
			positive[i] = flow
		case typical < prevTypical:
			negative[i] = flow
		}
		prevTypical = typical
	}
	posSum := positive.RollingSum(period)
	negSum := negative.RollingSum(period)

	values := make(series.Series, n)
	for i := range values {
		if !posSum.Defined(i) || !negSum.Defined(i) || negSum[i] == 0 {
			values[i] = math.NaN()
			continue
		}
		ratio := posSum[i] / negSum[i]
		values[i] = 100 - 100/(1+ratio)
	}
	return Result{
		Name:   "MFI",
		Values: values,
		Signal: signalAbove(values, constSeries(n, 50)),
	}, nil
}

// ROC computes the percent change of close over period bars, scaled to
// percent. Signal: ROC strictly above zero.
func (e *Engine) ROC(period int) (Result, error) {
	closes, err := e.column(series.ColClose)
	if err != nil {
		return Result{}, err
	}
	changes := closes.PctChange(period)
	values := make(series.Series, len(changes))
	for i, v := range changes {
		values[i] = v * 100
	}
	return Result{
		Name:   "ROC",
		Values: values,
		Signal: signalAbove(values, constSeries(len(values), 0)),
	}, nil
}
