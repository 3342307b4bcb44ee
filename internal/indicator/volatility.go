package indicator

import (
	"math"

	"github.com/shreyssinha/angela/internal/series"
)

// BollingerResult carries the three bands and the derived ±1 signal
// (close strictly above the middle band).
type BollingerResult struct {
	Upper  series.Series
	Middle series.Series
	Lower  series.Series
	Signal []int
}

// BollingerBands computes a rolling mean middle band with upper/lower
// bands at ±stdDev sample standard deviations.
func (e *Engine) BollingerBands(period int, stdDev float64) (BollingerResult, error) {
	closes, err := e.column(series.ColClose)
	if err != nil {
		return BollingerResult{}, err
	}
	middle := closes.RollingMean(period)
	std := closes.RollingStd(period)
	upper := make(series.Series, len(closes))
	lower := make(series.Series, len(closes))
	for i := range closes {
		upper[i] = middle[i] + stdDev*std[i]
		lower[i] = middle[i] - stdDev*std[i]
	}
	return BollingerResult{
		Upper:  upper,
		Middle: middle,
		Lower:  lower,
		Signal: signalAbove(closes, middle),
	}, nil
}

// ATR computes the rolling mean of the true range. The first bar has no
// previous close, so its true range is High−Low. Signal: ATR strictly
// below its own 10-bar rolling mean (contracting volatility).
func (e *Engine) ATR(period int) (Result, error) {
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

	n := len(closes)
	tr := make(series.Series, n)
	for i := 0; i < n; i++ {
		rangeHL := highs[i] - lows[i]
		if i == 0 {
			tr[i] = rangeHL
			continue
		}
		prevClose := closes[i-1]
		tr[i] = math.Max(rangeHL, math.Max(math.Abs(highs[i]-prevClose), math.Abs(lows[i]-prevClose)))
	}
	values := tr.RollingMean(period)
	return Result{
		Name:   "ATR",
		Values: values,
		Signal: signalBelow(values, values.RollingMean(atrSignalWindow)),
	}, nil
}

// atrSignalWindow is the reference window for the ATR contraction signal.
const atrSignalWindow = 10
