package indicator

import (
	"fmt"

	"github.com/shreyssinha/angela/internal/series"
)

// OBV computes on-balance volume: a running total that adds volume when
// close is flat or rising and subtracts it when close falls. The first
// bar adds. Signal: OBV strictly above its previous value.
func (e *Engine) OBV() (Result, error) {
	closes, err := e.column(series.ColClose)
	if err != nil {
		return Result{}, err
	}
	volumes, err := e.column(series.ColVolume)
	if err != nil {
		return Result{}, err
	}

	deltas := closes.Diff()
	signed := make(series.Series, len(closes))
	for i := range closes {
		if deltas.Defined(i) && deltas[i] < 0 {
			signed[i] = -volumes[i]
			continue
		}
		signed[i] = volumes[i]
	}
	values := signed.CumSum()
	return Result{
		Name:   "OBV",
		Values: values,
		Signal: signalAbove(values, values.Shift(1)),
	}, nil
}

// VolumeSMA computes the rolling mean of volume. Signal: volume
// strictly above its average.
func (e *Engine) VolumeSMA(period int) (Result, error) {
	volumes, err := e.column(series.ColVolume)
	if err != nil {
		return Result{}, err
	}
	values := volumes.RollingMean(period)
	return Result{
		Name:   fmt.Sprintf("Volume_SMA_%d", period),
		Values: values,
		Signal: signalAbove(volumes, values),
	}, nil
}
