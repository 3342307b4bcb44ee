package source

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"github.com/shreyssinha/angela/internal/series"
)

// Stub is a deterministic synthetic price source for tests and offline
// runs. A symbol's price path is derived from its name alone, so the
// same query always yields the same answer.
type Stub struct{}

// NewStub returns a stub source.
func NewStub() *Stub { return &Stub{} }

// History generates one daily bar per calendar day in [start, end).
func (s *Stub) History(ctx context.Context, symbol string, start, end time.Time) ([]series.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, fetchErr(symbol, OpHistory, err)
	}
	base := stubBase(symbol)
	var bars []series.Bar
	day := start.Truncate(24 * time.Hour)
	for day.Before(end) {
		px := stubPrice(base, day)
		bars = append(bars, series.Bar{
			Date:   day,
			Open:   px * 0.995,
			High:   px * 1.01,
			Low:    px * 0.99,
			Close:  px,
			Volume: 1000 + 50*math.Abs(math.Sin(float64(day.Unix()))),
		})
		day = day.Add(24 * time.Hour)
	}
	return bars, nil
}

// Quote returns the synthetic price for the current day.
func (s *Stub) Quote(ctx context.Context, symbol string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fetchErr(symbol, OpQuote, err)
	}
	return stubPrice(stubBase(symbol), time.Now().Truncate(24*time.Hour)), nil
}

func stubBase(symbol string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return 10 + float64(h.Sum32()%9000)/100
}

func stubPrice(base float64, day time.Time) float64 {
	wobble := math.Sin(float64(day.Unix()) / 86400)
	return base * (1 + 0.02*wobble)
}
