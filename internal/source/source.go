// Package source hosts the market data collaborators the monitor and
// the indicator CLI pull prices from. A source answers two distinct
// queries: a date-range history of daily bars and a single current
// price. Every provider failure is wrapped in a FetchError.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/shreyssinha/angela/internal/metrics"
	"github.com/shreyssinha/angela/internal/series"
)

const (
	// ProviderStub emits deterministic synthetic prices (tests/offline work).
	ProviderStub = "stub"
	// ProviderYahoo queries Yahoo Finance daily charts and quotes.
	ProviderYahoo = "yahoo"
	// ProviderBinance queries Binance REST klines and ticker prices,
	// optionally fronted by a live trade stream.
	ProviderBinance = "binance"
)

// PriceSource is the external price collaborator. History is a range
// query for daily bars; Quote is a point query for the best available
// current price.
type PriceSource interface {
	History(ctx context.Context, symbol string, start, end time.Time) ([]series.Bar, error)
	Quote(ctx context.Context, symbol string) (float64, error)
}

// Fetch operation names used in FetchError and metrics labels.
const (
	OpHistory = "history"
	OpQuote   = "quote"
)

// FetchError wraps any provider failure so callers can classify fetch
// problems without knowing the provider.
type FetchError struct {
	Symbol string
	Op     string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s %s: %v", e.Op, e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func fetchErr(symbol, op string, err error) error {
	metrics.FetchErrors.WithLabelValues(op).Inc()
	return &FetchError{Symbol: symbol, Op: op, Err: err}
}
