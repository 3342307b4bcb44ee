package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shreyssinha/angela/internal/series"
)

const (
	defaultBinanceBaseURL   = "https://api.binance.com"
	defaultBinanceStreamURL = "wss://stream.binance.com:9443/stream"
	defaultQuoteMaxAge      = 10 * time.Second
)

// Binance serves daily history from the REST klines endpoint and quotes
// from the ticker price endpoint. When the trade stream is started,
// Quote prefers a fresh streamed price over a REST round trip.
type Binance struct {
	baseURL     string
	streamURL   string
	client      *http.Client
	log         zerolog.Logger
	symbols     []string
	quoteMaxAge time.Duration

	mu   sync.RWMutex
	last map[string]streamPrice
}

type streamPrice struct {
	px float64
	ts time.Time
}

// BinanceOption configures Binance construction parameters.
type BinanceOption func(*Binance)

// WithBaseURL overrides the REST endpoint (tests point this at a local server).
func WithBaseURL(base string) BinanceOption {
	return func(b *Binance) {
		if base != "" {
			b.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithStreamURL overrides the websocket stream endpoint.
func WithStreamURL(stream string) BinanceOption {
	return func(b *Binance) {
		if stream != "" {
			b.streamURL = stream
		}
	}
}

// WithQuoteMaxAge sets how old a streamed price may be before Quote
// falls back to REST.
func WithQuoteMaxAge(d time.Duration) BinanceOption {
	return func(b *Binance) {
		if d > 0 {
			b.quoteMaxAge = d
		}
	}
}

// NewBinance builds a Binance source. symbols is the set the trade
// stream subscribes to when started; REST queries are not limited to it.
func NewBinance(symbols []string, log zerolog.Logger, opts ...BinanceOption) *Binance {
	b := &Binance{
		baseURL:     defaultBinanceBaseURL,
		streamURL:   defaultBinanceStreamURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         log,
		symbols:     symbols,
		quoteMaxAge: defaultQuoteMaxAge,
		last:        make(map[string]streamPrice),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// History fetches daily klines for [start, end].
func (b *Binance) History(ctx context.Context, symbol string, start, end time.Time) ([]series.Bar, error) {
	q := url.Values{}
	q.Set("symbol", strings.ToUpper(symbol))
	q.Set("interval", "1d")
	q.Set("startTime", strconv.FormatInt(start.UnixMilli(), 10))
	q.Set("endTime", strconv.FormatInt(end.UnixMilli(), 10))
	q.Set("limit", "1000")

	body, err := b.get(ctx, "/api/v3/klines?"+q.Encode())
	if err != nil {
		return nil, fetchErr(symbol, OpHistory, err)
	}
	bars, err := parseKlines(body)
	if err != nil {
		return nil, fetchErr(symbol, OpHistory, err)
	}
	if len(bars) == 0 {
		return nil, fetchErr(symbol, OpHistory, fmt.Errorf("no klines returned"))
	}
	return bars, nil
}

// Quote returns the freshest price available: a recent streamed trade
// if the stream is running, otherwise the REST ticker price.
func (b *Binance) Quote(ctx context.Context, symbol string) (float64, error) {
	if px, ok := b.cachedPrice(symbol); ok {
		return px, nil
	}

	q := url.Values{}
	q.Set("symbol", strings.ToUpper(symbol))
	body, err := b.get(ctx, "/api/v3/ticker/price?"+q.Encode())
	if err != nil {
		return 0, fetchErr(symbol, OpQuote, err)
	}
	px, err := parseTickerPrice(body)
	if err != nil {
		return 0, fetchErr(symbol, OpQuote, err)
	}
	return px, nil
}

func (b *Binance) cachedPrice(symbol string) (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	entry, ok := b.last[strings.ToUpper(symbol)]
	if !ok || time.Since(entry.ts) > b.quoteMaxAge {
		return 0, false
	}
	return entry.px, true
}

func (b *Binance) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseKlines decodes the klines payload: an array of arrays where
// index 0 is the open time in ms and indexes 1-5 are OHLCV strings.
func parseKlines(body []byte) ([]series.Bar, error) {
	var rows [][]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode klines: %w", err)
	}
	bars := make([]series.Bar, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("kline row has %d fields", len(row))
		}
		openTime, ok := row[0].(float64)
		if !ok {
			return nil, fmt.Errorf("kline open time is not numeric")
		}
		vals := make([]float64, 5)
		for i := 0; i < 5; i++ {
			s, ok := row[i+1].(string)
			if !ok {
				return nil, fmt.Errorf("kline field %d is not a string", i+1)
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("kline field %d: %w", i+1, err)
			}
			vals[i] = v
		}
		bars = append(bars, series.Bar{
			Date:   time.UnixMilli(int64(openTime)).UTC(),
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}
	return bars, nil
}

func parseTickerPrice(body []byte) (float64, error) {
	var payload struct {
		Price string `json:"price"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("decode ticker: %w", err)
	}
	px, err := strconv.ParseFloat(payload.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ticker price %q: %w", payload.Price, err)
	}
	return px, nil
}
