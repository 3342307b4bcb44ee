// Package monitor tracks price-ratio divergence for configured asset
// pairs against a historical baseline and emits alerts when the
// standardized deviation crosses the threshold.
package monitor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/shreyssinha/angela/internal/metrics"
	"github.com/shreyssinha/angela/internal/series"
	"github.com/shreyssinha/angela/internal/source"
)

// Baseline captures the historical close-ratio statistics for one pair,
// computed once at startup (and again only under an explicit
// rebaseline policy).
type Baseline struct {
	Mean   float64
	StdDev float64
}

// Action is the suggested trade direction of an alert.
type Action string

const (
	// ActionLong: the ratio is cheap against history (z < 0).
	ActionLong Action = "LONG"
	// ActionShort: the ratio is rich against history (z > 0).
	ActionShort Action = "SHORT"
)

// Alert is one divergence observation above the threshold. Alerts are
// transient values; the monitor logs them but never stores them.
type Alert struct {
	Pair   string
	ZScore float64
	Action Action
	Ts     time.Time
}

// Config bundles the monitor's tunables. Zero values take defaults.
type Config struct {
	Threshold       float64       // |z| must strictly exceed this; default 2.0
	Interval        time.Duration // pause between check passes; default 60s
	Backoff         time.Duration // pause after a failed pass; default 10s
	Lookback        time.Duration // baseline history window; default 30 days
	RebaselineEvery int           // recompute baselines every N passes; 0 = never
}

func (c Config) withDefaults() Config {
	if c.Threshold == 0 {
		c.Threshold = 2.0
	}
	if c.Interval <= 0 {
		c.Interval = 60 * time.Second
	}
	if c.Backoff <= 0 {
		c.Backoff = 10 * time.Second
	}
	if c.Lookback <= 0 {
		c.Lookback = 30 * 24 * time.Hour
	}
	return c
}

// Monitor owns the baseline map for its lifetime and drives the check
// loop. A single goroutine runs the loop; the baselines are written at
// Init and read-only during checks.
type Monitor struct {
	pairs     []Pair
	src       source.PriceSource
	cfg       Config
	log       zerolog.Logger
	baselines map[string]Baseline
}

// New builds a monitor over the given pairs and price source.
func New(pairs []Pair, src source.PriceSource, cfg Config, log zerolog.Logger) *Monitor {
	return &Monitor{
		pairs: pairs,
		src:   src,
		cfg:   cfg.withDefaults(),
		log:   log,
	}
}

// Baseline returns the stored statistics for a pair label.
func (m *Monitor) Baseline(label string) (Baseline, bool) {
	b, ok := m.baselines[label]
	return b, ok
}

// Init fetches the lookback history for every pair and stores the mean
// and sample standard deviation of the close-price ratio over the
// overlapping dates. Any fetch failure aborts startup.
func (m *Monitor) Init(ctx context.Context) error {
	end := time.Now()
	start := end.Add(-m.cfg.Lookback)

	baselines := make(map[string]Baseline, len(m.pairs))
	for _, pair := range m.pairs {
		bars1, err := m.src.History(ctx, pair.Asset1, start, end)
		if err != nil {
			return fmt.Errorf("baseline %s: %w", pair.Label(), err)
		}
		bars2, err := m.src.History(ctx, pair.Asset2, start, end)
		if err != nil {
			return fmt.Errorf("baseline %s: %w", pair.Label(), err)
		}
		ratios := closeRatios(bars1, bars2)
		if len(ratios) < 2 {
			return fmt.Errorf("baseline %s: only %d overlapping sessions", pair.Label(), len(ratios))
		}
		baselines[pair.Label()] = Baseline{
			Mean:   series.Mean(ratios),
			StdDev: series.SampleStdDev(ratios),
		}
		m.log.Debug().Str("pair", pair.Label()).
			Float64("mean", baselines[pair.Label()].Mean).
			Float64("stddev", baselines[pair.Label()].StdDev).
			Int("sessions", len(ratios)).
			Msg("baseline computed")
	}
	m.baselines = baselines
	return nil
}

// closeRatios pairs up bars by calendar date and returns close1/close2
// for each overlapping session. Sessions with a zero close2 are dropped
// rather than producing a misleading ratio.
func closeRatios(bars1, bars2 []series.Bar) series.Series {
	byDate := make(map[string]float64, len(bars2))
	for _, b := range bars2 {
		byDate[b.Date.Format("2006-01-02")] = b.Close
	}
	var ratios series.Series
	for _, b := range bars1 {
		close2, ok := byDate[b.Date.Format("2006-01-02")]
		if !ok || close2 == 0 {
			continue
		}
		ratios = append(ratios, b.Close/close2)
	}
	return ratios
}

// Check runs one pass over all pairs: two point quotes each, a z-score
// against the baseline, and an alert when |z| strictly exceeds the
// threshold. A zero baseline stddev makes the z-score undefined and can
// never alert. The first fetch failure aborts the pass.
func (m *Monitor) Check(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	for _, pair := range m.pairs {
		base, ok := m.baselines[pair.Label()]
		if !ok {
			return nil, fmt.Errorf("no baseline for %s (Init not run?)", pair.Label())
		}
		px1, err := m.src.Quote(ctx, pair.Asset1)
		if err != nil {
			return nil, err
		}
		px2, err := m.src.Quote(ctx, pair.Asset2)
		if err != nil {
			return nil, err
		}

		z := zscore(px1, px2, base)
		if math.IsNaN(z) {
			m.log.Debug().Str("pair", pair.Label()).Msg("z-score undefined, skipping")
			continue
		}
		metrics.PairZScore.WithLabelValues(pair.Label()).Set(z)
		if math.Abs(z) > m.cfg.Threshold {
			action := ActionLong
			if z > 0 {
				action = ActionShort
			}
			alerts = append(alerts, Alert{Pair: pair.Label(), ZScore: z, Action: action, Ts: time.Now()})
		}
	}
	return alerts, nil
}

// zscore standardizes the current ratio against the baseline. A zero
// denominator anywhere yields NaN, never a fault.
func zscore(px1, px2 float64, base Baseline) float64 {
	if px2 == 0 || base.StdDev == 0 {
		return math.NaN()
	}
	return (px1/px2 - base.Mean) / base.StdDev
}

// Run initializes baselines and loops until the context is canceled:
// check, log alerts, sleep the interval. A failed pass is logged and
// retried after the shorter backoff instead of terminating the loop.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.Init(ctx); err != nil {
		return err
	}
	m.log.Info().
		Int("pairs", len(m.pairs)).
		Float64("threshold", m.cfg.Threshold).
		Dur("interval", m.cfg.Interval).
		Msg("pairs monitoring started")

	passes := 0
	for {
		alerts, err := m.Check(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			metrics.TickErrors.Inc()
			m.log.Warn().Err(err).Dur("backoff", m.cfg.Backoff).Msg("check pass failed, backing off")
			if !sleep(ctx, m.cfg.Backoff) {
				return ctx.Err()
			}
			continue
		}
		metrics.TicksTotal.Inc()
		passes++

		for _, alert := range alerts {
			metrics.AlertsTotal.WithLabelValues(alert.Pair, string(alert.Action)).Inc()
			m.log.Info().
				Str("pair", alert.Pair).
				Str("zscore", fmt.Sprintf("%.2f", alert.ZScore)).
				Str("action", string(alert.Action)).
				Time("ts", alert.Ts).
				Msg("divergence alert")
		}

		if m.cfg.RebaselineEvery > 0 && passes%m.cfg.RebaselineEvery == 0 {
			if err := m.Init(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				m.log.Warn().Err(err).Msg("rebaseline failed, keeping previous baselines")
			}
		}

		if !sleep(ctx, m.cfg.Interval) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
