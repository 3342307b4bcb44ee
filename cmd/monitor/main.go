package main

import (
	"context"
	"errors"
	"flag"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/shreyssinha/angela/internal/config"
	"github.com/shreyssinha/angela/internal/metrics"
	"github.com/shreyssinha/angela/internal/monitor"
	"github.com/shreyssinha/angela/internal/source"
	"github.com/shreyssinha/angela/internal/util"
)

func main() {
	_ = godotenv.Load() // best-effort

	configPath := flag.String("config", "internal/config/config.yaml", "path to YAML config")
	flag.Parse()

	log := util.NewLogger("info", "monitor")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = util.NewLogger(cfg.App.LogLevel, "monitor")

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pairs, err := loadPairs(cfg.Monitor)
	if err != nil {
		log.Fatal().Err(err).Msg("load pairs")
	}

	src := buildSource(ctx, cfg, pairs, log)

	mon := monitor.New(pairs, src, monitor.Config{
		Threshold:       cfg.Monitor.ZScoreThreshold,
		Interval:        time.Duration(cfg.Monitor.IntervalSecs) * time.Second,
		Backoff:         time.Duration(cfg.Monitor.BackoffSecs) * time.Second,
		Lookback:        time.Duration(cfg.Monitor.LookbackDays) * 24 * time.Hour,
		RebaselineEvery: cfg.Monitor.RebaselineTicks,
	}, log)

	if err := mon.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("monitor stopped")
	}
	log.Info().Msg("shutting down")
}

func loadPairs(cfg config.Monitor) ([]monitor.Pair, error) {
	if cfg.PairsCSV != "" {
		return monitor.LoadPairsCSV(cfg.PairsCSV)
	}
	pairs := make([]monitor.Pair, 0, len(cfg.Pairs))
	for _, spec := range cfg.Pairs {
		pairs = append(pairs, monitor.Pair{Asset1: spec.Asset1, Asset2: spec.Asset2, Correlation: spec.Correlation})
	}
	return pairs, nil
}

func buildSource(ctx context.Context, cfg *config.Config, pairs []monitor.Pair, log zerolog.Logger) source.PriceSource {
	switch cfg.Source.Provider {
	case source.ProviderBinance:
		symbols := make([]string, 0, 2*len(pairs))
		for _, p := range pairs {
			symbols = append(symbols, p.Asset1, p.Asset2)
		}
		opts := []source.BinanceOption{
			source.WithBaseURL(cfg.Source.Binance.BaseURL),
			source.WithStreamURL(cfg.Source.Binance.StreamURL),
		}
		if cfg.Source.Binance.QuoteMaxAgeMs > 0 {
			opts = append(opts, source.WithQuoteMaxAge(time.Duration(cfg.Source.Binance.QuoteMaxAgeMs)*time.Millisecond))
		}
		bn := source.NewBinance(symbols, log, opts...)
		if cfg.Source.Binance.Stream {
			go func() {
				if err := bn.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Warn().Err(err).Msg("binance stream stopped")
				}
			}()
		}
		return bn
	case source.ProviderStub:
		return source.NewStub()
	default:
		return source.NewYahoo(log)
	}
}
