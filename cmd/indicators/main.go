// Command indicators fetches daily history for one symbol and logs the
// latest value and ±1 signal for every indicator in the catalogue.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"

	"github.com/shreyssinha/angela/internal/config"
	"github.com/shreyssinha/angela/internal/indicator"
	"github.com/shreyssinha/angela/internal/series"
	"github.com/shreyssinha/angela/internal/source"
	"github.com/shreyssinha/angela/internal/util"
)

func main() {
	_ = godotenv.Load() // best-effort

	configPath := flag.String("config", "internal/config/config.yaml", "path to YAML config")
	symbol := flag.String("symbol", "", "instrument to analyze (required)")
	days := flag.Int("days", 180, "history window in calendar days")
	flag.Parse()

	log := util.NewLogger("info", "indicators")
	if *symbol == "" {
		log.Fatal().Msg("-symbol is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = util.NewLogger(cfg.App.LogLevel, "indicators")

	var src source.PriceSource
	switch cfg.Source.Provider {
	case source.ProviderBinance:
		src = source.NewBinance(nil, log)
	case source.ProviderStub:
		src = source.NewStub()
	default:
		src = source.NewYahoo(log)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	end := time.Now()
	start := end.AddDate(0, 0, -*days)
	bars, err := src.History(ctx, *symbol, start, end)
	if err != nil {
		log.Fatal().Err(err).Msg("fetch history")
	}
	log.Info().Str("symbol", *symbol).Int("bars", len(bars)).Msg("history loaded")

	engine := indicator.New(series.FromBars(bars))
	for _, entry := range engine.Snapshot(indicator.DefaultParams()) {
		log.Info().
			Str("indicator", entry.Name).
			Float64("value", entry.Value).
			Int("signal", entry.Signal).
			Msg("indicator")
	}
}
