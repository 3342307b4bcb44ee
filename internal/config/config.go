// Package config exposes strongly typed application configuration
// structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Source selects and parameterizes the price data provider.
type Source struct {
	Provider string  `yaml:"provider"` // stub | yahoo | binance
	Binance  Binance `yaml:"binance"`
}

// Binance configures the Binance-backed source.
type Binance struct {
	BaseURL       string `yaml:"base_url"`
	StreamURL     string `yaml:"stream_url"`
	Stream        bool   `yaml:"stream"` // run the live trade stream
	QuoteMaxAgeMs int    `yaml:"quote_max_age_ms"`
}

// Monitor holds the divergence monitor's tunables. Pairs may be listed
// inline or loaded from a CSV; the CSV wins when both are set.
type Monitor struct {
	ZScoreThreshold float64    `yaml:"zscore_threshold"`
	IntervalSecs    int        `yaml:"interval_secs"`
	BackoffSecs     int        `yaml:"backoff_secs"`
	LookbackDays    int        `yaml:"lookback_days"`
	RebaselineTicks int        `yaml:"rebaseline_ticks"`
	PairsCSV        string     `yaml:"pairs_csv"`
	Pairs           []PairSpec `yaml:"pairs"`
}

// PairSpec is one configured asset pair.
type PairSpec struct {
	Asset1      string  `yaml:"asset1"`
	Asset2      string  `yaml:"asset2"`
	Correlation float64 `yaml:"correlation"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App     App     `yaml:"app"`
	Source  Source  `yaml:"source"`
	Monitor Monitor `yaml:"monitor"`
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
