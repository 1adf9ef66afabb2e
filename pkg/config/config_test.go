package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
instrument:
  ticker: AAPL
  start_date: "2023-01-01"
  end_date: "2024-01-01"
provider:
  type: csv
  csv_path: prices.csv
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Label.Horizon != 5 {
		t.Fatalf("horizon %d, want 5", cfg.Label.Horizon)
	}
	if cfg.Model.Seed != 42 || cfg.Model.Trees != 100 {
		t.Fatalf("model defaults %+v", cfg.Model)
	}
	if cfg.Signal.Threshold != 0.6 {
		t.Fatalf("threshold %v, want 0.6", cfg.Signal.Threshold)
	}
	if cfg.Split.TrainRatio != 0.8 {
		t.Fatalf("train ratio %v, want 0.8", cfg.Split.TrainRatio)
	}
	if cfg.Logging.Level != "info" || cfg.Export.Dir != "out" {
		t.Fatalf("ambient defaults: logging=%+v export=%+v", cfg.Logging, cfg.Export)
	}
}

func TestLoadRejectsBadDates(t *testing.T) {
	_, err := Load(writeConfig(t, `
instrument:
  ticker: AAPL
  start_date: "2024-01-01"
  end_date: "2023-01-01"
provider:
  type: csv
  csv_path: prices.csv
`))
	if err == nil {
		t.Fatalf("expected error for inverted date range")
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
signal:
  threshold: 0.4
`))
	if err == nil {
		t.Fatalf("expected error for threshold <= 0.5")
	}
}

func TestLoadRequiresProviderCredentials(t *testing.T) {
	_, err := Load(writeConfig(t, `
instrument:
  ticker: AAPL
  start_date: "2023-01-01"
  end_date: "2024-01-01"
provider:
  type: tiingo
`))
	if err == nil {
		t.Fatalf("expected error for tiingo without api key")
	}

	_, err = Load(writeConfig(t, `
instrument:
  ticker: AAPL
  start_date: "2023-01-01"
  end_date: "2024-01-01"
provider:
  type: csv
`))
	if err == nil {
		t.Fatalf("expected error for csv without path")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("TICKER", "MSFT")
	t.Setenv("SEED", "7")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Instrument.Ticker != "MSFT" {
		t.Fatalf("ticker %q, want MSFT", cfg.Instrument.Ticker)
	}
	if cfg.Model.Seed != 7 {
		t.Fatalf("seed %d, want 7", cfg.Model.Seed)
	}
}

func TestDateRange(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	start, end := cfg.DateRange()
	if start.Year() != 2023 || end.Year() != 2024 {
		t.Fatalf("range %v .. %v", start, end)
	}
}
