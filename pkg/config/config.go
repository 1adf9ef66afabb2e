package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full run configuration. Every stage receives it (or a
// sub-struct of it) explicitly; there is no module-wide mutable state, so
// the pipeline stays reentrant under varied parameters.
type Config struct {
	Environment string `yaml:"environment" default:"development"`

	Instrument struct {
		Ticker    string `yaml:"ticker" validate:"required"`
		StartDate string `yaml:"start_date" validate:"required,datetime=2006-01-02"`
		EndDate   string `yaml:"end_date" validate:"required,datetime=2006-01-02"`
	} `yaml:"instrument"`

	Label struct {
		Horizon int `yaml:"horizon" default:"5" validate:"gt=0"`
	} `yaml:"label"`

	Model struct {
		Seed     int64 `yaml:"seed" default:"42"`
		Trees    int   `yaml:"trees" default:"100" validate:"gt=0"`
		MaxDepth int   `yaml:"max_depth" default:"6" validate:"gt=0"`
		MinLeaf  int   `yaml:"min_leaf" default:"2" validate:"gt=0"`
	} `yaml:"model"`

	Signal struct {
		Threshold float64 `yaml:"threshold" default:"0.6" validate:"gt=0.5,lt=1"`
	} `yaml:"signal"`

	Split struct {
		TrainRatio float64 `yaml:"train_ratio" default:"0.8" validate:"gt=0,lt=1"`
	} `yaml:"split"`

	Provider struct {
		Type    string        `yaml:"type" default:"tiingo" validate:"oneof=tiingo csv"`
		BaseURL string        `yaml:"base_url" default:"https://api.tiingo.com"`
		APIKey  string        `yaml:"api_key"`
		CSVPath string        `yaml:"csv_path"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
		// requests per second against the REST API
		RateLimit float64 `yaml:"rate_limit" default:"2"`
	} `yaml:"provider"`

	Cache struct {
		Enabled bool          `yaml:"enabled"`
		TTL     time.Duration `yaml:"ttl" default:"24h"`
		Prefix  string        `yaml:"prefix" default:"edgelab"`
		Redis   struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	Archive struct {
		Enabled    bool `yaml:"enabled"`
		ClickHouse struct {
			Host         string        `yaml:"host" default:"localhost"`
			Port         int           `yaml:"port" default:"9000"`
			Database     string        `yaml:"database" default:"edgelab"`
			User         string        `yaml:"user" default:"default"`
			Password     string        `yaml:"password"`
			DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		} `yaml:"clickhouse"`
	} `yaml:"archive"`

	Export struct {
		Dir     string   `yaml:"dir" default:"out"`
		Formats []string `yaml:"formats" validate:"dive,oneof=csv json parquet"`
	} `yaml:"export"`

	Server struct {
		Enabled         bool          `yaml:"enabled"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file, applies defaults and
// validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables, so API keys stay out of the file.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("TIINGO_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if v := os.Getenv("TICKER"); v != "" {
		c.Instrument.Ticker = v
	}
	if v := os.Getenv("START_DATE"); v != "" {
		c.Instrument.StartDate = v
	}
	if v := os.Getenv("END_DATE"); v != "" {
		c.Instrument.EndDate = v
	}
	if v := os.Getenv("SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Model.Seed = seed
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks structural rules plus the cross-field ones the tags
// cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	start, err := time.Parse("2006-01-02", c.Instrument.StartDate)
	if err != nil {
		return fmt.Errorf("instrument.start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.Instrument.EndDate)
	if err != nil {
		return fmt.Errorf("instrument.end_date: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("instrument.start_date %s must precede end_date %s", c.Instrument.StartDate, c.Instrument.EndDate)
	}
	if c.Provider.Type == "tiingo" && c.Provider.APIKey == "" {
		return fmt.Errorf("provider.api_key is required for the tiingo provider")
	}
	if c.Provider.Type == "csv" && c.Provider.CSVPath == "" {
		return fmt.Errorf("provider.csv_path is required for the csv provider")
	}
	return nil
}

// DateRange returns the parsed instrument date range. Validate must have
// succeeded first.
func (c *Config) DateRange() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", c.Instrument.StartDate)
	end, _ := time.Parse("2006-01-02", c.Instrument.EndDate)
	return start, end
}
