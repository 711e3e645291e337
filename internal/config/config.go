package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nexus-dev/nexus/internal/analytics"
	"github.com/nexus-dev/nexus/internal/report"
	"github.com/nexus-dev/nexus/internal/validate"
)

// FileName is the default config file name.
const FileName = "nexus.yaml"

// EnvPrefix prefixes environment overrides, e.g. NEXUS_ANOMALY_STD_DEV_THRESHOLD.
const EnvPrefix = "NEXUS"

// Config represents the top-level nexus.yaml configuration.
type Config struct {
	Anomaly    AnomalyConfig    `yaml:"anomaly" mapstructure:"anomaly"`
	Validation ValidationConfig `yaml:"validation" mapstructure:"validation"`
	Report     ReportConfig     `yaml:"report" mapstructure:"report"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
}

// AnomalyConfig controls anomaly detection thresholds.
type AnomalyConfig struct {
	StdDevThreshold           float64 `yaml:"std_dev_threshold" mapstructure:"std_dev_threshold"`
	HistoryThreshold          int     `yaml:"history_threshold" mapstructure:"history_threshold"`
	FirstTransactionThreshold float64 `yaml:"first_transaction_threshold" mapstructure:"first_transaction_threshold"`
}

// ValidationConfig controls the consistency rules.
type ValidationConfig struct {
	MinAge           int     `yaml:"min_age" mapstructure:"min_age"`
	MaxAge           int     `yaml:"max_age" mapstructure:"max_age"`
	BalanceTolerance float64 `yaml:"balance_tolerance" mapstructure:"balance_tolerance"`
	MaxAgeDrift      int     `yaml:"max_age_drift" mapstructure:"max_age_drift"`
}

// ReportConfig controls how much of each section the report shows.
type ReportConfig struct {
	TopCustomers    int    `yaml:"top_customers" mapstructure:"top_customers"`
	SampleErrors    int    `yaml:"sample_errors" mapstructure:"sample_errors"`
	SampleAnomalies int    `yaml:"sample_anomalies" mapstructure:"sample_anomalies"`
	Currency        string `yaml:"currency" mapstructure:"currency"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // trace, debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// Default returns a Config with the stock thresholds.
func Default() *Config {
	rules := validate.DefaultRules()
	anomaly := analytics.DefaultAnomalyOptions()
	rep := report.DefaultOptions()
	return &Config{
		Anomaly: AnomalyConfig{
			StdDevThreshold:           anomaly.StdDevThreshold,
			HistoryThreshold:          anomaly.HistoryThreshold,
			FirstTransactionThreshold: anomaly.FirstTransactionThreshold.InexactFloat64(),
		},
		Validation: ValidationConfig{
			MinAge:           rules.MinAge,
			MaxAge:           rules.MaxAge,
			BalanceTolerance: rules.Tolerance.InexactFloat64(),
			MaxAgeDrift:      rules.MaxAgeDrift,
		},
		Report: ReportConfig{
			TopCustomers:    rep.TopCustomers,
			SampleErrors:    rep.SampleErrors,
			SampleAnomalies: rep.SampleAnomalies,
			Currency:        rep.Currency,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a nexus.yaml file and applies NEXUS_* environment overrides on
// top of it. An empty path loads defaults plus environment only.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// newViper returns a viper instance seeded with every default key, so that
// environment variables resolve even when the file omits a section.
func newViper() *viper.Viper {
	v := viper.New()
	def := Default()

	v.SetDefault("anomaly.std_dev_threshold", def.Anomaly.StdDevThreshold)
	v.SetDefault("anomaly.history_threshold", def.Anomaly.HistoryThreshold)
	v.SetDefault("anomaly.first_transaction_threshold", def.Anomaly.FirstTransactionThreshold)
	v.SetDefault("validation.min_age", def.Validation.MinAge)
	v.SetDefault("validation.max_age", def.Validation.MaxAge)
	v.SetDefault("validation.balance_tolerance", def.Validation.BalanceTolerance)
	v.SetDefault("validation.max_age_drift", def.Validation.MaxAgeDrift)
	v.SetDefault("report.top_customers", def.Report.TopCustomers)
	v.SetDefault("report.sample_errors", def.Report.SampleErrors)
	v.SetDefault("report.sample_anomalies", def.Report.SampleAnomalies)
	v.SetDefault("report.currency", def.Report.Currency)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Anomaly.StdDevThreshold <= 0 {
		errs = append(errs, fmt.Errorf("anomaly.std_dev_threshold must be positive, got %g", c.Anomaly.StdDevThreshold))
	}
	if c.Anomaly.HistoryThreshold < 1 {
		errs = append(errs, fmt.Errorf("anomaly.history_threshold must be at least 1, got %d", c.Anomaly.HistoryThreshold))
	}
	if c.Anomaly.FirstTransactionThreshold < 0 {
		errs = append(errs, fmt.Errorf("anomaly.first_transaction_threshold must not be negative, got %g", c.Anomaly.FirstTransactionThreshold))
	}
	if c.Validation.MinAge < 0 || c.Validation.MinAge > c.Validation.MaxAge {
		errs = append(errs, fmt.Errorf("validation age range %d-%d is invalid", c.Validation.MinAge, c.Validation.MaxAge))
	}
	if c.Validation.BalanceTolerance < 0 {
		errs = append(errs, fmt.Errorf("validation.balance_tolerance must not be negative, got %g", c.Validation.BalanceTolerance))
	}
	if c.Validation.MaxAgeDrift < 0 {
		errs = append(errs, fmt.Errorf("validation.max_age_drift must not be negative, got %d", c.Validation.MaxAgeDrift))
	}
	if c.Report.TopCustomers < 0 || c.Report.SampleErrors < 0 || c.Report.SampleAnomalies < 0 {
		errs = append(errs, errors.New("report sizes must not be negative"))
	}
	return errors.Join(errs...)
}

// AnomalyOptions converts the anomaly section for the detector.
func (c *Config) AnomalyOptions() analytics.AnomalyOptions {
	return analytics.AnomalyOptions{
		StdDevThreshold:           c.Anomaly.StdDevThreshold,
		HistoryThreshold:          c.Anomaly.HistoryThreshold,
		FirstTransactionThreshold: decimal.NewFromFloat(c.Anomaly.FirstTransactionThreshold),
	}
}

// Rules converts the validation section for the validator.
func (c *Config) Rules() validate.Rules {
	return validate.Rules{
		MinAge:      c.Validation.MinAge,
		MaxAge:      c.Validation.MaxAge,
		Tolerance:   decimal.NewFromFloat(c.Validation.BalanceTolerance),
		MaxAgeDrift: c.Validation.MaxAgeDrift,
	}
}
