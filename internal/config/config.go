package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceName string `yaml:"service_name"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	// MetricsAddr enables the Prometheus endpoint when set.
	MetricsAddr string `yaml:"metrics_addr"`

	Intake       IntakeConfig       `yaml:"intake"`
	Tracking     TrackingConfig     `yaml:"tracking"`
	Eligibility  EligibilityConfig  `yaml:"eligibility"`
	Declarations DeclarationsConfig `yaml:"declarations"`
	Resilience   ResilienceConfig   `yaml:"resilience"`
}

type IntakeConfig struct {
	DocumentBaseDelay time.Duration `yaml:"document_base_delay"`
	DocumentStepDelay time.Duration `yaml:"document_step_delay"`
	EligibilityDelay  time.Duration `yaml:"eligibility_delay"`
}

type TrackingConfig struct {
	Start    int           `yaml:"start"`
	Step     int           `yaml:"step"`
	Interval time.Duration `yaml:"interval"`
}

// EligibilityConfig is the outcome of the simulated AfCFTA check. Amounts
// and rates are decimal strings; rates are in percent.
type EligibilityConfig struct {
	Eligible         bool   `yaml:"eligible"`
	NormalRate       string `yaml:"normal_rate"`
	PreferentialRate string `yaml:"preferential_rate"`
	DeclaredValue    string `yaml:"declared_value"`
	Currency         string `yaml:"currency"`
}

type DeclarationsConfig struct {
	NumberStart int `yaml:"number_start"`
	// NumberYear pins the year of registration numbers; 0 uses the
	// submission date.
	NumberYear int `yaml:"number_year"`
}

type ResilienceConfig struct {
	RetryMaxAttempts    int           `yaml:"retry_max_attempts"`
	RetryInitialBackoff time.Duration `yaml:"retry_initial_backoff"`
	RetryMaxBackoff     time.Duration `yaml:"retry_max_backoff"`

	BreakerEnabled      bool          `yaml:"breaker_enabled"`
	BreakerMinRequests  int           `yaml:"breaker_min_requests"`
	BreakerFailureRatio float64       `yaml:"breaker_failure_ratio"`
	BreakerOpenTimeout  time.Duration `yaml:"breaker_open_timeout"`
}

func Load() Config {
	return Config{
		ServiceName: mustEnv("SERVICE_NAME", "customs-portal"),
		LogLevel:    mustEnv("LOG_LEVEL", "info"),
		LogFormat:   mustEnv("LOG_FORMAT", "json"),
		MetricsAddr: mustEnv("METRICS_ADDR", ""),

		Intake: IntakeConfig{
			DocumentBaseDelay: mustEnvDuration("DOCUMENT_ANALYSIS_BASE_DELAY", 1000*time.Millisecond),
			DocumentStepDelay: mustEnvDuration("DOCUMENT_ANALYSIS_STEP_DELAY", 500*time.Millisecond),
			EligibilityDelay:  mustEnvDuration("ELIGIBILITY_ANALYSIS_DELAY", 2000*time.Millisecond),
		},
		Tracking: TrackingConfig{
			Start:    mustEnvInt("TRACKING_PROGRESS_START", 80),
			Step:     mustEnvInt("TRACKING_PROGRESS_STEP", 2),
			Interval: mustEnvDuration("TRACKING_PROGRESS_INTERVAL", time.Second),
		},
		Eligibility: EligibilityConfig{
			Eligible:         mustEnvBool("ELIGIBILITY_ELIGIBLE", true),
			NormalRate:       mustEnv("ELIGIBILITY_NORMAL_RATE", "20"),
			PreferentialRate: mustEnv("ELIGIBILITY_PREFERENTIAL_RATE", "0"),
			DeclaredValue:    mustEnv("ELIGIBILITY_DECLARED_VALUE", "2500000"),
			Currency:         mustEnv("ELIGIBILITY_CURRENCY", "USD"),
		},
		Declarations: DeclarationsConfig{
			NumberStart: mustEnvInt("DECLARATION_NUMBER_START", 1247),
			NumberYear:  mustEnvInt("DECLARATION_NUMBER_YEAR", 0),
		},
		Resilience: ResilienceConfig{
			RetryMaxAttempts:    mustEnvInt("RETRY_MAX_ATTEMPTS", 3),
			RetryInitialBackoff: mustEnvDuration("RETRY_INITIAL_BACKOFF", 50*time.Millisecond),
			RetryMaxBackoff:     mustEnvDuration("RETRY_MAX_BACKOFF", 200*time.Millisecond),
			BreakerEnabled:      mustEnvBool("BREAKER_ENABLED", true),
			BreakerMinRequests:  mustEnvInt("BREAKER_MIN_REQUESTS", 5),
			BreakerFailureRatio: mustEnvFloat("BREAKER_FAILURE_RATIO", 0.6),
			BreakerOpenTimeout:  mustEnvDuration("BREAKER_OPEN_TIMEOUT", 10*time.Second),
		},
	}
}

// LoadFile applies the YAML document at path on top of Load. An empty path
// returns Load unchanged. Unknown keys are rejected.
func LoadFile(path string) (Config, error) {
	cfg := Load()
	if strings.TrimSpace(path) == "" {
		return cfg, cfg.Validate()
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log format must be json or text, got %q", c.LogFormat))
	}
	if c.Intake.DocumentBaseDelay < 0 || c.Intake.DocumentStepDelay < 0 || c.Intake.EligibilityDelay < 0 {
		errs = append(errs, errors.New("analysis delays must not be negative"))
	}
	if c.Declarations.NumberStart < 0 {
		errs = append(errs, fmt.Errorf("declaration number start must not be negative, got %d", c.Declarations.NumberStart))
	}
	if _, _, _, err := c.Eligibility.Amounts(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Amounts parses the normal rate, preferential rate and declared value.
func (e EligibilityConfig) Amounts() (normal, preferential, declared decimal.Decimal, err error) {
	if normal, err = decimal.NewFromString(e.NormalRate); err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("eligibility normal rate %q: %w", e.NormalRate, err)
	}
	if preferential, err = decimal.NewFromString(e.PreferentialRate); err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("eligibility preferential rate %q: %w", e.PreferentialRate, err)
	}
	if declared, err = decimal.NewFromString(e.DeclaredValue); err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("eligibility declared value %q: %w", e.DeclaredValue, err)
	}
	if declared.IsNegative() {
		return decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("eligibility declared value must not be negative, got %s", declared)
	}
	return normal, preferential, declared, nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
