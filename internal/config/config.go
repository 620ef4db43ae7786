// Package config loads the vacancy report settings from an optional .env
// file, an optional YAML file and environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/vacancy-report/pkg/client"
	"github.com/Sternrassler/vacancy-report/pkg/hh"
	"github.com/Sternrassler/vacancy-report/pkg/pagination"
	"github.com/Sternrassler/vacancy-report/pkg/plot"
	"github.com/Sternrassler/vacancy-report/pkg/report"
	"github.com/Sternrassler/vacancy-report/pkg/vacancy"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileEnv names the variable holding the YAML config path.
const FileEnv = "REPORT_CONFIG"

// Area 22 is Vladivostok.
const (
	DefaultArea   = "22"
	DefaultTarget = 2000
)

type API struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

type Fetch struct {
	Area    string `yaml:"area"`
	Target  int    `yaml:"target"`
	PerPage int    `yaml:"per_page"`

	// StrictPages turns a malformed page into an error instead of a stop.
	StrictPages bool `yaml:"strict_pages"`
}

type Report struct {
	Variant     string `yaml:"variant"`
	PayPeriod   string `yaml:"pay_period"`
	Currency    string `yaml:"currency"`
	PlotPath    string `yaml:"plot_path"`
	SkipInvalid bool   `yaml:"skip_invalid"`
}

type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type Config struct {
	API    API    `yaml:"api"`
	Fetch  Fetch  `yaml:"fetch"`
	Report Report `yaml:"report"`
	Log    Log    `yaml:"log"`

	// RedisURL enables the response cache when set.
	RedisURL string `yaml:"redis_url"`

	// MetricsTextfile is where metrics are dumped after the run, if set.
	MetricsTextfile string `yaml:"metrics_textfile"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: API{
			BaseURL:   client.DefaultBaseURL,
			UserAgent: client.DefaultUserAgent,
			Timeout:   client.DefaultTimeout,
		},
		Fetch: Fetch{
			Area:    DefaultArea,
			Target:  DefaultTarget,
			PerPage: pagination.DefaultPageSize,
		},
		Report: Report{
			Variant:   string(vacancy.VariantFrequencyAware),
			PayPeriod: string(vacancy.PayPeriodMonth),
			Currency:  report.DefaultCurrency,
			PlotPath:  plot.DefaultPath,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads .env from the working directory if present, overlays the YAML
// file named by REPORT_CONFIG, applies environment overrides and validates.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// overlayFile unmarshals path over cfg; keys absent from the file keep
// their current values.
func (c *Config) overlayFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = n
	}
	flag := func(key string, dst *bool) {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = b
	}

	str("HH_BASE_URL", &c.API.BaseURL)
	str("HH_USER_AGENT", &c.API.UserAgent)
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("HTTP_TIMEOUT: %w", err))
		} else {
			c.API.Timeout = d
		}
	}

	str("HH_AREA", &c.Fetch.Area)
	num("HH_TARGET", &c.Fetch.Target)
	num("HH_PER_PAGE", &c.Fetch.PerPage)
	flag("STRICT_PAGES", &c.Fetch.StrictPages)

	str("REPORT_VARIANT", &c.Report.Variant)
	str("REPORT_PAY_PERIOD", &c.Report.PayPeriod)
	str("REPORT_CURRENCY", &c.Report.Currency)
	str("PLOT_PATH", &c.Report.PlotPath)
	flag("SKIP_INVALID", &c.Report.SkipInvalid)

	str("LOG_LEVEL", &c.Log.Level)
	flag("LOG_PRETTY", &c.Log.Pretty)

	str("REDIS_URL", &c.RedisURL)
	str("METRICS_TEXTFILE", &c.MetricsTextfile)

	return errors.Join(errs...)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	}
	if strings.TrimSpace(c.API.UserAgent) == "" {
		errs = append(errs, errors.New("api.user_agent is required"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout))
	}
	if c.Fetch.Target < 0 {
		errs = append(errs, fmt.Errorf("fetch.target must not be negative, got %d", c.Fetch.Target))
	}
	if c.Fetch.PerPage <= 0 || c.Fetch.PerPage > hh.MaxPerPage {
		errs = append(errs, fmt.Errorf("fetch.per_page must be in 1..%d, got %d", hh.MaxPerPage, c.Fetch.PerPage))
	}
	if _, ok := vacancy.ParseVariant(c.Report.Variant); !ok {
		errs = append(errs, fmt.Errorf("report.variant %q is not basic or frequency", c.Report.Variant))
	}
	if c.Report.PlotPath == "" {
		errs = append(errs, errors.New("report.plot_path is required"))
	}

	return errors.Join(errs...)
}

// Variant returns the validated normalizer variant.
func (c Config) Variant() vacancy.Variant {
	v, _ := vacancy.ParseVariant(c.Report.Variant)
	return v
}

// Filter returns the report filter for the frequency-aware variant.
func (c Config) Filter() report.Filter {
	return report.Filter{
		PayPeriod: vacancy.PayPeriod(strings.ToUpper(c.Report.PayPeriod)),
		Currency:  strings.ToUpper(c.Report.Currency),
	}
}

// MalformedPolicy maps StrictPages onto the fetcher policy.
func (c Config) MalformedPolicy() pagination.MalformedPolicy {
	if c.Fetch.StrictPages {
		return pagination.MalformedFail
	}
	return pagination.MalformedStop
}
