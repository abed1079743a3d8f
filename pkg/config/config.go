package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required,oneof=development staging production test"`
	Log         struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"json" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		ReportCacheTTL  time.Duration `yaml:"report_cache_ttl" default:"5m"`
		RateLimit       struct {
			RequestsPerSecond float64 `yaml:"requests_per_second" default:"2" validate:"gte=0"`
			Burst             int     `yaml:"burst" default:"5" validate:"gte=1"`
		} `yaml:"rate_limit"`
		TrustedProxies []string `yaml:"trusted_proxies" validate:"dive,cidr"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Fred struct {
		APIKey            string        `yaml:"api_key" validate:"required"`
		BaseURL           string        `yaml:"base_url" default:"https://api.stlouisfed.org/fred" validate:"url"`
		Timeout           time.Duration `yaml:"timeout" default:"10s"`
		LookbackDays      int           `yaml:"lookback_days" default:"365" validate:"gte=1"`
		Limit             int           `yaml:"limit" default:"100" validate:"gte=1,lte=100000"`
		RequestsPerSecond float64       `yaml:"requests_per_second" default:"10" validate:"gt=0"`
		Burst             int           `yaml:"burst" default:"1" validate:"gte=1"`
		Breaker           struct {
			Enabled      bool          `yaml:"enabled" default:"true"`
			MaxRequests  uint32        `yaml:"max_requests" default:"1"`
			Interval     time.Duration `yaml:"interval" default:"60s"`
			Timeout      time.Duration `yaml:"timeout" default:"60s"`
			MinRequests  uint32        `yaml:"min_requests" default:"20"`
			FailureRatio float64       `yaml:"failure_ratio" default:"0.05" validate:"gte=0,lte=1"`
			MaxFailures  uint32        `yaml:"max_consecutive_failures" default:"3"`
		} `yaml:"breaker"`
	} `yaml:"fred"`
	Cache struct {
		Enabled bool          `yaml:"enabled" default:"true"`
		TTL     time.Duration `yaml:"ttl" default:"1h"`
		Redis   struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr" default:"localhost:6379" validate:"required_if=Enabled true"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"econ:fred:"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Analysis struct {
		SummaryPeriods int `yaml:"summary_periods" default:"3" validate:"gte=1,lte=100"`

		// Indicators replaces the built-in catalog when non-empty. Order matters.
		Indicators []Indicator `yaml:"indicators" validate:"unique=Code,dive"`
	} `yaml:"analysis"`
	Report struct {
		Save      bool   `yaml:"save" default:"true"`
		OutputDir string `yaml:"output_dir" default:"."`
	} `yaml:"report"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host" default:"localhost"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"econ"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout     time.Duration `yaml:"write_timeout" default:"30s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"60s"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers" validate:"required_if=Enabled true"`
		Topic        string   `yaml:"topic" default:"econ.analysis" validate:"required_if=Enabled true"`
		RequiredAcks int      `yaml:"required_acks" default:"-1" validate:"oneof=-1 0 1"`
		Compression  string   `yaml:"compression" default:"snappy" validate:"oneof=none gzip snappy lz4 zstd"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"5"`
			BatchTimeout time.Duration `yaml:"batch_timeout" default:"10ms"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
}

// Indicator is one configured catalog entry.
type Indicator struct {
	Code     string `yaml:"code" validate:"required,uppercase,max=32"`
	Label    string `yaml:"label"`
	Polarity string `yaml:"polarity" validate:"omitempty,oneof=positive_good negative_good"`
}

var validate = validator.New()

// Default returns a configuration with every default applied and no file read.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	return &c
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	c, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// An empty path skips the file and starts from defaults.
func LoadWithEnv(path string) (*Config, error) {
	c := Default()
	if path != "" {
		var err error
		if c, err = read(path); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.Fred.APIKey = v
	}
	if v := os.Getenv("FRED_BASE_URL"); v != "" {
		c.Fred.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Read loads the file over defaults without env overrides and validates only
// the analysis section. It serves commands that never reach FRED.
func Read(path string) (*Config, error) {
	c := Default()
	if path != "" {
		var err error
		if c, err = read(path); err != nil {
			return nil, err
		}
	}
	if err := validate.Struct(c.Analysis); err != nil {
		return nil, fmt.Errorf("validate analysis config: %w", err)
	}
	return c, nil
}

func read(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	// yaml leaves absent keys untouched, so defaults survive the decode
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
