package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const DefaultTargetURL = "https://developer.huaweicloud.com/intl/en-us/activity/c64bd713260a42e7872e4138a2aef2db"

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Tracker TrackerConfig `yaml:"tracker"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type ServerConfig struct {
	Port string `yaml:"port" validate:"required"`
	// PublicURL overrides the scheme and host shown in the tracking link.
	PublicURL       string        `yaml:"public_url" validate:"omitempty,url"`
	GinMode         string        `yaml:"gin_mode" validate:"oneof=debug release test"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

type TrackerConfig struct {
	TargetURL string `yaml:"target_url" validate:"required,url"`
	DataFile  string `yaml:"data_file" validate:"required"`
	CSVFile   string `yaml:"csv_file" validate:"required"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
	File   string `yaml:"file"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"omitempty,startswith=/"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            ":5000",
			GinMode:         "release",
			ShutdownTimeout: 5 * time.Second,
		},
		Tracker: TrackerConfig{
			TargetURL: DefaultTargetURL,
			DataFile:  "click_data.json",
			CSVFile:   "click_data.csv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load layers the optional CONFIG_FILE yaml, then .env, then the process
// environment over the defaults, and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	if path, ok := os.LookupEnv("CONFIG_FILE"); ok && path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("error while loading .env file: %v", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = cast.ToString(coalesce("SERVER_PORT", c.Server.Port))
	c.Server.PublicURL = cast.ToString(coalesce("PUBLIC_URL", c.Server.PublicURL))
	c.Server.GinMode = cast.ToString(coalesce("GIN_MODE", c.Server.GinMode))
	c.Server.ShutdownTimeout = cast.ToDuration(coalesce("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout))

	c.Tracker.TargetURL = cast.ToString(coalesce("TARGET_URL", c.Tracker.TargetURL))
	c.Tracker.DataFile = cast.ToString(coalesce("DATA_FILE", c.Tracker.DataFile))
	c.Tracker.CSVFile = cast.ToString(coalesce("CSV_FILE", c.Tracker.CSVFile))

	c.Logging.Level = cast.ToString(coalesce("LOG_LEVEL", c.Logging.Level))
	c.Logging.Format = cast.ToString(coalesce("LOG_FORMAT", c.Logging.Format))
	c.Logging.File = cast.ToString(coalesce("LOG_FILE", c.Logging.File))

	c.Metrics.Enabled = cast.ToBool(coalesce("METRICS_ENABLED", c.Metrics.Enabled))
	c.Metrics.Path = cast.ToString(coalesce("METRICS_PATH", c.Metrics.Path))
}

// Validate checks configuration for invalid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			result := &multierror.Error{ErrorFormat: inlineErrorFormat}
			for _, fe := range verrs {
				result = multierror.Append(result, fmt.Errorf("%s failed %q validation (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %w", result)
		}
		return err
	}
	return nil
}

func coalesce(key string, value interface{}) interface{} {
	val, exist := os.LookupEnv(key)
	if exist {
		return val
	}
	return value
}

func inlineErrorFormat(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
