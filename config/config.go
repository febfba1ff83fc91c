package config

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/supercuration/supercon/internal"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

var validate = validator.New()

// envKeys are bound explicitly so that SUPERCON_* variables work without a config file.
var envKeys = []string{
	"backend.server",
	"backend.prefix",
	"backend.sleep_time",
	"backend.timeout_seconds",
	"server.host",
	"server.port",
	"log.level",
	"viewer.render_scale",
	"viewer.missing_link_policy",
}

// LoadConfig loads the config file and ENV variables into a Config struct. Values missing
// from both are taken from the defaults. An empty configFile looks for config.yaml in the
// working directory and tolerates its absence.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}
	v.SetConfigType("yaml")
	setZeroableDefaults(v)

	v.SetEnvPrefix("SUPERCON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		log.Warn("config.yaml not found, using defaults")
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setZeroableDefaults registers the defaults of settings for which 0 is a valid value.
// mergo cannot tell an explicit 0 from a missing key, so viper fills these instead.
func setZeroableDefaults(v *viper.Viper) {
	d := defaultConfig().Backend
	v.SetDefault("backend.sleep_time", d.SleepTime)
	v.SetDefault("backend.busy_retries", d.BusyRetries)
	v.SetDefault("backend.retry_max", d.RetryMax)
}

// applyDefaults fills every zero field of cfg from the defaults, including missing
// url_mapping actions. The zeroable backend settings are left as decoded.
func applyDefaults(cfg *Config) error {
	cfg.Backend.URLMapping = normalizeMapping(cfg.Backend.URLMapping)
	sleepTime, busyRetries, retryMax := cfg.Backend.SleepTime, cfg.Backend.BusyRetries, cfg.Backend.RetryMax
	defaults := defaultConfig()
	if err := mergo.Merge(cfg, defaults); err != nil {
		return fmt.Errorf("applying config defaults: %w", err)
	}
	cfg.Backend.SleepTime, cfg.Backend.BusyRetries, cfg.Backend.RetryMax = sleepTime, busyRetries, retryMax
	return nil
}

// normalizeMapping lowercases action names. Viper folds keys to lower case, so lookups
// go through BackendConfig.Path which folds too.
func normalizeMapping(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for action, path := range m {
		out[strings.ToLower(action)] = path
	}
	return out
}

// Path returns the URL path mapped to action, ignoring case.
func (b BackendConfig) Path(action string) (string, bool) {
	path, ok := b.URLMapping[strings.ToLower(action)]
	return path, ok
}

// Validate checks the struct constraints of cfg.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}

// Dump renders cfg as YAML, as printed by --dump-config.
func Dump(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
