package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv      string `yaml:"app_env"`
	LogLevel    string `yaml:"log_level"`
	HTTPAddr    string `yaml:"http_addr"`
	MetricsAddr string `yaml:"metrics_addr"`

	DarazBase     string `yaml:"daraz_base_url"`
	DarazRPS      int    `yaml:"daraz_rps"`
	DarazTimeout  int    `yaml:"daraz_timeout_seconds"`
	DarazAttempts int    `yaml:"daraz_attempts"`

	SentimentBackend string `yaml:"sentiment_backend"`
	OpenAIKey        string `yaml:"openai_api_key"`
	OpenAIModel      string `yaml:"openai_model"`
	OpenAIBaseURL    string `yaml:"openai_base_url"`

	RedisAddr string `yaml:"redis_addr"`
	RedisPass string `yaml:"redis_password"`
	RedisDB   int    `yaml:"redis_db"`
	CacheTTL  int    `yaml:"cache_ttl_seconds"`

	MySQLDSN string `yaml:"mysql_dsn"`

	Workers int `yaml:"cli_workers"`
}

func (c Config) CacheTTLDuration() time.Duration { return time.Duration(c.CacheTTL) * time.Second }

func (c Config) DarazTimeoutDuration() time.Duration {
	return time.Duration(c.DarazTimeout) * time.Second
}

// Load reads defaults, then the YAML file named by CONFIG_FILE (if any),
// then environment variables. Later sources win.
func Load() Config {
	c := Config{
		AppEnv:        "prod",
		LogLevel:      "info",
		HTTPAddr:      ":8000",
		DarazBase:     "https://my.daraz.pk",
		DarazRPS:      5,
		DarazTimeout:  10,
		DarazAttempts: 1,
		OpenAIModel:   "gpt-4o-mini",
		Workers:       4,
	}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := c.mergeFile(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config file ignored")
		}
	}
	c.mergeEnv()

	if c.CacheTTL > 0 && c.RedisAddr == "" {
		log.Warn().Msg("CACHE_TTL_SECONDS set but REDIS_ADDR is empty; caching disabled")
	}
	return c
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() {
	str(&c.AppEnv, "APP_ENV")
	str(&c.LogLevel, "LOG_LEVEL")
	str(&c.HTTPAddr, "HTTP_ADDR")
	str(&c.MetricsAddr, "METRICS_ADDR")
	str(&c.DarazBase, "DARAZ_BASE_URL")
	atoi(&c.DarazRPS, "DARAZ_RPS")
	atoi(&c.DarazTimeout, "DARAZ_TIMEOUT_SECONDS")
	atoi(&c.DarazAttempts, "DARAZ_ATTEMPTS")
	str(&c.SentimentBackend, "SENTIMENT_BACKEND")
	str(&c.OpenAIKey, "OPENAI_API_KEY")
	str(&c.OpenAIModel, "OPENAI_MODEL")
	str(&c.OpenAIBaseURL, "OPENAI_BASE_URL")
	str(&c.RedisAddr, "REDIS_ADDR")
	str(&c.RedisPass, "REDIS_PASSWORD")
	atoi(&c.RedisDB, "REDIS_DB")
	atoi(&c.CacheTTL, "CACHE_TTL_SECONDS")
	str(&c.MySQLDSN, "MYSQL_DSN")
	atoi(&c.Workers, "CLI_WORKERS")
}

func str(dst *string, k string) {
	if v := os.Getenv(k); v != "" {
		*dst = v
	}
}

func atoi(dst *int, k string) {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
