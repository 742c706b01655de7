package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`
	Debug      bool `env:"DEBUG" envDefault:"false"`

	HTTPAddr           string        `env:"HTTP_ADDR" envDefault:":8080"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"10s"`
	CorsAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	DefaultLanguage  string        `env:"DEFAULT_LANGUAGE" envDefault:"es"`
	DefaultEventSpan time.Duration `env:"DEFAULT_EVENT_SPAN" envDefault:"60m"`

	RedisURL         string        `env:"REDIS_URL"`
	SequenceCacheTTL time.Duration `env:"SEQUENCE_CACHE_TTL" envDefault:"1h"`

	RateLimitPerMinute       uint16 `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	RateLimitSchedulePerHour uint16 `env:"RATE_LIMIT_SCHEDULE_PER_HOUR" envDefault:"60"`

	RabbitmqURL                string `env:"RABBITMQ_URL"`
	RabbitmqDelayedExchange    string `env:"RABBITMQ_DELAYED_EXCHANGE" envDefault:"eventual.delayed"`
	RabbitmqOccurrenceDueQueue string `env:"RABBITMQ_OCCURRENCE_DUE_QUEUE" envDefault:"eventual.occurrence.due"`

	MaxResolvedValues       int           `env:"MAX_RESOLVED_VALUES" envDefault:"10000"`
	MaxScheduledOccurrences int           `env:"MAX_SCHEDULED_OCCURRENCES" envDefault:"100"`
	StreamTTL               time.Duration `env:"STREAM_TTL" envDefault:"10m"`

	SentryDsn string `env:"SENTRY_DSN"`
}

// Load reads the configuration from the environment. Outside of test mode
// REDIS_URL and RABBITMQ_URL must be set.
func Load() (*Config, error) {
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	config := &Config{}
	if err := env.Parse(config, opts); err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	if config.DefaultEventSpan <= 0 {
		return nil, fmt.Errorf("DEFAULT_EVENT_SPAN must be positive")
	}
	if config.IsTestMode {
		return config, nil
	}
	if config.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL must be set")
	}
	if config.RabbitmqURL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL must be set")
	}
	return config, nil
}
