package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type NotificationTransport string

const (
	NotificationTransportSES      NotificationTransport = "ses"
	NotificationTransportRabbitmq NotificationTransport = "rabbitmq"
	NotificationTransportLog      NotificationTransport = "log"
)

type Config struct {
	Port     uint16 `env:"PORT" envDefault:"9090"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Secret           string `env:"SECRET,required,notEmpty"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required,notEmpty"`
	RedisURL      string `env:"REDIS_URL,required,notEmpty"`

	RabbitmqURL                         string `env:"RABBITMQ_URL"`
	RabbitmqPasswordResetRequestedQueue string `env:"RABBITMQ_PASSWORD_RESET_REQUESTED_QUEUE" envDefault:"password-reset-requested"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	PasswordResetTokenTTLMinutes int                   `env:"PASSWORD_RESET_TOKEN_TTL_MINUTES" envDefault:"45"`
	PasswordResetRequestsPerHour uint16                `env:"PASSWORD_RESET_REQUESTS_PER_HOUR" envDefault:"3"`
	PasswordResetSweepPeriod     time.Duration         `env:"PASSWORD_RESET_SWEEP_PERIOD" envDefault:"15m"`
	NotificationTransport        NotificationTransport `env:"NOTIFICATION_TRANSPORT" envDefault:"ses"`

	AwsRegion                     string  `env:"AWS_REGION" envDefault:"eu-central-1"`
	AwsAccessKey                  string  `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string  `env:"AWS_SECRET_KEY"`
	AwsEmailSender                string  `env:"AWS_EMAIL_SENDER"`
	AwsEmailPasswordResetTemplate string  `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"password-reset"`
	AwsEmailPasswordResetBaseUrl  url.URL `env:"AWS_EMAIL_PASSWORD_RESET_BASE_URL" envDefault:"http://localhost:3000/reset-password"`
}

func (c *Config) PasswordResetTokenTTL() time.Duration {
	return time.Duration(c.PasswordResetTokenTTLMinutes) * time.Minute
}

func (c *Config) validate() error {
	if c.PasswordResetTokenTTLMinutes <= 0 {
		return fmt.Errorf("PASSWORD_RESET_TOKEN_TTL_MINUTES must be positive")
	}
	if c.PasswordResetRequestsPerHour == 0 {
		return fmt.Errorf("PASSWORD_RESET_REQUESTS_PER_HOUR must be positive")
	}
	if c.PasswordResetSweepPeriod <= 0 {
		return fmt.Errorf("PASSWORD_RESET_SWEEP_PERIOD must be positive")
	}

	switch c.NotificationTransport {
	case NotificationTransportSES:
		if c.AwsEmailSender == "" {
			return fmt.Errorf("AWS_EMAIL_SENDER must be set for %q notification transport", c.NotificationTransport)
		}
	case NotificationTransportRabbitmq:
		if c.RabbitmqURL == "" {
			return fmt.Errorf("RABBITMQ_URL must be set for %q notification transport", c.NotificationTransport)
		}
	case NotificationTransportLog:
	default:
		return fmt.Errorf("unknown NOTIFICATION_TRANSPORT %q", c.NotificationTransport)
	}
	return nil
}

func Load() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}
