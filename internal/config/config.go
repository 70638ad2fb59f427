package config

import (
	"net/url"

	"github.com/caarlos0/env/v6"
)

// NotificationMode selects how medication reminders leave the process.
type NotificationMode string

const (
	// Reminders are pushed to the user's open SSE stream.
	NotificationModeForeground NotificationMode = "foreground"
	// Reminders are queued for the email worker.
	NotificationModeBackground NotificationMode = "background"
	// Reminders are logged and dropped.
	NotificationModeUnsupported NotificationMode = "unsupported"
)

type Config struct {
	Port       uint16 `env:"PORT" envDefault:"8080"`
	IsTestMode bool   `env:"TEST_MODE"`

	Secret        string `env:"SECRET,required"`
	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`
	RabbitmqURL   string `env:"RABBITMQ_URL,required"`

	NotificationMode       NotificationMode `env:"NOTIFICATION_MODE" envDefault:"foreground"`
	RabbitmqExchange       string           `env:"RABBITMQ_EXCHANGE" envDefault:"mindlog"`
	RabbitmqReminderQueue  string           `env:"RABBITMQ_REMINDER_QUEUE" envDefault:"reminder-email"`
	ReminderEmailRoutesKey string           `env:"RABBITMQ_REMINDER_ROUTING_KEY" envDefault:"reminder.email"`

	BcryptHasherCost                int `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDurationHours int `env:"PASSWORD_RESET_VALID_DURATION_HOURS" envDefault:"24"`

	AwsRegion                     string  `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey                  string  `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string  `env:"AWS_SECRET_KEY"`
	AwsEmailSender                string  `env:"AWS_EMAIL_SENDER"`
	AwsEmailPasswordResetTemplate string  `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE"`
	AwsEmailReminderTemplate      string  `env:"AWS_EMAIL_REMINDER_TEMPLATE"`
	PasswordResetBaseURL          url.URL `env:"PASSWORD_RESET_BASE_URL" envDefault:"http://localhost:8080/reset-password"`

	CompletionURL    string `env:"COMPLETION_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	CompletionAPIKey string `env:"COMPLETION_API_KEY"`

	SentryDsn      string   `env:"SENTRY_DSN"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}
