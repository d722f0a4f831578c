package main

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT" validate:"required,numeric"`
	Environment string `mapstructure:"ENVIRONMENT" validate:"oneof=development staging production"`
	Version     string `mapstructure:"VERSION"`

	DBHost     string `mapstructure:"POSTGRES_HOST" validate:"required"`
	DBPort     string `mapstructure:"POSTGRES_PORT" validate:"required,numeric"`
	DBUser     string `mapstructure:"POSTGRES_USER" validate:"required"`
	DBPassword string `mapstructure:"POSTGRES_PASSWORD"`
	DBName     string `mapstructure:"POSTGRES_DB" validate:"required"`

	MailHost     string `mapstructure:"MAIL_HOST" validate:"required"`
	MailPort     int    `mapstructure:"MAIL_PORT" validate:"required,gt=0"`
	MailUser     string `mapstructure:"MAIL_USER"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER" validate:"required"`

	MQHost     string `mapstructure:"RABBITMQ_HOST" validate:"required"`
	MQPort     string `mapstructure:"RABBITMQ_PORT" validate:"required,numeric"`
	MQUser     string `mapstructure:"RABBITMQ_USER" validate:"required"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	LimiterEnabled bool    `mapstructure:"LIMITER_ENABLED"`
	LimiterRPS     float64 `mapstructure:"LIMITER_RPS" validate:"gte=0"`
	LimiterBurst   int     `mapstructure:"LIMITER_BURST" validate:"gte=0"`

	TokenCacheTTL  time.Duration `mapstructure:"TOKEN_CACHE_TTL"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH"`
}

var defaults = map[string]any{
	"PORT":              "4000",
	"ENVIRONMENT":       "development",
	"VERSION":           "1.0.0",
	"POSTGRES_PORT":     "5432",
	"MAIL_PORT":         587,
	"RABBITMQ_PORT":     "5672",
	"LIMITER_ENABLED":   true,
	"LIMITER_RPS":       2,
	"LIMITER_BURST":     4,
	"TOKEN_CACHE_TTL":   "5m",
	"MIGRATIONS_PATH":   "",
	"POSTGRES_PASSWORD": "",
	"MAIL_USER":         "",
	"MAIL_PASSWORD":     "",
	"RABBITMQ_PASSWORD": "",
}

// loadConfig reads the env file at path. Environment variables take precedence over the file.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
