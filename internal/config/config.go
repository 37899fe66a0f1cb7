package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingConfig = errors.New("required configuration is missing")

type Config struct {
	DatabaseURL string

	LogLevel  string
	LogFormat string

	BatchSize     int
	ItemTimeout   time.Duration
	BatchDeadline time.Duration

	TelegramBotToken  string
	TelegramAPIURL    string
	TelegramRPS       float64
	TelegramCachePath string

	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3CoversBucket    string
	S3BooksBucket     string

	MetadataBaseURL string
	MetadataDir     string

	RabbitMQURL      string
	RabbitMQExchange string

	HTTPPort string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("SYNC_BATCH_SIZE", 50)
	v.SetDefault("SYNC_ITEM_TIMEOUT", "30s")
	v.SetDefault("SYNC_BATCH_DEADLINE", "10m")
	v.SetDefault("TELEGRAM_API_URL", "https://api.telegram.org")
	v.SetDefault("TELEGRAM_RPS", 1.0)
	v.SetDefault("TELEGRAM_CACHE_PATH", "telegram-files.bolt")
	v.SetDefault("S3_ENDPOINT", "https://s3.cloud.ru")
	v.SetDefault("S3_REGION", "ru-central-1")
	v.SetDefault("S3_COVERS_BUCKET", "covers")
	v.SetDefault("S3_BOOKS_BUCKET", "books")
	v.SetDefault("RABBITMQ_EXCHANGE", "library")
	v.SetDefault("PORT", "8080")
}

// Load reads configuration from the environment, overlaid on an optional
// .env file at envFile. A missing file is not an error.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := &Config{
		DatabaseURL:       v.GetString("DATABASE_URL"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		BatchSize:         v.GetInt("SYNC_BATCH_SIZE"),
		ItemTimeout:       v.GetDuration("SYNC_ITEM_TIMEOUT"),
		BatchDeadline:     v.GetDuration("SYNC_BATCH_DEADLINE"),
		TelegramBotToken:  v.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramAPIURL:    strings.TrimRight(v.GetString("TELEGRAM_API_URL"), "/"),
		TelegramRPS:       v.GetFloat64("TELEGRAM_RPS"),
		TelegramCachePath: v.GetString("TELEGRAM_CACHE_PATH"),
		S3Endpoint:        v.GetString("S3_ENDPOINT"),
		S3Region:          v.GetString("S3_REGION"),
		S3AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
		S3CoversBucket:    v.GetString("S3_COVERS_BUCKET"),
		S3BooksBucket:     v.GetString("S3_BOOKS_BUCKET"),
		MetadataBaseURL:   strings.TrimRight(v.GetString("METADATA_BASE_URL"), "/"),
		MetadataDir:       v.GetString("METADATA_DIR"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		RabbitMQExchange:  v.GetString("RABBITMQ_EXCHANGE"),
		HTTPPort:          v.GetString("PORT"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingConfig)
	}

	return cfg, nil
}

// RequireTelegram checks the settings needed by jobs that download from
// Telegram and upload to object storage.
func (c *Config) RequireTelegram() error {
	var missing []string
	if c.TelegramBotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if c.S3AccessKeyID == "" {
		missing = append(missing, "S3_ACCESS_KEY_ID")
	}
	if c.S3SecretAccessKey == "" {
		missing = append(missing, "S3_SECRET_ACCESS_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) RequireMetadata() error {
	if c.MetadataBaseURL == "" && c.MetadataDir == "" {
		return fmt.Errorf("%w: METADATA_BASE_URL or METADATA_DIR", ErrMissingConfig)
	}
	return nil
}
