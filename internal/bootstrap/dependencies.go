package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/YaRavva/Fiction-Library-sub007/internal/config"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/database"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/rabbitmq"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/storage"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/telegram"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Dependencies holds every long-lived client. Optional integrations are nil
// when their configuration is absent.
type Dependencies struct {
	Logger *logrus.Logger
	DB     *gorm.DB
	Pool   *pgxpool.Pool

	Telegram  *telegram.BotClient
	FileCache *telegram.LazyPathCache
	Uploader  *storage.S3Uploader

	RabbitConn *amqp.Connection
	RabbitCh   *amqp.Channel
}

func NewDependencies(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: logger}

	db, err := database.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	deps.DB = db

	pool, err := database.ConnectPool(ctx, cfg.DatabaseURL)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Pool = pool

	if err := cfg.RequireTelegram(); err == nil {
		if err := deps.connectTelegram(ctx, cfg); err != nil {
			deps.Close()
			return nil, err
		}
	} else {
		logger.Debugf("telegram jobs disabled: %v", err)
	}

	if cfg.RabbitMQURL != "" {
		ch, conn, err := rabbitmq.SetupRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to set up RabbitMQ: %w", err)
		}
		deps.RabbitCh = ch
		deps.RabbitConn = conn
	}

	return deps, nil
}

// connectTelegram builds the Bot API client and the uploader. The file path
// cache is opened lazily by the first download, and a cache that cannot be
// opened only disables caching.
func (d *Dependencies) connectTelegram(ctx context.Context, cfg *config.Config) error {
	d.FileCache = telegram.NewLazyPathCache(cfg.TelegramCachePath, telegram.DefaultPathTTL, func(err error) {
		d.Logger.Warnf("telegram file cache disabled: %v", err)
	})

	uploader, err := storage.NewS3Uploader(ctx, storage.S3Options{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		return err
	}
	d.Uploader = uploader
	// Every Bot API request, including update polls and file downloads,
	// shares one budget.
	d.Telegram = telegram.NewBotClient(cfg.TelegramAPIURL, cfg.TelegramBotToken, nil).
		WithLimiter(newLimiter(cfg.TelegramRPS))
	return nil
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

func (d *Dependencies) Close() error {
	var errs []error
	if d.RabbitCh != nil && d.RabbitConn != nil {
		errs = append(errs, rabbitmq.CloseRabbitMQ(d.RabbitCh, d.RabbitConn))
	}
	if d.FileCache != nil {
		errs = append(errs, d.FileCache.Close())
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
	if d.DB != nil {
		errs = append(errs, database.CloseDatabase(d.DB))
	}
	return errors.Join(errs...)
}
