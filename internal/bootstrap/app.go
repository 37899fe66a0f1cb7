package bootstrap

import (
	"fmt"

	app "github.com/YaRavva/Fiction-Library-sub007/internal/application/library"
	"github.com/YaRavva/Fiction-Library-sub007/internal/config"
	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/file"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/ingest"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/metadata"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/rabbitmq"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/repository"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/seed"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/telegram"
)

const (
	JobCovers       = "covers"
	JobDescriptions = "descriptions"
	JobDownloads    = "downloads"
	Watch           = "watch"

	SourceDownloadQueue = "download-queue"
	SourceTelegramQueue = "telegram-queue"
	SourceSettings      = "settings"
)

// App is the assembled set of use cases. Jobs whose configuration is
// missing are left out and reported by Unavailable.
type App struct {
	RunSync app.RunSync
	Inspect app.Inspect
	Watcher *app.QueueWatcher
	Seeder  *seed.BookSeeder

	unavailable map[string]error
}

func NewApp(cfg *config.Config, deps *Dependencies) *App {
	a := &App{unavailable: map[string]error{}}

	jobCfg := app.SyncJobConfig{
		ItemTimeout:   cfg.ItemTimeout,
		BatchDeadline: cfg.BatchDeadline,
		Logger:        deps.Logger,
	}
	if deps.RabbitCh != nil {
		jobCfg.Notifier = rabbitmq.NewNotifier(deps.RabbitCh, cfg.RabbitMQExchange)
	}

	var jobs []*app.SyncJob

	if err := cfg.RequireMetadata(); err == nil {
		var fetcher domain.Fetcher
		if cfg.MetadataBaseURL != "" {
			fetcher = metadata.NewHTTPSource(cfg.MetadataBaseURL, nil)
		} else {
			fetcher = file.NewLocalSource(cfg.MetadataDir)
		}
		jobs = append(jobs, app.NewSyncJob(JobDescriptions, repository.NewBookDescriptionRepository(deps.DB), fetcher, jobCfg))
	} else {
		a.unavailable[JobDescriptions] = err
	}

	if deps.Telegram != nil && deps.Uploader != nil {
		var cache telegram.PathCache
		if deps.FileCache != nil {
			cache = deps.FileCache
		}
		files := telegram.NewDownloader(deps.Telegram, deps.Telegram, cache)

		jobs = append(jobs,
			app.NewSyncJob(JobCovers, repository.NewBookCoverRepository(deps.DB),
				ingest.NewCoverFetcher(files, deps.Uploader, cfg.S3CoversBucket), jobCfg),
			app.NewSyncJob(JobDownloads, repository.NewDownloadQueueRepository(deps.Pool),
				ingest.NewFileFetcher(files, deps.Uploader, cfg.S3BooksBucket), jobCfg),
		)
		a.Watcher = app.NewQueueWatcher(telegram.NewDocumentFeed(deps.Telegram), repository.NewDownloadQueueRepository(deps.Pool), deps.Logger)
	} else {
		err := cfg.RequireTelegram()
		if err == nil {
			err = fmt.Errorf("%w: telegram client", config.ErrMissingConfig)
		}
		a.unavailable[JobCovers] = err
		a.unavailable[JobDownloads] = err
		a.unavailable[Watch] = err
	}

	a.RunSync = app.NewRunSync(jobs...)
	a.Inspect = app.NewInspect(
		app.NewQueryRunner(SourceDownloadQueue, repository.NewDownloadQueueRepository(deps.Pool)),
		app.NewQueryRunner(SourceTelegramQueue, repository.NewTelegramDownloadQueueRepository(deps.DB)),
		app.NewQueryRunner(SourceSettings, repository.NewSettingRepository(deps.DB)),
	)
	a.Seeder = seed.NewBookSeeder(deps.DB, 0)

	return a
}

// Unavailable returns the configuration error that kept name from being
// built, or nil.
func (a *App) Unavailable(name string) error {
	return a.unavailable[name]
}
