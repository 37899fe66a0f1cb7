package bootstrap_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YaRavva/Fiction-Library-sub007/internal/bootstrap"
	"github.com/YaRavva/Fiction-Library-sub007/internal/config"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/storage"
	"github.com/YaRavva/Fiction-Library-sub007/internal/infrastructure/telegram"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus/hooks/test"
)

func baseConfig() *config.Config {
	return &config.Config{
		DatabaseURL:    "postgres://localhost/library",
		BatchSize:      50,
		TelegramRPS:    1,
		S3CoversBucket: "covers",
		S3BooksBucket:  "books",
	}
}

func TestNewAppWithoutOptionalIntegrations(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	a := bootstrap.NewApp(baseConfig(), &bootstrap.Dependencies{Logger: logger})

	if got := a.RunSync.Jobs(); len(got) != 0 {
		t.Fatalf("expected no jobs, got %v", got)
	}
	for _, name := range []string{bootstrap.JobCovers, bootstrap.JobDescriptions, bootstrap.JobDownloads, bootstrap.Watch} {
		if err := a.Unavailable(name); !errors.Is(err, config.ErrMissingConfig) {
			t.Fatalf("expected ErrMissingConfig for %s, got %v", name, err)
		}
	}
	if a.Watcher != nil {
		t.Fatal("expected no watcher")
	}

	want := []string{bootstrap.SourceDownloadQueue, bootstrap.SourceSettings, bootstrap.SourceTelegramQueue}
	if diff := cmp.Diff(want, a.Inspect.Sources()); diff != "" {
		t.Fatalf("unexpected sources (-want +got):\n%s", diff)
	}
}

func TestNewAppDescriptionsFromDirectory(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.MetadataDir = t.TempDir()

	logger, _ := test.NewNullLogger()
	a := bootstrap.NewApp(cfg, &bootstrap.Dependencies{Logger: logger})

	if diff := cmp.Diff([]string{bootstrap.JobDescriptions}, a.RunSync.Jobs()); diff != "" {
		t.Fatalf("unexpected jobs (-want +got):\n%s", diff)
	}
	if err := a.Unavailable(bootstrap.JobDescriptions); err != nil {
		t.Fatalf("expected descriptions to be available, got %v", err)
	}
}

func TestNewAppTelegramJobs(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	deps := &bootstrap.Dependencies{
		Logger:   logger,
		Telegram: telegram.NewBotClient("http://127.0.0.1:0", "token", nil),
		Uploader: storage.NewS3UploaderFromConfig(aws.Config{Region: "ru-central-1"}, "http://127.0.0.1:0", true),
	}
	a := bootstrap.NewApp(baseConfig(), deps)

	want := []string{bootstrap.JobCovers, bootstrap.JobDownloads}
	if diff := cmp.Diff(want, a.RunSync.Jobs()); diff != "" {
		t.Fatalf("unexpected jobs (-want +got):\n%s", diff)
	}
	if a.Watcher == nil {
		t.Fatal("expected watcher")
	}
	if err := a.Unavailable(bootstrap.Watch); err != nil {
		t.Fatalf("expected watch to be available, got %v", err)
	}
}

func TestHTTPServerHealthz(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	a := bootstrap.NewApp(baseConfig(), &bootstrap.Dependencies{Logger: logger})
	server := bootstrap.NewHTTPServer(a.RunSync, a.Inspect, 50, logger)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/sync/covers", nil)
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unconfigured job, got %d", rec.Code)
	}
}
