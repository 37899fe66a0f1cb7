package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/YaRavva/Fiction-Library-sub007/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestNewJSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(&buf, "debug", "json")
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}

	logger.WithField("job", "covers").Info("selected")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json output, got %q: %v", buf.String(), err)
	}
	if entry["job"] != "covers" || entry["msg"] != "selected" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	logger := logging.New(&bytes.Buffer{}, "loud", "text")
	if logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", logger.GetLevel())
	}
}

func TestLogError(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	logging.LogError(logger, "Database connection error", errors.New("refused"))

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected log entry")
	}
	if entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected error level, got %s", entry.Level)
	}
	if !strings.Contains(entry.Message, "Database connection error: refused") {
		t.Fatalf("unexpected message: %s", entry.Message)
	}
}
