package echo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	app "github.com/YaRavva/Fiction-Library-sub007/internal/application/library"
	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	httpecho "github.com/YaRavva/Fiction-Library-sub007/internal/interfaces/http/echo"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeRunSync struct {
	result domain.SyncResult
	err    error
	got    app.RunSyncInput
}

func (f *fakeRunSync) Execute(ctx context.Context, in app.RunSyncInput) (domain.SyncResult, error) {
	f.got = in
	if in.BatchSize <= 0 {
		return domain.SyncResult{}, fmt.Errorf("%w: %d", app.ErrInvalidBatchSize, in.BatchSize)
	}
	if f.err != nil {
		return domain.SyncResult{}, f.err
	}
	return f.result, nil
}

func (f *fakeRunSync) Jobs() []string {
	return []string{"covers", "descriptions"}
}

func newSyncServer(uc app.RunSync) *echo.Echo {
	logger, _ := test.NewNullLogger()
	e := echo.New()
	httpecho.RegisterRoutes(e, httpecho.NewSyncHandler(uc, 50, logger), nil)
	return e
}

func postSync(e *echo.Echo, job string, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/"+job, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSyncHandlerSuccessWithFailures(t *testing.T) {
	t.Parallel()

	uc := &fakeRunSync{result: domain.SyncResult{
		RunID:     "run-1",
		Job:       "covers",
		Attempted: 3,
		Succeeded: 2,
		Failed:    1,
		Failures:  []domain.ItemFailure{{ItemID: "b2", Reason: "file not found"}},
	}}

	rec := postSync(newSyncServer(uc), "covers", `{"batch_size":3}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if uc.got.Job != "covers" || uc.got.BatchSize != 3 {
		t.Fatalf("unexpected input: %+v", uc.got)
	}

	var got struct {
		Data struct {
			Job       string `json:"job"`
			Attempted int    `json:"attempted"`
			Failed    int    `json:"failed"`
			Failures  []struct {
				ItemID string `json:"item_id"`
				Reason string `json:"reason"`
			} `json:"failures"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	if got.Data.Attempted != 3 || got.Data.Failed != 1 || len(got.Data.Failures) != 1 {
		t.Fatalf("unexpected payload: %+v", got.Data)
	}
	if got.Data.Failures[0].ItemID != "b2" {
		t.Fatalf("unexpected failure: %+v", got.Data.Failures[0])
	}
}

func TestSyncHandlerDefaultBatchSize(t *testing.T) {
	t.Parallel()

	uc := &fakeRunSync{result: domain.SyncResult{Job: "covers"}}
	rec := postSync(newSyncServer(uc), "covers", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if uc.got.BatchSize != 50 {
		t.Fatalf("expected default batch size 50, got %d", uc.got.BatchSize)
	}
}

func TestSyncHandlerInvalidBatchSize(t *testing.T) {
	t.Parallel()

	rec := postSync(newSyncServer(&fakeRunSync{}), "covers", `{"batch_size":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSyncHandlerBadJSON(t *testing.T) {
	t.Parallel()

	rec := postSync(newSyncServer(&fakeRunSync{}), "covers", `{"batch_size":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSyncHandlerUnknownJob(t *testing.T) {
	t.Parallel()

	rec := postSync(newSyncServer(&fakeRunSync{err: app.ErrUnknownJob}), "posters", `{"batch_size":1}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSyncHandlerFatalError(t *testing.T) {
	t.Parallel()

	rec := postSync(newSyncServer(&fakeRunSync{err: fmt.Errorf("%w: %v", app.ErrSelectBatch, errors.New("db down"))}), "covers", `{"batch_size":1}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestSyncHandlerListJobs(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync", nil)
	rec := httptest.NewRecorder()
	newSyncServer(&fakeRunSync{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	if len(got.Data) != 2 || got.Data[0] != "covers" {
		t.Fatalf("unexpected jobs: %v", got.Data)
	}
}
