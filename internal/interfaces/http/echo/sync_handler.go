package echo

import (
	"errors"
	"net/http"
	"time"

	app "github.com/YaRavva/Fiction-Library-sub007/internal/application/library"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type SyncHandler struct {
	useCase          app.RunSync
	defaultBatchSize int
	logger           logrus.FieldLogger
}

type runSyncRequest struct {
	BatchSize *int `json:"batch_size"`
}

func NewSyncHandler(useCase app.RunSync, defaultBatchSize int, logger logrus.FieldLogger) *SyncHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SyncHandler{useCase: useCase, defaultBatchSize: defaultBatchSize, logger: logger}
}

// RunSync runs one batch synchronously. Per-item failures are part of a 200
// response; only a fatal run error produces a 500.
func (h *SyncHandler) RunSync(c echo.Context) error {
	var req runSyncRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "bad_request",
				Message: "invalid request body",
			}})
		}
	}

	batchSize := h.defaultBatchSize
	if req.BatchSize != nil {
		batchSize = *req.BatchSize
	}

	started := time.Now()
	result, err := h.useCase.Execute(c.Request().Context(), app.RunSyncInput{
		Job:       c.Param("job"),
		BatchSize: batchSize,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidBatchSize) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_batch_size",
				Message: "batch_size must be a positive integer",
			}})
		}
		if errors.Is(err, app.ErrUnknownJob) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "unknown_job",
				Message: "job not found",
			}})
		}

		h.logger.WithField("job", c.Param("job")).Errorf("sync run failed: %v", err)
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "sync run failed",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: toSyncResultResponse(result, time.Since(started))})
}

func (h *SyncHandler) ListJobs(c echo.Context) error {
	return c.JSON(http.StatusOK, apiResponse{Data: h.useCase.Jobs()})
}
