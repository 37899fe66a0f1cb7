package echo

import (
	"time"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

type failureResponse struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

type syncResultResponse struct {
	RunID      string            `json:"run_id"`
	Job        string            `json:"job"`
	Attempted  int               `json:"attempted"`
	Succeeded  int               `json:"succeeded"`
	Failed     int               `json:"failed"`
	Failures   []failureResponse `json:"failures"`
	DurationMS int64             `json:"duration_ms"`
}

func toSyncResultResponse(result domain.SyncResult, elapsed time.Duration) syncResultResponse {
	out := syncResultResponse{
		RunID:      result.RunID,
		Job:        result.Job,
		Attempted:  result.Attempted,
		Succeeded:  result.Succeeded,
		Failed:     result.Failed,
		Failures:   make([]failureResponse, 0, len(result.Failures)),
		DurationMS: elapsed.Milliseconds(),
	}
	for _, f := range result.Failures {
		out.Failures = append(out.Failures, failureResponse{ItemID: f.ItemID, Reason: f.Reason})
	}
	return out
}
