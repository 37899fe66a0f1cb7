// Package metadata fetches book descriptions from a JSON metadata service.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
)

var ErrNotFound = errors.New("metadata not found")

// HTTPSource requests GET {baseURL}/books/{ref} and expects a JSON object
// with a "description" field.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

func NewHTTPSource(baseURL string, httpClient *http.Client) *HTTPSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		userAgent:  "fiction-library-sync/1.0",
	}
}

type bookMetadata struct {
	Description string `json:"description"`
}

func (s *HTTPSource) Fetch(ctx context.Context, item domain.WorkItem) (string, error) {
	ref := strings.TrimSpace(item.SourceRef)
	if ref == "" {
		return "", fmt.Errorf("%w: empty source ref", ErrNotFound)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/books/"+url.PathEscape(ref), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("metadata %s: unexpected status %d", ref, resp.StatusCode)
	}

	var meta bookMetadata
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&meta); err != nil {
		return "", fmt.Errorf("decode metadata %s: %w", ref, err)
	}
	return strings.TrimSpace(meta.Description), nil
}
