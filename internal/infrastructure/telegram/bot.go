package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultAPIURL   = "https://api.telegram.org"
	maxDownloadSize = 50 << 20
	pollTimeout     = 30

	defaultRetryDelay = 3 * time.Second
)

var ErrFileNotFound = errors.New("telegram file not found")

// APIError is returned when the Bot API answers with ok=false.
type APIError struct {
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram api error %d: %s", e.Code, e.Description)
}

// Limiter is satisfied by *rate.Limiter.
type Limiter interface {
	Wait(ctx context.Context) error
}

type BotClient struct {
	apiURL     string
	token      string
	httpClient *http.Client
	scrubber   *strings.Replacer
	limiter    Limiter
	retryDelay time.Duration
}

func NewBotClient(apiURL, token string, httpClient *http.Client) *BotClient {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: (pollTimeout + 10) * time.Second}
	}
	return &BotClient{
		apiURL:     strings.TrimRight(apiURL, "/"),
		token:      token,
		httpClient: httpClient,
		scrubber:   strings.NewReplacer(token, "[TOKEN]"),
		retryDelay: defaultRetryDelay,
	}
}

// WithLimiter makes every request, including file downloads and update
// polls, wait on l first.
func (c *BotClient) WithLimiter(l Limiter) *BotClient {
	c.limiter = l
	return c
}

// WithRetryDelay sets the pause between failed update polls.
func (c *BotClient) WithRetryDelay(d time.Duration) *BotClient {
	if d > 0 {
		c.retryDelay = d
	}
	return c
}

func (c *BotClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

func (c *BotClient) Invoke(ctx context.Context, method string, params any, result any) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	if params == nil {
		params = struct{}{}
	}
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal %s params: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/bot"+c.token+"/"+method, bytes.NewReader(body))
	if err != nil {
		return c.scrub(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.scrub(err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode %s response (status %d): %w", method, resp.StatusCode, err)
	}
	if !out.OK {
		return &APIError{Code: out.ErrorCode, Description: out.Description}
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(out.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// Subscribe long-polls getUpdates. Failed polls are retried after a pause;
// it returns when ctx is done or Telegram rejects the token.
func (c *BotClient) Subscribe(ctx context.Context, handler func(Update)) error {
	var offset int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var raw []json.RawMessage
		err := c.Invoke(ctx, "getUpdates", map[string]any{
			"offset":  offset,
			"timeout": pollTimeout,
		}, &raw)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if isPermanent(err) {
				return fmt.Errorf("get updates: %w", err)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
			continue
		}

		for _, r := range raw {
			var head struct {
				UpdateID int64 `json:"update_id"`
			}
			if err := json.Unmarshal(r, &head); err != nil {
				continue
			}
			handler(Update{ID: head.UpdateID, Raw: r})
			if head.UpdateID >= offset {
				offset = head.UpdateID + 1
			}
		}
	}
}

// DownloadFile fetches the contents of a file path returned by getFile.
func (c *BotClient) DownloadFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/file/bot"+c.token+"/"+strings.TrimLeft(filePath, "/"), nil)
	if err != nil {
		return nil, c.scrub(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.scrub(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrFileNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadSize+1))
	if err != nil {
		return nil, c.scrub(err)
	}
	if len(data) > maxDownloadSize {
		return nil, fmt.Errorf("download file: larger than %d bytes", maxDownloadSize)
	}
	return data, nil
}

// isPermanent reports errors that retrying getUpdates cannot fix: a bad
// token or a webhook that conflicts with polling.
func isPermanent(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusConflict:
		return true
	}
	return false
}

func (c *BotClient) scrub(err error) error {
	if c.token == "" {
		return err
	}
	return errors.New(c.scrubber.Replace(err.Error()))
}
