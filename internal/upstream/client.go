package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client talks to the platform API. It is a thin typed wrapper: every call is
// one request, errors are returned to the caller, nothing is retried.
type Client struct {
	BaseURL    string
	HttpClient *http.Client

	// Client-side throttle so a burst of dashboard traffic cannot hammer the
	// platform API.
	limiter *rate.Limiter
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HttpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(50), 100),
	}
}

// apiError carries the upstream message for non-2xx business responses.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

// ErrorMessage extracts the user-facing string for a failed call, with a
// fallback when the upstream body carried no message.
func ErrorMessage(err error, fallback string) string {
	var ae *apiError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// doJSON issues one request with an optional JSON body and decodes the
// response into out. A non-2xx status is returned as *apiError with the
// upstream message when the body parses.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		// The platform expects the raw token, no Bearer prefix.
		req.Header.Set("Authorization", token)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ae := &apiError{Status: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &envelope) == nil {
			ae.Message = envelope.Message
		}
		return ae
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}
