package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/randywick/gita/internal/idgen"
	"github.com/randywick/gita/internal/logging"
)

const mediaTypeV3 = "application/vnd.github.v3+json"

// MakeRequest sends an authenticated request to the API and returns the raw
// body and status code. A non-2xx status is not an error; only failures to
// build, send, or read the request are. MakeRequest does not wait for
// readiness.
func (s *Session) MakeRequest(ctx context.Context, method, path string, body []byte) (*Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", mediaTypeV3)
	if s.token != "" {
		req.Header.Set("Authorization", "token "+s.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID, _ := idgen.NewRequestID()
	log := s.logger.With("request_id", reqID, "method", method, "path", path)
	log.Debug("sending request")
	if body != nil {
		log.Log(ctx, logging.LevelSilly, "request body", "body", string(body))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	log.Debug("response received", "status", resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	log.Log(ctx, logging.LevelSilly, "end of response", "bytes", len(respBody), "body", string(respBody))
	return &Response{Body: respBody, StatusCode: resp.StatusCode}, nil
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func newAPIError(resp *Response) *APIError {
	var errResp struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(resp.Body, &errResp) == nil && errResp.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(resp.Body))}
}
