package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPRemote calls an externally hosted inference endpoint that accepts raw
// image bytes and responds with {"label": "..."}.
type HTTPRemote struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type HTTPOption func(*HTTPRemote)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(r *HTTPRemote) { r.httpClient = c }
}

func NewHTTPRemote(endpoint, apiKey string, opts ...HTTPOption) *HTTPRemote {
	r := &HTTPRemote{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *HTTPRemote) Classify(ctx context.Context, image []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", r.endpoint, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference service returned status %d", resp.StatusCode)
	}

	var body struct {
		Label string `json:"label"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode inference response: %w", err)
	}
	if body.Label == "" {
		return "", fmt.Errorf("inference response missing label")
	}
	return body.Label, nil
}
