package fraud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client exposes the fraud screening collaborator: a risk score in [0,1]
// for one checkout attempt. Callers decide what to do with the score; this
// client only reports it.
type Client interface {
	Score(ctx context.Context, email, token string) (float64, error)
}

// HTTPClient implements Client via the screening service's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	secret     string
	httpClient *http.Client
	logger     *slog.Logger
}

type assessRequest struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

type assessResponse struct {
	Score float64 `json:"score"`
}

// NewHTTPClient creates the screening client with a bounded timeout.
func NewHTTPClient(baseURL, secret string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse screening url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("screening url must be absolute")
	}
	return &HTTPClient{
		baseURL:    parsed,
		secret:     secret,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Score submits the checkout token for assessment.
func (c *HTTPClient) Score(ctx context.Context, email, token string) (float64, error) {
	body, err := json.Marshal(assessRequest{Token: token, Email: email})
	if err != nil {
		return 0, err
	}

	endpoint := c.baseURL.JoinPath("/v1/assess")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set("Authorization", "Bearer "+c.secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("screening request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return 0, fmt.Errorf("screening error: %s", resp.Status)
	}

	var data assessResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, err
	}
	return data.Score, nil
}

// Disabled is the no-op screener used when no screening service is configured.
// It always reports the maximum score, so every checkout proceeds.
type Disabled struct{}

// Score always passes.
func (Disabled) Score(context.Context, string, string) (float64, error) {
	return 1, nil
}
