package urlservice

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

	log "github.com/sirupsen/logrus"

	"dschema/internal/domain"
)

// GetURLPath is the endpoint path of the URL-generation service
const GetURLPath = "/api/v1/getUrl/"

const maxResponseBytes = 64 << 10

var (
	// ErrUnexpectedStatus is returned for any non-2xx response
	ErrUnexpectedStatus = errors.New("unexpected status from url service")
	// ErrMalformedResponse is returned when the body is not {"url": "<non-empty>"}
	ErrMalformedResponse = errors.New("malformed response from url service")
)

// Client turns a subscription request into a calendar URL
type Client interface {
	GenerateURL(ctx context.Context, req domain.SubscriptionRequest) (string, error)
}

type getURLResponse struct {
	URL *string `json:"url"`
}

// HTTPClient talks to the URL-generation service over HTTP
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the service rooted at baseURL.
// A zero timeout falls back to 15 seconds.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the absolute URL requests are posted to
func (c *HTTPClient) Endpoint() string {
	return c.baseURL + GetURLPath
}

// GenerateURL posts req and returns the https calendar URL from the response
func (c *HTTPClient) GenerateURL(ctx context.Context, req domain.SubscriptionRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	log.WithFields(log.Fields{
		"group":   req.Group,
		"courses": len(req.Courses),
	}).Debug("requesting calendar url")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to reach url service: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	var decoded getURLResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if decoded.URL == nil || *decoded.URL == "" {
		return "", fmt.Errorf("%w: missing url", ErrMalformedResponse)
	}

	return *decoded.URL, nil
}
