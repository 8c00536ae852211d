package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/yildizm/storefront/internal/logger"
)

const (
	readAllPath    = "/get-product"
	byCategoryPath = "/product/category"

	// RequestIDHeader carries the per-request id to the catalog service
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody bounds how much of a failed response is read
	maxErrorBody = 64 * 1024
)

// HTTPSource talks to the catalog service over JSON/HTTP
type HTTPSource struct {
	baseURL *url.URL
	client  *http.Client
	log     *logger.Logger
}

// categoryRequest is the body of a read-by-category request
type categoryRequest struct {
	Category Category `json:"category"`
}

// NewHTTPSource creates a source for the service at baseURL
func NewHTTPSource(baseURL string, client *http.Client, log *logger.Logger) (*HTTPSource, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("catalog base URL is required")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid catalog base URL %q: scheme must be http or https", baseURL)
	}

	if client == nil {
		client = &http.Client{}
	}
	if log == nil {
		log = logger.Nop()
	}

	return &HTTPSource{
		baseURL: u,
		client:  client,
		log:     log.WithComponent("catalog-http"),
	}, nil
}

// Name returns the source name
func (s *HTTPSource) Name() string {
	return "http"
}

// Fetch issues the read-all or read-by-category request for filter
func (s *HTTPSource) Fetch(ctx context.Context, filter Filter) ([]Product, error) {
	req, err := s.newRequest(ctx, filter)
	if err != nil {
		return nil, NewFetchErrorWithCause(KindNetwork, "failed to create request", filter, err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	s.log.DebugWithFields("sending catalog request", []logger.Field{
		logger.F("method", req.Method),
		logger.F("url", req.URL.String()),
		logger.RequestID(requestID),
	})

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewFetchErrorWithCause(KindTimeout, "request timed out", filter, err)
		}
		return nil, NewFetchErrorWithCause(KindNetwork, "request failed", filter, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, s.statusError(resp, filter)
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, NewFetchErrorWithCause(KindMalformed, "failed to decode response", filter, err)
	}

	return decodeEnvelope(&env, filter)
}

// newRequest builds the HTTP request matching filter
func (s *HTTPSource) newRequest(ctx context.Context, filter Filter) (*http.Request, error) {
	if filter.IsAll() {
		endpoint := s.baseURL.JoinPath(readAllPath)
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	}

	body, err := json.Marshal(categoryRequest{Category: filter.Category()})
	if err != nil {
		return nil, err
	}

	endpoint := s.baseURL.JoinPath(byCategoryPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// statusError turns a non-2xx response into an application error, keeping
// the service's message when the body is a failure envelope.
func (s *HTTPSource) statusError(resp *http.Response, filter Filter) *FetchError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
	var env Envelope
	if json.Unmarshal(body, &env) == nil && env.Message != "" {
		message = env.Message
	}

	fe := NewFetchError(KindApplication, message, filter)
	fe.StatusCode = resp.StatusCode
	return fe
}
