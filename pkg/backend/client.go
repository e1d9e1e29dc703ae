// Package backend implements the client for the bug-tracking REST API.
// Requests carry the internal auth token and are retried with
// exponential backoff on server and network failures; 4xx responses
// are terminal.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/bugs"
	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/config"
)

// Client defines the interface for backend bug-tracking operations
// This enables dependency injection and testing with mock implementations
type Client interface {
	CreateBug(ctx context.Context, draft *bugs.Draft) (*CreateBugResponse, error)
	ListUserBugs(ctx context.Context, telegramUserID int64, limit int) ([]bugs.Bug, error)
	GetBug(ctx context.Context, bugID string) (*bugs.Bug, error)
	GetStats(ctx context.Context) (*bugs.Stats, error)
	UpdateBugStatus(ctx context.Context, bugID string, status bugs.Status, assignee string) (*UpdateBugResponse, error)
}

// AttemptObserver receives a callback per request attempt. Used to feed
// metrics without coupling this package to a metrics registry.
type AttemptObserver interface {
	ObserveAttempt(method, path string, statusCode int, err error)
}

// HTTPClient implements the Client interface over net/http
type HTTPClient struct {
	baseURL       string
	internalToken string
	httpClient    *http.Client

	maxRetries   int
	retryDelay   time.Duration
	retryBackoff float64

	observer AttemptObserver
}

// NewClient creates a backend client from configuration
func NewClient(cfg *config.Config) *HTTPClient {
	return &HTTPClient{
		baseURL:       strings.TrimRight(cfg.BackendAPIURL, "/"),
		internalToken: cfg.BackendInternalToken,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		maxRetries:   cfg.MaxRetries,
		retryDelay:   cfg.RetryDelay,
		retryBackoff: cfg.RetryBackoff,
	}
}

// NewClientWithObserver creates a backend client that reports each
// request attempt to the given observer
func NewClientWithObserver(cfg *config.Config, observer AttemptObserver) *HTTPClient {
	client := NewClient(cfg)
	client.observer = observer
	return client
}

// CreateBugResponse is the backend's answer to POST /bugs/. The backend
// has returned the bug id both at the root and nested under data, so
// both shapes are accepted.
type CreateBugResponse struct {
	BugID  string       `json:"bug_id,omitempty"`
	ID     string       `json:"id,omitempty"`
	Status string       `json:"status,omitempty"`
	Data   *createdData `json:"data,omitempty"`
}

type createdData struct {
	BugID  string `json:"bug_id,omitempty"`
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
}

// Key returns the created bug's identifier wherever the backend put it
func (r *CreateBugResponse) Key() string {
	if r.BugID != "" {
		return r.BugID
	}
	if r.Data != nil && r.Data.BugID != "" {
		return r.Data.BugID
	}
	if r.ID != "" {
		return r.ID
	}
	if r.Data != nil && r.Data.ID != "" {
		return r.Data.ID
	}
	return "UNKNOWN"
}

// CreatedStatus returns the created bug's status, defaulting to OPEN
func (r *CreateBugResponse) CreatedStatus() string {
	if r.Data != nil && r.Data.Status != "" {
		return r.Data.Status
	}
	if r.Status != "" {
		return r.Status
	}
	return string(bugs.StatusOpen)
}

// UpdateBugResponse is the backend's answer to PATCH /bugs/{id}
type UpdateBugResponse struct {
	Status  string       `json:"status,omitempty"`
	FixedAt string       `json:"fixed_at,omitempty"`
	Data    *updatedData `json:"data,omitempty"`
}

type updatedData struct {
	Status  string `json:"status,omitempty"`
	FixedAt string `json:"fixed_at,omitempty"`
}

// FixedTimestamp returns the fixed_at timestamp if the backend set one
func (r *UpdateBugResponse) FixedTimestamp() string {
	if r.Data != nil && r.Data.FixedAt != "" {
		return r.Data.FixedAt
	}
	return r.FixedAt
}

// CreateBug submits a completed draft as a new bug report
func (h *HTTPClient) CreateBug(ctx context.Context, draft *bugs.Draft) (*CreateBugResponse, error) {
	if err := draft.Validate(); err != nil {
		return nil, &BackendError{
			Type:    "client_error",
			Message: fmt.Sprintf("draft is not submittable: %v", err),
			Err:     err,
		}
	}

	log.WithField("title", draft.Title).Info("Creating bug")

	raw, err := h.doRequest(ctx, http.MethodPost, "/bugs/", draft, nil)
	if err != nil {
		return nil, err
	}

	response := &CreateBugResponse{}
	if err := json.Unmarshal(raw, response); err != nil {
		return nil, h.parseError(err)
	}
	return response, nil
}

// ListUserBugs fetches the most recent bugs reported by a Telegram user
func (h *HTTPClient) ListUserBugs(ctx context.Context, telegramUserID int64, limit int) ([]bugs.Bug, error) {
	log.WithField("user_id", telegramUserID).Info("Fetching user bugs")

	query := url.Values{}
	query.Set("reporter.telegram_id", strconv.FormatInt(telegramUserID, 10))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("sort", "-created_at") // most recent first

	raw, err := h.doRequest(ctx, http.MethodGet, "/bugs/", nil, query)
	if err != nil {
		return nil, err
	}

	return decodeBugList(raw)
}

// GetBug fetches a single bug by its identifier
func (h *HTTPClient) GetBug(ctx context.Context, bugID string) (*bugs.Bug, error) {
	log.WithField("bug_id", bugID).Info("Fetching bug")

	raw, err := h.doRequest(ctx, http.MethodGet, "/bugs/"+url.PathEscape(bugID), nil, nil)
	if err != nil {
		return nil, err
	}

	// Tolerate both a bare record and a {data:{...}} envelope
	var envelope struct {
		Data *bugs.Bug `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil && envelope.Data.Key() != "UNKNOWN" {
		return envelope.Data, nil
	}

	bug := &bugs.Bug{}
	if err := json.Unmarshal(raw, bug); err != nil {
		return nil, h.parseError(err)
	}
	return bug, nil
}

// GetStats fetches the aggregate bug statistics
func (h *HTTPClient) GetStats(ctx context.Context) (*bugs.Stats, error) {
	log.Info("Fetching bug statistics")

	raw, err := h.doRequest(ctx, http.MethodGet, "/bugs/stats", nil, nil)
	if err != nil {
		return nil, err
	}

	stats := &bugs.Stats{}
	if err := json.Unmarshal(raw, stats); err != nil {
		return nil, h.parseError(err)
	}
	return stats, nil
}

// UpdateBugStatus updates a bug's status and optionally its assignee
func (h *HTTPClient) UpdateBugStatus(ctx context.Context, bugID string, status bugs.Status, assignee string) (*UpdateBugResponse, error) {
	log.WithFields(log.Fields{
		"bug_id": bugID,
		"status": status,
	}).Info("Updating bug status")

	body := map[string]string{"status": string(status)}
	if assignee != "" {
		body["assignee"] = assignee
	}

	raw, err := h.doRequest(ctx, http.MethodPatch, "/bugs/"+url.PathEscape(bugID), body, nil)
	if err != nil {
		return nil, err
	}

	response := &UpdateBugResponse{}
	if err := json.Unmarshal(raw, response); err != nil {
		return nil, h.parseError(err)
	}
	return response, nil
}

// doRequest performs one backend call with the retry policy: up to
// maxRetries attempts, waiting retryDelay * retryBackoff^attempt
// between them. A 4xx response is terminal and never retried.
func (h *HTTPClient) doRequest(ctx context.Context, method, path string, body interface{}, query url.Values) (json.RawMessage, error) {
	fullURL := h.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &BackendError{
				Type:    "client_error",
				Message: fmt.Sprintf("failed to encode request body: %v", err),
				Err:     err,
			}
		}
		payload = encoded
	}

	var result json.RawMessage
	attempt := 0

	operation := func() error {
		attempt++
		raw, statusCode, err := h.attempt(ctx, method, fullURL, payload)

		if h.observer != nil {
			h.observer.ObserveAttempt(method, path, statusCode, err)
		}

		if err != nil {
			var backendErr *BackendError
			if errors.As(err, &backendErr) && backendErr.Type == "client_error" {
				// 4xx is presumed invalid; retrying cannot help
				return backoff.Permanent(err)
			}
			log.WithFields(log.Fields{
				"method":  method,
				"url":     fullURL,
				"attempt": fmt.Sprintf("%d/%d", attempt, h.maxRetries),
			}).WithError(err).Error("Backend request attempt failed")
			return err
		}

		result = raw
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = h.retryDelay
	policy.Multiplier = h.retryBackoff
	policy.RandomizationFactor = 0 // deterministic schedule
	policy.MaxInterval = 24 * time.Hour
	policy.MaxElapsedTime = 0
	policy.Reset()

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(h.maxRetries-1)), ctx))
	if err != nil {
		var backendErr *BackendError
		if errors.As(err, &backendErr) {
			if backendErr.Type == "client_error" {
				return nil, backendErr
			}
			return nil, &BackendError{
				Type:       backendErr.Type,
				StatusCode: backendErr.StatusCode,
				Message:    fmt.Sprintf("%s after %d attempts", backendErr.Message, attempt),
				Err:        backendErr.Err,
			}
		}
		return nil, &BackendError{
			Type:    "network_error",
			Message: fmt.Sprintf("request failed after %d attempts: %v", attempt, err),
			Err:     err,
		}
	}

	return result, nil
}

// attempt performs a single HTTP request and classifies the outcome.
// The returned status code is 0 when no HTTP exchange completed.
func (h *HTTPClient) attempt(ctx context.Context, method, fullURL string, payload []byte) (json.RawMessage, int, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, 0, &BackendError{
			Type:    "client_error",
			Message: fmt.Sprintf("failed to create request: %v", err),
			Err:     err,
		}
	}

	req.Header.Set("X-Internal-Token", h.internalToken)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, 0, &BackendError{
			Type:    "network_error",
			Message: fmt.Sprintf("request failed: %v", err),
			Err:     err,
		}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &BackendError{
			Type:    "network_error",
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Err:     err,
		}
	}

	log.WithFields(log.Fields{
		"method": method,
		"url":    fullURL,
		"status": resp.StatusCode,
	}).Info("Backend request")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return responseBody, resp.StatusCode, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, resp.StatusCode, &BackendError{
			Type:       "client_error",
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("client error: %d - %s", resp.StatusCode, summarizeBody(responseBody)),
		}
	default:
		return nil, resp.StatusCode, &BackendError{
			Type:       "server_error",
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("server error: %d", resp.StatusCode),
		}
	}
}

func (h *HTTPClient) parseError(err error) *BackendError {
	return &BackendError{
		Type:    "parse_error",
		Message: fmt.Sprintf("malformed backend response: %v", err),
		Err:     err,
	}
}

// decodeBugList accepts the three list shapes the backend has been
// observed to return: a bare array, {data:[...]}, or {bugs:[...]}.
// Anything else is a malformed response, not an empty list.
func decodeBugList(raw json.RawMessage) ([]bugs.Bug, error) {
	var list []bugs.Bug
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var envelope struct {
		Data []bugs.Bug `json:"data"`
		Bugs []bugs.Bug `json:"bugs"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Data != nil {
			return envelope.Data, nil
		}
		if envelope.Bugs != nil {
			return envelope.Bugs, nil
		}
	}

	log.WithField("body", summarizeBody(raw)).Warn("Unexpected bug list response format")
	return nil, &BackendError{
		Type:    "parse_error",
		Message: fmt.Sprintf("malformed backend response: unrecognized bug list format: %s", summarizeBody(raw)),
	}
}

// summarizeBody truncates a response body for error messages and logs
func summarizeBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if runes := []rune(text); len(runes) > 200 {
		return string(runes[:200]) + "..."
	}
	return text
}
