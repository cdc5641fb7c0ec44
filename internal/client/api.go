// Package client implements the expense client: an HTTP API client with
// bounded timeouts and the application state the UI renders from.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"vaulttrack/internal/core"
)

// DefaultBaseURL is the fallback API endpoint when none is configured.
const DefaultBaseURL = "http://localhost:8080/api/expenses"

// DefaultTimeout bounds every outbound call. Timeouts surface as
// ErrTimeout, distinct from other network failures.
const DefaultTimeout = 10 * time.Second

// ErrTimeout marks an outbound call that exceeded its deadline.
var ErrTimeout = errors.New("request timed out")

// APIError is a non-2xx response decoded from the server's error payload.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// API talks to the expense service. The base URL is normalized by
// stripping a trailing slash.
type API struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

func NewAPI(baseURL string, timeout time.Duration) *API {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &API{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
	}
}

// BaseURL returns the normalized endpoint.
func (a *API) BaseURL() string {
	return a.baseURL
}

// List fetches the full expense collection, newest first.
func (a *API) List(ctx context.Context) ([]core.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, wrapTransportError("list expenses", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var expenses []core.Expense
	if err := json.NewDecoder(resp.Body).Decode(&expenses); err != nil {
		return nil, fmt.Errorf("decode expense list: %w", err)
	}
	return expenses, nil
}

// Create submits one expense and returns the server's canonical record.
func (a *API) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	payload := map[string]any{
		"title":       e.Title,
		"amount":      e.Amount.Cents,
		"category":    e.Category,
		"description": e.Description,
	}
	if !e.Date.IsZero() {
		payload["date"] = e.Date.Format("2006-01-02")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return core.Expense{}, fmt.Errorf("encode expense: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(body))
	if err != nil {
		return core.Expense{}, fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return core.Expense{}, wrapTransportError("create expense", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return core.Expense{}, decodeAPIError(resp)
	}

	var saved core.Expense
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return core.Expense{}, fmt.Errorf("decode created expense: %w", err)
	}
	return saved, nil
}

// Delete removes one expense by id. A missing id comes back as an
// *APIError with status 404.
func (a *API) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, a.baseURL+"/"+id, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return wrapTransportError("delete expense", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	return nil
}

func wrapTransportError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrTimeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%s: %w", op, ErrTimeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: "server error"}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	}
	return apiErr
}
