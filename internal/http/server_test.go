package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"vaulttrack/internal/core"
	"vaulttrack/internal/storage"
)

// fakeService is an in-memory ExpenseService, newest record first.
type fakeService struct {
	expenses []core.Expense
	failWith error
	nextID   int
}

func (f *fakeService) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	if f.failWith != nil {
		return core.Expense{}, f.failWith
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	f.nextID++
	e.ID = "id-" + strconv.Itoa(f.nextID)
	e.CreatedAt = time.Now()
	if e.Date.IsZero() {
		e.Date = e.CreatedAt
	}
	f.expenses = append([]core.Expense{e}, f.expenses...)
	return e, nil
}

func (f *fakeService) List(ctx context.Context, key storage.SortKey) ([]core.Expense, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.expenses, nil
}

func (f *fakeService) Delete(ctx context.Context, id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	for i, e := range f.expenses {
		if e.ID == id {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func newTestServer(t *testing.T, svc ExpenseService) *Server {
	t.Helper()
	srv := NewServer(":0", svc)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, &fakeService{})
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doJSON(t, srv, http.MethodGet, path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestListEmptyReturnsArray(t *testing.T) {
	srv := newTestServer(t, &fakeService{})
	rr := doJSON(t, srv, http.MethodGet, "/api/expenses", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestCreateThenListFirst(t *testing.T) {
	srv := newTestServer(t, &fakeService{})

	rr := doJSON(t, srv, http.MethodPost, "/api/expenses",
		`{"title":"Coffee","amount":150,"category":"Food"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var created core.Expense
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.Amount.Cents != 150 || created.Category != "Food" {
		t.Fatalf("unexpected record: %+v", created)
	}

	rr = doJSON(t, srv, http.MethodGet, "/api/expenses", "")
	var list []core.Expense
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) == 0 || list[0].ID != created.ID {
		t.Fatalf("most recent record should come first: %+v", list)
	}
}

func TestCreateValidationError(t *testing.T) {
	srv := newTestServer(t, &fakeService{})

	cases := []string{
		`{"amount":150,"category":"Food"}`,            // missing title
		`{"title":"x","category":"Food"}`,             // missing amount
		`{"title":"x","amount":-1,"category":"Food"}`, // negative amount
		`{"title":"x","amount":150,"category":""}`,    // empty category
		`{not json`,
		`{"title":"x","amount":150,"category":"Food","date":"13/01/2025"}`, // bad date
	}
	for _, body := range cases {
		rr := doJSON(t, srv, http.MethodPost, "/api/expenses", body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rr.Code)
		}
		var payload map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
			t.Fatalf("error payload must be JSON: %v", err)
		}
		if payload["message"] == "" {
			t.Fatalf("error payload missing message: %s", rr.Body.String())
		}
	}
}

func TestCreateRequiresAmount(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(t, svc)

	// An omitted amount is a validation failure, not a zero-cent record.
	rr := doJSON(t, srv, http.MethodPost, "/api/expenses",
		`{"title":"Coffee","category":"Food"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "missing amount") {
		t.Fatalf("expected missing amount message, got %s", rr.Body.String())
	}
	if len(svc.expenses) != 0 {
		t.Fatalf("no record must be created: %+v", svc.expenses)
	}

	// An explicit zero is still a valid amount.
	rr = doJSON(t, srv, http.MethodPost, "/api/expenses",
		`{"title":"Freebie","amount":0,"category":"Other"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 for explicit zero amount, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestCreateAcceptsCalendarDate(t *testing.T) {
	srv := newTestServer(t, &fakeService{})
	rr := doJSON(t, srv, http.MethodPost, "/api/expenses",
		`{"title":"Train","amount":2000,"category":"Travel","date":"2025-08-20"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var created core.Expense
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Date.Format("2006-01-02") != "2025-08-20" {
		t.Fatalf("unexpected date: %v", created.Date)
	}
}

func TestCreateAcceptsUnknownCategory(t *testing.T) {
	// The store does not enforce the fixed set; free text passes through.
	srv := newTestServer(t, &fakeService{})
	rr := doJSON(t, srv, http.MethodPost, "/api/expenses",
		`{"title":"Misc","amount":100,"category":"Gadgets"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 for free-text category, got %d", rr.Code)
	}
}

func TestDeleteExistingAndMissing(t *testing.T) {
	svc := &fakeService{}
	srv := newTestServer(t, svc)

	rr := doJSON(t, srv, http.MethodPost, "/api/expenses",
		`{"title":"Coffee","amount":150,"category":"Food"}`)
	var created core.Expense
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rr = doJSON(t, srv, http.MethodDelete, "/api/expenses/"+created.ID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"deleted":true`) {
		t.Fatalf("expected deleted confirmation, got %s", rr.Body.String())
	}

	// Deleting again: 404, store unchanged
	before := len(svc.expenses)
	rr = doJSON(t, srv, http.MethodDelete, "/api/expenses/"+created.ID, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if len(svc.expenses) != before {
		t.Fatalf("store must be unchanged after failed delete")
	}
}

func TestStoreFailureMapsTo500(t *testing.T) {
	srv := newTestServer(t, &fakeService{failWith: errors.New("store unavailable")})

	rr := doJSON(t, srv, http.MethodGet, "/api/expenses", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("list: expected 500, got %d", rr.Code)
	}

	rr = doJSON(t, srv, http.MethodPost, "/api/expenses",
		`{"title":"Coffee","amount":150,"category":"Food"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("create: expected 500, got %d", rr.Code)
	}

	rr = doJSON(t, srv, http.MethodDelete, "/api/expenses/abc", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("delete: expected 500, got %d", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &fakeService{})
	rr := doJSON(t, srv, http.MethodPut, "/api/expenses", "{}")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}
