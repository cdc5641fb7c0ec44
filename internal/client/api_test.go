package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vaulttrack/internal/core"
)

func TestBaseURLNormalization(t *testing.T) {
	a := NewAPI("http://localhost:8080/api/expenses/", 0)
	if a.BaseURL() != "http://localhost:8080/api/expenses" {
		t.Fatalf("trailing slash should be stripped, got %q", a.BaseURL())
	}

	a = NewAPI("", 0)
	if a.BaseURL() != DefaultBaseURL {
		t.Fatalf("expected default base URL, got %q", a.BaseURL())
	}
}

func TestListAndCreateAndDelete(t *testing.T) {
	stored := []core.Expense{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/expenses", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(stored)
	})
	mux.HandleFunc("POST /api/expenses", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title    string `json:"title"`
			Amount   int64  `json:"amount"`
			Category string `json:"category"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		e := core.Expense{
			ID: "srv-1", Title: req.Title,
			Amount: core.Money{Cents: req.Amount}, Category: req.Category,
			CreatedAt: time.Now(),
		}
		stored = append([]core.Expense{e}, stored...)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(e)
	})
	mux.HandleFunc("DELETE /api/expenses/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "srv-1" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "expense not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"deleted": true})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	api := NewAPI(ts.URL+"/api/expenses", time.Second)
	ctx := context.Background()

	created, err := api.Create(ctx, core.Expense{Title: "Coffee", Amount: core.Money{Cents: 150}, Category: "Food"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "srv-1" || created.Amount.Cents != 150 {
		t.Fatalf("unexpected canonical record: %+v", created)
	}

	list, err := api.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "srv-1" {
		t.Fatalf("unexpected list: %+v", list)
	}

	if err := api.Delete(ctx, "srv-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err = api.Delete(ctx, "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
	if apiErr.Message != "expense not found" {
		t.Fatalf("server message should be preserved, got %q", apiErr.Message)
	}
}

func TestValidationErrorSurfaces(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "validation error: empty title"})
	}))
	defer ts.Close()

	api := NewAPI(ts.URL, time.Second)
	_, err := api.Create(context.Background(), core.Expense{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 APIError, got %v", err)
	}
}

func TestTimeoutIsDistinct(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	api := NewAPI(ts.URL, 20*time.Millisecond)
	_, err := api.List(context.Background())
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}
