package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"vaulttrack/internal/core"
	"vaulttrack/internal/storage"
)

// createExpenseRequest is the POST body. Amount is a number of cents and
// must be present; a pointer keeps an omitted amount apart from an explicit
// zero. Date accepts YYYY-MM-DD or RFC 3339 and defaults to creation time
// when absent.
type createExpenseRequest struct {
	Title       string      `json:"title"`
	Amount      *core.Money `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	sortKey := storage.SortByDate
	if r.URL.Query().Get("sort") == string(storage.SortByCreatedAt) {
		sortKey = storage.SortByCreatedAt
	}

	expenses, err := s.expenses.List(r.Context(), sortKey)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}

	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := dec.Decode(&req); err != nil {
		slog.WarnContext(r.Context(), "Malformed expense payload", "error", err)
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "missing amount")
		return
	}

	e := core.Expense{
		Title:       sanitizeInput(req.Title),
		Amount:      *req.Amount,
		Category:    sanitizeInput(req.Category),
		Description: sanitizeInput(req.Description),
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
		e.Date = date
	}

	saved, err := s.expenses.Create(r.Context(), e)
	if err != nil {
		if errors.Is(err, core.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Create expense error", "error", err, "title", e.Title, "amount_cents", e.Amount.Cents)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeError(w, http.StatusBadRequest, "missing expense id")
		return
	}

	err := s.expenses.Delete(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete expense error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
