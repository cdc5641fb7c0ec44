package storage

import (
	"context"
	"errors"

	"vaulttrack/internal/core"
)

// SortKey selects the timestamp field a listing is ordered by. Listings are
// always most-recent-first; created_at breaks ties.
type SortKey string

const (
	SortByDate      SortKey = "date"
	SortByCreatedAt SortKey = "created_at"
)

// ErrNotFound signals a delete target that does not exist, distinct from a
// successful removal so callers can pick the response code.
var ErrNotFound = errors.New("expense not found")

// ExpenseStore is the port the API service talks to.
type ExpenseStore interface {
	// Insert validates the expense, assigns ID and CreatedAt (and Date,
	// when absent) and returns the persisted record.
	Insert(ctx context.Context, e core.Expense) (core.Expense, error)

	// List returns every record ordered by the given key, newest first.
	// No pagination: the full collection comes back on every call.
	List(ctx context.Context, key SortKey) ([]core.Expense, error)

	// DeleteByID removes the record with the given identifier, or returns
	// ErrNotFound leaving the collection unchanged.
	DeleteByID(ctx context.Context, id string) error
}
