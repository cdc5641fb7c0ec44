package core

import (
	"fmt"
	"strings"
	"time"
)

// Categories offered by clients when entering an expense. The store accepts
// any non-empty category string; this set only constrains client input.
const (
	CategoryFood          = "Food"
	CategoryTravel        = "Travel"
	CategoryBills         = "Bills"
	CategoryShopping      = "Shopping"
	CategoryHealth        = "Health"
	CategoryEntertainment = "Entertainment"
	CategoryOther         = "Other"
)

// Expense is a single recorded spending transaction. ID and CreatedAt are
// assigned by the store and immutable afterwards; there is no update
// operation, only create and delete.
type Expense struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Amount      Money     `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ErrValidation is the root of all input validation errors. Callers map
// anything wrapping it to a client-facing 4xx.
var ErrValidation = fmt.Errorf("validation error")

var (
	ErrEmptyTitle    = fmt.Errorf("%w: empty title", ErrValidation)
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrEmptyCategory = fmt.Errorf("%w: empty category", ErrValidation)
)

// Categories returns the fixed category set in display order.
func Categories() []string {
	return []string{
		CategoryFood,
		CategoryTravel,
		CategoryBills,
		CategoryShopping,
		CategoryHealth,
		CategoryEntertainment,
		CategoryOther,
	}
}

// KnownCategory reports whether name is one of the fixed category set.
// Matching is exact and case-sensitive.
func KnownCategory(name string) bool {
	for _, c := range Categories() {
		if c == name {
			return true
		}
	}
	return false
}

// Validate checks the fields a caller must supply. Presence checks only:
// title and category must be non-empty, the amount non-negative. Date,
// description, ID and CreatedAt are optional or store-assigned.
func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(e.Title) > 200 {
		return fmt.Errorf("%w: title too long (max 200 characters)", ErrValidation)
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
