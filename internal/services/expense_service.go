package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"vaulttrack/internal/amqp"
	"vaulttrack/internal/core"
	"vaulttrack/internal/storage"
)

// EventPublisher publishes expense lifecycle events. Satisfied by
// *amqp.Client; nil means events are skipped.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, ev *amqp.ExpenseEvent) error
}

// ExpenseService orchestrates expense operations across the store and the
// optional event stream. Event publishing is fire-and-forget: a publish
// failure never fails the request, the record is already persisted.
type ExpenseService struct {
	store  storage.ExpenseStore
	events EventPublisher
}

func NewExpenseService(store storage.ExpenseStore, events EventPublisher) *ExpenseService {
	return &ExpenseService{
		store:  store,
		events: events,
	}
}

// Create persists one expense and publishes a created event.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	saved, err := s.store.Insert(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	if s.events != nil {
		ev := amqp.NewCreatedEvent(saved.ID, saved.Title, saved.Amount.Cents, saved.Category)
		if err := s.events.PublishExpenseEvent(ctx, ev); err != nil {
			slog.ErrorContext(ctx, "Failed to publish created event",
				"id", saved.ID, "error", err)
		}
	}

	return saved, nil
}

// List returns all expenses ordered by the given key, newest first.
func (s *ExpenseService) List(ctx context.Context, key storage.SortKey) ([]core.Expense, error) {
	return s.store.List(ctx, key)
}

// Delete removes one expense and publishes a deleted event. A missing id
// surfaces storage.ErrNotFound unchanged.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	if s.events != nil {
		if err := s.events.PublishExpenseEvent(ctx, amqp.NewDeletedEvent(id)); err != nil {
			slog.ErrorContext(ctx, "Failed to publish deleted event",
				"id", id, "error", err)
		}
	}

	return nil
}

// Close releases store and publisher resources that support closing.
func (s *ExpenseService) Close() error {
	var errs []error

	if closer, ok := s.store.(io.Closer); ok && closer != nil {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if closer, ok := s.events.(io.Closer); ok && closer != nil {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}
	return nil
}
