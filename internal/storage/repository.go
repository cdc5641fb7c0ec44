package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"vaulttrack/internal/core"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRepository persists expenses in a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ExpenseStore = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert implements ExpenseStore. The caller's ID, CreatedAt and a zero
// Date are overwritten with store-assigned values.
func (r *SQLiteRepository) Insert(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	now := time.Now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	if e.Date.IsZero() {
		e.Date = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, title, amount_cents, category, description, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Amount.Cents, e.Category, e.Description,
		e.Date.UTC().Format(time.RFC3339Nano), e.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"title", e.Title,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return e, nil
}

// List implements ExpenseStore. Unknown sort keys fall back to date order.
func (r *SQLiteRepository) List(ctx context.Context, key SortKey) ([]core.Expense, error) {
	order := "date DESC, created_at DESC"
	if key == SortByCreatedAt {
		order = "created_at DESC"
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, amount_cents, category, description, date, created_at
		 FROM expenses ORDER BY `+order)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var (
			e           core.Expense
			dateStr     string
			createdStr  string
			amountCents int64
		)
		if err := rows.Scan(&e.ID, &e.Title, &amountCents, &e.Category, &e.Description, &dateStr, &createdStr); err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		e.Amount = core.Money{Cents: amountCents}
		if e.Date, err = time.Parse(time.RFC3339Nano, dateStr); err != nil {
			return nil, fmt.Errorf("parse expense date: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr); err != nil {
			return nil, fmt.Errorf("parse expense created_at: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}

	return expenses, nil
}

// DeleteByID implements ExpenseStore.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}
