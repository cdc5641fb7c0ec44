package worker

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"vaulttrack/internal/amqp"
)

func TestHandleEventWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "audit.csv")
	w := NewAuditWorker(path)
	ctx := context.Background()

	if err := w.HandleEvent(ctx, amqp.NewCreatedEvent("id-1", "Coffee", 150, "Food")); err != nil {
		t.Fatalf("handle created: %v", err)
	}
	if err := w.HandleEvent(ctx, amqp.NewDeletedEvent("id-1")); err != nil {
		t.Fatalf("handle deleted: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "occurred_at" {
		t.Fatalf("missing header: %v", rows[0])
	}
	if rows[1][1] != amqp.ActionCreated || rows[1][3] != "Coffee" || rows[1][4] != "150" {
		t.Fatalf("unexpected created row: %v", rows[1])
	}
	if rows[2][1] != amqp.ActionDeleted || rows[2][2] != "id-1" {
		t.Fatalf("unexpected deleted row: %v", rows[2])
	}
}

func TestHandleEventAppendsWithoutDuplicateHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")
	ctx := context.Background()

	// Two separate workers against the same file, as after a restart
	if err := NewAuditWorker(path).HandleEvent(ctx, amqp.NewDeletedEvent("a")); err != nil {
		t.Fatalf("first worker: %v", err)
	}
	if err := NewAuditWorker(path).HandleEvent(ctx, amqp.NewDeletedEvent("b")); err != nil {
		t.Fatalf("second worker: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected single header + 2 rows, got %d", len(rows))
	}
}
