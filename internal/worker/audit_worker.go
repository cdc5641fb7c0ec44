package worker

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"vaulttrack/internal/amqp"
)

// AuditWorker appends expense lifecycle events to a local CSV audit log.
// One row per event; the file gets a header when first created.
type AuditWorker struct {
	mu   sync.Mutex
	path string
}

func NewAuditWorker(path string) *AuditWorker {
	return &AuditWorker{path: path}
}

var auditHeader = []string{"occurred_at", "action", "id", "title", "amount_cents", "category"}

// HandleEvent processes a single expense event from AMQP.
func (w *AuditWorker) HandleEvent(ctx context.Context, ev *amqp.ExpenseEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("create audit log directory: %w", err)
	}

	info, statErr := os.Stat(w.path)
	writeHeader := os.IsNotExist(statErr) || (statErr == nil && info.Size() == 0)

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if writeHeader {
		if err := cw.Write(auditHeader); err != nil {
			return fmt.Errorf("write audit header: %w", err)
		}
	}

	row := []string{
		ev.OccurredAt.UTC().Format(time.RFC3339),
		ev.Action,
		ev.ID,
		ev.Title,
		strconv.FormatInt(ev.AmountCents, 10),
		ev.Category,
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("write audit row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush audit log: %w", err)
	}

	slog.InfoContext(ctx, "Audit row written",
		"action", ev.Action,
		"id", ev.ID,
		"path", w.path)

	return nil
}
