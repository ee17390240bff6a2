// Package store persists ledger records and the sales journal.
package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/Spok95/herb-stock/internal/domain/inventory"
	"github.com/Spok95/herb-stock/internal/domain/sales"
)

// SaleRow is one line of the sales journal.
type SaleRow struct {
	ID       int64     `json:"id" db:"id"`
	Good     string    `json:"good" db:"good"`
	Quantity int       `json:"quantity" db:"quantity"`
	At       time.Time `json:"at" db:"created_at"`
}

type Store interface {
	LoadAll(ctx context.Context) ([]inventory.Record, error)
	// SaveChanges writes the changed records and their movements in one
	// transaction.
	SaveChanges(ctx context.Context, reason string, changes []inventory.Change) error
	SaveSale(ctx context.Context, s *sales.Sale) error
	RecentSales(ctx context.Context, limit int) ([]SaleRow, error)
	Close() error
}

// Hook persists every ledger change. Failures are logged; the ledger stays
// the source of truth until the next successful write.
func Hook(s Store, log *slog.Logger) inventory.Hook {
	return func(ctx context.Context, reason string, changes []inventory.Change) {
		if err := s.SaveChanges(ctx, reason, changes); err != nil {
			log.Error("persist changes", "reason", reason, "count", len(changes), "err", err)
		}
	}
}

// movementOf returns the journal line for c, or false when the quantity
// did not move.
func movementOf(c inventory.Change, reason string) (inventory.Movement, bool) {
	if c.Deleted() {
		return inventory.Movement{}, false
	}
	m := inventory.MovementOf(c, reason)
	if m.Delta == 0 {
		return m, false
	}
	if m.At.IsZero() {
		m.At = time.Now()
	}
	return m, true
}
