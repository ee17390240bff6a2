package alerts

import (
	"context"
	"log/slog"

	"github.com/Spok95/herb-stock/internal/domain/inventory"
)

// LowStock is raised when a record drops from above the threshold to at or
// below it.
type LowStock struct {
	Record    inventory.Record
	Previous  float64
	Threshold float64
}

type Notifier interface {
	NotifyLowStock(ctx context.Context, alerts []LowStock) error
}

// Crossed picks the changes that crossed the threshold downwards. Records
// already low before the change are not reported again.
func Crossed(changes []inventory.Change, threshold float64) []LowStock {
	var out []LowStock
	for _, c := range changes {
		if c.Deleted() || c.Created() {
			continue
		}
		if c.Before.Quantity > threshold && c.After.Quantity <= threshold {
			out = append(out, LowStock{Record: c.After, Previous: c.Before.Quantity, Threshold: threshold})
		}
	}
	return out
}

type Watcher struct {
	threshold float64
	notifier  Notifier
	log       *slog.Logger
}

func NewWatcher(threshold float64, n Notifier, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{threshold: threshold, notifier: n, log: log}
}

func (w *Watcher) Threshold() float64 { return w.threshold }

// Hook adapts the watcher to ledger change notifications.
func (w *Watcher) Hook() inventory.Hook {
	return func(ctx context.Context, reason string, changes []inventory.Change) {
		low := Crossed(changes, w.threshold)
		if len(low) == 0 {
			return
		}
		for _, a := range low {
			w.log.Warn("stock dropped below threshold",
				"name", a.Record.Name,
				"sku", a.Record.SKU,
				"qty", a.Record.Quantity,
				"threshold", w.threshold,
				"reason", reason,
			)
		}
		if w.notifier == nil {
			return
		}
		if err := w.notifier.NotifyLowStock(ctx, low); err != nil {
			w.log.Error("low stock notification failed", "err", err)
		}
	}
}
