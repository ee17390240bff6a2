package inventory

import "context"

// Change reasons passed to hooks.
const (
	ReasonSale        = "sale"
	ReasonStockUpdate = "stock-update"
	ReasonCreate      = "create"
	ReasonEdit        = "edit"
	ReasonDelete      = "delete"
)

// Hook is told about records that changed. Hooks run in commit order after
// the ledger has committed the change and cannot veto it.
type Hook func(ctx context.Context, reason string, changes []Change)

type Hooks []Hook

func (hs Hooks) Run(ctx context.Context, reason string, changes []Change) {
	if len(changes) == 0 {
		return
	}
	for _, h := range hs {
		h(ctx, reason, changes)
	}
}

// Created reports a change that introduced a new record.
func (c Change) Created() bool { return c.Before.ID == "" && c.After.ID != "" }

// Deleted reports a change that removed a record.
func (c Change) Deleted() bool { return c.Before.ID != "" && c.After.ID == "" }

// After returns the post-change records, skipping deletions.
func After(changes []Change) []Record {
	out := make([]Record, 0, len(changes))
	for _, c := range changes {
		if c.Deleted() {
			continue
		}
		out = append(out, c.After)
	}
	return out
}
