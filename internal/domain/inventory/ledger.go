package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Spok95/herb-stock/internal/domain/catalog"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateName = errors.New("a record with this name already exists")
	ErrDuplicateSKU  = errors.New("a record with this SKU already exists")
	ErrInvalidRecord = errors.New("invalid record")
)

// ShortageError reports the first requirement the ledger cannot cover.
type ShortageError struct {
	Name      string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("not enough stock for %q: required %s, available %s",
		e.Name, e.Required.StringFixed(2), e.Available.StringFixed(2))
}

// DefaultHookTimeout bounds one delivery of a change batch to the hooks.
const DefaultHookTimeout = 30 * time.Second

// Ledger is the authoritative in-memory set of raw-material records.
// Names and SKUs are unique. All methods are safe for concurrent use; every
// mutation, including the stock check of CheckAndDeduct, runs under one lock.
//
// Every successful mutation is queued for the hooks while the lock is held and
// delivered after it is released, one batch at a time in commit order. A
// mutating call returns only once its own batch has been delivered.
type Ledger struct {
	mu      sync.Mutex
	records []Record
	byID    map[string]int
	byName  map[string]int
	bySKU   map[string]int

	hooks   Hooks
	pending []batch
	pub     sync.Mutex

	log         *slog.Logger
	validate    *validator.Validate
	now         func() time.Time
	hookTimeout time.Duration
}

type batch struct {
	reason  string
	changes []Change
}

func NewLedger(log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	return &Ledger{
		byID:     map[string]int{},
		byName:   map[string]int{},
		bySKU:    map[string]int{},
		log:      log,
		validate:    validator.New(),
		now:         time.Now,
		hookTimeout: DefaultHookTimeout,
	}
}

// Use registers hooks. Hooks must not mutate the ledger.
func (l *Ledger) Use(hooks ...Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, hooks...)
}

// commit queues a batch for the hooks. l.mu must be held.
func (l *Ledger) commit(reason string, changes ...Change) {
	if len(changes) == 0 || len(l.hooks) == 0 {
		return
	}
	l.pending = append(l.pending, batch{reason: reason, changes: changes})
}

// publish drains the queue. Only one caller delivers at a time, so hooks see
// batches in commit order and the last quantity they write is the newest.
// Hooks get a background context bounded by hookTimeout, never the caller's.
func (l *Ledger) publish() {
	l.pub.Lock()
	defer l.pub.Unlock()
	for {
		l.mu.Lock()
		if len(l.pending) == 0 {
			l.mu.Unlock()
			return
		}
		b := l.pending[0]
		l.pending = l.pending[1:]
		hooks := l.hooks
		l.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), l.hookTimeout)
		hooks.Run(ctx, b.reason, b.changes)
		cancel()
	}
}

// Seed materializes catalog rows as records with generated SKUs (RM-0001, ...)
// and inferred categories. Rows clashing with an existing name or SKU are skipped.
func (l *Ledger) Seed(entries []catalog.Entry) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	added := 0
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		qty := e.Quantity
		if qty < 0 {
			qty = 0
		}
		r := Record{
			ID:          uuid.NewString(),
			Name:        name,
			SKU:         fmt.Sprintf("RM-%04d", i+1),
			Category:    string(catalog.Classify(name)),
			Quantity:    round2(qty),
			Date:        now.Format(time.DateOnly),
			LastUpdated: now,
		}
		if err := l.checkUnique(r, -1); err != nil {
			l.log.Warn("catalog entry skipped", "name", name, "err", err)
			continue
		}
		l.insert(r)
		added++
	}
	return added
}

// Replace swaps the whole record set, e.g. after loading from a store.
// Records that collide on ID, name or SKU with an earlier one are dropped.
func (l *Ledger) Replace(recs []Record) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = l.records[:0]
	l.byID = map[string]int{}
	l.byName = map[string]int{}
	l.bySKU = map[string]int{}
	for _, r := range recs {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if err := l.checkUnique(r, -1); err != nil {
			l.log.Warn("record dropped on load", "name", r.Name, "sku", r.SKU, "err", err)
			continue
		}
		if _, dup := l.byID[r.ID]; dup {
			l.log.Warn("record dropped on load", "name", r.Name, "id", r.ID, "err", "duplicate id")
			continue
		}
		if r.Quantity < 0 {
			r.Quantity = 0
		}
		r.Quantity = round2(r.Quantity)
		if r.LastUpdated.IsZero() {
			r.LastUpdated = l.now()
		}
		if r.Date == "" {
			r.Date = r.LastUpdated.Format(time.DateOnly)
		}
		l.insert(r)
	}
	return len(l.records)
}

func (l *Ledger) Add(in NewRecord) (Record, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	if err := l.validate.Struct(in); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	defer l.publish()
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	r := Record{
		ID:          uuid.NewString(),
		Name:        in.Name,
		SKU:         in.SKU,
		Category:    in.Category,
		Quantity:    round2(in.Quantity),
		Price:       in.Price,
		Date:        now.Format(time.DateOnly),
		LastUpdated: now,
	}
	if r.Category == "" {
		r.Category = string(catalog.Classify(r.Name))
	}
	if err := l.checkUnique(r, -1); err != nil {
		return Record{}, err
	}
	l.insert(r)
	l.commit(ReasonCreate, Change{After: r})
	return r, nil
}

// Edit overwrites the editable fields of an existing record.
func (l *Ledger) Edit(r Record) (Change, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.SKU = strings.TrimSpace(r.SKU)
	if err := l.validate.Struct(NewRecord{Name: r.Name, SKU: r.SKU, Quantity: r.Quantity, Price: r.Price}); err != nil {
		return Change{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	defer l.publish()
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.byID[r.ID]
	if !ok {
		return Change{}, ErrNotFound
	}
	if err := l.checkUnique(r, i); err != nil {
		return Change{}, err
	}
	before := l.records[i]
	after := before
	after.Name = r.Name
	after.SKU = r.SKU
	after.Category = r.Category
	after.Quantity = round2(r.Quantity)
	after.Price = r.Price
	after.LastUpdated = l.now()
	l.set(i, after)
	c := Change{Before: before, After: after}
	l.commit(ReasonEdit, c)
	return c, nil
}

// UpdateStock adds delta (negative for usage) to one record. The result is
// rounded to two decimals and never goes below zero.
func (l *Ledger) UpdateStock(id string, delta float64) (Change, error) {
	defer l.publish()
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.byID[id]
	if !ok {
		return Change{}, ErrNotFound
	}
	before := l.records[i]
	after := before
	after.Quantity = clampRound(decimal.NewFromFloat(before.Quantity).Add(decimal.NewFromFloat(delta)))
	after.LastUpdated = l.now()
	l.set(i, after)
	c := Change{Before: before, After: after}
	l.commit(ReasonStockUpdate, c)
	return c, nil
}

// Reconcile sets each counted SKU to its counted quantity, clamped at zero,
// in a single step under the lock. Unknown SKUs are returned, not created.
func (l *Ledger) Reconcile(counted []Record) (changed []Change, unknown []string) {
	defer l.publish()
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for _, cnt := range counted {
		sku := strings.TrimSpace(cnt.SKU)
		i, ok := l.bySKU[sku]
		if !ok {
			unknown = append(unknown, sku)
			continue
		}
		before := l.records[i]
		qty := clampRound(decimal.NewFromFloat(cnt.Quantity))
		if qty == before.Quantity {
			continue
		}
		after := before
		after.Quantity = qty
		after.LastUpdated = now
		l.records[i] = after
		changed = append(changed, Change{Before: before, After: after})
	}
	l.commit(ReasonStockUpdate, changed...)
	return changed, unknown
}

func (l *Ledger) Delete(id string) (Record, error) {
	defer l.publish()
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	r := l.records[i]
	l.records = append(l.records[:i], l.records[i+1:]...)
	l.reindex()
	l.commit(ReasonDelete, Change{Before: r})
	return r, nil
}

func (l *Ledger) Get(id string) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.byID[id]
	if !ok {
		return Record{}, false
	}
	return l.records[i], true
}

func (l *Ledger) GetByName(name string) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.byName[name]
	if !ok {
		return Record{}, false
	}
	return l.records[i], true
}

func (l *Ledger) GetBySKU(sku string) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.bySKU[sku]
	if !ok {
		return Record{}, false
	}
	return l.records[i], true
}

// List returns a copy of all records in insertion order.
func (l *Ledger) List() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Record(nil), l.records...)
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// TotalStockByName sums quantities per record name.
func (l *Ledger) TotalStockByName() map[string]decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totals()
}

// CheckAndDeduct applies all requirements or none. Requirements naming the
// same material are merged first. On shortage the returned error is a
// *ShortageError for the first uncovered material and nothing is changed.
// Only records whose quantity actually changes are returned.
func (l *Ledger) CheckAndDeduct(reqs []Requirement) ([]Change, error) {
	merged := MergeRequirements(reqs)

	defer l.publish()
	l.mu.Lock()
	defer l.mu.Unlock()

	totals := l.totals()
	for _, rq := range merged {
		avail := totals[rq.Name]
		if avail.LessThan(rq.Qty) {
			return nil, &ShortageError{Name: rq.Name, Required: rq.Qty, Available: avail}
		}
	}

	now := l.now()
	changes := make([]Change, 0, len(merged))
	for _, rq := range merged {
		if !rq.Qty.IsPositive() {
			continue
		}
		i, ok := l.byName[rq.Name]
		if !ok {
			continue
		}
		before := l.records[i]
		after := before
		after.Quantity = clampRound(decimal.NewFromFloat(before.Quantity).Sub(rq.Qty))
		after.LastUpdated = now
		l.records[i] = after
		changes = append(changes, Change{Before: before, After: after})
	}
	l.commit(ReasonSale, changes...)
	return changes, nil
}

func (l *Ledger) totals() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(l.records))
	for _, r := range l.records {
		out[r.Name] = out[r.Name].Add(decimal.NewFromFloat(r.Quantity))
	}
	return out
}

func (l *Ledger) checkUnique(r Record, self int) error {
	if i, ok := l.byName[r.Name]; ok && i != self {
		return fmt.Errorf("%w: %q", ErrDuplicateName, r.Name)
	}
	if i, ok := l.bySKU[r.SKU]; ok && i != self {
		return fmt.Errorf("%w: %q", ErrDuplicateSKU, r.SKU)
	}
	return nil
}

func (l *Ledger) insert(r Record) {
	l.records = append(l.records, r)
	i := len(l.records) - 1
	l.byID[r.ID] = i
	l.byName[r.Name] = i
	l.bySKU[r.SKU] = i
}

func (l *Ledger) set(i int, r Record) {
	old := l.records[i]
	delete(l.byName, old.Name)
	delete(l.bySKU, old.SKU)
	l.records[i] = r
	l.byName[r.Name] = i
	l.bySKU[r.SKU] = i
}

func (l *Ledger) reindex() {
	l.byID = make(map[string]int, len(l.records))
	l.byName = make(map[string]int, len(l.records))
	l.bySKU = make(map[string]int, len(l.records))
	for i, r := range l.records {
		l.byID[r.ID] = i
		l.byName[r.Name] = i
		l.bySKU[r.SKU] = i
	}
}

// MergeRequirements sums requirements naming the same material, keeping the
// order of first appearance.
func MergeRequirements(reqs []Requirement) []Requirement {
	out := make([]Requirement, 0, len(reqs))
	pos := make(map[string]int, len(reqs))
	for _, rq := range reqs {
		if i, ok := pos[rq.Name]; ok {
			out[i].Qty = out[i].Qty.Add(rq.Qty)
			continue
		}
		pos[rq.Name] = len(out)
		out = append(out, rq)
	}
	return out
}

func clampRound(d decimal.Decimal) float64 {
	d = d.Round(2)
	if d.IsNegative() {
		return 0
	}
	return d.InexactFloat64()
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
