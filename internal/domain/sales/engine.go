package sales

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/herb-stock/internal/domain/bom"
	"github.com/Spok95/herb-stock/internal/domain/inventory"
)

var (
	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity sold must be a positive whole number")
)

// Recipes is the read side of the BOM registry.
type Recipes interface {
	Names() []string
	Recipe(name string) (*bom.Recipe, bool)
}

// Stock is the part of the ledger a sale touches.
type Stock interface {
	TotalStockByName() map[string]decimal.Decimal
	CheckAndDeduct(reqs []inventory.Requirement) ([]inventory.Change, error)
}

// Journal keeps the history of fulfilled sales.
type Journal interface {
	SaveSale(ctx context.Context, s *Sale) error
}

// Observer receives the terminal state of every sale request.
type Observer interface {
	SaleFulfilled(good string, qty int)
	SaleRejected(good string, reason string)
}

type Engine struct {
	recipes Recipes
	stock   Stock
	obs     Observer
	journal Journal
	log     *slog.Logger
	now     func() time.Time
}

func NewEngine(recipes Recipes, stock Stock, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{recipes: recipes, stock: stock, log: log, now: time.Now}
}

func (e *Engine) Observe(o Observer) { e.obs = o }

func (e *Engine) Journal(j Journal) { e.journal = j }

// RecordSale deducts the raw materials for qty units of good, all or nothing.
// Rejections wrap ErrInvalidQuantity, ErrRecipeNotFound or
// ErrInsufficientStock; the latter also wraps *inventory.ShortageError.
func (e *Engine) RecordSale(ctx context.Context, good string, qty int) (*Sale, error) {
	if qty < 1 {
		return nil, e.reject(good, "invalid_quantity", fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty))
	}
	recipe, ok := e.recipes.Recipe(good)
	if !ok {
		return nil, e.reject(good, "recipe_not_found", fmt.Errorf("%w: %q", ErrRecipeNotFound, good))
	}

	changes, err := e.stock.CheckAndDeduct(Requirements(recipe, qty))
	if err != nil {
		var short *inventory.ShortageError
		if errors.As(err, &short) {
			return nil, e.reject(good, "insufficient_stock", fmt.Errorf("%w: %w", ErrInsufficientStock, short))
		}
		return nil, e.reject(good, "ledger_error", err)
	}

	sale := &Sale{Good: good, Quantity: qty, Changes: changes, At: e.now()}
	e.log.Info("sale recorded",
		"good", good,
		"qty", qty,
		"changed", len(changes),
	)
	if e.obs != nil {
		e.obs.SaleFulfilled(good, qty)
	}
	if e.journal != nil {
		// the deduction is committed; a client that went away must not drop its journal entry
		jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), inventory.DefaultHookTimeout)
		err := e.journal.SaveSale(jctx, sale)
		cancel()
		if err != nil {
			e.log.Error("save sale", "good", good, "err", err)
		}
	}
	return sale, nil
}

// Preview computes required against available for every ingredient without
// changing anything. Enough uses the same rule as RecordSale.
func (e *Engine) Preview(good string, qty int) ([]Line, error) {
	if qty < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	recipe, ok := e.recipes.Recipe(good)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRecipeNotFound, good)
	}
	totals := e.stock.TotalStockByName()
	reqs := Requirements(recipe, qty)
	lines := make([]Line, 0, len(reqs))
	for _, rq := range reqs {
		avail := totals[rq.Name]
		lines = append(lines, Line{
			Name:      rq.Name,
			Required:  rq.Qty.InexactFloat64(),
			Available: avail.InexactFloat64(),
			Enough:    !avail.LessThan(rq.Qty),
		})
	}
	return lines, nil
}

// CanFulfill reports whether every preview line is covered.
func CanFulfill(lines []Line) bool {
	for _, l := range lines {
		if !l.Enough {
			return false
		}
	}
	return true
}

// Names lists finished goods that can be sold.
func (e *Engine) Names() []string { return e.recipes.Names() }

func (e *Engine) Recipe(name string) (*bom.Recipe, bool) { return e.recipes.Recipe(name) }

// Requirements multiplies every component of the recipe by qty. Components
// naming the same material are merged, so preview and deduction agree.
func Requirements(r *bom.Recipe, qty int) []inventory.Requirement {
	n := decimal.NewFromInt(int64(qty))
	out := make([]inventory.Requirement, 0, len(r.Components))
	for _, c := range r.Components {
		out = append(out, inventory.Requirement{
			Name: c.RawMaterialName,
			Qty:  decimal.NewFromFloat(c.Quantity).Mul(n),
		})
	}
	return inventory.MergeRequirements(out)
}

func (e *Engine) reject(good, reason string, err error) error {
	e.log.Info("sale rejected", "good", good, "reason", reason, "err", err)
	if e.obs != nil {
		e.obs.SaleRejected(good, reason)
	}
	return err
}
