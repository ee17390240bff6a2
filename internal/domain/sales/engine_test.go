package sales

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Spok95/herb-stock/internal/domain/bom"
	"github.com/Spok95/herb-stock/internal/domain/catalog"
	"github.com/Spok95/herb-stock/internal/domain/inventory"
)

const (
	kanda   = "Kanda powder"
	lakdi   = "Lakdi Powder  (Saw Dust Powder) for black agarbathi"
	joss    = "Joss Powder"
	kno3    = "KNO3 (Potassium Nitrate)"
	dep     = "DEP"
	perfume = "Perfume"
)

type countingObserver struct {
	fulfilled int
	rejected  map[string]int
}

func (o *countingObserver) SaleFulfilled(string, int) { o.fulfilled++ }
func (o *countingObserver) SaleRejected(_ string, reason string) {
	if o.rejected == nil {
		o.rejected = map[string]int{}
	}
	o.rejected[reason]++
}

func newTestEngine(t *testing.T) (*Engine, *inventory.Ledger) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	canon := bom.NewCanonicalizer(catalog.Default(), bom.DefaultAliases(), log)
	reg := bom.NewRegistry(canon, bom.DefaultRecipes(), log)
	if err := reg.Build(); err != nil {
		t.Fatal(err)
	}

	led := inventory.NewLedger(log)
	stock := []struct {
		name string
		qty  float64
	}{
		{kanda, 10}, {lakdi, 50}, {joss, 10}, {kno3, 5}, {dep, 20}, {perfume, 5}, {"Ajwain", 7},
	}
	for i, s := range stock {
		if _, err := led.Add(inventory.NewRecord{Name: s.name, SKU: "RM-T" + string(rune('A'+i)), Quantity: s.qty}); err != nil {
			t.Fatal(err)
		}
	}
	return NewEngine(reg, led, log), led
}

func quantities(l *inventory.Ledger) map[string]float64 {
	out := map[string]float64{}
	for _, r := range l.List() {
		out[r.Name] = r.Quantity
	}
	return out
}

func TestSaleOfTwoDhoop(t *testing.T) {
	e, led := newTestEngine(t)
	var hooked []inventory.Change
	led.Use(func(_ context.Context, reason string, changes []inventory.Change) {
		if reason != inventory.ReasonSale {
			t.Errorf("hook reason = %q", reason)
		}
		hooked = append(hooked, changes...)
	})

	sale, err := e.RecordSale(context.Background(), "Dhoop", 2)
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	want := map[string]float64{
		kanda:    6,
		lakdi:    36,
		joss:     6,
		kno3:     2,
		dep:      11.44,
		perfume:  3.57,
		"Ajwain": 7,
	}
	got := quantities(led)
	for name, q := range want {
		if got[name] != q {
			t.Errorf("%s = %v, want %v", name, got[name], q)
		}
	}
	if n := len(sale.Changed()); n != 6 {
		t.Fatalf("changed %d records, want 6", n)
	}
	if sale.Changed()[0].Name != kanda {
		t.Errorf("changes not in recipe order: %s first", sale.Changed()[0].Name)
	}
	if len(hooked) != 6 {
		t.Fatalf("hook saw %d changes", len(hooked))
	}
}

func TestSaleRejectedForShortage(t *testing.T) {
	e, led := newTestEngine(t)
	obs := &countingObserver{}
	e.Observe(obs)
	hookCalls := 0
	led.Use(func(context.Context, string, []inventory.Change) { hookCalls++ })
	before := led.List()

	_, err := e.RecordSale(context.Background(), "Dhoop", 5)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	var short *inventory.ShortageError
	if !errors.As(err, &short) || short.Name != kno3 {
		t.Fatalf("shortage = %+v", short)
	}
	msg := err.Error()
	if !strings.Contains(msg, "required 7.50") || !strings.Contains(msg, "available 5.00") {
		t.Fatalf("message = %q", msg)
	}

	after := led.List()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("%s mutated by rejected sale", before[i].Name)
		}
	}
	if hookCalls != 0 {
		t.Fatal("hooks ran for a rejected sale")
	}
	if obs.rejected["insufficient_stock"] != 1 || obs.fulfilled != 0 {
		t.Fatalf("observer = %+v", obs)
	}
}

func TestSaleOfUnknownProduct(t *testing.T) {
	e, led := newTestEngine(t)
	before := led.List()
	_, err := e.RecordSale(context.Background(), "Nonexistent Product", 1)
	if !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("err = %v", err)
	}
	after := led.List()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("%s mutated", before[i].Name)
		}
	}
}

func TestSaleQuantityBoundaries(t *testing.T) {
	e, _ := newTestEngine(t)
	for _, q := range []int{0, -1, -100} {
		if _, err := e.RecordSale(context.Background(), "Dhoop", q); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("qty %d: err = %v", q, err)
		}
	}
}

func TestSaleOfExactStockSucceeds(t *testing.T) {
	e, led := newTestEngine(t)
	// Amrithdhar needs 0.54 Ajwain per unit, Pudina and Kapoor are not stocked
	if _, err := e.RecordSale(context.Background(), "Amrithdhar", 1); err == nil {
		t.Fatal("sale with unstocked ingredients must fail")
	}

	for name, delta := range map[string]float64{kno3: 2.5, dep: 1.4} {
		r, _ := led.GetByName(name)
		if _, err := led.UpdateStock(r.ID, delta); err != nil {
			t.Fatal(err)
		}
	}
	// five units need exactly the stock now held of Kanda, Joss, KNO3 and Dep
	if _, err := e.RecordSale(context.Background(), "Dhoop", 5); err != nil {
		t.Fatalf("sale at exact stock: %v", err)
	}
	got := quantities(led)
	if got[kno3] != 0 || got[kanda] != 0 || got[joss] != 0 || got[dep] != 0 {
		t.Fatalf("quantities = %v", got)
	}
}

func TestPreviewMatchesSale(t *testing.T) {
	e, _ := newTestEngine(t)

	for _, qty := range []int{1, 2, 3, 4, 5} {
		lines, err := e.Preview("Dhoop", qty)
		if err != nil {
			t.Fatal(err)
		}
		if len(lines) != 6 {
			t.Fatalf("preview has %d lines", len(lines))
		}
		ok := CanFulfill(lines)

		fresh, _ := newTestEngine(t)
		_, err = fresh.RecordSale(context.Background(), "Dhoop", qty)
		if ok != (err == nil) {
			t.Fatalf("qty %d: preview says %v, sale err = %v", qty, ok, err)
		}
	}

	lines, _ := e.Preview("Dhoop", 2)
	if lines[4].Name != dep || lines[4].Required != 8.56 || lines[4].Available != 20 || !lines[4].Enough {
		t.Fatalf("dep line = %+v", lines[4])
	}
	if lines[5].Required != 1.428 {
		t.Fatalf("perfume required = %v", lines[5].Required)
	}

	if _, err := e.Preview("Nope", 1); !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("err = %v", err)
	}
	if _, err := e.Preview("Dhoop", 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("err = %v", err)
	}
}

func TestRequirementsMergesRepeatedMaterials(t *testing.T) {
	r := &bom.Recipe{Name: "X", Components: []bom.Component{
		{RawMaterialName: "A", Quantity: 1.5},
		{RawMaterialName: "B", Quantity: 1},
		{RawMaterialName: "A", Quantity: 0.25},
	}}
	reqs := Requirements(r, 4)
	if len(reqs) != 2 || reqs[0].Name != "A" || reqs[0].Qty.String() != "7" || reqs[1].Qty.String() != "4" {
		t.Fatalf("requirements = %+v", reqs)
	}
}

func TestOutcomeOf(t *testing.T) {
	o := OutcomeOf(nil, ErrRecipeNotFound)
	if o.Success || o.Error == "" || o.ChangedItems == nil {
		t.Fatalf("outcome = %+v", o)
	}
	s := &Sale{Changes: []inventory.Change{{Before: inventory.Record{ID: "1"}, After: inventory.Record{ID: "1", Quantity: 2}}}}
	o = OutcomeOf(s, nil)
	if !o.Success || len(o.ChangedItems) != 1 || o.ChangedItems[0].Quantity != 2 {
		t.Fatalf("outcome = %+v", o)
	}
}

type memJournal struct{ sales []*Sale }

func (j *memJournal) SaveSale(_ context.Context, s *Sale) error {
	j.sales = append(j.sales, s)
	return nil
}

func TestJournalKeepsFulfilledSalesOnly(t *testing.T) {
	e, _ := newTestEngine(t)
	j := &memJournal{}
	e.Journal(j)

	if _, err := e.RecordSale(context.Background(), "Dhoop", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := e.RecordSale(context.Background(), "Dhoop", 100); err == nil {
		t.Fatal("expected shortage")
	}
	if len(j.sales) != 1 || j.sales[0].Good != "Dhoop" || j.sales[0].Quantity != 1 {
		t.Fatalf("journal = %+v", j.sales)
	}
}

type ctxJournal struct{ errs []error }

func (j *ctxJournal) SaveSale(ctx context.Context, _ *Sale) error {
	j.errs = append(j.errs, ctx.Err())
	return ctx.Err()
}

// A sale whose request context is gone after the deduction still reaches
// the journal and the hooks with a usable context.
func TestSaleWithCancelledContextIsStillPersisted(t *testing.T) {
	e, led := newTestEngine(t)
	j := &ctxJournal{}
	e.Journal(j)
	var hookErrs []error
	led.Use(func(ctx context.Context, _ string, _ []inventory.Change) {
		hookErrs = append(hookErrs, ctx.Err())
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.RecordSale(ctx, "Dhoop", 1); err != nil {
		t.Fatal(err)
	}
	if len(j.errs) != 1 || j.errs[0] != nil {
		t.Fatalf("journal context errors = %v", j.errs)
	}
	if len(hookErrs) != 1 || hookErrs[0] != nil {
		t.Fatalf("hook context errors = %v", hookErrs)
	}
}
