package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Spok95/herb-stock/internal/domain/bom"
	"github.com/Spok95/herb-stock/internal/domain/catalog"
	"github.com/Spok95/herb-stock/internal/domain/inventory"
	"github.com/Spok95/herb-stock/internal/domain/sales"
	"github.com/Spok95/herb-stock/internal/infra/sheets"
	"github.com/Spok95/herb-stock/internal/infra/store"
)

type stubJournal struct{ rows []store.SaleRow }

func (j stubJournal) RecentSales(_ context.Context, limit int) ([]store.SaleRow, error) {
	if limit < len(j.rows) {
		return j.rows[:limit], nil
	}
	return j.rows, nil
}

func newTestHandler(t *testing.T) (http.Handler, *inventory.Ledger) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := bom.NewRegistry(bom.NewCanonicalizer(catalog.Default(), bom.DefaultAliases(), log), bom.DefaultRecipes(), log)
	if err := reg.Build(); err != nil {
		t.Fatal(err)
	}
	led := inventory.NewLedger(log)
	for i, s := range []struct {
		name string
		qty  float64
	}{
		{"Kanda powder", 10},
		{"Lakdi Powder  (Saw Dust Powder) for black agarbathi", 50},
		{"Joss Powder", 10},
		{"KNO3 (Potassium Nitrate)", 5},
		{"DEP", 20},
		{"Perfume", 5},
	} {
		if _, err := led.Add(inventory.NewRecord{Name: s.name, SKU: "RM-H" + string(rune('A'+i)), Quantity: s.qty}); err != nil {
			t.Fatal(err)
		}
	}
	h := NewHandler(Deps{
		Engine: sales.NewEngine(reg, led, log),
		Stock:  led,
		Journal: stubJournal{rows: []store.SaleRow{
			{ID: 2, Good: "Dhoop", Quantity: 1, At: time.Now()},
			{ID: 1, Good: "Agarbatti", Quantity: 3, At: time.Now()},
		}},
		Log: log,
	})
	return h, led
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, rd))
	return rec
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestRecordSaleStatuses(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantOK     bool
		wantErr    string
	}{
		{"fulfilled", `{"good":"Dhoop","quantity":1}`, http.StatusOK, true, ""},
		{"numeric string", `{"good":"Dhoop","quantity":"1"}`, http.StatusOK, true, ""},
		{"shortage", `{"good":"Dhoop","quantity":4}`, http.StatusConflict, false,
			`not enough stock for "KNO3 (Potassium Nitrate)": required 6.00, available 5.00`},
		{"unknown", `{"good":"Nonexistent","quantity":1}`, http.StatusNotFound, false, `"Nonexistent"`},
		{"zero", `{"good":"Dhoop","quantity":0}`, http.StatusBadRequest, false, "positive whole number"},
		{"fraction", `{"good":"Dhoop","quantity":1.5}`, http.StatusBadRequest, false, "positive whole number"},
		{"bool", `{"good":"Dhoop","quantity":true}`, http.StatusBadRequest, false, "positive whole number"},
		{"bad json", `{`, http.StatusBadRequest, false, "invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)
			rec := do(t, h, http.MethodPost, "/api/sales", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var out sales.Outcome
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatal(err)
			}
			if out.Success != tt.wantOK {
				t.Fatalf("success = %v", out.Success)
			}
			if !strings.Contains(out.Error, tt.wantErr) {
				t.Fatalf("error = %q, want it to contain %q", out.Error, tt.wantErr)
			}
			if tt.wantOK && len(out.ChangedItems) != 6 {
				t.Fatalf("changed = %d", len(out.ChangedItems))
			}
			if !tt.wantOK && out.ChangedItems == nil {
				t.Fatal("changedItems must be an empty list, not null")
			}
		})
	}
}

func TestRejectedSaleLeavesStock(t *testing.T) {
	h, led := newTestHandler(t)
	before := led.List()
	do(t, h, http.MethodPost, "/api/sales", `{"good":"Dhoop","quantity":4}`)
	after := led.List()
	for i := range before {
		if before[i].Quantity != after[i].Quantity {
			t.Fatalf("%s changed: %v -> %v", before[i].Name, before[i].Quantity, after[i].Quantity)
		}
	}
}

func TestPreview(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/api/sales/preview?good=Dhoop&quantity=4", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	var out previewBody
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.CanFulfill || len(out.Lines) != 6 {
		t.Fatalf("preview = %+v", out)
	}
	if l := out.Lines[3]; l.Name != "KNO3 (Potassium Nitrate)" || l.Required != 6 || l.Enough {
		t.Fatalf("kno3 line = %+v", l)
	}

	if rec := do(t, h, http.MethodGet, "/api/sales/preview?good=Dhoop&quantity=x", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad qty status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/sales/preview?good=Nope&quantity=1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown good status = %d", rec.Code)
	}
}

func TestRecipes(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/api/recipes", "")
	var list []bom.Recipe
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) == 0 || list[0].Name != "Dhoop" {
		t.Fatalf("recipes = %+v", list)
	}

	rec = do(t, h, http.MethodGet, "/api/recipes/Dhoop", "")
	var one bom.Recipe
	if err := json.Unmarshal(rec.Body.Bytes(), &one); err != nil {
		t.Fatal(err)
	}
	if one.Components[1].RawMaterialName != "Lakdi Powder  (Saw Dust Powder) for black agarbathi" {
		t.Fatalf("component = %+v", one.Components[1])
	}

	if rec := do(t, h, http.MethodGet, "/api/recipes/dhoop", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("case-insensitive recipe lookup: %d", rec.Code)
	}
}

func TestStockEndpoints(t *testing.T) {
	h, led := newTestHandler(t)
	kanda, _ := led.GetByName("Kanda powder")

	rec := do(t, h, http.MethodPatch, "/api/stock/"+kanda.ID, `{"delta":"-2.5"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch = %d %s", rec.Code, rec.Body.String())
	}
	if got, _ := led.Get(kanda.ID); got.Quantity != 7.5 {
		t.Fatalf("quantity = %v", got.Quantity)
	}
	if rec := do(t, h, http.MethodPatch, "/api/stock/missing", `{"delta":1}`); rec.Code != http.StatusNotFound {
		t.Fatalf("missing = %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/stock.xlsx", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export = %d", rec.Code)
	}
	recs, err := sheets.Read(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != led.Len() {
		t.Fatalf("exported %d of %d", len(recs), led.Len())
	}
}

func TestStockCRUD(t *testing.T) {
	h, led := newTestHandler(t)
	var reasons []string
	led.Use(func(_ context.Context, reason string, _ []inventory.Change) {
		reasons = append(reasons, reason)
	})

	rec := do(t, h, http.MethodPost, "/api/stock", `{"name":"Camphor","sku":"RM-NEW","quantity":3.456,"price":120}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", rec.Code, rec.Body.String())
	}
	var created inventory.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.Quantity != 3.46 || created.Category == "" {
		t.Fatalf("created = %+v", created)
	}

	for _, tc := range []struct {
		body string
		code int
	}{
		{`{"name":"Camphor","sku":"RM-OTHER"}`, http.StatusConflict},
		{`{"name":"Other","sku":"RM-NEW"}`, http.StatusConflict},
		{`{"name":"","sku":"RM-X"}`, http.StatusBadRequest},
		{`{"name":"Neg","sku":"RM-Y","quantity":-1}`, http.StatusBadRequest},
		{`not json`, http.StatusBadRequest},
	} {
		if rec := do(t, h, http.MethodPost, "/api/stock", tc.body); rec.Code != tc.code {
			t.Errorf("POST %s = %d, want %d", tc.body, rec.Code, tc.code)
		}
	}

	rec = do(t, h, http.MethodPut, "/api/stock/"+created.ID, `{"name":"Camphor tablets","sku":"RM-NEW","quantity":2,"price":130}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("edit = %d %s", rec.Code, rec.Body.String())
	}
	got, _ := led.Get(created.ID)
	if got.Name != "Camphor tablets" || got.Quantity != 2 || got.Price != 130 {
		t.Fatalf("after edit = %+v", got)
	}
	if rec := do(t, h, http.MethodPut, "/api/stock/"+created.ID, `{"name":"Perfume","sku":"RM-NEW"}`); rec.Code != http.StatusConflict {
		t.Fatalf("rename onto existing = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPut, "/api/stock/missing", `{"name":"X","sku":"Y"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("edit missing = %d", rec.Code)
	}

	if rec := do(t, h, http.MethodDelete, "/api/stock/"+created.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", rec.Code)
	}
	if _, ok := led.Get(created.ID); ok {
		t.Fatal("record still present")
	}
	if rec := do(t, h, http.MethodDelete, "/api/stock/"+created.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete = %d", rec.Code)
	}

	want := []string{inventory.ReasonCreate, inventory.ReasonEdit, inventory.ReasonDelete}
	if strings.Join(reasons, ",") != strings.Join(want, ",") {
		t.Fatalf("hook reasons = %v, want %v", reasons, want)
	}
}

func TestSaleSurvivesClientDisconnect(t *testing.T) {
	h, led := newTestHandler(t)
	var hookErrs []error
	led.Use(func(ctx context.Context, _ string, _ []inventory.Change) {
		hookErrs = append(hookErrs, ctx.Err())
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(`{"good":"Dhoop","quantity":1}`)).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	if len(hookErrs) != 1 || hookErrs[0] != nil {
		t.Fatalf("hook context errors = %v", hookErrs)
	}
}

func TestListSales(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/api/sales?limit=1", "")
	var rows []store.SaleRow
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Good != "Dhoop" {
		t.Fatalf("rows = %+v", rows)
	}
	if rec := do(t, h, http.MethodGet, "/api/sales?limit=0", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("limit=0 status = %d", rec.Code)
	}
}
