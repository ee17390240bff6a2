package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/Spok95/herb-stock/internal/domain/bom"
	"github.com/Spok95/herb-stock/internal/domain/inventory"
	"github.com/Spok95/herb-stock/internal/domain/sales"
	"github.com/Spok95/herb-stock/internal/infra/sheets"
)

type api struct {
	Deps
}

type errorBody struct {
	Error string `json:"error"`
}

type saleRequest struct {
	Good     string `json:"good"`
	Quantity any    `json:"quantity"`
}

type stockUpdate struct {
	Delta any `json:"delta"`
}

type previewBody struct {
	Good       string       `json:"good"`
	Quantity   int          `json:"quantity"`
	CanFulfill bool         `json:"canFulfill"`
	Lines      []sales.Line `json:"lines"`
}

func (a *api) listRecipes(w http.ResponseWriter, _ *http.Request) {
	names := a.Engine.Names()
	out := make([]*bom.Recipe, 0, len(names))
	for _, n := range names {
		if r, ok := a.Engine.Recipe(n); ok {
			out = append(out, r)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *api) getRecipe(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	rec, ok := a.Engine.Recipe(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: fmt.Sprintf("recipe for %q not found", name)})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *api) listStock(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.Stock.List())
}

func (a *api) exportStock(w http.ResponseWriter, _ *http.Request) {
	data, err := sheets.Export(a.Stock.List())
	if err != nil {
		a.Log.Error("export stock", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "export failed"})
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="stock_%s.xlsx"`, time.Now().Format("20060102_150405")))
	_, _ = w.Write(data)
}

func (a *api) updateStock(w http.ResponseWriter, r *http.Request) {
	var body stockUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	delta, err := parseNumber(body.Delta)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "delta: " + err.Error()})
		return
	}
	c, err := a.Stock.UpdateStock(r.PathValue("id"), delta)
	if err != nil {
		a.stockError(w, "update stock", r.PathValue("id"), err)
		return
	}
	writeJSON(w, http.StatusOK, c.After)
}

func (a *api) createStock(w http.ResponseWriter, r *http.Request) {
	var in inventory.NewRecord
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	rec, err := a.Stock.Add(in)
	if err != nil {
		a.stockError(w, "create stock", in.SKU, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// editStock replaces the editable fields of a record; the id comes from the path.
func (a *api) editStock(w http.ResponseWriter, r *http.Request) {
	var in inventory.NewRecord
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	id := r.PathValue("id")
	c, err := a.Stock.Edit(inventory.Record{
		ID:       id,
		Name:     in.Name,
		SKU:      in.SKU,
		Category: in.Category,
		Quantity: in.Quantity,
		Price:    in.Price,
	})
	if err != nil {
		a.stockError(w, "edit stock", id, err)
		return
	}
	writeJSON(w, http.StatusOK, c.After)
}

func (a *api) deleteStock(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := a.Stock.Delete(id); err != nil {
		a.stockError(w, "delete stock", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) stockError(w http.ResponseWriter, op, key string, err error) {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, inventory.ErrInvalidRecord):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, inventory.ErrDuplicateName), errors.Is(err, inventory.ErrDuplicateSKU):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		a.Log.Error(op, "key", key, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}

func (a *api) previewSale(w http.ResponseWriter, r *http.Request) {
	good := r.URL.Query().Get("good")
	qty, err := parseQuantity(r.URL.Query().Get("quantity"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	lines, err := a.Engine.Preview(good, qty)
	if err != nil {
		writeJSON(w, statusOf(err), errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, previewBody{Good: good, Quantity: qty, CanFulfill: sales.CanFulfill(lines), Lines: lines})
}

func (a *api) recordSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, sales.OutcomeOf(nil, errors.New("invalid JSON body")))
		return
	}
	qty, err := parseQuantity(req.Quantity)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, sales.OutcomeOf(nil, err))
		return
	}
	sale, err := a.Engine.RecordSale(r.Context(), req.Good, qty)
	writeJSON(w, statusOf(err), sales.OutcomeOf(sale, err))
}

func (a *api) listSales(w http.ResponseWriter, r *http.Request) {
	if a.Journal == nil {
		writeJSON(w, http.StatusNotImplemented, errorBody{Error: "sales journal needs a storage driver"})
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}
	rows, err := a.Journal.RecentSales(r.Context(), limit)
	if err != nil {
		a.Log.Error("list sales", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "cannot read sales"})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func statusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, sales.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, sales.ErrRecipeNotFound):
		return http.StatusNotFound
	case errors.Is(err, sales.ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseQuantity accepts whole JSON numbers and numeric strings. Range checks
// are left to the engine so that 0 and negatives get its error.
func parseQuantity(v any) (int, error) {
	f, err := parseNumber(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", sales.ErrInvalidQuantity, err)
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: got %v", sales.ErrInvalidQuantity, v)
	}
	return int(f), nil
}

func parseNumber(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, errors.New("not a finite number")
		}
		return x, nil
	case string:
		f, err := cast.ToFloat64E(strings.TrimSpace(x))
		if err != nil || strings.TrimSpace(x) == "" {
			return 0, fmt.Errorf("not a number: %q", x)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, errors.New("not a finite number")
		}
		return f, nil
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
