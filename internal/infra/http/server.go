package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Spok95/herb-stock/internal/domain/inventory"
	"github.com/Spok95/herb-stock/internal/domain/sales"
	"github.com/Spok95/herb-stock/internal/infra/store"
)

// SalesJournal lists recorded sales. Nil when running without storage.
type SalesJournal interface {
	RecentSales(ctx context.Context, limit int) ([]store.SaleRow, error)
}

type Deps struct {
	Engine  *sales.Engine
	Stock   *inventory.Ledger
	Journal SalesJournal
	// Metrics is served on /metrics when set.
	Metrics http.Handler
	Log     *slog.Logger
}

type Server struct {
	srv *http.Server
}

func New(addr string, d Deps) *Server {
	return &Server{srv: &http.Server{Addr: addr, Handler: NewHandler(d)}}
}

func NewHandler(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	a := &api{Deps: d}
	mux.HandleFunc("GET /api/recipes", a.listRecipes)
	mux.HandleFunc("GET /api/recipes/{name}", a.getRecipe)
	mux.HandleFunc("GET /api/stock", a.listStock)
	mux.HandleFunc("GET /api/stock.xlsx", a.exportStock)
	mux.HandleFunc("POST /api/stock", a.createStock)
	mux.HandleFunc("PUT /api/stock/{id}", a.editStock)
	mux.HandleFunc("PATCH /api/stock/{id}", a.updateStock)
	mux.HandleFunc("DELETE /api/stock/{id}", a.deleteStock)
	mux.HandleFunc("GET /api/sales/preview", a.previewSale)
	mux.HandleFunc("POST /api/sales", a.recordSale)
	mux.HandleFunc("GET /api/sales", a.listSales)

	return mux
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
