package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Spok95/herb-stock/internal/domain/inventory"
)

// Metrics implements sales.Observer and exposes an inventory.Hook.
type Metrics struct {
	salesFulfilled *prometheus.CounterVec
	unitsSold      *prometheus.CounterVec
	salesRejected  *prometheus.CounterVec
	stockChanges   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		salesFulfilled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "herbstock_sales_fulfilled_total",
			Help: "Fulfilled sales by finished good.",
		}, []string{"good"}),
		unitsSold: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "herbstock_units_sold_total",
			Help: "Units of finished goods sold.",
		}, []string{"good"}),
		salesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "herbstock_sales_rejected_total",
			Help: "Rejected sale requests by reason.",
		}, []string{"reason"}),
		stockChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "herbstock_stock_changes_total",
			Help: "Raw-material record changes by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.salesFulfilled, m.unitsSold, m.salesRejected, m.stockChanges)
	return m
}

func (m *Metrics) SaleFulfilled(good string, qty int) {
	m.salesFulfilled.WithLabelValues(good).Inc()
	m.unitsSold.WithLabelValues(good).Add(float64(qty))
}

// SaleRejected does not label by good: rejected names are user input.
func (m *Metrics) SaleRejected(_ string, reason string) {
	m.salesRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) Hook() inventory.Hook {
	return func(_ context.Context, reason string, changes []inventory.Change) {
		m.stockChanges.WithLabelValues(reason).Add(float64(len(changes)))
	}
}
