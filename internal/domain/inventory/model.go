package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one raw-material stock line.
type Record struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category"`
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price"`
	Date        string    `json:"date"` // creation day, YYYY-MM-DD
	LastUpdated time.Time `json:"lastUpdated"`
}

// NewRecord is the input for Ledger.Add.
type NewRecord struct {
	Name     string  `json:"name" validate:"required"`
	SKU      string  `json:"sku" validate:"required"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// Requirement is an amount of one raw material that a sale needs.
type Requirement struct {
	Name string
	Qty  decimal.Decimal
}

// Change pairs a record's state before and after a mutation.
type Change struct {
	Before Record
	After  Record
}

type MoveType string

const (
	MoveIn  MoveType = "in"
	MoveOut MoveType = "out"
)

// Movement is a journal line written by stores for every quantity change.
type Movement struct {
	RecordID string
	SKU      string
	Delta    float64
	Type     MoveType
	Note     string
	At       time.Time
}

// MovementOf derives the journal line for a change.
func MovementOf(c Change, note string) Movement {
	delta := round2(c.After.Quantity - c.Before.Quantity)
	t := MoveIn
	if delta < 0 {
		t = MoveOut
	}
	return Movement{
		RecordID: c.After.ID,
		SKU:      c.After.SKU,
		Delta:    delta,
		Type:     t,
		Note:     note,
		At:       c.After.LastUpdated,
	}
}
