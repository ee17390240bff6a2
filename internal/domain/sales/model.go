package sales

import (
	"time"

	"github.com/Spok95/herb-stock/internal/domain/inventory"
)

// Sale is a fulfilled sale request.
type Sale struct {
	Good     string
	Quantity int
	Changes  []inventory.Change
	At       time.Time
}

// Changed returns the records the sale mutated, in recipe order.
func (s *Sale) Changed() []inventory.Record {
	return inventory.After(s.Changes)
}

// Line is one ingredient row of a sale preview.
type Line struct {
	Name      string  `json:"name"`
	Required  float64 `json:"required"`
	Available float64 `json:"available"`
	Enough    bool    `json:"enough"`
}

// Outcome is the boundary shape of a sale result.
type Outcome struct {
	Success      bool               `json:"success"`
	ChangedItems []inventory.Record `json:"changedItems"`
	Error        string             `json:"error,omitempty"`
}

// OutcomeOf converts the result of Engine.RecordSale.
func OutcomeOf(s *Sale, err error) Outcome {
	if err != nil {
		return Outcome{Success: false, ChangedItems: []inventory.Record{}, Error: err.Error()}
	}
	return Outcome{Success: true, ChangedItems: s.Changed()}
}
