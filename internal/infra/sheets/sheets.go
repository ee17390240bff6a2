// Package sheets mirrors ledger records to an .xlsx workbook keyed by SKU.
package sheets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/herb-stock/internal/domain/inventory"
)

const recordType = "raw_material"

var header = []any{"id", "name", "sku", "category", "quantity", "price", "type", "date", "lastUpdated"}

// Write renders records as a single-sheet workbook.
func Write(w io.Writer, recs []inventory.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	for i, r := range recs {
		row := []any{
			r.ID,
			r.Name,
			r.SKU,
			r.Category,
			r.Quantity,
			r.Price,
			recordType,
			r.Date,
			r.LastUpdated.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

// Export returns the workbook bytes for recs.
func Export(recs []inventory.Record) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Write(buf, recs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Read parses a workbook produced by Write. Rows without a SKU are skipped;
// a row with an unreadable number fails the whole read.
func Read(r io.Reader) ([]inventory.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var out []inventory.Record
	for i, row := range rows[1:] {
		col := func(n int) string {
			if n < len(row) {
				return strings.TrimSpace(row[n])
			}
			return ""
		}
		if col(2) == "" {
			continue
		}
		qty, err := cast.ToFloat64E(orZero(col(4)))
		if err != nil {
			return nil, fmt.Errorf("row %d quantity: %w", i+2, err)
		}
		price, err := cast.ToFloat64E(orZero(col(5)))
		if err != nil {
			return nil, fmt.Errorf("row %d price: %w", i+2, err)
		}
		rec := inventory.Record{
			ID:       col(0),
			Name:     col(1),
			SKU:      col(2),
			Category: col(3),
			Quantity: qty,
			Price:    price,
			Date:     col(7),
		}
		if ts := col(8); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				rec.LastUpdated = t
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// Mirror keeps a workbook on disk in step with the ledger.
type Mirror struct {
	mu   sync.Mutex
	path string
	log  *slog.Logger
}

func NewMirror(path string, log *slog.Logger) *Mirror {
	return &Mirror{path: path, log: log}
}

func (m *Mirror) Path() string { return m.path }

// Load reads the mirrored records. A missing file yields no records.
func (m *Mirror) Load() ([]inventory.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

func (m *Mirror) load() ([]inventory.Record, error) {
	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(data))
}

// Apply upserts changed records by SKU and removes deleted ones.
func (m *Mirror) Apply(changes []inventory.Change) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	recs, err := m.load()
	if err != nil {
		return err
	}
	pos := make(map[string]int, len(recs))
	for i, r := range recs {
		pos[r.SKU] = i
	}
	gone := map[string]bool{}
	for _, c := range changes {
		if c.Deleted() {
			gone[c.Before.SKU] = true
			continue
		}
		// an edit may rename the SKU
		if c.Before.SKU != "" && c.Before.SKU != c.After.SKU {
			gone[c.Before.SKU] = true
		}
		delete(gone, c.After.SKU)
		if i, ok := pos[c.After.SKU]; ok {
			recs[i] = c.After
			continue
		}
		pos[c.After.SKU] = len(recs)
		recs = append(recs, c.After)
	}

	kept := recs[:0]
	for _, r := range recs {
		if !gone[r.SKU] {
			kept = append(kept, r)
		}
	}
	return m.save(kept)
}

// Reset overwrites the workbook with recs.
func (m *Mirror) Reset(recs []inventory.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(recs)
}

func (m *Mirror) save(recs []inventory.Record) error {
	data, err := Export(recs)
	if err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, m.path)
}

// Hook mirrors every ledger change. Sync failures are logged only.
func (m *Mirror) Hook() inventory.Hook {
	return func(_ context.Context, reason string, changes []inventory.Change) {
		if err := m.Apply(changes); err != nil {
			m.log.Error("sheet sync failed", "path", m.path, "reason", reason, "err", err)
			return
		}
		m.log.Debug("sheet synced", "reason", reason, "rows", len(changes))
	}
}
