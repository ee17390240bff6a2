package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Spok95/herb-stock/internal/domain/inventory"
	"github.com/Spok95/herb-stock/internal/domain/sales"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS raw_materials (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL UNIQUE,
	sku          TEXT NOT NULL UNIQUE,
	category     TEXT NOT NULL DEFAULT '',
	quantity     REAL NOT NULL DEFAULT 0,
	price        REAL NOT NULL DEFAULT 0,
	created_on   TEXT NOT NULL DEFAULT '',
	last_updated DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS stock_movements (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	material_id TEXT NOT NULL,
	sku         TEXT NOT NULL,
	delta       REAL NOT NULL,
	type        TEXT NOT NULL,
	note        TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS sales (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	good       TEXT NOT NULL,
	quantity   INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);
`

// SQLite keeps everything in a single local file.
type SQLite struct{ db *sqlx.DB }

type materialRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	SKU         string    `db:"sku"`
	Category    string    `db:"category"`
	Quantity    float64   `db:"quantity"`
	Price       float64   `db:"price"`
	CreatedOn   string    `db:"created_on"`
	LastUpdated time.Time `db:"last_updated"`
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) LoadAll(ctx context.Context) ([]inventory.Record, error) {
	var rows []materialRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM raw_materials ORDER BY sku`); err != nil {
		return nil, err
	}
	out := make([]inventory.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, inventory.Record{
			ID:          r.ID,
			Name:        r.Name,
			SKU:         r.SKU,
			Category:    r.Category,
			Quantity:    r.Quantity,
			Price:       r.Price,
			Date:        r.CreatedOn,
			LastUpdated: r.LastUpdated,
		})
	}
	return out, nil
}

func (s *SQLite) SaveChanges(ctx context.Context, reason string, changes []inventory.Change) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range changes {
		if c.Deleted() {
			if _, err = tx.ExecContext(ctx, `DELETE FROM raw_materials WHERE id = ?`, c.Before.ID); err != nil {
				return fmt.Errorf("delete %s: %w", c.Before.SKU, err)
			}
			continue
		}
		r := c.After
		if _, err = tx.NamedExecContext(ctx, `
			INSERT INTO raw_materials (id, name, sku, category, quantity, price, created_on, last_updated)
			VALUES (:id, :name, :sku, :category, :quantity, :price, :created_on, :last_updated)
			ON CONFLICT (id) DO UPDATE SET
			  name=excluded.name, sku=excluded.sku, category=excluded.category,
			  quantity=excluded.quantity, price=excluded.price, last_updated=excluded.last_updated
		`, materialRow{
			ID: r.ID, Name: r.Name, SKU: r.SKU, Category: r.Category,
			Quantity: r.Quantity, Price: r.Price, CreatedOn: r.Date, LastUpdated: r.LastUpdated,
		}); err != nil {
			return fmt.Errorf("upsert %s: %w", r.SKU, err)
		}
		if m, ok := movementOf(c, reason); ok {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO stock_movements (material_id, sku, delta, type, note, created_at)
				VALUES (?,?,?,?,?,?)
			`, m.RecordID, m.SKU, m.Delta, string(m.Type), m.Note, m.At); err != nil {
				return fmt.Errorf("movement %s: %w", m.SKU, err)
			}
		}
	}
	return tx.Commit()
}

func (s *SQLite) SaveSale(ctx context.Context, sale *sales.Sale) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sales (good, quantity, created_at) VALUES (?,?,?)`,
		sale.Good, sale.Quantity, sale.At)
	return err
}

func (s *SQLite) RecentSales(ctx context.Context, limit int) ([]SaleRow, error) {
	var out []SaleRow
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, good, quantity, created_at FROM sales
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (s *SQLite) Close() error { return s.db.Close() }
