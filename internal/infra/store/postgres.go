package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/herb-stock/internal/domain/inventory"
	"github.com/Spok95/herb-stock/internal/domain/sales"
)

type Postgres struct{ pool *pgxpool.Pool }

func NewPostgres(pool *pgxpool.Pool) *Postgres { return &Postgres{pool: pool} }

func (p *Postgres) LoadAll(ctx context.Context) ([]inventory.Record, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, sku, category, quantity::float8, price::float8, created_on::text, last_updated
		FROM raw_materials
		ORDER BY sku
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []inventory.Record
	for rows.Next() {
		var r inventory.Record
		if err := rows.Scan(&r.ID, &r.Name, &r.SKU, &r.Category, &r.Quantity, &r.Price, &r.Date, &r.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) SaveChanges(ctx context.Context, reason string, changes []inventory.Change) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, c := range changes {
		if c.Deleted() {
			if _, err = tx.Exec(ctx, `DELETE FROM raw_materials WHERE id = $1`, c.Before.ID); err != nil {
				return fmt.Errorf("delete %s: %w", c.Before.SKU, err)
			}
			continue
		}
		r := c.After
		if _, err = tx.Exec(ctx, `
			INSERT INTO raw_materials (id, name, sku, category, quantity, price, created_on, last_updated)
			VALUES ($1,$2,$3,$4,$5,$6,$7::text::date,$8)
			ON CONFLICT (id) DO UPDATE SET
			  name=$2, sku=$3, category=$4, quantity=$5, price=$6, last_updated=$8
		`, r.ID, r.Name, r.SKU, r.Category, r.Quantity, r.Price, r.Date, r.LastUpdated); err != nil {
			return fmt.Errorf("upsert %s: %w", r.SKU, err)
		}
		if m, ok := movementOf(c, reason); ok {
			if _, err = tx.Exec(ctx, `
				INSERT INTO stock_movements (material_id, sku, delta, type, note, created_at)
				VALUES ($1,$2,$3,$4,$5,$6)
			`, m.RecordID, m.SKU, m.Delta, string(m.Type), m.Note, m.At); err != nil {
				return fmt.Errorf("movement %s: %w", m.SKU, err)
			}
		}
	}
	return tx.Commit(ctx)
}

func (p *Postgres) SaveSale(ctx context.Context, s *sales.Sale) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO sales (good, quantity, created_at) VALUES ($1,$2,$3)`,
		s.Good, s.Quantity, s.At)
	return err
}

func (p *Postgres) RecentSales(ctx context.Context, limit int) ([]SaleRow, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, good, quantity, created_at FROM sales
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[SaleRow])
}

// Close is a no-op: the pool belongs to the caller.
func (p *Postgres) Close() error { return nil }
