package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raxj06/Sales-Report-Generator/internal/common"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS products (
	sku            TEXT PRIMARY KEY,
	name           TEXT NOT NULL DEFAULT '',
	hsn_code       TEXT NOT NULL DEFAULT '',
	pieces_per_box INTEGER NOT NULL DEFAULT 0,
	box_weight_kg  DOUBLE PRECISION NOT NULL DEFAULT 0,
	box_length_cm  DOUBLE PRECISION NOT NULL DEFAULT 0,
	box_width_cm   DOUBLE PRECISION NOT NULL DEFAULT 0,
	box_height_cm  DOUBLE PRECISION NOT NULL DEFAULT 0,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS settings (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	webhook_url  TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL DEFAULT '',
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS invoices (
	id             UUID PRIMARY KEY,
	invoice_number TEXT NOT NULL DEFAULT '',
	invoice_date   TEXT NOT NULL DEFAULT '',
	party_name     TEXT NOT NULL DEFAULT '',
	source_file    TEXT NOT NULL DEFAULT '',
	items          JSONB NOT NULL,
	total_quantity INTEGER NOT NULL,
	total_boxes    INTEGER NOT NULL,
	total_weight   DOUBLE PRECISION NOT NULL,
	total_value    DOUBLE PRECISION NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);
`

// openPostgres creates a pgx pool, pings it, and ensures the schema.
func openPostgres(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "sales-report-generator"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(dialCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Store{
		Products: &pgProductRepository{pool: pool},
		Settings: &pgSettingsRepository{pool: pool},
		Invoices: &pgInvoiceRepository{pool: pool},
		Backend:  "postgres",
		closeFn:  pool.Close,
	}, nil
}

type pgProductRepository struct {
	pool *pgxpool.Pool
}

func (r *pgProductRepository) GetAll(ctx context.Context) (entity.ProductMaster, error) {
	rows, err := r.pool.Query(ctx, `SELECT sku, name, hsn_code, pieces_per_box, box_weight_kg,
		box_length_cm, box_width_cm, box_height_cm FROM products`)
	if err != nil {
		return nil, common.WrapError(err, "query products")
	}
	defer rows.Close()

	master := entity.ProductMaster{}
	for rows.Next() {
		var sku string
		var cfg entity.ProductConfig
		if err := rows.Scan(&sku, &cfg.Name, &cfg.HSNCode, &cfg.PiecesPerBox, &cfg.BoxWeightKg,
			&cfg.BoxLengthCm, &cfg.BoxWidthCm, &cfg.BoxHeightCm); err != nil {
			return nil, common.WrapError(err, "scan product")
		}
		master[sku] = cfg
	}
	return master, rows.Err()
}

func (r *pgProductRepository) Get(ctx context.Context, sku string) (entity.ProductConfig, error) {
	var cfg entity.ProductConfig
	err := r.pool.QueryRow(ctx, `SELECT name, hsn_code, pieces_per_box, box_weight_kg,
		box_length_cm, box_width_cm, box_height_cm FROM products WHERE sku = $1`, sku).
		Scan(&cfg.Name, &cfg.HSNCode, &cfg.PiecesPerBox, &cfg.BoxWeightKg,
			&cfg.BoxLengthCm, &cfg.BoxWidthCm, &cfg.BoxHeightCm)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.ProductConfig{}, common.ErrNotFound
	}
	return cfg, err
}

func (r *pgProductRepository) Put(ctx context.Context, sku string, cfg entity.ProductConfig) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO products
		(sku, name, hsn_code, pieces_per_box, box_weight_kg, box_length_cm, box_width_cm, box_height_cm, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name, hsn_code = EXCLUDED.hsn_code,
			pieces_per_box = EXCLUDED.pieces_per_box, box_weight_kg = EXCLUDED.box_weight_kg,
			box_length_cm = EXCLUDED.box_length_cm, box_width_cm = EXCLUDED.box_width_cm,
			box_height_cm = EXCLUDED.box_height_cm, updated_at = now()`,
		sku, cfg.Name, cfg.HSNCode, cfg.PiecesPerBox, cfg.BoxWeightKg,
		cfg.BoxLengthCm, cfg.BoxWidthCm, cfg.BoxHeightCm)
	return common.WrapError(err, "upsert product")
}

func (r *pgProductRepository) Delete(ctx context.Context, sku string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE sku = $1`, sku)
	if err != nil {
		return common.WrapError(err, "delete product")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

type pgSettingsRepository struct {
	pool *pgxpool.Pool
}

func (r *pgSettingsRepository) Get(ctx context.Context) (entity.Settings, error) {
	var s entity.Settings
	err := r.pool.QueryRow(ctx,
		`SELECT webhook_url, company_name, updated_at FROM settings WHERE id = 1`).
		Scan(&s.WebhookURL, &s.CompanyName, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.Settings{}, nil // unset settings is not an error
	}
	return s, err
}

func (r *pgSettingsRepository) Put(ctx context.Context, s entity.Settings) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO settings (id, webhook_url, company_name, updated_at)
		VALUES (1, $1, $2, now())
		ON CONFLICT (id) DO UPDATE SET
			webhook_url = EXCLUDED.webhook_url, company_name = EXCLUDED.company_name, updated_at = now()`,
		s.WebhookURL, s.CompanyName)
	return common.WrapError(err, "upsert settings")
}

type pgInvoiceRepository struct {
	pool *pgxpool.Pool
}

func (r *pgInvoiceRepository) Save(ctx context.Context, rec *entity.InvoiceRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	items, err := json.Marshal(rec.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO invoices
		(id, invoice_number, invoice_date, party_name, source_file, items,
		 total_quantity, total_boxes, total_weight, total_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			invoice_number = EXCLUDED.invoice_number, invoice_date = EXCLUDED.invoice_date,
			party_name = EXCLUDED.party_name, source_file = EXCLUDED.source_file,
			items = EXCLUDED.items, total_quantity = EXCLUDED.total_quantity,
			total_boxes = EXCLUDED.total_boxes, total_weight = EXCLUDED.total_weight,
			total_value = EXCLUDED.total_value, updated_at = EXCLUDED.updated_at`,
		rec.ID, rec.InvoiceNumber, rec.InvoiceDate, rec.PartyName, rec.SourceFile, items,
		rec.Totals.Quantity, rec.Totals.Boxes, rec.Totals.Weight, rec.Totals.Value,
		rec.CreatedAt, rec.UpdatedAt)
	return common.WrapError(err, "upsert invoice")
}

func (r *pgInvoiceRepository) List(ctx context.Context, limit int) ([]entity.InvoiceRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `SELECT id, invoice_number, invoice_date, party_name, source_file,
		items, total_quantity, total_boxes, total_weight, total_value, created_at, updated_at
		FROM invoices ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, common.WrapError(err, "query invoices")
	}
	defer rows.Close()

	var recs []entity.InvoiceRecord
	for rows.Next() {
		rec, err := scanInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func (r *pgInvoiceRepository) Get(ctx context.Context, id uuid.UUID) (*entity.InvoiceRecord, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, invoice_number, invoice_date, party_name, source_file,
		items, total_quantity, total_boxes, total_weight, total_value, created_at, updated_at
		FROM invoices WHERE id = $1`, id)
	rec, err := scanInvoice(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return rec, err
}

// scanInvoice decodes one invoice row from either backend; both store the
// enriched items as a JSON document.
func scanInvoice(scan func(dest ...any) error) (*entity.InvoiceRecord, error) {
	var rec entity.InvoiceRecord
	var items []byte
	if err := scan(&rec.ID, &rec.InvoiceNumber, &rec.InvoiceDate, &rec.PartyName, &rec.SourceFile,
		&items, &rec.Totals.Quantity, &rec.Totals.Boxes, &rec.Totals.Weight, &rec.Totals.Value,
		&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &rec.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &rec, nil
}
