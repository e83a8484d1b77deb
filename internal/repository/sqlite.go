package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/raxj06/Sales-Report-Generator/internal/common"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
	sku            TEXT PRIMARY KEY,
	name           TEXT NOT NULL DEFAULT '',
	hsn_code       TEXT NOT NULL DEFAULT '',
	pieces_per_box INTEGER NOT NULL DEFAULT 0,
	box_weight_kg  REAL NOT NULL DEFAULT 0,
	box_length_cm  REAL NOT NULL DEFAULT 0,
	box_width_cm   REAL NOT NULL DEFAULT 0,
	box_height_cm  REAL NOT NULL DEFAULT 0,
	updated_at     TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS settings (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	webhook_url  TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL DEFAULT '',
	updated_at   TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS invoices (
	id             TEXT PRIMARY KEY,
	invoice_number TEXT NOT NULL DEFAULT '',
	invoice_date   TEXT NOT NULL DEFAULT '',
	party_name     TEXT NOT NULL DEFAULT '',
	source_file    TEXT NOT NULL DEFAULT '',
	items          TEXT NOT NULL,
	total_quantity INTEGER NOT NULL,
	total_boxes    INTEGER NOT NULL,
	total_weight   REAL NOT NULL,
	total_value    REAL NOT NULL,
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
);
`

// openSQLite opens (creating if needed) the local fallback store.
func openSQLite(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("local store path is empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Store{
		Products: &sqliteProductRepository{db: db},
		Settings: &sqliteSettingsRepository{db: db},
		Invoices: &sqliteInvoiceRepository{db: db},
		Backend:  "sqlite",
		closeFn: func() {
			if cerr := db.Close(); cerr != nil {
				logger.Error("store.sqlite_close", "error", cerr)
			}
		},
	}, nil
}

type sqliteProductRepository struct {
	db *sql.DB
}

func (r *sqliteProductRepository) GetAll(ctx context.Context) (entity.ProductMaster, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT sku, name, hsn_code, pieces_per_box, box_weight_kg,
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

func (r *sqliteProductRepository) Get(ctx context.Context, sku string) (entity.ProductConfig, error) {
	var cfg entity.ProductConfig
	err := r.db.QueryRowContext(ctx, `SELECT name, hsn_code, pieces_per_box, box_weight_kg,
		box_length_cm, box_width_cm, box_height_cm FROM products WHERE sku = ?`, sku).
		Scan(&cfg.Name, &cfg.HSNCode, &cfg.PiecesPerBox, &cfg.BoxWeightKg,
			&cfg.BoxLengthCm, &cfg.BoxWidthCm, &cfg.BoxHeightCm)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ProductConfig{}, common.ErrNotFound
	}
	return cfg, err
}

func (r *sqliteProductRepository) Put(ctx context.Context, sku string, cfg entity.ProductConfig) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO products
		(sku, name, hsn_code, pieces_per_box, box_weight_kg, box_length_cm, box_width_cm, box_height_cm, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (sku) DO UPDATE SET
			name = excluded.name, hsn_code = excluded.hsn_code,
			pieces_per_box = excluded.pieces_per_box, box_weight_kg = excluded.box_weight_kg,
			box_length_cm = excluded.box_length_cm, box_width_cm = excluded.box_width_cm,
			box_height_cm = excluded.box_height_cm, updated_at = excluded.updated_at`,
		sku, cfg.Name, cfg.HSNCode, cfg.PiecesPerBox, cfg.BoxWeightKg,
		cfg.BoxLengthCm, cfg.BoxWidthCm, cfg.BoxHeightCm, time.Now().UTC().Format(time.RFC3339))
	return common.WrapError(err, "upsert product")
}

func (r *sqliteProductRepository) Delete(ctx context.Context, sku string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE sku = ?`, sku)
	if err != nil {
		return common.WrapError(err, "delete product")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type sqliteSettingsRepository struct {
	db *sql.DB
}

func (r *sqliteSettingsRepository) Get(ctx context.Context) (entity.Settings, error) {
	var s entity.Settings
	var updated string
	err := r.db.QueryRowContext(ctx,
		`SELECT webhook_url, company_name, updated_at FROM settings WHERE id = 1`).
		Scan(&s.WebhookURL, &s.CompanyName, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Settings{}, nil
	}
	if err != nil {
		return entity.Settings{}, err
	}
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return s, nil
}

func (r *sqliteSettingsRepository) Put(ctx context.Context, s entity.Settings) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO settings (id, webhook_url, company_name, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			webhook_url = excluded.webhook_url, company_name = excluded.company_name,
			updated_at = excluded.updated_at`,
		s.WebhookURL, s.CompanyName, time.Now().UTC().Format(time.RFC3339))
	return common.WrapError(err, "upsert settings")
}

type sqliteInvoiceRepository struct {
	db *sql.DB
}

func (r *sqliteInvoiceRepository) Save(ctx context.Context, rec *entity.InvoiceRecord) error {
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
	_, err = r.db.ExecContext(ctx, `INSERT INTO invoices
		(id, invoice_number, invoice_date, party_name, source_file, items,
		 total_quantity, total_boxes, total_weight, total_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			invoice_number = excluded.invoice_number, invoice_date = excluded.invoice_date,
			party_name = excluded.party_name, source_file = excluded.source_file,
			items = excluded.items, total_quantity = excluded.total_quantity,
			total_boxes = excluded.total_boxes, total_weight = excluded.total_weight,
			total_value = excluded.total_value, updated_at = excluded.updated_at`,
		rec.ID.String(), rec.InvoiceNumber, rec.InvoiceDate, rec.PartyName, rec.SourceFile, string(items),
		rec.Totals.Quantity, rec.Totals.Boxes, rec.Totals.Weight, rec.Totals.Value,
		rec.CreatedAt.Format(time.RFC3339Nano), rec.UpdatedAt.Format(time.RFC3339Nano))
	return common.WrapError(err, "upsert invoice")
}

func (r *sqliteInvoiceRepository) List(ctx context.Context, limit int) ([]entity.InvoiceRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, invoice_number, invoice_date, party_name, source_file,
		items, total_quantity, total_boxes, total_weight, total_value, created_at, updated_at
		FROM invoices ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, common.WrapError(err, "query invoices")
	}
	defer rows.Close()

	var recs []entity.InvoiceRecord
	for rows.Next() {
		rec, err := scanSQLiteInvoice(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func (r *sqliteInvoiceRepository) Get(ctx context.Context, id uuid.UUID) (*entity.InvoiceRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, invoice_number, invoice_date, party_name, source_file,
		items, total_quantity, total_boxes, total_weight, total_value, created_at, updated_at
		FROM invoices WHERE id = ?`, id.String())
	rec, err := scanSQLiteInvoice(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return rec, err
}

func scanSQLiteInvoice(scan func(dest ...any) error) (*entity.InvoiceRecord, error) {
	var rec entity.InvoiceRecord
	var id, items, created, updated string
	if err := scan(&id, &rec.InvoiceNumber, &rec.InvoiceDate, &rec.PartyName, &rec.SourceFile,
		&items, &rec.Totals.Quantity, &rec.Totals.Boxes, &rec.Totals.Weight, &rec.Totals.Value,
		&created, &updated); err != nil {
		return nil, err
	}
	var err error
	if rec.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse invoice id: %w", err)
	}
	if err := json.Unmarshal([]byte(items), &rec.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return &rec, nil
}
