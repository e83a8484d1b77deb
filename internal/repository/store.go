// Package repository persists the product master, settings, and invoice
// history. Two backends implement the same interfaces: Postgres when a DSN
// is configured and reachable, and a local SQLite file otherwise. The rest
// of the application only ever sees the interfaces.
package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/raxj06/Sales-Report-Generator/internal/common"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

// ProductRepository is the CRUD surface over the product master.
type ProductRepository interface {
	GetAll(ctx context.Context) (entity.ProductMaster, error)
	Get(ctx context.Context, sku string) (entity.ProductConfig, error)
	Put(ctx context.Context, sku string, cfg entity.ProductConfig) error
	Delete(ctx context.Context, sku string) error
}

// SettingsRepository stores the single settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (entity.Settings, error)
	Put(ctx context.Context, s entity.Settings) error
}

// InvoiceRepository stores processed invoice history.
type InvoiceRepository interface {
	Save(ctx context.Context, rec *entity.InvoiceRecord) error
	List(ctx context.Context, limit int) ([]entity.InvoiceRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.InvoiceRecord, error)
}

// Store bundles the repositories over one backend.
type Store struct {
	Products ProductRepository
	Settings SettingsRepository
	Invoices InvoiceRepository

	Backend string // "postgres" | "sqlite" | "memory"
	closeFn func()
}

// Open selects the backend: Postgres when a DSN is configured and the pool
// comes up healthy, the local SQLite file otherwise. Backend selection is
// a startup capability decision; nothing downstream branches on it.
func Open(ctx context.Context, dbCfg common.DatabaseConfig, storageCfg common.StorageConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dbCfg.DSN != "" {
		store, err := openPostgres(ctx, dbCfg, logger)
		if err == nil {
			logger.Info("store.open", "backend", "postgres")
			return store, nil
		}
		logger.Warn("store.postgres_unavailable", "error", err, "fallback", storageCfg.LocalPath)
	}

	store, err := openSQLite(ctx, storageCfg.LocalPath, logger)
	if err != nil {
		return nil, common.NewAppError("STORE_OPEN", "no usable storage backend", err)
	}
	logger.Info("store.open", "backend", "sqlite", "path", storageCfg.LocalPath)
	return store, nil
}

// Close releases the backend's resources.
func (s *Store) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}
