package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raxj06/Sales-Report-Generator/internal/common"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

// NewMemoryStore returns a Store backed by process memory. Used in tests
// and as a scratch backend; contents vanish on exit.
func NewMemoryStore() *Store {
	return &Store{
		Products: &memProductRepository{master: entity.ProductMaster{}},
		Settings: &memSettingsRepository{},
		Invoices: &memInvoiceRepository{},
		Backend:  "memory",
	}
}

type memProductRepository struct {
	mu     sync.RWMutex
	master entity.ProductMaster
}

func (r *memProductRepository) GetAll(_ context.Context) (entity.ProductMaster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(entity.ProductMaster, len(r.master))
	for k, v := range r.master {
		out[k] = v
	}
	return out, nil
}

func (r *memProductRepository) Get(_ context.Context, sku string) (entity.ProductConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.master[sku]
	if !ok {
		return entity.ProductConfig{}, common.ErrNotFound
	}
	return cfg, nil
}

func (r *memProductRepository) Put(_ context.Context, sku string, cfg entity.ProductConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.master[sku] = cfg
	return nil
}

func (r *memProductRepository) Delete(_ context.Context, sku string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.master[sku]; !ok {
		return common.ErrNotFound
	}
	delete(r.master, sku)
	return nil
}

type memSettingsRepository struct {
	mu       sync.RWMutex
	settings entity.Settings
}

func (r *memSettingsRepository) Get(_ context.Context) (entity.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings, nil
}

func (r *memSettingsRepository) Put(_ context.Context, s entity.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.UpdatedAt = time.Now().UTC()
	r.settings = s
	return nil
}

type memInvoiceRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]entity.InvoiceRecord
}

func (r *memInvoiceRepository) Save(_ context.Context, rec *entity.InvoiceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.records == nil {
		r.records = map[uuid.UUID]entity.InvoiceRecord{}
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	r.records[rec.ID] = *rec
	return nil
}

func (r *memInvoiceRepository) List(_ context.Context, limit int) ([]entity.InvoiceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := make([]entity.InvoiceRecord, 0, len(r.records))
	for _, rec := range r.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.After(recs[j].CreatedAt) })
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (r *memInvoiceRepository) Get(_ context.Context, id uuid.UUID) (*entity.InvoiceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &rec, nil
}
