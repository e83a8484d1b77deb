// Package server exposes the reconciliation pipeline over HTTP: product
// master CRUD, settings, invoice processing, and report downloads.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/raxj06/Sales-Report-Generator/internal/extraction"
	"github.com/raxj06/Sales-Report-Generator/internal/recon"
	"github.com/raxj06/Sales-Report-Generator/internal/repository"
)

// ExtractorFactory builds an extraction client for a webhook URL. The URL
// is resolved per request: stored settings win over the environment
// default, so an operator can repoint the webhook without a restart.
type ExtractorFactory func(url string) extraction.Extractor

type Server struct {
	store        *repository.Store
	engine       *recon.Engine
	newExtractor ExtractorFactory
	webhookURL   string // environment default
	logger       *slog.Logger
}

func NewServer(store *repository.Store, engine *recon.Engine, factory ExtractorFactory, webhookURL string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if factory == nil {
		factory = func(url string) extraction.Extractor {
			return extraction.NewClient(url, 90*time.Second, logger)
		}
	}
	return &Server{
		store:        store,
		engine:       engine,
		newExtractor: factory,
		webhookURL:   webhookURL,
		logger:       logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.handleListProducts)
		r.Get("/{sku}", s.handleGetProduct)
		r.Put("/{sku}", s.handlePutProduct)
		r.Delete("/{sku}", s.handleDeleteProduct)
	})

	r.Get("/settings", s.handleGetSettings)
	r.Put("/settings", s.handlePutSettings)

	r.Route("/invoices", func(r chi.Router) {
		r.Post("/", s.handleProcessInvoice)
		r.Get("/", s.handleListInvoices)
		r.Get("/{id}", s.handleGetInvoice)
		r.Post("/{id}/reconcile", s.handleReReconcile)
		r.Get("/{id}/report.csv", s.handleReportCSV)
		r.Get("/{id}/report.xlsx", s.handleReportXLSX)
		r.Get("/{id}/report.pdf", s.handleReportPDF)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "backend": s.store.Backend})
}
