package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/raxj06/Sales-Report-Generator/internal/common"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
	"github.com/raxj06/Sales-Report-Generator/internal/extraction"
	"github.com/raxj06/Sales-Report-Generator/internal/report"
)

// handleProcessInvoice runs the full pipeline for one uploaded PDF:
// webhook extraction, reconciliation against the current master, and a
// history record for later report downloads and re-runs.
func (s *Server) handleProcessInvoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, common.NewAppError("INVOICE_UPLOAD", "expected multipart form with a file field", common.ErrInvalidInput))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, common.NewAppError("INVOICE_UPLOAD", "file field is required", common.ErrInvalidInput))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, fmt.Errorf("read upload: %w", err))
		return
	}

	rec, err := s.ProcessDocument(r.Context(), s.resolveWebhookURL(r), header.Filename, content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// ProcessDocument runs the full pipeline for one invoice document:
// webhook extraction, reconciliation against the current master, and a
// saved history record. It serves both the upload endpoint and the
// inbox watcher.
func (s *Server) ProcessDocument(ctx context.Context, webhookURL, filename string, content []byte) (*entity.InvoiceRecord, error) {
	start := time.Now()
	extractor := s.newExtractor(webhookURL)
	result, _, err := extractor.Extract(ctx, extraction.Document{
		Filename: filename,
		Content:  content,
	})
	if err != nil {
		s.logger.Error("invoices.extract_failed", "file", filename, "error", err)
		return nil, err
	}

	master, err := s.store.Products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	items, totals, err := s.engine.Reconcile(result.LineItems, master)
	if err != nil {
		return nil, common.NewAppError("INVOICE_RECONCILE", "reconciliation failed", err)
	}

	rec := &entity.InvoiceRecord{
		InvoiceNumber: result.InvoiceNumber,
		InvoiceDate:   result.InvoiceDate,
		PartyName:     result.PartyName,
		SourceFile:    filename,
		Items:         items,
		Totals:        totals,
	}
	if err := s.store.Invoices.Save(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("invoices.processed",
		"id", rec.ID.String(),
		"file", filename,
		"items", len(items),
		"boxes", totals.Boxes,
		"warnings", len(result.Warnings),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.Invoices.List(r.Context(), 100)
	if err != nil {
		writeError(w, err)
		return
	}
	if recs == nil {
		recs = []entity.InvoiceRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadInvoice(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleReReconcile re-runs reconciliation for a stored invoice against
// the current product master. Rollups are a pure function of the raw
// items and the master, so the stored raw fields are all that is needed.
func (s *Server) handleReReconcile(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadInvoice(r)
	if err != nil {
		writeError(w, err)
		return
	}

	raw := make([]entity.LineItem, 0, len(rec.Items))
	for _, it := range rec.Items {
		raw = append(raw, it.LineItem)
	}

	master, err := s.store.Products.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	items, totals, err := s.engine.Reconcile(raw, master)
	if err != nil {
		writeError(w, common.NewAppError("INVOICE_RECONCILE", "reconciliation failed", err))
		return
	}

	rec.Items = items
	rec.Totals = totals
	if err := s.store.Invoices.Save(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("invoices.reconciled", "id", rec.ID.String(), "items", len(items))
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleReportCSV(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadInvoice(r)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(rec, "csv"))
	if err := report.WriteCSV(w, rec); err != nil {
		s.logger.Error("invoices.report_csv", "id", rec.ID.String(), "error", err)
	}
}

func (s *Server) handleReportXLSX(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadInvoice(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := report.BuildXLSX(rec, s.companyName(r))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", attachment(rec, "xlsx"))
	_, _ = w.Write(out)
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadInvoice(r)
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := report.BuildPDF(rec, s.companyName(r))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", attachment(rec, "pdf"))
	_, _ = w.Write(out)
}

func (s *Server) loadInvoice(r *http.Request) (*entity.InvoiceRecord, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, common.NewAppError("INVOICE_ID", "invalid invoice id", common.ErrInvalidInput)
	}
	return s.store.Invoices.Get(r.Context(), id)
}

func (s *Server) companyName(r *http.Request) string {
	settings, err := s.store.Settings.Get(r.Context())
	if err != nil {
		return ""
	}
	return settings.CompanyName
}

func attachment(rec *entity.InvoiceRecord, ext string) string {
	return fmt.Sprintf(`attachment; filename="shipping-report-%s.%s"`, report.BaseName(rec), ext)
}
