package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/raxj06/Sales-Report-Generator/internal/common"
	"github.com/raxj06/Sales-Report-Generator/internal/ingest"
	"github.com/raxj06/Sales-Report-Generator/internal/recon"
	"github.com/raxj06/Sales-Report-Generator/internal/repository"
	"github.com/raxj06/Sales-Report-Generator/internal/server"
)

// inboxProcessor feeds watched files through the same pipeline as the
// upload endpoint, resolving the webhook from stored settings each time.
type inboxProcessor struct {
	srv *server.Server
}

func (p *inboxProcessor) ProcessDocument(ctx context.Context, filename string, content []byte) error {
	_, err := p.srv.ProcessDocument(ctx, p.srv.WebhookURL(ctx), filename, content)
	return err
}

func main() {
	// Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Config
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config.invalid", "error", err)
		os.Exit(1)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Store: postgres when DB_URL is set, local sqlite otherwise
	store, err := repository.Open(ctx, cfg.Database, cfg.Storage, logger)
	if err != nil {
		logger.Error("store.open", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("store.ready", "backend", store.Backend)

	srv := server.NewServer(store, recon.NewEngine(logger), nil, cfg.Extraction.WebhookURL, logger)

	// Optional inbox watcher: invoices dropped into INBOX_DIR are
	// processed without an upload request.
	if cfg.Ingest.InboxDir != "" {
		events, _, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       []string{cfg.Ingest.InboxDir},
			InitialScan: true,
			Debounce:    cfg.Ingest.Debounce,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("ingest.watch.start", "dir", cfg.Ingest.InboxDir, "error", err)
			os.Exit(1)
		}
		logger.Info("ingest.watching", "dir", cfg.Ingest.InboxDir)
		go ingest.NewIngestor(&inboxProcessor{srv: srv}, logger).Run(ctx, events)
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("http.serving", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http.serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http.shutdown", "error", err)
	}
	logger.Info("stopped")
}
