package server

import (
	"context"
	"net/http"

	"github.com/raxj06/Sales-Report-Generator/internal/common"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.Settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings entity.Settings
	if err := readJSON(w, r, &settings); err != nil {
		writeError(w, common.NewAppError("SETTINGS_BODY", "invalid settings payload", common.ErrInvalidInput))
		return
	}
	if err := s.store.Settings.Put(r.Context(), settings); err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("settings.put", "webhook_url", settings.WebhookURL)
	writeJSON(w, http.StatusOK, settings)
}

// WebhookURL prefers the stored settings URL over the environment
// default, so an operator can repoint the webhook without a restart.
func (s *Server) WebhookURL(ctx context.Context) string {
	if settings, err := s.store.Settings.Get(ctx); err == nil && settings.WebhookURL != "" {
		return settings.WebhookURL
	}
	return s.webhookURL
}

func (s *Server) resolveWebhookURL(r *http.Request) string {
	return s.WebhookURL(r.Context())
}
