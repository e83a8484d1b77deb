package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raxj06/Sales-Report-Generator/internal/common"
	"github.com/raxj06/Sales-Report-Generator/internal/entity"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	master, err := s.store.Products.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, master)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	cfg, err := s.store.Products.Get(r.Context(), sku)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handlePutProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	if sku == "" {
		writeError(w, common.NewAppError("PRODUCT_SKU", "sku is required", common.ErrInvalidInput))
		return
	}

	var cfg entity.ProductConfig
	if err := readJSON(w, r, &cfg); err != nil {
		writeError(w, common.NewAppError("PRODUCT_BODY", "invalid product payload", common.ErrInvalidInput))
		return
	}
	if err := s.store.Products.Put(r.Context(), sku, cfg); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info("products.put", "sku", sku)
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	if err := s.store.Products.Delete(r.Context(), sku); err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("products.delete", "sku", sku)
	w.WriteHeader(http.StatusNoContent)
}
