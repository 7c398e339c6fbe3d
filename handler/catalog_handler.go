package handler

import (
	"net/http"

	"naebak/models"
	"naebak/service"
)

// CatalogHandler serves the public reference-data endpoints
type CatalogHandler struct {
	catalog service.CatalogStore
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog service.CatalogStore) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListGovernorates handles GET /api/governorates
func (h *CatalogHandler) ListGovernorates(w http.ResponseWriter, r *http.Request) {
	governorates, err := h.catalog.ListGovernorates()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, governorates)
}

// ListComplaintTypes handles GET /api/complaint-types
func (h *CatalogHandler) ListComplaintTypes(w http.ResponseWriter, r *http.Request) {
	var council *models.TargetCouncil
	if c := r.URL.Query().Get("council"); c != "" {
		v := models.TargetCouncil(c)
		council = &v
	}
	types, err := h.catalog.ListComplaintTypes(council)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, types)
}
