package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"naebak/middleware"
	"naebak/models"
	"naebak/service"
)

// ComplaintHandler serves the citizen-facing complaint endpoints
type ComplaintHandler struct {
	complaints *service.ComplaintService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaints *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints}
}

// Submit handles POST /api/complaints
func (h *ComplaintHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	c, err := h.complaints.Submit(middleware.AccountID(r), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, c)
}

// ListMine handles GET /api/complaints
func (h *ComplaintHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	citizenID := middleware.AccountID(r)
	filter := models.ComplaintFilter{CitizenID: &citizenID}
	if s := r.URL.Query().Get("status"); s != "" {
		status := models.ComplaintStatus(s)
		filter.Status = &status
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.PerPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))

	page, err := h.complaints.List(filter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// Get handles GET /api/complaints/{id}
func (h *ComplaintHandler) Get(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["id"]
	c, err := h.complaints.GetForCitizen(complaintID, middleware.AccountID(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// Timeline handles GET /api/complaints/{id}/timeline
func (h *ComplaintHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["id"]
	if _, err := h.complaints.GetForCitizen(complaintID, middleware.AccountID(r)); err != nil {
		respondWithServiceError(w, err)
		return
	}
	entries, err := h.complaints.Timeline(complaintID, true)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// Attachments handles GET /api/complaints/{id}/attachments
func (h *ComplaintHandler) Attachments(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["id"]
	if _, err := h.complaints.GetForCitizen(complaintID, middleware.AccountID(r)); err != nil {
		respondWithServiceError(w, err)
		return
	}
	attachments, err := h.complaints.Attachments(complaintID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, attachments)
}

// Rate handles POST /api/complaints/{id}/rate
func (h *ComplaintHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req models.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	c, err := h.complaints.Rate(mux.Vars(r)["id"], middleware.AccountID(r), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}
