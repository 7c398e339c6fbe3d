package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"naebak/middleware"
	"naebak/models"
	"naebak/service"
)

// StaffHandler serves the deputy/admin complaint endpoints
type StaffHandler struct {
	complaints *service.ComplaintService
	lifecycle  *service.LifecycleService
	assignment *service.AssignmentService
	stats      *service.StatsService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(
	complaints *service.ComplaintService,
	lifecycle *service.LifecycleService,
	assignment *service.AssignmentService,
	stats *service.StatsService,
) *StaffHandler {
	return &StaffHandler{
		complaints: complaints,
		lifecycle:  lifecycle,
		assignment: assignment,
		stats:      stats,
	}
}

func parseFilter(r *http.Request) models.ComplaintFilter {
	q := r.URL.Query()
	var f models.ComplaintFilter

	if s := q.Get("status"); s != "" {
		status := models.ComplaintStatus(s)
		f.Status = &status
	}
	if p := q.Get("priority"); p != "" {
		priority := models.Priority(p)
		f.Priority = &priority
	}
	if v, err := strconv.ParseInt(q.Get("complaint_type_id"), 10, 64); err == nil {
		f.ComplaintTypeID = &v
	}
	if v, err := strconv.ParseInt(q.Get("governorate_id"), 10, 64); err == nil {
		f.GovernorateID = &v
	}
	if v, err := strconv.ParseInt(q.Get("citizen_id"), 10, 64); err == nil {
		f.CitizenID = &v
	}
	if v, err := strconv.ParseInt(q.Get("assigned_to"), 10, 64); err == nil {
		f.AssignedTo = &v
	}
	if t, err := time.Parse(time.RFC3339, q.Get("from")); err == nil {
		f.From = &t
	}
	if t, err := time.Parse(time.RFC3339, q.Get("to")); err == nil {
		f.To = &t
	}
	f.Search = q.Get("search")
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.PerPage, _ = strconv.Atoi(q.Get("per_page"))
	return f
}

// List handles GET /api/staff/complaints
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.complaints.List(parseFilter(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// Get handles GET /api/staff/complaints/{id}
func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.complaints.Get(mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// GetByNumber handles GET /api/staff/complaints/number/{number}
func (h *StaffHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	c, err := h.complaints.GetByNumber(mux.Vars(r)["number"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// Timeline handles GET /api/staff/complaints/{id}/timeline
func (h *StaffHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	entries, err := h.complaints.Timeline(mux.Vars(r)["id"], false)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// Transition handles PUT /api/staff/complaints/{id}/status
func (h *StaffHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var req models.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	c, err := h.lifecycle.Transition(mux.Vars(r)["id"], req, middleware.AccountID(r), models.ActorRole(middleware.Role(r)))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// Assign handles PUT /api/staff/complaints/{id}/assign
func (h *StaffHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req models.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	c, err := h.assignment.Assign(mux.Vars(r)["id"], req.DeputyID, req.Notes, middleware.AccountID(r), models.ActorRole(middleware.Role(r)))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// Worklist handles GET /api/staff/worklist
func (h *StaffHandler) Worklist(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.complaints.Worklist(middleware.AccountID(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, complaints)
}

// Stats handles GET /api/staff/stats
func (h *StaffHandler) Stats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.stats.Stats(parseFilter(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, snapshot)
}
