package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"naebak/config"
	"naebak/models"
)

const bytesPerMB = int64(1024 * 1024)

// ComplaintService is the submission and read surface of the engine
type ComplaintService struct {
	complaints ComplaintStore
	catalog    CatalogStore
	assignment *AssignmentService
	lifecycle  *LifecycleService
	notifier   Notifier
	settings   config.ComplaintSettings
	now        func() time.Time
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	complaints ComplaintStore,
	catalog CatalogStore,
	assignment *AssignmentService,
	lifecycle *LifecycleService,
	notifier Notifier,
	settings config.ComplaintSettings,
) *ComplaintService {
	return &ComplaintService{
		complaints: complaints,
		catalog:    catalog,
		assignment: assignment,
		lifecycle:  lifecycle,
		notifier:   notifier,
		settings:   settings,
		now:        time.Now,
	}
}

// Submit validates and creates a complaint: initial status pending, a fresh
// per-year sequential number, an initial history record, and attachments, all
// persisted atomically. Auto-assignment then runs as a best-effort follow-up.
func (s *ComplaintService) Submit(citizenID int64, req models.SubmitComplaintRequest) (*models.Complaint, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, models.NewValidationError("title", "title is required")
	}
	if len(title) > s.settings.MaxTitleLength {
		return nil, models.NewValidationError("title", fmt.Sprintf("title exceeds %d characters", s.settings.MaxTitleLength))
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, models.NewValidationError("description", "description is required")
	}
	if len(description) > s.settings.MaxDescriptionLength {
		return nil, models.NewValidationError("description", fmt.Sprintf("description exceeds %d characters", s.settings.MaxDescriptionLength))
	}
	if strings.TrimSpace(req.City) == "" {
		return nil, models.NewValidationError("city", "city is required")
	}

	complaintType, err := s.catalog.GetComplaintType(req.ComplaintTypeID)
	if err != nil {
		return nil, err
	}
	if !complaintType.IsActive {
		return nil, models.NewValidationError("complaint_type_id", "complaint type is not active")
	}

	governorate, err := s.catalog.GetGovernorate(req.GovernorateID)
	if err != nil {
		return nil, err
	}
	if !governorate.IsActive {
		return nil, models.NewValidationError("governorate_id", "governorate is not active")
	}

	if err := s.validateAttachments(complaintType, req.Attachments); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	recent, err := s.complaints.CountCitizenComplaintsSince(citizenID, now.Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	if recent >= s.settings.MaxComplaintsPerDay {
		return nil, models.NewValidationError("citizen_id",
			fmt.Sprintf("daily submission limit of %d complaints reached", s.settings.MaxComplaintsPerDay))
	}

	priority := complaintType.DefaultPriority
	if req.Priority != nil {
		requested := models.Priority(*req.Priority)
		if !requested.IsValid() {
			return nil, models.NewValidationError("priority", fmt.Sprintf("unknown priority %q", *req.Priority))
		}
		// Submitters may escalate above the type's default, never lower it.
		if requested.Weight() > priority.Weight() {
			priority = requested
		}
	}

	number, err := s.complaints.NextComplaintNumber(now.Year())
	if err != nil {
		return nil, err
	}

	c := &models.Complaint{
		ID:              uuid.NewString(),
		ComplaintNumber: number,
		Title:           title,
		Description:     description,
		ComplaintTypeID: complaintType.ID,
		Priority:        priority,
		CitizenID:       citizenID,
		GovernorateID:   governorate.ID,
		City:            strings.TrimSpace(req.City),
		Status:          models.StatusPending,
		IsPublic:        req.IsPublic != nil && *req.IsPublic,
		IsAnonymous:     req.IsAnonymous != nil && *req.IsAnonymous,
		CreatedAt:       now,
		UpdatesCount:    1,
		Version:         1,
	}
	if req.District != nil && *req.District != "" {
		c.District = sql.NullString{String: *req.District, Valid: true}
	}
	if req.DetailedLocation != nil && *req.DetailedLocation != "" {
		c.DetailedLocation = sql.NullString{String: *req.DetailedLocation, Valid: true}
	}

	initial := &models.ComplaintUpdate{
		ComplaintID: c.ID,
		Kind:        models.UpdateStatusChange,
		NewStatus:   sql.NullString{String: string(models.StatusPending), Valid: true},
		Description: "complaint submitted",
		ActorID:     citizenID,
		ActorRole:   models.ActorCitizen,
		IsPublic:    true,
		Notify:      true,
		CreatedAt:   now,
	}

	attachments := make([]models.ComplaintAttachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, models.ComplaintAttachment{
			ComplaintID: c.ID,
			FileName:    a.FileName,
			FileSize:    a.FileSize,
			MimeType:    a.MimeType,
			StoragePath: a.StoragePath,
			UploadedAt:  now,
		})
	}

	if err := s.complaints.CreateComplaint(c, initial, attachments); err != nil {
		return nil, err
	}

	s.notifier.Submitted(c)
	return s.assignment.AutoAssign(c, complaintType, s.lifecycle), nil
}

func (s *ComplaintService) validateAttachments(t *models.ComplaintType, attachments []models.AttachmentInput) error {
	if t.RequiresAttachments && len(attachments) == 0 {
		return models.NewValidationError("attachments", "this complaint type requires supporting documents")
	}
	maxFiles := s.settings.MaxFilesPerComplaint
	if t.MaxAttachments > 0 && t.MaxAttachments < maxFiles {
		maxFiles = t.MaxAttachments
	}
	if len(attachments) > maxFiles {
		return models.NewValidationError("attachments", fmt.Sprintf("at most %d attachments allowed", maxFiles))
	}
	var total int64
	for _, a := range attachments {
		if a.FileName == "" {
			return models.NewValidationError("attachments", "attachment file name is required")
		}
		if a.FileSize <= 0 || a.FileSize > s.settings.MaxFileSizeMB*bytesPerMB {
			return models.NewValidationError("attachments",
				fmt.Sprintf("attachment %q exceeds the %d MB limit", a.FileName, s.settings.MaxFileSizeMB))
		}
		total += a.FileSize
	}
	if total > s.settings.MaxTotalSizeMB*bytesPerMB {
		return models.NewValidationError("attachments",
			fmt.Sprintf("attachments exceed the %d MB total limit", s.settings.MaxTotalSizeMB))
	}
	return nil
}

// GetForCitizen returns a complaint visible to the given citizen: their own,
// or any public one. Hidden complaints surface as not found rather than
// forbidden, so existence is not leaked.
func (s *ComplaintService) GetForCitizen(complaintID string, citizenID int64) (*models.Complaint, error) {
	c, err := s.complaints.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}
	if c.CitizenID != citizenID && !c.IsPublic {
		return nil, &models.NotFoundError{Entity: "complaint", ID: complaintID}
	}
	return c, nil
}

// Get returns a complaint by ID without visibility checks, for staff use.
func (s *ComplaintService) Get(complaintID string) (*models.Complaint, error) {
	return s.complaints.GetComplaintByID(complaintID)
}

// GetByNumber returns a complaint by its human-readable number, for staff use.
func (s *ComplaintService) GetByNumber(number string) (*models.Complaint, error) {
	return s.complaints.GetComplaintByNumber(number)
}

// List returns one page of complaints matching the filter, with overdue
// computed against each type's SLA at the current instant.
func (s *ComplaintService) List(f models.ComplaintFilter) (*models.ComplaintPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 || f.PerPage > 100 {
		f.PerPage = 20
	}

	complaints, err := s.complaints.ListComplaints(f)
	if err != nil {
		return nil, err
	}
	total, err := s.complaints.CountComplaints(f)
	if err != nil {
		return nil, err
	}

	slaByType, err := s.slaByType()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	summaries := make([]models.ComplaintSummary, 0, len(complaints))
	for i := range complaints {
		c := &complaints[i]
		overdue := false
		if sla, ok := slaByType[c.ComplaintTypeID]; ok {
			overdue = IsOverdue(c, sla, now)
		}
		summaries = append(summaries, models.ComplaintSummary{
			ID:              c.ID,
			ComplaintNumber: c.ComplaintNumber,
			Title:           c.Title,
			Status:          c.Status,
			Priority:        c.Priority,
			ComplaintTypeID: c.ComplaintTypeID,
			GovernorateID:   c.GovernorateID,
			CreatedAt:       c.CreatedAt,
			IsOverdue:       overdue,
		})
	}

	return &models.ComplaintPage{
		Complaints: summaries,
		Total:      total,
		Page:       f.Page,
		PerPage:    f.PerPage,
	}, nil
}

// Worklist returns a deputy's open complaints in handling order: priority
// weight descending, oldest first within the same priority.
func (s *ComplaintService) Worklist(deputyID int64) ([]models.Complaint, error) {
	complaints, err := s.complaints.ListComplaints(models.ComplaintFilter{AssignedTo: &deputyID})
	if err != nil {
		return nil, err
	}
	open := complaints[:0]
	for _, c := range complaints {
		if c.Status != models.StatusClosed && c.Status != models.StatusRejected && c.Status != models.StatusResolved {
			open = append(open, c)
		}
	}
	RankWorklist(open)
	return open, nil
}

// Timeline returns a complaint's history, newest first. For citizens only
// public records are included; staff see everything.
func (s *ComplaintService) Timeline(complaintID string, publicOnly bool) ([]models.TimelineEntry, error) {
	updates, err := s.complaints.GetUpdates(complaintID)
	if err != nil {
		return nil, err
	}
	entries := make([]models.TimelineEntry, 0, len(updates))
	for _, u := range updates {
		if publicOnly && !u.IsPublic {
			continue
		}
		entry := models.TimelineEntry{
			ID:          u.ID,
			Kind:        u.Kind,
			Description: u.Description,
			ActorRole:   u.ActorRole,
			CreatedAt:   u.CreatedAt,
		}
		if u.OldStatus.Valid {
			v := u.OldStatus.String
			entry.OldStatus = &v
		}
		if u.NewStatus.Valid {
			v := u.NewStatus.String
			entry.NewStatus = &v
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Attachments returns a complaint's attachment metadata.
func (s *ComplaintService) Attachments(complaintID string) ([]models.ComplaintAttachment, error) {
	return s.complaints.GetAttachmentsByComplaintID(complaintID)
}

// Rate records the citizen's satisfaction rating. Permitted once, only by
// the submitter, and only after the complaint reached resolved or closed.
func (s *ComplaintService) Rate(complaintID string, citizenID int64, req models.RateRequest) (*models.Complaint, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, &models.InvalidRatingError{Message: "rating must be between 1 and 5"}
	}

	c, err := s.complaints.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}
	if c.CitizenID != citizenID {
		return nil, &models.NotFoundError{Entity: "complaint", ID: complaintID}
	}
	if c.Status != models.StatusResolved && c.Status != models.StatusClosed {
		return nil, &models.InvalidRatingError{Message: "only resolved or closed complaints can be rated"}
	}
	if c.SatisfactionRating.Valid {
		return nil, &models.InvalidRatingError{Message: "complaint has already been rated"}
	}

	now := s.now().UTC()
	c.SatisfactionRating = sql.NullInt64{Int64: int64(req.Rating), Valid: true}
	if req.Feedback != nil && *req.Feedback != "" {
		c.SatisfactionComment = sql.NullString{String: *req.Feedback, Valid: true}
	}

	rec := &models.ComplaintUpdate{
		ComplaintID: c.ID,
		Kind:        models.UpdateRating,
		Description: fmt.Sprintf("citizen rated the resolution %d/5", req.Rating),
		ActorID:     citizenID,
		ActorRole:   models.ActorCitizen,
		IsPublic:    false,
		CreatedAt:   now,
	}

	if err := s.complaints.ApplyRating(c, rec); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComplaintService) slaByType() (map[int64]int, error) {
	types, err := s.catalog.ListAllComplaintTypes()
	if err != nil {
		return nil, err
	}
	slas := make(map[int64]int, len(types))
	for _, t := range types {
		slas[t.ID] = t.SLADays
	}
	return slas, nil
}
