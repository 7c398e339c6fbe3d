package service

import (
	"time"

	"naebak/models"
)

// ComplaintStore is the persistence surface the engine needs for complaints.
// Satisfied by repository.ComplaintRepository.
type ComplaintStore interface {
	NextComplaintNumber(year int) (string, error)
	CreateComplaint(c *models.Complaint, initial *models.ComplaintUpdate, attachments []models.ComplaintAttachment) error
	GetComplaintByID(complaintID string) (*models.Complaint, error)
	GetComplaintByNumber(number string) (*models.Complaint, error)
	ListComplaints(f models.ComplaintFilter) ([]models.Complaint, error)
	CountComplaints(f models.ComplaintFilter) (int, error)
	CountCitizenComplaintsSince(citizenID int64, since time.Time) (int, error)
	ApplyTransition(c *models.Complaint, rec *models.ComplaintUpdate, firstResolve bool) error
	ApplyAssignment(c *models.Complaint, rec *models.ComplaintUpdate) error
	ApplyRating(c *models.Complaint, rec *models.ComplaintUpdate) error
	GetUpdates(complaintID string) ([]models.ComplaintUpdate, error)
	GetAttachmentsByComplaintID(complaintID string) ([]models.ComplaintAttachment, error)
}

// CatalogStore is the read surface for reference data.
// Satisfied by repository.CatalogRepository.
type CatalogStore interface {
	ListGovernorates() ([]models.Governorate, error)
	GetGovernorate(id int64) (*models.Governorate, error)
	ListComplaintTypes(council *models.TargetCouncil) ([]models.ComplaintType, error)
	ListAllComplaintTypes() ([]models.ComplaintType, error)
	GetComplaintType(id int64) (*models.ComplaintType, error)
}

// DeputyStore is the read surface for handler lookup and routing.
// Satisfied by repository.DeputyRepository.
type DeputyStore interface {
	GetDeputy(id int64) (*models.Deputy, error)
	GetDeputyByEmail(email string) (*models.Deputy, error)
	ListCandidateLoads(governorateID *int64, council *models.TargetCouncil) ([]models.DeputyLoad, error)
}

// Notifier receives lifecycle events. The engine only decides that an event
// occurred; delivery is the notifier's problem and is never retried here.
type Notifier interface {
	Submitted(c *models.Complaint)
	StatusChanged(c *models.Complaint, oldStatus, newStatus models.ComplaintStatus, notify bool)
	Assigned(c *models.Complaint, deputyID int64)
}
