package service

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"naebak/config"
	"naebak/models"
)

// AssignmentService routes complaints to deputies
type AssignmentService struct {
	complaints ComplaintStore
	deputies   DeputyStore
	notifier   Notifier
	settings   config.ComplaintSettings
	now        func() time.Time
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(complaints ComplaintStore, deputies DeputyStore, notifier Notifier, settings config.ComplaintSettings) *AssignmentService {
	return &AssignmentService{
		complaints: complaints,
		deputies:   deputies,
		notifier:   notifier,
		settings:   settings,
		now:        time.Now,
	}
}

// Assign sets the complaint's handler. Does not change status; callers move
// pending/under_review complaints with a separate transition to assigned.
// assigned_at is stamped on the first assignment only; reassignment keeps
// the original timestamp.
func (s *AssignmentService) Assign(complaintID string, deputyID int64, notes *string, actorID int64, actorRole models.ActorRole) (*models.Complaint, error) {
	c, err := s.complaints.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}

	if c.Status == models.StatusClosed || c.Status == models.StatusRejected {
		return nil, &models.InvalidAssignmentError{
			Status:  c.Status,
			Message: "complaint cannot be assigned in its current status",
		}
	}

	d, err := s.deputies.GetDeputy(deputyID)
	if err != nil {
		return nil, err
	}
	if !d.IsActive {
		return nil, models.NewValidationError("deputy_id", "deputy account is inactive")
	}

	now := s.now().UTC()
	c.AssignedTo = sql.NullInt64{Int64: deputyID, Valid: true}
	if !c.AssignedAt.Valid {
		c.AssignedAt = sql.NullTime{Time: now, Valid: true}
	}

	description := fmt.Sprintf("assigned to %s", d.FullName)
	if notes != nil && *notes != "" {
		description = *notes
	}

	rec := &models.ComplaintUpdate{
		ComplaintID: c.ID,
		Kind:        models.UpdateAssignment,
		Description: description,
		ActorID:     actorID,
		ActorRole:   actorRole,
		IsPublic:    true,
		Notify:      true,
		CreatedAt:   now,
	}

	if err := s.complaints.ApplyAssignment(c, rec); err != nil {
		return nil, err
	}

	s.notifier.Assigned(c, deputyID)
	return c, nil
}

// PickCandidate selects the auto-assignment target for a complaint, or nil
// when the policy is disabled or no deputy matches. Candidates are filtered
// by governorate and target council per configuration; the least loaded wins,
// ties broken by the lower deputy ID.
func (s *AssignmentService) PickCandidate(c *models.Complaint, t *models.ComplaintType) (*models.DeputyLoad, error) {
	if !s.settings.AutoAssignEnabled {
		return nil, nil
	}

	var governorateID *int64
	if s.settings.AutoAssignByLocation {
		governorateID = &c.GovernorateID
	}
	var council *models.TargetCouncil
	if s.settings.AutoAssignByType && t.TargetCouncil != models.CouncilBoth {
		council = &t.TargetCouncil
	}

	loads, err := s.deputies.ListCandidateLoads(governorateID, council)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment candidates: %w", err)
	}
	if len(loads) == 0 {
		return nil, nil
	}

	best := loads[0]
	for _, l := range loads[1:] {
		if l.OpenLoad < best.OpenLoad || (l.OpenLoad == best.OpenLoad && l.DeputyID < best.DeputyID) {
			best = l
		}
	}
	return &best, nil
}

// AutoAssign applies the auto-assignment policy to a freshly submitted
// complaint: pick a candidate, assign, and move the complaint to assigned.
// When no candidate matches, the complaint stays unassigned in pending.
// Failures here never fail the submission; they are logged and the complaint
// waits for manual routing.
func (s *AssignmentService) AutoAssign(c *models.Complaint, t *models.ComplaintType, lifecycle *LifecycleService) *models.Complaint {
	candidate, err := s.PickCandidate(c, t)
	if err != nil {
		log.Printf("[assignment] auto-assign candidate lookup failed for %s: %v", c.ComplaintNumber, err)
		return c
	}
	if candidate == nil {
		return c
	}

	assigned, err := s.Assign(c.ID, candidate.DeputyID, nil, 0, models.ActorSystem)
	if err != nil {
		log.Printf("[assignment] auto-assign failed for %s: %v", c.ComplaintNumber, err)
		return c
	}

	moved, err := lifecycle.Transition(c.ID, models.TransitionRequest{NewStatus: string(models.StatusAssigned)}, 0, models.ActorSystem)
	if err != nil {
		log.Printf("[assignment] auto-assign transition failed for %s: %v", c.ComplaintNumber, err)
		return assigned
	}
	return moved
}
