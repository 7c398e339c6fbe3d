package service

import (
	"database/sql"
	"fmt"
	"time"

	"naebak/models"
)

// allowedTransitions is the complete status graph. A status absent from a
// row's set is unreachable from that row; closed has no outgoing edges.
var allowedTransitions = map[models.ComplaintStatus][]models.ComplaintStatus{
	models.StatusPending:     {models.StatusUnderReview, models.StatusAssigned, models.StatusRejected},
	models.StatusUnderReview: {models.StatusAssigned, models.StatusRejected, models.StatusPending},
	models.StatusAssigned:    {models.StatusInProgress, models.StatusResolved, models.StatusRejected},
	models.StatusInProgress:  {models.StatusResolved, models.StatusAssigned},
	models.StatusResolved:    {models.StatusClosed},
	models.StatusRejected:    {models.StatusPending, models.StatusUnderReview},
	models.StatusClosed:      {},
}

// CanTransition reports whether from -> to is a legal edge. Requesting the
// current status again is not legal; a no-op is not a transition.
func CanTransition(from, to models.ComplaintStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// LifecycleService executes status transitions
type LifecycleService struct {
	complaints ComplaintStore
	notifier   Notifier
	now        func() time.Time
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(complaints ComplaintStore, notifier Notifier) *LifecycleService {
	return &LifecycleService{
		complaints: complaints,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Transition moves a complaint to a new status. On an illegal edge the
// complaint is left untouched and no history record is written. Entering
// resolved for the first time stamps resolved_at and bumps the type's
// resolved counter; re-entering (which the table forbids anyway) would not.
func (s *LifecycleService) Transition(complaintID string, req models.TransitionRequest, actorID int64, actorRole models.ActorRole) (*models.Complaint, error) {
	target := models.ComplaintStatus(req.NewStatus)
	if !target.IsValid() {
		return nil, models.NewValidationError("new_status", fmt.Sprintf("unknown status %q", req.NewStatus))
	}

	c, err := s.complaints.GetComplaintByID(complaintID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(c.Status, target) {
		return nil, &models.IllegalTransitionError{From: c.Status, To: target}
	}
	if target == models.StatusAssigned && !c.AssignedTo.Valid {
		return nil, &models.InvalidAssignmentError{
			Status:  c.Status,
			Message: "cannot enter assigned without a handler; assign first",
		}
	}

	oldStatus := c.Status
	now := s.now().UTC()
	c.Status = target

	kind := models.UpdateStatusChange
	firstResolve := false
	switch target {
	case models.StatusResolved:
		kind = models.UpdateResolution
		if req.Notes != nil && *req.Notes != "" {
			c.ResolutionNotes = sql.NullString{String: *req.Notes, Valid: true}
		}
		if !c.ResolvedAt.Valid {
			c.ResolvedAt = sql.NullTime{Time: now, Valid: true}
			firstResolve = true
		}
	case models.StatusRejected:
		kind = models.UpdateRejection
		if req.Notes != nil && *req.Notes != "" {
			c.AdminNotes = sql.NullString{String: *req.Notes, Valid: true}
		}
	default:
		if req.Notes != nil && *req.Notes != "" {
			c.AdminNotes = sql.NullString{String: *req.Notes, Valid: true}
		}
	}

	notify := req.Notify == nil || *req.Notify
	description := fmt.Sprintf("status changed from %s to %s", oldStatus, target)
	if req.Notes != nil && *req.Notes != "" {
		description = *req.Notes
	}

	rec := &models.ComplaintUpdate{
		ComplaintID: c.ID,
		Kind:        kind,
		OldStatus:   sql.NullString{String: string(oldStatus), Valid: true},
		NewStatus:   sql.NullString{String: string(target), Valid: true},
		Description: description,
		ActorID:     actorID,
		ActorRole:   actorRole,
		IsPublic:    true,
		Notify:      notify,
		CreatedAt:   now,
	}

	if err := s.complaints.ApplyTransition(c, rec, firstResolve); err != nil {
		return nil, err
	}

	s.notifier.StatusChanged(c, oldStatus, target, notify)
	return c, nil
}
