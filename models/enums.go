package models

// ComplaintStatus represents the possible statuses of a complaint
type ComplaintStatus string

const (
	StatusPending     ComplaintStatus = "pending"
	StatusUnderReview ComplaintStatus = "under_review"
	StatusAssigned    ComplaintStatus = "assigned"
	StatusInProgress  ComplaintStatus = "in_progress"
	StatusResolved    ComplaintStatus = "resolved"
	StatusRejected    ComplaintStatus = "rejected"
	StatusClosed      ComplaintStatus = "closed"
)

// AllStatuses lists every complaint status in display order. Statistics
// reports iterate this so zero-count statuses still appear.
var AllStatuses = []ComplaintStatus{
	StatusPending,
	StatusUnderReview,
	StatusAssigned,
	StatusInProgress,
	StatusResolved,
	StatusRejected,
	StatusClosed,
}

// IsValid reports whether s is one of the seven known statuses.
func (s ComplaintStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
// Only closed is terminal; rejected complaints can be reopened.
func (s ComplaintStatus) IsTerminal() bool {
	return s == StatusClosed
}

// Priority represents complaint priority levels
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AllPriorities lists every priority in ascending weight order.
var AllPriorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityUrgent,
}

// IsValid reports whether p is one of the four known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Weight returns the sorting weight of the priority (low=1 .. urgent=4).
// Unknown values fall back to medium's weight; worklists must never
// error out on a malformed priority.
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	default:
		return 2
	}
}

// Category classifies a complaint type (closed set, fixed at seed time)
type Category string

const (
	CategoryInfrastructure Category = "infrastructure"
	CategoryHealth         Category = "health"
	CategoryEducation      Category = "education"
	CategorySecurity       Category = "security"
	CategoryPublicServices Category = "public_services"
	CategoryTransportation Category = "transportation"
	CategoryEnvironment    Category = "environment"
	CategoryHousing        Category = "housing"
	CategoryEmployment     Category = "employment"
	CategorySocial         Category = "social"
	CategoryLegislation    Category = "legislation"
	CategoryConstitutional Category = "constitutional"
	CategoryForeignPolicy  Category = "foreign_policy"
	CategoryEconomic       Category = "economic"
)

// TargetCouncil is the legislative body responsible for a complaint type
type TargetCouncil string

const (
	CouncilParliament TargetCouncil = "parliament"
	CouncilSenate     TargetCouncil = "senate"
	CouncilBoth       TargetCouncil = "both"
)

// UpdateKind is the kind of a complaint history record
type UpdateKind string

const (
	UpdateStatusChange UpdateKind = "status_change"
	UpdateAssignment   UpdateKind = "assignment"
	UpdateComment      UpdateKind = "comment"
	UpdateResolution   UpdateKind = "resolution"
	UpdateRejection    UpdateKind = "rejection"
	UpdateRating       UpdateKind = "rating"
)

// ActorRole identifies who performed an action on a complaint
type ActorRole string

const (
	ActorCitizen ActorRole = "citizen"
	ActorDeputy  ActorRole = "deputy"
	ActorAdmin   ActorRole = "admin"
	ActorSystem  ActorRole = "system"
)
