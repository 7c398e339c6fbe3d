package models

import "time"

// AttachmentInput is the metadata for one uploaded file. File transfer
// happens elsewhere; the engine only records and validates metadata.
type AttachmentInput struct {
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	MimeType    string `json:"mime_type"`
	StoragePath string `json:"storage_path"`
}

// SubmitComplaintRequest is the payload for creating a complaint.
type SubmitComplaintRequest struct {
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	ComplaintTypeID  int64             `json:"complaint_type_id"`
	GovernorateID    int64             `json:"governorate_id"`
	City             string            `json:"city"`
	District         *string           `json:"district,omitempty"`
	DetailedLocation *string           `json:"detailed_location,omitempty"`
	Priority         *string           `json:"priority,omitempty"`
	IsPublic         *bool             `json:"is_public,omitempty"`
	IsAnonymous      *bool             `json:"is_anonymous,omitempty"`
	Attachments      []AttachmentInput `json:"attachments,omitempty"`
}

// TransitionRequest is the payload for a status transition.
type TransitionRequest struct {
	NewStatus string  `json:"new_status"`
	Notes     *string `json:"notes,omitempty"`
	Notify    *bool   `json:"notify,omitempty"` // default true
}

// AssignRequest is the payload for assigning a complaint to a deputy.
type AssignRequest struct {
	DeputyID int64   `json:"deputy_id"`
	Notes    *string `json:"notes,omitempty"`
}

// RateRequest is the payload for the citizen's satisfaction rating.
type RateRequest struct {
	Rating   int     `json:"rating"`
	Feedback *string `json:"feedback,omitempty"`
}

// ComplaintFilter narrows complaint listings and statistics.
type ComplaintFilter struct {
	Status          *ComplaintStatus
	Priority        *Priority
	ComplaintTypeID *int64
	GovernorateID   *int64
	CitizenID       *int64
	AssignedTo      *int64
	From            *time.Time
	To              *time.Time
	Search          string
	Page            int
	PerPage         int
}

// ComplaintSummary is the list-view projection of a complaint.
type ComplaintSummary struct {
	ID              string          `json:"id"`
	ComplaintNumber string          `json:"complaint_number"`
	Title           string          `json:"title"`
	Status          ComplaintStatus `json:"status"`
	Priority        Priority        `json:"priority"`
	ComplaintTypeID int64           `json:"complaint_type_id"`
	GovernorateID   int64           `json:"governorate_id"`
	CreatedAt       time.Time       `json:"created_at"`
	IsOverdue       bool            `json:"is_overdue"`
}

// ComplaintPage is one page of complaint summaries.
type ComplaintPage struct {
	Complaints []ComplaintSummary `json:"complaints"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
}

// TimelineEntry is one history record in a complaint's timeline response.
type TimelineEntry struct {
	ID          int64      `json:"id"`
	Kind        UpdateKind `json:"kind"`
	OldStatus   *string    `json:"old_status,omitempty"`
	NewStatus   *string    `json:"new_status,omitempty"`
	Description string     `json:"description"`
	ActorRole   ActorRole  `json:"actor_role"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ErrorResponse is the uniform error payload of the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
