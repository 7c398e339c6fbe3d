package models

import (
	"database/sql"
	"time"
)

// Governorate is a fixed geographic region (27 rows, seeded once).
// Reference data: complaints hold a non-owning reference, deletion is
// blocked while complaints point at it.
type Governorate struct {
	ID           int64        `db:"governorate_id" json:"id"`
	Name         string       `db:"name" json:"name"`
	NameEn       string       `db:"name_en" json:"name_en"`
	Code         string       `db:"code" json:"code"`
	IsActive     bool         `db:"is_active" json:"is_active"`
	DisplayOrder int          `db:"display_order" json:"display_order"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    sql.NullTime `db:"updated_at" json:"updated_at"`
}

// ComplaintType is an administered catalog entry that routes complaints to a
// council and carries the SLA and default priority. The two counters are
// monotonic and only the lifecycle engine increments them.
type ComplaintType struct {
	ID                  int64         `db:"type_id" json:"id"`
	Name                string        `db:"name" json:"name"`
	NameEn              string        `db:"name_en" json:"name_en"`
	Description         string        `db:"description" json:"description"`
	Category            Category      `db:"category" json:"category"`
	TargetCouncil       TargetCouncil `db:"target_council" json:"target_council"`
	DefaultPriority     Priority      `db:"default_priority" json:"default_priority"`
	SLADays             int           `db:"sla_days" json:"sla_days"`
	RequiresAttachments bool          `db:"requires_attachments" json:"requires_attachments"`
	MaxAttachments      int           `db:"max_attachments" json:"max_attachments"`
	IsActive            bool          `db:"is_active" json:"is_active"`
	DisplayOrder        int           `db:"display_order" json:"display_order"`
	TotalComplaints     int64         `db:"total_complaints" json:"total_complaints"`
	ResolvedComplaints  int64         `db:"resolved_complaints" json:"resolved_complaints"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt           sql.NullTime  `db:"updated_at" json:"updated_at"`
}

// ResolutionRate returns resolved/total as a fraction in [0,1].
// Zero when no complaints exist; never divides by zero.
func (t *ComplaintType) ResolutionRate() float64 {
	if t.TotalComplaints == 0 {
		return 0
	}
	return float64(t.ResolvedComplaints) / float64(t.TotalComplaints)
}

// Complaint is the main entity. ID is a UUID generated at submission and
// never reused; ComplaintNumber is the human-readable per-year sequential
// number (C<year><6-digit-seq>). Version backs the optimistic lock that
// serializes transitions and assignments on the same record.
type Complaint struct {
	ID              string `db:"complaint_id" json:"id"`
	ComplaintNumber string `db:"complaint_number" json:"complaint_number"`

	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`

	ComplaintTypeID int64    `db:"complaint_type_id" json:"complaint_type_id"`
	Priority        Priority `db:"priority" json:"priority"`

	CitizenID  int64         `db:"citizen_id" json:"citizen_id"`
	AssignedTo sql.NullInt64 `db:"assigned_to" json:"assigned_to"`

	GovernorateID    int64          `db:"governorate_id" json:"governorate_id"`
	City             string         `db:"city" json:"city"`
	District         sql.NullString `db:"district" json:"district,omitempty"`
	DetailedLocation sql.NullString `db:"detailed_location" json:"detailed_location,omitempty"`

	Status          ComplaintStatus `db:"status" json:"status"`
	AdminNotes      sql.NullString  `db:"admin_notes" json:"admin_notes,omitempty"`
	ResolutionNotes sql.NullString  `db:"resolution_notes" json:"resolution_notes,omitempty"`

	// Satisfaction is settable once, only after the complaint reached
	// resolved or closed.
	SatisfactionRating  sql.NullInt64  `db:"satisfaction_rating" json:"satisfaction_rating,omitempty"`
	SatisfactionComment sql.NullString `db:"satisfaction_comment" json:"satisfaction_comment,omitempty"`

	IsPublic    bool `db:"is_public" json:"is_public"`
	IsAnonymous bool `db:"is_anonymous" json:"is_anonymous"`

	// AssignedAt is the first-assignment time and is never moved by a
	// reassignment. ResolvedAt is stamped on first entry into resolved.
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  sql.NullTime `db:"updated_at" json:"updated_at"`
	AssignedAt sql.NullTime `db:"assigned_at" json:"assigned_at"`
	ResolvedAt sql.NullTime `db:"resolved_at" json:"resolved_at"`

	UpdatesCount int   `db:"updates_count" json:"updates_count"`
	Version      int64 `db:"version" json:"-"`
}

// ComplaintUpdate is one append-only history record. Records are never
// mutated or deleted; they go away only when the parent complaint does.
type ComplaintUpdate struct {
	ID          int64           `db:"update_id" json:"id"`
	ComplaintID string          `db:"complaint_id" json:"complaint_id"`
	Kind        UpdateKind      `db:"kind" json:"kind"`
	OldStatus   sql.NullString  `db:"old_status" json:"old_status,omitempty"`
	NewStatus   sql.NullString  `db:"new_status" json:"new_status,omitempty"`
	Description string          `db:"description" json:"description"`
	ActorID     int64           `db:"actor_id" json:"actor_id"`
	ActorRole   ActorRole       `db:"actor_role" json:"actor_role"`
	IsPublic    bool            `db:"is_public" json:"is_public"`
	Notify      bool            `db:"notify_complainant" json:"notify_complainant"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// ComplaintAttachment is file metadata owned exclusively by its complaint.
type ComplaintAttachment struct {
	ID          int64          `db:"attachment_id" json:"id"`
	ComplaintID string         `db:"complaint_id" json:"complaint_id"`
	FileName    string         `db:"file_name" json:"file_name"`
	FileSize    int64          `db:"file_size" json:"file_size"`
	MimeType    string         `db:"mime_type" json:"mime_type"`
	StoragePath string         `db:"storage_path" json:"storage_path"`
	IsVerified  bool           `db:"is_verified" json:"is_verified"`
	VerifiedBy  sql.NullInt64  `db:"verified_by" json:"verified_by,omitempty"`
	VerifiedAt  sql.NullTime   `db:"verified_at" json:"verified_at,omitempty"`
	UploadedAt  time.Time      `db:"uploaded_at" json:"uploaded_at"`
}

// Deputy is a complaint handler: a member of parliament or senate tied to a
// governorate, or an administrator. Deputies are the assignment targets of
// the routing engine.
type Deputy struct {
	ID            int64         `db:"deputy_id" json:"id"`
	FullName      string        `db:"full_name" json:"full_name"`
	Email         string        `db:"email" json:"email"`
	PasswordHash  string        `db:"password_hash" json:"-"`
	Role          ActorRole     `db:"role" json:"role"`
	GovernorateID sql.NullInt64 `db:"governorate_id" json:"governorate_id,omitempty"`
	Council       TargetCouncil `db:"council" json:"council"`
	IsActive      bool          `db:"is_active" json:"is_active"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// DeputyLoad pairs a deputy with their current open-complaint count.
// Used by auto-assignment to pick the least loaded candidate.
type DeputyLoad struct {
	DeputyID int64 `db:"deputy_id" json:"deputy_id"`
	OpenLoad int   `db:"open_load" json:"open_load"`
}

// NotificationEvent is one queued notification. The lifecycle engine only
// decides that an event occurred; delivery belongs to the worker and sender.
type NotificationEvent struct {
	ID          int64          `db:"event_id" json:"id"`
	ComplaintID string         `db:"complaint_id" json:"complaint_id"`
	CitizenID   int64          `db:"citizen_id" json:"citizen_id"`
	Event       UpdateKind     `db:"event" json:"event"`
	OldStatus   sql.NullString `db:"old_status" json:"old_status,omitempty"`
	NewStatus   sql.NullString `db:"new_status" json:"new_status,omitempty"`
	Message     string         `db:"message" json:"message"`
	Status      string         `db:"status" json:"status"` // pending | sent | failed
	LastError   sql.NullString `db:"last_error" json:"last_error,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	SentAt      sql.NullTime   `db:"sent_at" json:"sent_at,omitempty"`
}
