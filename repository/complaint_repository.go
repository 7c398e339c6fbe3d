package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"naebak/models"
)

// ComplaintRepository handles database operations for complaints, their
// history records and attachments.
type ComplaintRepository struct {
	db *sql.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *sql.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// NextComplaintNumber allocates the next human-readable number for the given
// year, format C<year><6-digit sequence>. The sequence is a database-level
// atomic increment keyed by year; counting rows would race under concurrent
// submission.
func (r *ComplaintRepository) NextComplaintNumber(year int) (string, error) {
	result, err := r.db.Exec(
		`INSERT INTO complaint_sequences (year, last_value) VALUES (?, LAST_INSERT_ID(1))
		 ON DUPLICATE KEY UPDATE last_value = LAST_INSERT_ID(last_value + 1)`,
		year,
	)
	if err != nil {
		return "", fmt.Errorf("failed to advance complaint sequence: %w", err)
	}
	seq, err := result.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("failed to read complaint sequence: %w", err)
	}
	return fmt.Sprintf("C%d%06d", year, seq), nil
}

const complaintColumns = `
	complaint_id, complaint_number, title, description,
	complaint_type_id, priority, citizen_id, assigned_to,
	governorate_id, city, district, detailed_location,
	status, admin_notes, resolution_notes,
	satisfaction_rating, satisfaction_comment,
	is_public, is_anonymous,
	created_at, updated_at, assigned_at, resolved_at,
	updates_count, version`

func scanComplaint(row interface{ Scan(...any) error }) (*models.Complaint, error) {
	var c models.Complaint
	err := row.Scan(
		&c.ID, &c.ComplaintNumber, &c.Title, &c.Description,
		&c.ComplaintTypeID, &c.Priority, &c.CitizenID, &c.AssignedTo,
		&c.GovernorateID, &c.City, &c.District, &c.DetailedLocation,
		&c.Status, &c.AdminNotes, &c.ResolutionNotes,
		&c.SatisfactionRating, &c.SatisfactionComment,
		&c.IsPublic, &c.IsAnonymous,
		&c.CreatedAt, &c.UpdatedAt, &c.AssignedAt, &c.ResolvedAt,
		&c.UpdatesCount, &c.Version,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateComplaint inserts the complaint, its initial history record, its
// attachments and the type's submission counter increment in one transaction.
// The operation is all-or-nothing; on error nothing is persisted.
func (r *ComplaintRepository) CreateComplaint(c *models.Complaint, initial *models.ComplaintUpdate, attachments []models.ComplaintAttachment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO complaints (
			complaint_id, complaint_number, title, description,
			complaint_type_id, priority, citizen_id, assigned_to,
			governorate_id, city, district, detailed_location,
			status, is_public, is_anonymous, created_at, assigned_at, updates_count, version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ComplaintNumber, c.Title, c.Description,
		c.ComplaintTypeID, c.Priority, c.CitizenID, c.AssignedTo,
		c.GovernorateID, c.City, c.District, c.DetailedLocation,
		c.Status, c.IsPublic, c.IsAnonymous, c.CreatedAt, c.AssignedAt, c.UpdatesCount, c.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}

	if err := insertUpdate(tx, initial); err != nil {
		return err
	}

	for i := range attachments {
		a := &attachments[i]
		_, err = tx.Exec(
			`INSERT INTO complaint_attachments (
				complaint_id, file_name, file_size, mime_type, storage_path, is_verified, uploaded_at
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.ComplaintID, a.FileName, a.FileSize, a.MimeType, a.StoragePath, a.IsVerified, a.UploadedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create attachment: %w", err)
		}
	}

	_, err = tx.Exec(
		`UPDATE complaint_types SET total_complaints = total_complaints + 1, updated_at = NOW() WHERE type_id = ?`,
		c.ComplaintTypeID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment submission counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit complaint creation: %w", err)
	}
	return nil
}

// GetComplaintByID retrieves a complaint by its UUID
func (r *ComplaintRepository) GetComplaintByID(complaintID string) (*models.Complaint, error) {
	row := r.db.QueryRow(
		`SELECT `+complaintColumns+` FROM complaints WHERE complaint_id = ?`, complaintID)
	c, err := scanComplaint(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "complaint", ID: complaintID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return c, nil
}

// GetComplaintByNumber retrieves a complaint by its human-readable number
func (r *ComplaintRepository) GetComplaintByNumber(number string) (*models.Complaint, error) {
	row := r.db.QueryRow(
		`SELECT `+complaintColumns+` FROM complaints WHERE complaint_number = ?`, number)
	c, err := scanComplaint(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "complaint", ID: number}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return c, nil
}

func buildFilter(f models.ComplaintFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, *f.Status)
	}
	if f.Priority != nil {
		conds = append(conds, "priority = ?")
		args = append(args, *f.Priority)
	}
	if f.ComplaintTypeID != nil {
		conds = append(conds, "complaint_type_id = ?")
		args = append(args, *f.ComplaintTypeID)
	}
	if f.GovernorateID != nil {
		conds = append(conds, "governorate_id = ?")
		args = append(args, *f.GovernorateID)
	}
	if f.CitizenID != nil {
		conds = append(conds, "citizen_id = ?")
		args = append(args, *f.CitizenID)
	}
	if f.AssignedTo != nil {
		conds = append(conds, "assigned_to = ?")
		args = append(args, *f.AssignedTo)
	}
	if f.From != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		conds = append(conds, "created_at < ?")
		args = append(args, *f.To)
	}
	if f.Search != "" {
		conds = append(conds, "(title LIKE ? OR description LIKE ? OR complaint_number LIKE ?)")
		like := "%" + f.Search + "%"
		args = append(args, like, like, like)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListComplaints returns complaints matching the filter, newest first, with
// pagination applied when PerPage > 0.
func (r *ComplaintRepository) ListComplaints(f models.ComplaintFilter) ([]models.Complaint, error) {
	where, args := buildFilter(f)
	query := `SELECT ` + complaintColumns + ` FROM complaints` + where + ` ORDER BY created_at DESC`
	if f.PerPage > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.PerPage, (page-1)*f.PerPage)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}
		complaints = append(complaints, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaints: %w", err)
	}
	return complaints, nil
}

// CountComplaints returns the number of complaints matching the filter.
func (r *ComplaintRepository) CountComplaints(f models.ComplaintFilter) (int, error) {
	where, args := buildFilter(f)
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM complaints`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count complaints: %w", err)
	}
	return count, nil
}

// CountCitizenComplaintsSince counts a citizen's submissions in a window.
// Backs the per-day submission limit.
func (r *ComplaintRepository) CountCitizenComplaintsSince(citizenID int64, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM complaints WHERE citizen_id = ? AND created_at >= ?`,
		citizenID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count citizen complaints: %w", err)
	}
	return count, nil
}

// ApplyTransition persists a status transition in one transaction: the
// complaint row (guarded by the version the caller read), the history record,
// and on first entry into resolved the type's resolved counter. A version
// mismatch means another actor got there first and surfaces as ConflictError
// with nothing written.
func (r *ComplaintRepository) ApplyTransition(c *models.Complaint, rec *models.ComplaintUpdate, firstResolve bool) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE complaints
		 SET status = ?, admin_notes = ?, resolution_notes = ?, resolved_at = ?,
		     updates_count = updates_count + 1, version = version + 1, updated_at = NOW()
		 WHERE complaint_id = ? AND version = ?`,
		c.Status, c.AdminNotes, c.ResolutionNotes, c.ResolvedAt,
		c.ID, c.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update complaint status: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check transition result: %w", err)
	} else if n == 0 {
		return &models.ConflictError{ComplaintID: c.ID}
	}

	if err := insertUpdate(tx, rec); err != nil {
		return err
	}

	if firstResolve {
		_, err = tx.Exec(
			`UPDATE complaint_types SET resolved_complaints = resolved_complaints + 1, updated_at = NOW() WHERE type_id = ?`,
			c.ComplaintTypeID,
		)
		if err != nil {
			return fmt.Errorf("failed to increment resolved counter: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transition: %w", err)
	}
	c.Version++
	c.UpdatesCount++
	return nil
}

// ApplyAssignment persists an assignment with the same version guard as
// ApplyTransition. assigned_at is written as carried on c: the service sets
// it only on first assignment.
func (r *ComplaintRepository) ApplyAssignment(c *models.Complaint, rec *models.ComplaintUpdate) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE complaints
		 SET assigned_to = ?, assigned_at = ?,
		     updates_count = updates_count + 1, version = version + 1, updated_at = NOW()
		 WHERE complaint_id = ? AND version = ?`,
		c.AssignedTo, c.AssignedAt,
		c.ID, c.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check assignment result: %w", err)
	} else if n == 0 {
		return &models.ConflictError{ComplaintID: c.ID}
	}

	if err := insertUpdate(tx, rec); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignment: %w", err)
	}
	c.Version++
	c.UpdatesCount++
	return nil
}

// ApplyRating persists the citizen's satisfaction rating, version-guarded.
func (r *ComplaintRepository) ApplyRating(c *models.Complaint, rec *models.ComplaintUpdate) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE complaints
		 SET satisfaction_rating = ?, satisfaction_comment = ?,
		     updates_count = updates_count + 1, version = version + 1, updated_at = NOW()
		 WHERE complaint_id = ? AND version = ?`,
		c.SatisfactionRating, c.SatisfactionComment,
		c.ID, c.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check rating result: %w", err)
	} else if n == 0 {
		return &models.ConflictError{ComplaintID: c.ID}
	}

	if err := insertUpdate(tx, rec); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rating: %w", err)
	}
	c.Version++
	c.UpdatesCount++
	return nil
}

func insertUpdate(tx *sql.Tx, rec *models.ComplaintUpdate) error {
	result, err := tx.Exec(
		`INSERT INTO complaint_updates (
			complaint_id, kind, old_status, new_status, description,
			actor_id, actor_role, is_public, notify_complainant, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ComplaintID, rec.Kind, rec.OldStatus, rec.NewStatus, rec.Description,
		rec.ActorID, rec.ActorRole, rec.IsPublic, rec.Notify, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create history record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get history record ID: %w", err)
	}
	rec.ID = id
	return nil
}

// GetUpdates retrieves the history timeline for a complaint, newest first.
func (r *ComplaintRepository) GetUpdates(complaintID string) ([]models.ComplaintUpdate, error) {
	rows, err := r.db.Query(
		`SELECT update_id, complaint_id, kind, old_status, new_status, description,
		        actor_id, actor_role, is_public, notify_complainant, created_at
		 FROM complaint_updates
		 WHERE complaint_id = ?
		 ORDER BY created_at DESC, update_id DESC`,
		complaintID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var updates []models.ComplaintUpdate
	for rows.Next() {
		var u models.ComplaintUpdate
		err := rows.Scan(
			&u.ID, &u.ComplaintID, &u.Kind, &u.OldStatus, &u.NewStatus, &u.Description,
			&u.ActorID, &u.ActorRole, &u.IsPublic, &u.Notify, &u.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		updates = append(updates, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return updates, nil
}

// CreateAttachment creates an attachment metadata record
func (r *ComplaintRepository) CreateAttachment(a *models.ComplaintAttachment) error {
	result, err := r.db.Exec(
		`INSERT INTO complaint_attachments (
			complaint_id, file_name, file_size, mime_type, storage_path, is_verified, uploaded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ComplaintID, a.FileName, a.FileSize, a.MimeType, a.StoragePath, a.IsVerified, a.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get attachment ID: %w", err)
	}
	a.ID = id
	return nil
}

// GetAttachmentsByComplaintID retrieves all attachments for a complaint
func (r *ComplaintRepository) GetAttachmentsByComplaintID(complaintID string) ([]models.ComplaintAttachment, error) {
	rows, err := r.db.Query(
		`SELECT attachment_id, complaint_id, file_name, file_size, mime_type, storage_path,
		        is_verified, verified_by, verified_at, uploaded_at
		 FROM complaint_attachments
		 WHERE complaint_id = ?
		 ORDER BY uploaded_at ASC`,
		complaintID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()

	var attachments []models.ComplaintAttachment
	for rows.Next() {
		var a models.ComplaintAttachment
		err := rows.Scan(
			&a.ID, &a.ComplaintID, &a.FileName, &a.FileSize, &a.MimeType, &a.StoragePath,
			&a.IsVerified, &a.VerifiedBy, &a.VerifiedAt, &a.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attachments: %w", err)
	}
	return attachments, nil
}
