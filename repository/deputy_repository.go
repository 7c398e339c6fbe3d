package repository

import (
	"database/sql"
	"fmt"
	"strconv"

	"naebak/models"
)

// DeputyRepository handles database operations for deputies
type DeputyRepository struct {
	db *sql.DB
}

// NewDeputyRepository creates a new deputy repository
func NewDeputyRepository(db *sql.DB) *DeputyRepository {
	return &DeputyRepository{db: db}
}

const deputyColumns = `deputy_id, full_name, email, password_hash, role, governorate_id, council, is_active, created_at`

func scanDeputy(row interface{ Scan(...any) error }) (*models.Deputy, error) {
	var d models.Deputy
	err := row.Scan(&d.ID, &d.FullName, &d.Email, &d.PasswordHash, &d.Role, &d.GovernorateID, &d.Council, &d.IsActive, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDeputy retrieves a deputy by ID
func (r *DeputyRepository) GetDeputy(id int64) (*models.Deputy, error) {
	row := r.db.QueryRow(`SELECT `+deputyColumns+` FROM deputies WHERE deputy_id = ?`, id)
	d, err := scanDeputy(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "deputy", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deputy: %w", err)
	}
	return d, nil
}

// GetDeputyByEmail retrieves a deputy by email address
func (r *DeputyRepository) GetDeputyByEmail(email string) (*models.Deputy, error) {
	row := r.db.QueryRow(`SELECT `+deputyColumns+` FROM deputies WHERE email = ?`, email)
	d, err := scanDeputy(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "deputy", ID: email}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deputy: %w", err)
	}
	return d, nil
}

// CreateDeputy creates a new deputy account
func (r *DeputyRepository) CreateDeputy(d *models.Deputy) error {
	result, err := r.db.Exec(
		`INSERT INTO deputies (full_name, email, password_hash, role, governorate_id, council, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.FullName, d.Email, d.PasswordHash, d.Role, d.GovernorateID, d.Council, d.IsActive, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create deputy: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get deputy ID: %w", err)
	}
	d.ID = id
	return nil
}

// ListCandidateLoads returns active deputies eligible for auto-assignment
// with their open-complaint count, least loaded first, ties broken by the
// lower deputy ID so repeated runs pick deterministically. Open means any
// status other than rejected or closed.
func (r *DeputyRepository) ListCandidateLoads(governorateID *int64, council *models.TargetCouncil) ([]models.DeputyLoad, error) {
	query := `
		SELECT d.deputy_id, COUNT(c.complaint_id) AS open_load
		FROM deputies d
		LEFT JOIN complaints c
		  ON c.assigned_to = d.deputy_id
		 AND c.status NOT IN ('rejected', 'closed')
		WHERE d.is_active = TRUE AND d.role = 'deputy'`
	var args []any
	if governorateID != nil {
		query += ` AND d.governorate_id = ?`
		args = append(args, *governorateID)
	}
	if council != nil {
		query += ` AND (d.council = ? OR d.council = 'both')`
		args = append(args, *council)
	}
	query += `
		GROUP BY d.deputy_id
		ORDER BY open_load ASC, d.deputy_id ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment candidates: %w", err)
	}
	defer rows.Close()

	var loads []models.DeputyLoad
	for rows.Next() {
		var l models.DeputyLoad
		if err := rows.Scan(&l.DeputyID, &l.OpenLoad); err != nil {
			return nil, fmt.Errorf("failed to scan candidate load: %w", err)
		}
		loads = append(loads, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return loads, nil
}
