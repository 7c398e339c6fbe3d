package repository

import (
	"database/sql"
	"fmt"
	"strconv"

	"naebak/models"
)

// CatalogRepository handles the reference data: governorates and the
// complaint-type catalog.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListGovernorates returns all active governorates in display order.
func (r *CatalogRepository) ListGovernorates() ([]models.Governorate, error) {
	rows, err := r.db.Query(
		`SELECT governorate_id, name, name_en, code, is_active, display_order, created_at, updated_at
		 FROM governorates
		 WHERE is_active = TRUE
		 ORDER BY display_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query governorates: %w", err)
	}
	defer rows.Close()

	var govs []models.Governorate
	for rows.Next() {
		var g models.Governorate
		err := rows.Scan(&g.ID, &g.Name, &g.NameEn, &g.Code, &g.IsActive, &g.DisplayOrder, &g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan governorate: %w", err)
		}
		govs = append(govs, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating governorates: %w", err)
	}
	return govs, nil
}

// GetGovernorate retrieves a governorate by ID
func (r *CatalogRepository) GetGovernorate(id int64) (*models.Governorate, error) {
	var g models.Governorate
	err := r.db.QueryRow(
		`SELECT governorate_id, name, name_en, code, is_active, display_order, created_at, updated_at
		 FROM governorates WHERE governorate_id = ?`, id,
	).Scan(&g.ID, &g.Name, &g.NameEn, &g.Code, &g.IsActive, &g.DisplayOrder, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "governorate", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get governorate: %w", err)
	}
	return &g, nil
}

const complaintTypeColumns = `
	type_id, name, name_en, description, category, target_council,
	default_priority, sla_days, requires_attachments, max_attachments,
	is_active, display_order, total_complaints, resolved_complaints,
	created_at, updated_at`

func scanComplaintType(row interface{ Scan(...any) error }) (*models.ComplaintType, error) {
	var t models.ComplaintType
	err := row.Scan(
		&t.ID, &t.Name, &t.NameEn, &t.Description, &t.Category, &t.TargetCouncil,
		&t.DefaultPriority, &t.SLADays, &t.RequiresAttachments, &t.MaxAttachments,
		&t.IsActive, &t.DisplayOrder, &t.TotalComplaints, &t.ResolvedComplaints,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListComplaintTypes returns active complaint types in display order,
// optionally restricted to one council.
func (r *CatalogRepository) ListComplaintTypes(council *models.TargetCouncil) ([]models.ComplaintType, error) {
	query := `SELECT ` + complaintTypeColumns + ` FROM complaint_types WHERE is_active = TRUE`
	var args []any
	if council != nil {
		query += ` AND target_council = ?`
		args = append(args, *council)
	}
	query += ` ORDER BY display_order ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaint types: %w", err)
	}
	defer rows.Close()

	var types []models.ComplaintType
	for rows.Next() {
		t, err := scanComplaintType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan complaint type: %w", err)
		}
		types = append(types, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaint types: %w", err)
	}
	return types, nil
}

// ListAllComplaintTypes returns the full catalog including inactive entries.
// Statistics iterate this so every type appears even with zero complaints.
func (r *CatalogRepository) ListAllComplaintTypes() ([]models.ComplaintType, error) {
	rows, err := r.db.Query(`SELECT ` + complaintTypeColumns + ` FROM complaint_types ORDER BY display_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaint types: %w", err)
	}
	defer rows.Close()

	var types []models.ComplaintType
	for rows.Next() {
		t, err := scanComplaintType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan complaint type: %w", err)
		}
		types = append(types, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaint types: %w", err)
	}
	return types, nil
}

// GetComplaintType retrieves a complaint type by ID
func (r *CatalogRepository) GetComplaintType(id int64) (*models.ComplaintType, error) {
	row := r.db.QueryRow(`SELECT `+complaintTypeColumns+` FROM complaint_types WHERE type_id = ?`, id)
	t, err := scanComplaintType(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "complaint_type", ID: strconv.FormatInt(id, 10)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint type: %w", err)
	}
	return t, nil
}

// SeedReferenceData loads the canonical governorates and complaint-type
// catalog. Idempotent: governorates are keyed by code, types by English
// name; existing rows are left untouched so counters survive reseeding.
func (r *CatalogRepository) SeedReferenceData() (int, int, error) {
	govsAdded := 0
	for _, g := range models.EgyptianGovernorates {
		var exists int
		err := r.db.QueryRow(`SELECT COUNT(*) FROM governorates WHERE code = ?`, g.Code).Scan(&exists)
		if err != nil {
			return govsAdded, 0, fmt.Errorf("failed to check governorate %s: %w", g.Code, err)
		}
		if exists > 0 {
			continue
		}
		_, err = r.db.Exec(
			`INSERT INTO governorates (name, name_en, code, is_active, display_order, created_at)
			 VALUES (?, ?, ?, TRUE, ?, NOW())`,
			g.Name, g.NameEn, g.Code, g.DisplayOrder,
		)
		if err != nil {
			return govsAdded, 0, fmt.Errorf("failed to seed governorate %s: %w", g.Code, err)
		}
		govsAdded++
	}

	typesAdded := 0
	for _, t := range models.AllComplaintTypeSeeds() {
		var exists int
		err := r.db.QueryRow(`SELECT COUNT(*) FROM complaint_types WHERE name_en = ?`, t.NameEn).Scan(&exists)
		if err != nil {
			return govsAdded, typesAdded, fmt.Errorf("failed to check complaint type %q: %w", t.NameEn, err)
		}
		if exists > 0 {
			continue
		}
		_, err = r.db.Exec(
			`INSERT INTO complaint_types (
				name, name_en, description, category, target_council,
				default_priority, sla_days, requires_attachments, max_attachments,
				is_active, display_order, created_at
			) VALUES (?, ?, '', ?, ?, ?, ?, ?, 10, TRUE, ?, NOW())`,
			t.Name, t.NameEn, t.Category, t.TargetCouncil,
			t.DefaultPriority, t.SLADays, t.RequiresAttachments, t.DisplayOrder,
		)
		if err != nil {
			return govsAdded, typesAdded, fmt.Errorf("failed to seed complaint type %q: %w", t.NameEn, err)
		}
		typesAdded++
	}

	return govsAdded, typesAdded, nil
}
