// Package schema handles safe database initialization: create only missing
// tables, never drop or overwrite.
package schema

import (
	"database/sql"
	"log"
)

// creation order respects foreign keys: reference tables first, then
// complaints, then the tables hanging off complaints.
var tables = []struct {
	name   string
	create func(db *sql.DB)
}{
	{"governorates", createGovernoratesTable},
	{"complaint_types", createComplaintTypesTable},
	{"deputies", createDeputiesTable},
	{"complaints", createComplaintsTable},
	{"complaint_updates", createComplaintUpdatesTable},
	{"complaint_attachments", createComplaintAttachmentsTable},
	{"complaint_sequences", createComplaintSequencesTable},
	{"notifications_log", createNotificationsLogTable},
}

// InitializeDatabase ensures all tables exist. Checks INFORMATION_SCHEMA.TABLES
// and creates only what is missing. Does not drop or recreate tables; does not
// remove data.
func InitializeDatabase(db *sql.DB) {
	for _, t := range tables {
		exists, err := tableExists(db, t.name)
		if err != nil {
			log.Fatalf("[SCHEMA] Failed to check if table %s exists: %v", t.name, err)
		}
		if exists {
			log.Printf("[SCHEMA] %s table exists", t.name)
			continue
		}
		t.create(db)
		log.Printf("[SCHEMA] created %s table", t.name)
	}
}

func tableExists(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`,
		name,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func createGovernoratesTable(db *sql.DB) {
	q := `
CREATE TABLE IF NOT EXISTS governorates (
    governorate_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    name VARCHAR(50) UNIQUE NOT NULL COMMENT 'Arabic name',
    name_en VARCHAR(50) NOT NULL COMMENT 'English name',
    code VARCHAR(3) UNIQUE NOT NULL COMMENT 'Official 3-letter code',
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    display_order INT NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NULL,
    INDEX idx_gov_code (code),
    INDEX idx_gov_display (display_order)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table governorates: %v", err)
	}
}

func createComplaintTypesTable(db *sql.DB) {
	q := `
CREATE TABLE IF NOT EXISTS complaint_types (
    type_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    name VARCHAR(100) UNIQUE NOT NULL COMMENT 'Arabic name',
    name_en VARCHAR(100) UNIQUE NOT NULL COMMENT 'English name',
    description VARCHAR(300) NOT NULL DEFAULT '',
    category ENUM('infrastructure','health','education','security','public_services','transportation','environment','housing','employment','social','legislation','constitutional','foreign_policy','economic') NOT NULL,
    target_council ENUM('parliament','senate','both') NOT NULL,
    default_priority ENUM('low','medium','high','urgent') NOT NULL DEFAULT 'medium',
    sla_days INT NOT NULL DEFAULT 30 COMMENT 'Expected resolution window in days',
    requires_attachments BOOLEAN NOT NULL DEFAULT FALSE,
    max_attachments INT NOT NULL DEFAULT 5,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    display_order INT NOT NULL DEFAULT 0,
    total_complaints BIGINT NOT NULL DEFAULT 0 COMMENT 'Monotonic, engine-maintained',
    resolved_complaints BIGINT NOT NULL DEFAULT 0 COMMENT 'Monotonic, engine-maintained',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NULL,
    INDEX idx_type_category (category),
    INDEX idx_type_council (target_council),
    INDEX idx_type_active (is_active)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table complaint_types: %v", err)
	}
}

func createDeputiesTable(db *sql.DB) {
	q := `
CREATE TABLE IF NOT EXISTS deputies (
    deputy_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    full_name VARCHAR(255) NOT NULL,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL COMMENT 'bcrypt hash',
    role ENUM('deputy','admin') NOT NULL DEFAULT 'deputy',
    governorate_id BIGINT NULL COMMENT 'Constituency; NULL for admins',
    council ENUM('parliament','senate','both') NOT NULL DEFAULT 'parliament',
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (governorate_id) REFERENCES governorates(governorate_id) ON DELETE RESTRICT,
    INDEX idx_deputy_gov (governorate_id),
    INDEX idx_deputy_council (council),
    INDEX idx_deputy_active (is_active)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table deputies: %v", err)
	}
}

func createComplaintsTable(db *sql.DB) {
	q := `
CREATE TABLE IF NOT EXISTS complaints (
    complaint_id CHAR(36) PRIMARY KEY COMMENT 'UUID, generated at submission',
    complaint_number VARCHAR(20) UNIQUE NOT NULL COMMENT 'C<year><6-digit sequence>',
    title VARCHAR(200) NOT NULL,
    description TEXT NOT NULL,
    complaint_type_id BIGINT NOT NULL COMMENT 'Immutable after creation',
    priority ENUM('low','medium','high','urgent') NOT NULL DEFAULT 'medium',
    citizen_id BIGINT NOT NULL COMMENT 'Submitter (identity service id)',
    assigned_to BIGINT NULL COMMENT 'Handling deputy',
    governorate_id BIGINT NOT NULL,
    city VARCHAR(100) NOT NULL,
    district VARCHAR(100) NULL,
    detailed_location VARCHAR(300) NULL,
    status ENUM('pending','under_review','assigned','in_progress','resolved','rejected','closed') NOT NULL DEFAULT 'pending',
    admin_notes VARCHAR(1000) NULL,
    resolution_notes VARCHAR(1000) NULL,
    satisfaction_rating INT NULL COMMENT '1-5, set once after resolution',
    satisfaction_comment VARCHAR(500) NULL,
    is_public BOOLEAN NOT NULL DEFAULT TRUE,
    is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NULL,
    assigned_at TIMESTAMP NULL COMMENT 'First assignment; never moved',
    resolved_at TIMESTAMP NULL COMMENT 'First entry into resolved; never moved',
    updates_count INT NOT NULL DEFAULT 0,
    version BIGINT NOT NULL DEFAULT 1 COMMENT 'Optimistic lock',
    FOREIGN KEY (complaint_type_id) REFERENCES complaint_types(type_id) ON DELETE RESTRICT,
    FOREIGN KEY (governorate_id) REFERENCES governorates(governorate_id) ON DELETE RESTRICT,
    FOREIGN KEY (assigned_to) REFERENCES deputies(deputy_id) ON DELETE RESTRICT,
    INDEX idx_complaint_number (complaint_number),
    INDEX idx_complaint_citizen (citizen_id),
    INDEX idx_complaint_status (status),
    INDEX idx_complaint_priority (priority),
    INDEX idx_complaint_type (complaint_type_id),
    INDEX idx_complaint_gov (governorate_id),
    INDEX idx_complaint_assigned (assigned_to),
    INDEX idx_complaint_created (created_at),
    INDEX idx_complaint_status_created (status, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table complaints: %v", err)
	}
}

func createComplaintUpdatesTable(db *sql.DB) {
	q := `
CREATE TABLE IF NOT EXISTS complaint_updates (
    update_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    complaint_id CHAR(36) NOT NULL,
    kind ENUM('status_change','assignment','comment','resolution','rejection','rating') NOT NULL,
    old_status VARCHAR(20) NULL,
    new_status VARCHAR(20) NULL,
    description VARCHAR(1000) NOT NULL DEFAULT '',
    actor_id BIGINT NOT NULL,
    actor_role ENUM('citizen','deputy','admin','system') NOT NULL,
    is_public BOOLEAN NOT NULL DEFAULT TRUE,
    notify_complainant BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (complaint_id) REFERENCES complaints(complaint_id) ON DELETE CASCADE,
    INDEX idx_update_complaint (complaint_id),
    INDEX idx_update_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table complaint_updates: %v", err)
	}
}

func createComplaintAttachmentsTable(db *sql.DB) {
	q := `
CREATE TABLE IF NOT EXISTS complaint_attachments (
    attachment_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    complaint_id CHAR(36) NOT NULL,
    file_name VARCHAR(255) NOT NULL,
    file_size BIGINT NOT NULL COMMENT 'Bytes',
    mime_type VARCHAR(100) NOT NULL,
    storage_path VARCHAR(500) NOT NULL,
    is_verified BOOLEAN NOT NULL DEFAULT FALSE,
    verified_by BIGINT NULL,
    verified_at TIMESTAMP NULL,
    uploaded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (complaint_id) REFERENCES complaints(complaint_id) ON DELETE CASCADE,
    INDEX idx_attachment_complaint (complaint_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table complaint_attachments: %v", err)
	}
}

// complaint_sequences backs the per-year atomic allocator for complaint
// numbers. A row count is not safe under concurrent submission.
func createComplaintSequencesTable(db *sql.DB) {
	q := `
CREATE TABLE IF NOT EXISTS complaint_sequences (
    year INT PRIMARY KEY,
    last_value BIGINT NOT NULL DEFAULT 0
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table complaint_sequences: %v", err)
	}
}

func createNotificationsLogTable(db *sql.DB) {
	q := `
CREATE TABLE IF NOT EXISTS notifications_log (
    event_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    complaint_id CHAR(36) NOT NULL,
    citizen_id BIGINT NOT NULL,
    event ENUM('status_change','assignment','comment','resolution','rejection','rating') NOT NULL,
    old_status VARCHAR(20) NULL,
    new_status VARCHAR(20) NULL,
    message VARCHAR(500) NOT NULL DEFAULT '',
    status ENUM('pending','sent','failed') NOT NULL DEFAULT 'pending',
    last_error VARCHAR(500) NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    sent_at TIMESTAMP NULL,
    INDEX idx_notification_status (status),
    INDEX idx_notification_complaint (complaint_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table notifications_log: %v", err)
	}
}
