package models

import (
	"database/sql"
	"time"
)

// Contact represents a person or entity associated with an organization.
// A contact may be linked to a platform user by matching email.
type Contact struct {
	ID        int64          `db:"id"`
	OrgID     int64          `db:"org_id"`
	UserID    sql.NullInt64  `db:"user_id"`
	Name      string         `db:"name"`
	Email     sql.NullString `db:"email"`
	Phone     sql.NullString `db:"phone"`
	Company   sql.NullString `db:"company"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}
