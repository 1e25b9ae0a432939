package models

import (
	"database/sql"
	"time"
)

// User represents a platform user mapped from the identity provider.
type User struct {
	ID         int64          `db:"id"`
	ExternalID string         `db:"external_id"`
	Email      string         `db:"email"`
	FirstName  sql.NullString `db:"first_name"`
	LastName   sql.NullString `db:"last_name"`
	AvatarURL  sql.NullString `db:"avatar_url"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}
