package models

import (
	"database/sql"
	"time"

	"github.com/craftplan/craftplan/pkg/access"
)

// ProjectShare grants an entire partner organization a permission level on a
// project. The grant is inert until accepted.
type ProjectShare struct {
	ID         int64        `db:"id"`
	ProjectID  int64        `db:"project_id"`
	OrgID      int64        `db:"org_id"`
	Level      access.Level `db:"access_level"`
	AcceptedAt sql.NullTime `db:"accepted_at"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
}

// ProjectContact grants a single contact a permission level and a role label
// on a project.
type ProjectContact struct {
	ID        int64        `db:"id"`
	ProjectID int64        `db:"project_id"`
	ContactID int64        `db:"contact_id"`
	Level     access.Level `db:"access_level"`
	Role      string       `db:"role"`
	IsPrimary bool         `db:"is_primary"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}
