package models

import (
	"time"

	"github.com/craftplan/craftplan/pkg/proto"
)

// Organization represents a tenant organization.
type Organization struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// OrganizationMember represents a member of an organization.
type OrganizationMember struct {
	ID        int64         `db:"id"`
	OrgID     int64         `db:"org_id"`
	UserID    int64         `db:"user_id"`
	Role      proto.OrgRole `db:"role"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}
