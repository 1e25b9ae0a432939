package models

import (
	"database/sql"
	"time"
)

// Project represents a construction/renovation project owned by exactly one
// organization.
type Project struct {
	ID        int64          `db:"id"`
	OrgID     int64          `db:"org_id"`
	Name      string         `db:"name"`
	Address   sql.NullString `db:"address"`
	Status    string         `db:"status"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// Phase is one of the fixed project phases.
type Phase struct {
	ID        int64     `db:"id"`
	ProjectID int64     `db:"project_id"`
	Kind      string    `db:"kind"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Stage is a configurable unit of work within a phase. Stages inherit their
// permission from the parent project.
type Stage struct {
	ID          int64        `db:"id"`
	PhaseID     int64        `db:"phase_id"`
	Name        string       `db:"name"`
	Kind        string       `db:"kind"`
	Position    int          `db:"position"`
	Enabled     bool         `db:"enabled"`
	CompletedAt sql.NullTime `db:"completed_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}
