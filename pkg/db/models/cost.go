package models

import (
	"database/sql"
	"time"
)

// Cost is a cost line attached to a stage. Amounts are in cents.
type Cost struct {
	ID            int64         `db:"id"`
	StageID       int64         `db:"stage_id"`
	Description   string        `db:"description"`
	EstimateCents sql.NullInt64 `db:"estimate_cents"`
	ActualCents   sql.NullInt64 `db:"actual_cents"`
	Paid          bool          `db:"paid"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

// Note is a free-form note attached to a stage.
type Note struct {
	ID        int64     `db:"id"`
	StageID   int64     `db:"stage_id"`
	AuthorID  int64     `db:"author_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
