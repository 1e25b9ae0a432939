package models

import "time"

// StageTemplate is a named per-org stage list that can be applied to a
// phase when creating a project.
type StageTemplate struct {
	ID        int64     `db:"id"`
	OrgID     int64     `db:"org_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// StageTemplateItem is a single stage within a template.
type StageTemplateItem struct {
	ID         int64  `db:"id"`
	TemplateID int64  `db:"template_id"`
	Name       string `db:"name"`
	Kind       string `db:"kind"`
	Position   int    `db:"position"`
}
