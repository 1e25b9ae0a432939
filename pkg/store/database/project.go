package database

import (
	"context"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/store"
	"github.com/craftplan/craftplan/pkg/utils"
)

type projectStore struct{}

var _ store.ProjectStore = (*projectStore)(nil)

// CreateProject implements store.ProjectStore.
func (*projectStore) CreateProject(ctx context.Context, tx db.Handler, orgID int64, name, address string) (models.Project, error) {
	if err := utils.ValidateName(name); err != nil {
		return models.Project{}, err //nolint:wrapcheck
	}

	query := tx.Rebind(`INSERT INTO projects (org_id, name, address, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, orgID, name, nullString(address)); err != nil {
		return models.Project{}, err //nolint:wrapcheck
	}

	var m models.Project
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM projects WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// GetProjectByID implements store.ProjectStore.
func (*projectStore) GetProjectByID(ctx context.Context, tx db.Handler, id int64) (models.Project, error) {
	var m models.Project
	query := tx.Rebind(`SELECT * FROM projects WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// ListProjectsByOrg implements store.ProjectStore.
func (*projectStore) ListProjectsByOrg(ctx context.Context, tx db.Handler, orgID int64) ([]models.Project, error) {
	var ms []models.Project
	query := tx.Rebind(`SELECT * FROM projects WHERE org_id = ? ORDER BY name;`)
	err := tx.SelectContext(ctx, &ms, query, orgID)
	return ms, err //nolint:wrapcheck
}

// UpdateProject implements store.ProjectStore.
func (*projectStore) UpdateProject(ctx context.Context, tx db.Handler, id int64, name, address, status string) error {
	if err := utils.ValidateName(name); err != nil {
		return err //nolint:wrapcheck
	}

	query := tx.Rebind(`UPDATE projects
			SET name = ?, address = ?, status = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, name, nullString(address), status, id)
	return err //nolint:wrapcheck
}

// DeleteProjectByID implements store.ProjectStore.
func (*projectStore) DeleteProjectByID(ctx context.Context, tx db.Handler, id int64) error {
	query := tx.Rebind(`DELETE FROM projects WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// CreatePhase implements store.ProjectStore.
func (*projectStore) CreatePhase(ctx context.Context, tx db.Handler, projectID int64, kind string, position int) (models.Phase, error) {
	query := tx.Rebind(`INSERT INTO phases (project_id, kind, position, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, projectID, kind, position); err != nil {
		return models.Phase{}, err //nolint:wrapcheck
	}

	var m models.Phase
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM phases WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// GetPhaseByID implements store.ProjectStore.
func (*projectStore) GetPhaseByID(ctx context.Context, tx db.Handler, id int64) (models.Phase, error) {
	var m models.Phase
	query := tx.Rebind(`SELECT * FROM phases WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// ListPhasesByProject implements store.ProjectStore.
func (*projectStore) ListPhasesByProject(ctx context.Context, tx db.Handler, projectID int64) ([]models.Phase, error) {
	var ms []models.Phase
	query := tx.Rebind(`SELECT * FROM phases WHERE project_id = ? ORDER BY position;`)
	err := tx.SelectContext(ctx, &ms, query, projectID)
	return ms, err //nolint:wrapcheck
}
