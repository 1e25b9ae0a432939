package database

import (
	"context"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/store"
	"github.com/craftplan/craftplan/pkg/utils"
)

type stageStore struct{}

var _ store.StageStore = (*stageStore)(nil)

// CreateStage implements store.StageStore.
func (*stageStore) CreateStage(ctx context.Context, tx db.Handler, phaseID int64, name, kind string, position int) (models.Stage, error) {
	if err := utils.ValidateName(name); err != nil {
		return models.Stage{}, err //nolint:wrapcheck
	}

	query := tx.Rebind(`INSERT INTO stages (phase_id, name, kind, position, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, phaseID, name, kind, position); err != nil {
		return models.Stage{}, err //nolint:wrapcheck
	}

	var m models.Stage
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM stages WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// GetStageByID implements store.StageStore.
func (*stageStore) GetStageByID(ctx context.Context, tx db.Handler, id int64) (models.Stage, error) {
	var m models.Stage
	query := tx.Rebind(`SELECT * FROM stages WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// ListStagesByPhase implements store.StageStore.
func (*stageStore) ListStagesByPhase(ctx context.Context, tx db.Handler, phaseID int64) ([]models.Stage, error) {
	var ms []models.Stage
	query := tx.Rebind(`SELECT * FROM stages WHERE phase_id = ? ORDER BY position;`)
	err := tx.SelectContext(ctx, &ms, query, phaseID)
	return ms, err //nolint:wrapcheck
}

// RenameStage implements store.StageStore.
func (*stageStore) RenameStage(ctx context.Context, tx db.Handler, id int64, name string) error {
	if err := utils.ValidateName(name); err != nil {
		return err //nolint:wrapcheck
	}

	query := tx.Rebind(`UPDATE stages SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, name, id)
	return err //nolint:wrapcheck
}

// SetStageEnabled implements store.StageStore.
func (*stageStore) SetStageEnabled(ctx context.Context, tx db.Handler, id int64, enabled bool) error {
	query := tx.Rebind(`UPDATE stages SET enabled = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, enabled, id)
	return err //nolint:wrapcheck
}

// SetStageCompleted implements store.StageStore.
func (*stageStore) SetStageCompleted(ctx context.Context, tx db.Handler, id int64, completed bool) error {
	var query string
	if completed {
		query = tx.Rebind(`UPDATE stages SET completed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?;`)
	} else {
		query = tx.Rebind(`UPDATE stages SET completed_at = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?;`)
	}
	_, err := tx.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// ReorderStages implements store.StageStore.
func (*stageStore) ReorderStages(ctx context.Context, tx db.Handler, phaseID int64, ids []int64) error {
	query := tx.Rebind(`UPDATE stages
			SET position = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND phase_id = ?;`)
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, query, i, id, phaseID); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

// DeleteStageByID implements store.StageStore.
func (*stageStore) DeleteStageByID(ctx context.Context, tx db.Handler, id int64) error {
	query := tx.Rebind(`DELETE FROM stages WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// GetProjectIDForStage implements store.StageStore.
func (*stageStore) GetProjectIDForStage(ctx context.Context, tx db.Handler, stageID int64) (int64, error) {
	var projectID int64
	query := tx.Rebind(`SELECT phases.project_id
			FROM phases
			INNER JOIN stages ON stages.phase_id = phases.id
			WHERE stages.id = ?;`)
	err := tx.GetContext(ctx, &projectID, query, stageID)
	return projectID, err //nolint:wrapcheck
}
