package database

import (
	"context"
	"database/sql"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/store"
)

type costStore struct{}

var _ store.CostStore = (*costStore)(nil)

// CreateCost implements store.CostStore.
func (*costStore) CreateCost(ctx context.Context, tx db.Handler, stageID int64, description string, estimateCents, actualCents sql.NullInt64) (models.Cost, error) {
	query := tx.Rebind(`INSERT INTO costs (stage_id, description, estimate_cents, actual_cents, updated_at)
			VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, stageID, description, estimateCents, actualCents); err != nil {
		return models.Cost{}, err //nolint:wrapcheck
	}

	var m models.Cost
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM costs WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// GetCostByID implements store.CostStore.
func (*costStore) GetCostByID(ctx context.Context, tx db.Handler, id int64) (models.Cost, error) {
	var m models.Cost
	query := tx.Rebind(`SELECT * FROM costs WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// ListCostsByStage implements store.CostStore.
func (*costStore) ListCostsByStage(ctx context.Context, tx db.Handler, stageID int64) ([]models.Cost, error) {
	var ms []models.Cost
	query := tx.Rebind(`SELECT * FROM costs WHERE stage_id = ? ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query, stageID)
	return ms, err //nolint:wrapcheck
}

// UpdateCost implements store.CostStore.
func (*costStore) UpdateCost(ctx context.Context, tx db.Handler, id int64, description string, estimateCents, actualCents sql.NullInt64, paid bool) error {
	query := tx.Rebind(`UPDATE costs
			SET description = ?, estimate_cents = ?, actual_cents = ?, paid = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, description, estimateCents, actualCents, paid, id)
	return err //nolint:wrapcheck
}

// DeleteCostByID implements store.CostStore.
func (*costStore) DeleteCostByID(ctx context.Context, tx db.Handler, id int64) error {
	query := tx.Rebind(`DELETE FROM costs WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// CreateNote implements store.CostStore.
func (*costStore) CreateNote(ctx context.Context, tx db.Handler, stageID, authorID int64, body string) (models.Note, error) {
	query := tx.Rebind(`INSERT INTO notes (stage_id, author_id, body, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, stageID, authorID, body); err != nil {
		return models.Note{}, err //nolint:wrapcheck
	}

	var m models.Note
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM notes WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// GetNoteByID implements store.CostStore.
func (*costStore) GetNoteByID(ctx context.Context, tx db.Handler, id int64) (models.Note, error) {
	var m models.Note
	query := tx.Rebind(`SELECT * FROM notes WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// ListNotesByStage implements store.CostStore.
func (*costStore) ListNotesByStage(ctx context.Context, tx db.Handler, stageID int64) ([]models.Note, error) {
	var ms []models.Note
	query := tx.Rebind(`SELECT * FROM notes WHERE stage_id = ? ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query, stageID)
	return ms, err //nolint:wrapcheck
}

// DeleteNoteByID implements store.CostStore.
func (*costStore) DeleteNoteByID(ctx context.Context, tx db.Handler, id int64) error {
	query := tx.Rebind(`DELETE FROM notes WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}
