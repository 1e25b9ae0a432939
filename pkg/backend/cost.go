package backend

import (
	"context"
	"database/sql"
	"errors"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
)

// CreateCost adds a cost line to a stage. Amounts are in cents, a negative
// amount means unset. Requires editor access.
func (b *Backend) CreateCost(ctx context.Context, user proto.User, stageID int64, description string, estimateCents, actualCents int64) (models.Cost, error) {
	var cost models.Cost
	if err := b.requireStageEditor(ctx, user, stageID); err != nil {
		return cost, err
	}

	return b.store.CreateCost(ctx, b.db, stageID, description, nullCents(estimateCents), nullCents(actualCents))
}

// Costs lists a stage's cost lines.
func (b *Backend) Costs(ctx context.Context, user proto.User, stageID int64) ([]models.Cost, error) {
	if err := b.requireStageViewer(ctx, user, stageID); err != nil {
		return nil, err
	}

	return b.store.ListCostsByStage(ctx, b.db, stageID)
}

// UpdateCost updates a cost line. Requires editor access.
func (b *Backend) UpdateCost(ctx context.Context, user proto.User, costID int64, description string, estimateCents, actualCents int64, paid bool) error {
	cost, err := b.cost(ctx, costID)
	if err != nil {
		return err
	}
	if err := b.requireStageEditor(ctx, user, cost.StageID); err != nil {
		return err
	}

	return b.store.UpdateCost(ctx, b.db, costID, description, nullCents(estimateCents), nullCents(actualCents), paid)
}

// DeleteCost deletes a cost line. Requires editor access.
func (b *Backend) DeleteCost(ctx context.Context, user proto.User, costID int64) error {
	cost, err := b.cost(ctx, costID)
	if err != nil {
		return err
	}
	if err := b.requireStageEditor(ctx, user, cost.StageID); err != nil {
		return err
	}

	return b.store.DeleteCostByID(ctx, b.db, costID)
}

// CreateNote adds a note to a stage. Requires editor access.
func (b *Backend) CreateNote(ctx context.Context, user proto.User, stageID int64, body string) (models.Note, error) {
	var note models.Note
	if err := b.requireStageEditor(ctx, user, stageID); err != nil {
		return note, err
	}

	return b.store.CreateNote(ctx, b.db, stageID, user.ID(), body)
}

// Notes lists a stage's notes.
func (b *Backend) Notes(ctx context.Context, user proto.User, stageID int64) ([]models.Note, error) {
	if err := b.requireStageViewer(ctx, user, stageID); err != nil {
		return nil, err
	}

	return b.store.ListNotesByStage(ctx, b.db, stageID)
}

// DeleteNote deletes a note. The author can always delete their own note,
// deleting someone else's requires admin access.
func (b *Backend) DeleteNote(ctx context.Context, user proto.User, noteID int64) error {
	if user == nil {
		return proto.ErrUnauthorized
	}

	note, err := b.store.GetNoteByID(ctx, b.db, noteID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return db.ErrRecordNotFound
		}
		return err
	}

	projectID, err := b.store.GetProjectIDForStage(ctx, b.db, note.StageID)
	if err != nil {
		return db.WrapError(err)
	}

	if note.AuthorID != user.ID() && !b.CanManageStages(ctx, user, projectID) {
		return proto.ErrUnauthorized
	}

	return b.store.DeleteNoteByID(ctx, b.db, noteID)
}

func (b *Backend) cost(ctx context.Context, costID int64) (models.Cost, error) {
	cost, err := b.store.GetCostByID(ctx, b.db, costID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return cost, db.ErrRecordNotFound
		}
		return cost, err
	}

	return cost, nil
}

func (b *Backend) requireStageEditor(ctx context.Context, user proto.User, stageID int64) error {
	projectID, err := b.store.GetProjectIDForStage(ctx, b.db, stageID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.ErrStageNotFound
		}
		return err
	}
	if !b.CanEdit(ctx, user, projectID) {
		return proto.ErrUnauthorized
	}

	return nil
}

func (b *Backend) requireStageViewer(ctx context.Context, user proto.User, stageID int64) error {
	projectID, err := b.store.GetProjectIDForStage(ctx, b.db, stageID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.ErrStageNotFound
		}
		return err
	}
	if !b.CanView(ctx, user, projectID) {
		return proto.ErrUnauthorized
	}

	return nil
}

func nullCents(cents int64) sql.NullInt64 {
	if cents < 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: cents, Valid: true}
}
