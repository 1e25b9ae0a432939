package backend

import (
	"context"
	"errors"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/webhook"
)

// Stages lists the stages of a phase in position order.
func (b *Backend) Stages(ctx context.Context, user proto.User, phaseID int64) ([]models.Stage, error) {
	phase, err := b.phase(ctx, phaseID)
	if err != nil {
		return nil, err
	}
	if !b.CanView(ctx, user, phase.ProjectID) {
		return nil, proto.ErrUnauthorized
	}

	return b.store.ListStagesByPhase(ctx, b.db, phaseID)
}

// CreateStage adds a stage to a phase. Requires admin access.
func (b *Backend) CreateStage(ctx context.Context, user proto.User, phaseID int64, name, kind string, position int) (models.Stage, error) {
	var stage models.Stage
	phase, err := b.phase(ctx, phaseID)
	if err != nil {
		return stage, err
	}
	if !b.CanManageStages(ctx, user, phase.ProjectID) {
		return stage, proto.ErrUnauthorized
	}

	return b.store.CreateStage(ctx, b.db, phaseID, name, kind, position)
}

// RenameStage renames a stage. Requires admin access.
func (b *Backend) RenameStage(ctx context.Context, user proto.User, stageID int64, name string) error {
	if err := b.requireStageAdmin(ctx, user, stageID); err != nil {
		return err
	}

	return b.store.RenameStage(ctx, b.db, stageID, name)
}

// SetStageEnabled enables or disables a stage. Requires admin access.
func (b *Backend) SetStageEnabled(ctx context.Context, user proto.User, stageID int64, enabled bool) error {
	if err := b.requireStageAdmin(ctx, user, stageID); err != nil {
		return err
	}

	return b.store.SetStageEnabled(ctx, b.db, stageID, enabled)
}

// ReorderStages sets the order of a phase's stages. Requires admin access.
func (b *Backend) ReorderStages(ctx context.Context, user proto.User, phaseID int64, ids []int64) error {
	phase, err := b.phase(ctx, phaseID)
	if err != nil {
		return err
	}
	if !b.CanManageStages(ctx, user, phase.ProjectID) {
		return proto.ErrUnauthorized
	}

	return b.store.ReorderStages(ctx, b.db, phaseID, ids)
}

// DeleteStage deletes a stage. Requires admin access.
func (b *Backend) DeleteStage(ctx context.Context, user proto.User, stageID int64) error {
	if err := b.requireStageAdmin(ctx, user, stageID); err != nil {
		return err
	}

	return b.store.DeleteStageByID(ctx, b.db, stageID)
}

// SetStageCompleted marks a stage completed or reopens it. Requires editor
// access, completion is day-to-day project content.
func (b *Backend) SetStageCompleted(ctx context.Context, user proto.User, stageID int64, completed bool) error {
	stage, err := b.stage(ctx, stageID)
	if err != nil {
		return err
	}

	phase, err := b.phase(ctx, stage.PhaseID)
	if err != nil {
		return err
	}
	if !b.CanEdit(ctx, user, phase.ProjectID) {
		return proto.ErrUnauthorized
	}

	if err := b.store.SetStageCompleted(ctx, b.db, stageID, completed); err != nil {
		return err
	}

	project, err := b.store.GetProjectByID(ctx, b.db, phase.ProjectID)
	if err != nil {
		return err
	}

	action := webhook.StageEventActionComplete
	if !completed {
		action = webhook.StageEventActionReopen
	}

	wh := webhook.NewStageEvent(ctx, user, project, stage, action)
	if err := webhook.SendEvent(ctx, wh); err != nil {
		b.logger.Error("failed to send stage webhook", "stage", stageID, "err", err)
	}

	return nil
}

func (b *Backend) stage(ctx context.Context, stageID int64) (models.Stage, error) {
	stage, err := b.store.GetStageByID(ctx, b.db, stageID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return stage, proto.ErrStageNotFound
		}
		return stage, err
	}

	return stage, nil
}

func (b *Backend) phase(ctx context.Context, phaseID int64) (models.Phase, error) {
	phase, err := b.store.GetPhaseByID(ctx, b.db, phaseID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return phase, proto.ErrProjectNotFound
		}
		return phase, err
	}

	return phase, nil
}

func (b *Backend) requireStageAdmin(ctx context.Context, user proto.User, stageID int64) error {
	projectID, err := b.store.GetProjectIDForStage(ctx, b.db, stageID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.ErrStageNotFound
		}
		return err
	}
	if !b.CanManageStages(ctx, user, projectID) {
		return proto.ErrUnauthorized
	}

	return nil
}
