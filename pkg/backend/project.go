package backend

import (
	"context"
	"errors"
	"slices"

	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/webhook"
)

// PhaseKinds are the fixed phases every project is created with, in order.
var PhaseKinds = []string{"design", "build", "certification"}

// ProjectStatuses are the valid project statuses.
var ProjectStatuses = []string{"planning", "active", "on-hold", "done"}

// ErrInvalidStatus is returned when an unknown project status is given.
var ErrInvalidStatus = errors.New("invalid project status")

// CreateProject creates a project under an organization. Requires an admin
// role in the organization. Every project starts with the fixed phases.
// When templateID is non-zero the template's items are instantiated as
// stages, each item lands in the phase matching its kind.
func (b *Backend) CreateProject(ctx context.Context, user proto.User, orgID int64, name, address string, templateID int64) (models.Project, error) {
	var project models.Project
	role, err := b.memberRole(ctx, user, orgID)
	if err != nil {
		return project, err
	}
	if !role.AccessLevel().AtLeast(access.Admin) {
		return project, proto.ErrUnauthorized
	}

	var items []models.StageTemplateItem
	if templateID != 0 {
		tpl, err := b.store.GetTemplateByID(ctx, b.db, templateID)
		if err != nil {
			return project, db.WrapError(err)
		}
		if tpl.OrgID != orgID {
			return project, proto.ErrUnauthorized
		}

		items, err = b.store.ListTemplateItems(ctx, b.db, templateID)
		if err != nil {
			return project, err
		}
	}

	err = b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		project, err = b.store.CreateProject(ctx, tx, orgID, name, address)
		if err != nil {
			return err
		}

		phases := make(map[string]models.Phase, len(PhaseKinds))
		for i, kind := range PhaseKinds {
			phase, err := b.store.CreatePhase(ctx, tx, project.ID, kind, i)
			if err != nil {
				return err
			}
			phases[kind] = phase
		}

		positions := make(map[int64]int, len(PhaseKinds))
		for _, item := range items {
			phase, ok := phases[item.Kind]
			if !ok {
				phase = phases["build"]
			}

			if _, err := b.store.CreateStage(ctx, tx, phase.ID, item.Name, item.Kind, positions[phase.ID]); err != nil {
				return err
			}
			positions[phase.ID]++
		}

		return nil
	})
	if err != nil {
		return models.Project{}, err
	}

	b.cache.Purge()

	wh := webhook.NewProjectEvent(ctx, user, project, webhook.ProjectEventActionCreate)
	if err := webhook.SendEvent(ctx, wh); err != nil {
		b.logger.Error("failed to send project webhook", "project", project.ID, "err", err)
	}

	return project, nil
}

// Project returns a project the user can view.
func (b *Backend) Project(ctx context.Context, user proto.User, projectID int64) (models.Project, error) {
	var project models.Project
	if !b.CanView(ctx, user, projectID) {
		return project, proto.ErrUnauthorized
	}

	project, err := b.store.GetProjectByID(ctx, b.db, projectID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return project, proto.ErrProjectNotFound
		}
		return project, err
	}

	return project, nil
}

// ProjectsForOrg lists the projects owned by an organization the user
// belongs to.
func (b *Backend) ProjectsForOrg(ctx context.Context, user proto.User, orgID int64) ([]models.Project, error) {
	if _, err := b.memberRole(ctx, user, orgID); err != nil {
		return nil, err
	}

	return b.store.ListProjectsByOrg(ctx, b.db, orgID)
}

// UpdateProject updates a project's name, address, and status. Requires
// admin access.
func (b *Backend) UpdateProject(ctx context.Context, user proto.User, projectID int64, name, address, status string) (models.Project, error) {
	var project models.Project
	if !b.CanManageProject(ctx, user, projectID) {
		return project, proto.ErrUnauthorized
	}
	if !slices.Contains(ProjectStatuses, status) {
		return project, ErrInvalidStatus
	}

	if err := b.store.UpdateProject(ctx, b.db, projectID, name, address, status); err != nil {
		return project, err
	}

	project, err := b.store.GetProjectByID(ctx, b.db, projectID)
	if err != nil {
		return project, err
	}

	wh := webhook.NewProjectEvent(ctx, user, project, webhook.ProjectEventActionUpdate)
	if err := webhook.SendEvent(ctx, wh); err != nil {
		b.logger.Error("failed to send project webhook", "project", project.ID, "err", err)
	}

	return project, nil
}

// DeleteProject deletes a project. Only admins of the owning organization
// can delete a project, shared access is never enough.
func (b *Backend) DeleteProject(ctx context.Context, user proto.User, projectID int64) error {
	project, err := b.store.GetProjectByID(ctx, b.db, projectID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.ErrProjectNotFound
		}
		return err
	}

	role, err := b.memberRole(ctx, user, project.OrgID)
	if err != nil {
		return err
	}
	if !role.AccessLevel().AtLeast(access.Admin) {
		return proto.ErrUnauthorized
	}

	// Build the event before deleting so it can be sent afterwards.
	wh := webhook.NewProjectEvent(ctx, user, project, webhook.ProjectEventActionDelete)

	if err := b.store.DeleteProjectByID(ctx, b.db, projectID); err != nil {
		return err
	}

	b.cache.Purge()
	return webhook.SendEvent(ctx, wh)
}

// Phases lists a project's phases in order.
func (b *Backend) Phases(ctx context.Context, user proto.User, projectID int64) ([]models.Phase, error) {
	if !b.CanView(ctx, user, projectID) {
		return nil, proto.ErrUnauthorized
	}

	return b.store.ListPhasesByProject(ctx, b.db, projectID)
}
