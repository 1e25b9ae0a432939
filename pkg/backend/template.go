package backend

import (
	"context"
	"errors"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
)

// CreateTemplate creates a named stage template for an organization.
// Requires an admin role.
func (b *Backend) CreateTemplate(ctx context.Context, user proto.User, orgID int64, name string, items []models.StageTemplateItem) (models.StageTemplate, error) {
	var tpl models.StageTemplate
	role, err := b.memberRole(ctx, user, orgID)
	if err != nil {
		return tpl, err
	}
	if role != proto.RoleOwner && role != proto.RoleAdmin {
		return tpl, proto.ErrUnauthorized
	}

	err = b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		tpl, err = b.store.CreateTemplate(ctx, tx, orgID, name)
		if err != nil {
			return err
		}

		for i, item := range items {
			if _, err := b.store.AddTemplateItem(ctx, tx, tpl.ID, item.Name, item.Kind, i); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return models.StageTemplate{}, db.WrapError(err)
	}

	return tpl, nil
}

// Templates lists an organization's stage templates.
func (b *Backend) Templates(ctx context.Context, user proto.User, orgID int64) ([]models.StageTemplate, error) {
	if _, err := b.memberRole(ctx, user, orgID); err != nil {
		return nil, err
	}

	return b.store.ListTemplatesByOrg(ctx, b.db, orgID)
}

// TemplateItems lists a template's items in position order.
func (b *Backend) TemplateItems(ctx context.Context, user proto.User, templateID int64) ([]models.StageTemplateItem, error) {
	tpl, err := b.template(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if _, err := b.memberRole(ctx, user, tpl.OrgID); err != nil {
		return nil, err
	}

	return b.store.ListTemplateItems(ctx, b.db, templateID)
}

// DeleteTemplate deletes a stage template. Requires an admin role.
func (b *Backend) DeleteTemplate(ctx context.Context, user proto.User, templateID int64) error {
	tpl, err := b.template(ctx, templateID)
	if err != nil {
		return err
	}

	role, err := b.memberRole(ctx, user, tpl.OrgID)
	if err != nil {
		return err
	}
	if role != proto.RoleOwner && role != proto.RoleAdmin {
		return proto.ErrUnauthorized
	}

	return b.store.DeleteTemplateByID(ctx, b.db, templateID)
}

func (b *Backend) template(ctx context.Context, templateID int64) (models.StageTemplate, error) {
	tpl, err := b.store.GetTemplateByID(ctx, b.db, templateID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return tpl, db.ErrRecordNotFound
		}
		return tpl, err
	}

	return tpl, nil
}
