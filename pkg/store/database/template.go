package database

import (
	"context"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/store"
	"github.com/craftplan/craftplan/pkg/utils"
)

type templateStore struct{}

var _ store.TemplateStore = (*templateStore)(nil)

// CreateTemplate implements store.TemplateStore.
func (*templateStore) CreateTemplate(ctx context.Context, tx db.Handler, orgID int64, name string) (models.StageTemplate, error) {
	if err := utils.ValidateName(name); err != nil {
		return models.StageTemplate{}, err //nolint:wrapcheck
	}

	query := tx.Rebind(`INSERT INTO stage_templates (org_id, name, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, orgID, name); err != nil {
		return models.StageTemplate{}, err //nolint:wrapcheck
	}

	var m models.StageTemplate
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM stage_templates WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// GetTemplateByID implements store.TemplateStore.
func (*templateStore) GetTemplateByID(ctx context.Context, tx db.Handler, id int64) (models.StageTemplate, error) {
	var m models.StageTemplate
	query := tx.Rebind(`SELECT * FROM stage_templates WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// ListTemplatesByOrg implements store.TemplateStore.
func (*templateStore) ListTemplatesByOrg(ctx context.Context, tx db.Handler, orgID int64) ([]models.StageTemplate, error) {
	var ms []models.StageTemplate
	query := tx.Rebind(`SELECT * FROM stage_templates WHERE org_id = ? ORDER BY name;`)
	err := tx.SelectContext(ctx, &ms, query, orgID)
	return ms, err //nolint:wrapcheck
}

// DeleteTemplateByID implements store.TemplateStore.
func (*templateStore) DeleteTemplateByID(ctx context.Context, tx db.Handler, id int64) error {
	query := tx.Rebind(`DELETE FROM stage_templates WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// AddTemplateItem implements store.TemplateStore.
func (*templateStore) AddTemplateItem(ctx context.Context, tx db.Handler, templateID int64, name, kind string, position int) (models.StageTemplateItem, error) {
	if err := utils.ValidateName(name); err != nil {
		return models.StageTemplateItem{}, err //nolint:wrapcheck
	}

	query := tx.Rebind(`INSERT INTO stage_template_items (template_id, name, kind, position)
			VALUES (?, ?, ?, ?) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, templateID, name, kind, position); err != nil {
		return models.StageTemplateItem{}, err //nolint:wrapcheck
	}

	var m models.StageTemplateItem
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM stage_template_items WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// ListTemplateItems implements store.TemplateStore.
func (*templateStore) ListTemplateItems(ctx context.Context, tx db.Handler, templateID int64) ([]models.StageTemplateItem, error) {
	var ms []models.StageTemplateItem
	query := tx.Rebind(`SELECT * FROM stage_template_items WHERE template_id = ? ORDER BY position;`)
	err := tx.SelectContext(ctx, &ms, query, templateID)
	return ms, err //nolint:wrapcheck
}

// DeleteTemplateItem implements store.TemplateStore.
func (*templateStore) DeleteTemplateItem(ctx context.Context, tx db.Handler, id int64) error {
	query := tx.Rebind(`DELETE FROM stage_template_items WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}
