package store

import (
	"context"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
)

// TemplateStore is an interface for managing stage templates.
type TemplateStore interface {
	CreateTemplate(ctx context.Context, h db.Handler, orgID int64, name string) (models.StageTemplate, error)
	GetTemplateByID(ctx context.Context, h db.Handler, id int64) (models.StageTemplate, error)
	ListTemplatesByOrg(ctx context.Context, h db.Handler, orgID int64) ([]models.StageTemplate, error)
	DeleteTemplateByID(ctx context.Context, h db.Handler, id int64) error

	AddTemplateItem(ctx context.Context, h db.Handler, templateID int64, name, kind string, position int) (models.StageTemplateItem, error)
	ListTemplateItems(ctx context.Context, h db.Handler, templateID int64) ([]models.StageTemplateItem, error)
	DeleteTemplateItem(ctx context.Context, h db.Handler, id int64) error
}
