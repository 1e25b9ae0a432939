package store

import (
	"context"
	"database/sql"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
)

// CostStore is an interface for managing stage costs and notes.
type CostStore interface {
	CreateCost(ctx context.Context, h db.Handler, stageID int64, description string, estimateCents, actualCents sql.NullInt64) (models.Cost, error)
	GetCostByID(ctx context.Context, h db.Handler, id int64) (models.Cost, error)
	ListCostsByStage(ctx context.Context, h db.Handler, stageID int64) ([]models.Cost, error)
	UpdateCost(ctx context.Context, h db.Handler, id int64, description string, estimateCents, actualCents sql.NullInt64, paid bool) error
	DeleteCostByID(ctx context.Context, h db.Handler, id int64) error

	CreateNote(ctx context.Context, h db.Handler, stageID, authorID int64, body string) (models.Note, error)
	GetNoteByID(ctx context.Context, h db.Handler, id int64) (models.Note, error)
	ListNotesByStage(ctx context.Context, h db.Handler, stageID int64) ([]models.Note, error)
	DeleteNoteByID(ctx context.Context, h db.Handler, id int64) error
}
