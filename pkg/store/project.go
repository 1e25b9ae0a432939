package store

import (
	"context"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
)

// ProjectStore is an interface for managing projects and their phases.
type ProjectStore interface {
	CreateProject(ctx context.Context, h db.Handler, orgID int64, name, address string) (models.Project, error)
	GetProjectByID(ctx context.Context, h db.Handler, id int64) (models.Project, error)
	ListProjectsByOrg(ctx context.Context, h db.Handler, orgID int64) ([]models.Project, error)
	UpdateProject(ctx context.Context, h db.Handler, id int64, name, address, status string) error
	DeleteProjectByID(ctx context.Context, h db.Handler, id int64) error

	CreatePhase(ctx context.Context, h db.Handler, projectID int64, kind string, position int) (models.Phase, error)
	GetPhaseByID(ctx context.Context, h db.Handler, id int64) (models.Phase, error)
	ListPhasesByProject(ctx context.Context, h db.Handler, projectID int64) ([]models.Phase, error)
}

// StageStore is an interface for managing stages within phases.
type StageStore interface {
	CreateStage(ctx context.Context, h db.Handler, phaseID int64, name, kind string, position int) (models.Stage, error)
	GetStageByID(ctx context.Context, h db.Handler, id int64) (models.Stage, error)
	ListStagesByPhase(ctx context.Context, h db.Handler, phaseID int64) ([]models.Stage, error)
	RenameStage(ctx context.Context, h db.Handler, id int64, name string) error
	SetStageEnabled(ctx context.Context, h db.Handler, id int64, enabled bool) error
	SetStageCompleted(ctx context.Context, h db.Handler, id int64, completed bool) error
	ReorderStages(ctx context.Context, h db.Handler, phaseID int64, ids []int64) error
	DeleteStageByID(ctx context.Context, h db.Handler, id int64) error

	// GetProjectIDForStage resolves the owning project of a stage. Stages
	// inherit permission from their parent project.
	GetProjectIDForStage(ctx context.Context, h db.Handler, stageID int64) (int64, error)
}
