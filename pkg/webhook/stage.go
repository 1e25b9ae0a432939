package webhook

import (
	"context"

	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
)

// StageEvent is a stage event.
type StageEvent struct {
	Common

	// Action is the stage event action.
	Action StageEventAction `json:"action" url:"action"`
	// Stage is the stage the event refers to.
	Stage Stage `json:"stage" url:"stage"`
}

// Stage is the stage payload for stage events.
type Stage struct {
	// ID is the stage ID.
	ID int64 `json:"id" url:"id"`
	// PhaseID is the ID of the parent phase.
	PhaseID int64 `json:"phase_id" url:"phase_id"`
	// Name is the stage name.
	Name string `json:"name" url:"name"`
	// Kind is the stage kind.
	Kind string `json:"kind" url:"kind"`
	// Position is the stage position within its phase.
	Position int `json:"position" url:"position"`
	// Enabled reports whether the stage is enabled.
	Enabled bool `json:"enabled" url:"enabled"`
}

// StageEventAction is a stage event action.
type StageEventAction string

const (
	// StageEventActionComplete is a stage completed event.
	StageEventActionComplete StageEventAction = "complete"
	// StageEventActionReopen is a stage reopened event.
	StageEventActionReopen StageEventAction = "reopen"
)

// NewStageEvent builds a stage event payload.
func NewStageEvent(ctx context.Context, user proto.User, project models.Project, stage models.Stage, action StageEventAction) StageEvent {
	return StageEvent{
		Action: action,
		Stage: Stage{
			ID:       stage.ID,
			PhaseID:  stage.PhaseID,
			Name:     stage.Name,
			Kind:     stage.Kind,
			Position: stage.Position,
			Enabled:  stage.Enabled,
		},
		Common: newCommon(ctx, EventStage, user, project),
	}
}
