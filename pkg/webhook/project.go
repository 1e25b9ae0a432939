package webhook

import (
	"context"

	"github.com/craftplan/craftplan/pkg/config"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
)

// ProjectEvent is a project payload.
type ProjectEvent struct {
	Common

	// Action is the project event action.
	Action ProjectEventAction `json:"action" url:"action"`
}

// ProjectEventAction is a project event action.
type ProjectEventAction string

const (
	// ProjectEventActionCreate is a project created event.
	ProjectEventActionCreate ProjectEventAction = "create"
	// ProjectEventActionUpdate is a project updated event.
	ProjectEventActionUpdate ProjectEventAction = "update"
	// ProjectEventActionDelete is a project deleted event.
	ProjectEventActionDelete ProjectEventAction = "delete"
)

// NewProjectEvent builds a project event payload.
func NewProjectEvent(ctx context.Context, user proto.User, project models.Project, action ProjectEventAction) ProjectEvent {
	payload := ProjectEvent{
		Action: action,
		Common: newCommon(ctx, EventProject, user, project),
	}

	return payload
}

// newCommon builds the common payload shared by all events.
func newCommon(ctx context.Context, event Event, user proto.User, project models.Project) Common {
	cfg := config.FromContext(ctx)
	c := Common{
		EventType: event,
		Project: Project{
			ID:        project.ID,
			Name:      project.Name,
			Status:    project.Status,
			OrgID:     project.OrgID,
			HTTPURL:   projectURL(cfg.HTTP.PublicURL, project.ID),
			CreatedAt: project.CreatedAt,
			UpdatedAt: project.UpdatedAt,
		},
	}
	if project.Address.Valid {
		c.Project.Address = project.Address.String
	}
	if user != nil {
		c.Sender.ID = user.ID()
		c.Sender.Email = user.Email()
	}

	return c
}
