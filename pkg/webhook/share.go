package webhook

import (
	"context"

	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
)

// ShareEvent is a project share event.
type ShareEvent struct {
	Common

	// Action is the share event action.
	Action ShareEventAction `json:"action" url:"action"`
	// OrgID is the ID of the organization the project is shared with.
	OrgID int64 `json:"org_id" url:"org_id"`
	// AccessLevel is the access level granted by the share.
	AccessLevel access.Level `json:"access_level" url:"access_level"`
}

// ShareEventAction is a share event action.
type ShareEventAction string

const (
	// ShareEventActionCreate is a share created event.
	ShareEventActionCreate ShareEventAction = "create"
	// ShareEventActionAccept is a share accepted event.
	ShareEventActionAccept ShareEventAction = "accept"
	// ShareEventActionRevoke is a share revoked event.
	ShareEventActionRevoke ShareEventAction = "revoke"
)

// NewShareEvent builds a share event payload.
func NewShareEvent(ctx context.Context, user proto.User, project models.Project, share models.ProjectShare, action ShareEventAction) ShareEvent {
	return ShareEvent{
		Action:      action,
		OrgID:       share.OrgID,
		AccessLevel: share.Level,
		Common:      newCommon(ctx, EventShare, user, project),
	}
}
