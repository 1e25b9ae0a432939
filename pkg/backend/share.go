package backend

import (
	"context"
	"errors"

	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/webhook"
)

// ShareProject shares a project with another organization at the given
// level. The share stays inert until an admin of the target organization
// accepts it. Requires admin access on the project.
func (b *Backend) ShareProject(ctx context.Context, user proto.User, projectID, orgID int64, level access.Level) (models.ProjectShare, error) {
	var share models.ProjectShare
	if !b.CanManageProject(ctx, user, projectID) {
		return share, proto.ErrUnauthorized
	}
	if level < access.Viewer || level > access.Admin {
		return share, access.ErrInvalidLevel
	}

	project, err := b.store.GetProjectByID(ctx, b.db, projectID)
	if err != nil {
		return share, db.WrapError(err)
	}
	if project.OrgID == orgID {
		// Sharing a project with its own organization is a no-op grant.
		return share, proto.ErrUnauthorized
	}

	if _, err := b.store.GetOrgByID(ctx, b.db, orgID); err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return share, proto.ErrOrgNotFound
		}
		return share, err
	}

	share, err = b.store.CreateShare(ctx, b.db, projectID, orgID, level)
	if err != nil {
		return share, db.WrapError(err)
	}

	wh := webhook.NewShareEvent(ctx, user, project, share, webhook.ShareEventActionCreate)
	if err := webhook.SendEvent(ctx, wh); err != nil {
		b.logger.Error("failed to send share webhook", "share", share.ID, "err", err)
	}

	return share, nil
}

// AcceptShare accepts a pending share. Only owners and admins of the
// organization the project was shared with can accept. Accepting an
// already accepted share is a no-op.
func (b *Backend) AcceptShare(ctx context.Context, user proto.User, shareID int64) error {
	share, err := b.shareByID(ctx, shareID)
	if err != nil {
		return err
	}

	role, err := b.memberRole(ctx, user, share.OrgID)
	if err != nil {
		return err
	}
	if role != proto.RoleOwner && role != proto.RoleAdmin {
		return proto.ErrUnauthorized
	}

	if share.AcceptedAt.Valid {
		return nil
	}

	if err := b.store.AcceptShare(ctx, b.db, shareID); err != nil {
		return err
	}

	b.cache.Purge()

	project, err := b.store.GetProjectByID(ctx, b.db, share.ProjectID)
	if err != nil {
		return db.WrapError(err)
	}

	wh := webhook.NewShareEvent(ctx, user, project, share, webhook.ShareEventActionAccept)
	if err := webhook.SendEvent(ctx, wh); err != nil {
		b.logger.Error("failed to send share webhook", "share", share.ID, "err", err)
	}

	return nil
}

// RevokeShare removes a share. Admins of the owning organization and of
// the organization the project was shared with can both revoke.
func (b *Backend) RevokeShare(ctx context.Context, user proto.User, shareID int64) error {
	share, err := b.shareByID(ctx, shareID)
	if err != nil {
		return err
	}

	allowed := b.CanManageProject(ctx, user, share.ProjectID)
	if !allowed {
		role, err := b.memberRole(ctx, user, share.OrgID)
		if err != nil && !errors.Is(err, proto.ErrUnauthorized) {
			return err
		}
		allowed = err == nil && (role == proto.RoleOwner || role == proto.RoleAdmin)
	}
	if !allowed {
		return proto.ErrUnauthorized
	}

	project, err := b.store.GetProjectByID(ctx, b.db, share.ProjectID)
	if err != nil {
		return db.WrapError(err)
	}

	if err := b.store.DeleteShareByID(ctx, b.db, shareID); err != nil {
		return err
	}

	b.cache.Purge()

	wh := webhook.NewShareEvent(ctx, user, project, share, webhook.ShareEventActionRevoke)
	if err := webhook.SendEvent(ctx, wh); err != nil {
		b.logger.Error("failed to send share webhook", "share", share.ID, "err", err)
	}

	return nil
}

// SharesForProject lists a project's shares. Requires admin access.
func (b *Backend) SharesForProject(ctx context.Context, user proto.User, projectID int64) ([]models.ProjectShare, error) {
	if !b.CanManageProject(ctx, user, projectID) {
		return nil, proto.ErrUnauthorized
	}

	return b.store.ListSharesByProject(ctx, b.db, projectID)
}

// SharesForOrg lists the shares extended to an organization the user
// belongs to, pending invites included.
func (b *Backend) SharesForOrg(ctx context.Context, user proto.User, orgID int64) ([]models.ProjectShare, error) {
	if _, err := b.memberRole(ctx, user, orgID); err != nil {
		return nil, err
	}

	return b.store.ListSharesForOrg(ctx, b.db, orgID)
}

func (b *Backend) shareByID(ctx context.Context, shareID int64) (models.ProjectShare, error) {
	share, err := b.store.GetShareByID(ctx, b.db, shareID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return share, proto.ErrShareNotFound
		}
		return share, err
	}

	return share, nil
}
