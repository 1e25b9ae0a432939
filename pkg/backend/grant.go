package backend

import (
	"context"

	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
)

// GrantContact attaches a contact to a project with an access level and a
// role label such as "architect" or "electrician". The contact must come
// from the owning organization's contact book. Requires admin access.
func (b *Backend) GrantContact(ctx context.Context, user proto.User, projectID, contactID int64, level access.Level, role string, isPrimary bool) (models.ProjectContact, error) {
	var grant models.ProjectContact
	if !b.CanManageProject(ctx, user, projectID) {
		return grant, proto.ErrUnauthorized
	}
	if level < access.Viewer || level > access.Admin {
		return grant, access.ErrInvalidLevel
	}

	project, err := b.store.GetProjectByID(ctx, b.db, projectID)
	if err != nil {
		return grant, db.WrapError(err)
	}

	contact, err := b.contact(ctx, contactID)
	if err != nil {
		return grant, err
	}
	if contact.OrgID != project.OrgID {
		return grant, proto.ErrContactNotFound
	}

	grant, err = b.store.GrantContact(ctx, b.db, projectID, contactID, level, role, isPrimary)
	if err != nil {
		return grant, db.WrapError(err)
	}

	b.cache.Purge()
	return grant, nil
}

// UpdateContactGrant changes a contact's level, role label, or primary
// flag on a project. Requires admin access.
func (b *Backend) UpdateContactGrant(ctx context.Context, user proto.User, projectID, contactID int64, level access.Level, role string, isPrimary bool) error {
	if !b.CanManageProject(ctx, user, projectID) {
		return proto.ErrUnauthorized
	}
	if level < access.Viewer || level > access.Admin {
		return access.ErrInvalidLevel
	}

	if err := b.store.UpdateContactGrant(ctx, b.db, projectID, contactID, level, role, isPrimary); err != nil {
		return db.WrapError(err)
	}

	b.cache.Purge()
	return nil
}

// RevokeContact removes a contact's grant from a project. Requires admin
// access.
func (b *Backend) RevokeContact(ctx context.Context, user proto.User, projectID, contactID int64) error {
	if !b.CanManageProject(ctx, user, projectID) {
		return proto.ErrUnauthorized
	}

	if err := b.store.RevokeContact(ctx, b.db, projectID, contactID); err != nil {
		return db.WrapError(err)
	}

	b.cache.Purge()
	return nil
}

// ProjectContacts lists the contacts attached to a project.
func (b *Backend) ProjectContacts(ctx context.Context, user proto.User, projectID int64) ([]models.ProjectContact, error) {
	if !b.CanView(ctx, user, projectID) {
		return nil, proto.ErrUnauthorized
	}

	return b.store.ListProjectContacts(ctx, b.db, projectID)
}
