package backend

import (
	"context"
	"errors"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/utils"
)

// ErrInvalidRole is returned when an unknown organization role is given.
var ErrInvalidRole = errors.New("invalid organization role")

// CreateOrg creates a new organization owned by the given user.
func (b *Backend) CreateOrg(ctx context.Context, owner proto.User, name string) (models.Organization, error) {
	var org models.Organization
	if owner == nil {
		return org, proto.ErrUnauthorized
	}
	if err := utils.ValidateName(name); err != nil {
		return org, err
	}

	err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		org, err = b.store.CreateOrg(ctx, tx, name)
		if err != nil {
			return err
		}

		return b.store.AddOrgMember(ctx, tx, org.ID, owner.ID(), proto.RoleOwner)
	})
	if err != nil {
		return models.Organization{}, err
	}

	b.cache.Purge()
	return org, nil
}

// Orgs lists the organizations the user belongs to.
func (b *Backend) Orgs(ctx context.Context, user proto.User) ([]models.Organization, error) {
	if user == nil {
		return nil, proto.ErrUnauthorized
	}
	return b.store.ListOrgsForUser(ctx, b.db, user.ID())
}

// Org returns an organization the user is a member of.
func (b *Backend) Org(ctx context.Context, user proto.User, orgID int64) (models.Organization, error) {
	var org models.Organization
	if _, err := b.memberRole(ctx, user, orgID); err != nil {
		return org, err
	}

	org, err := b.store.GetOrgByID(ctx, b.db, orgID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return org, proto.ErrOrgNotFound
		}
		return org, err
	}

	return org, nil
}

// RenameOrg renames an organization. Requires an admin role.
func (b *Backend) RenameOrg(ctx context.Context, user proto.User, orgID int64, name string) error {
	role, err := b.memberRole(ctx, user, orgID)
	if err != nil {
		return err
	}
	if role != proto.RoleOwner && role != proto.RoleAdmin {
		return proto.ErrUnauthorized
	}
	if err := utils.ValidateName(name); err != nil {
		return err
	}

	return b.store.RenameOrg(ctx, b.db, orgID, name)
}

// DeleteOrg deletes an organization and everything it owns. Only owners can
// delete an organization.
func (b *Backend) DeleteOrg(ctx context.Context, user proto.User, orgID int64) error {
	role, err := b.memberRole(ctx, user, orgID)
	if err != nil {
		return err
	}
	if role != proto.RoleOwner {
		return proto.ErrUnauthorized
	}

	if err := b.store.DeleteOrgByID(ctx, b.db, orgID); err != nil {
		return err
	}

	b.cache.Purge()
	return nil
}

// OrgMembers lists the members of an organization the user belongs to.
func (b *Backend) OrgMembers(ctx context.Context, user proto.User, orgID int64) ([]models.OrganizationMember, error) {
	if _, err := b.memberRole(ctx, user, orgID); err != nil {
		return nil, err
	}

	return b.store.ListOrgMembers(ctx, b.db, orgID)
}

// AddOrgMember adds a user to an organization by email. Requires an admin
// role, and only owners can add new owners.
func (b *Backend) AddOrgMember(ctx context.Context, actor proto.User, orgID int64, email string, role proto.OrgRole) error {
	if !role.Valid() {
		return ErrInvalidRole
	}

	actorRole, err := b.memberRole(ctx, actor, orgID)
	if err != nil {
		return err
	}
	if actorRole != proto.RoleOwner && actorRole != proto.RoleAdmin {
		return proto.ErrUnauthorized
	}
	if role == proto.RoleOwner && actorRole != proto.RoleOwner {
		return proto.ErrUnauthorized
	}

	target, err := b.UserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := b.store.AddOrgMember(ctx, b.db, orgID, target.ID(), role); err != nil {
		return err
	}

	b.cache.Purge()
	return nil
}

// RemoveOrgMember removes a member from an organization. Members can remove
// themselves, removing anyone else requires an admin role and removing an
// owner requires an owner role. The last owner can never be removed.
func (b *Backend) RemoveOrgMember(ctx context.Context, actor proto.User, orgID, userID int64) error {
	actorRole, err := b.memberRole(ctx, actor, orgID)
	if err != nil {
		return err
	}

	self := actor.ID() == userID
	if !self && actorRole != proto.RoleOwner && actorRole != proto.RoleAdmin {
		return proto.ErrUnauthorized
	}

	err = b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		target, err := b.store.GetOrgMember(ctx, tx, orgID, userID)
		if err != nil {
			return err
		}

		if target.Role == proto.RoleOwner {
			if !self && actorRole != proto.RoleOwner {
				return proto.ErrUnauthorized
			}

			owners, err := b.store.CountOrgOwners(ctx, tx, orgID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return proto.ErrLastOwner
			}
		}

		return b.store.RemoveOrgMember(ctx, tx, orgID, userID)
	})
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.ErrUserNotFound
		}
		return err
	}

	b.cache.Purge()
	return nil
}

// UpdateOrgMemberRole changes a member's role. Requires an owner role when
// an owner is involved on either side of the change, otherwise an admin
// role. Demoting the last owner is refused.
func (b *Backend) UpdateOrgMemberRole(ctx context.Context, actor proto.User, orgID, userID int64, role proto.OrgRole) error {
	if !role.Valid() {
		return ErrInvalidRole
	}

	actorRole, err := b.memberRole(ctx, actor, orgID)
	if err != nil {
		return err
	}
	if actorRole != proto.RoleOwner && actorRole != proto.RoleAdmin {
		return proto.ErrUnauthorized
	}
	if role == proto.RoleOwner && actorRole != proto.RoleOwner {
		return proto.ErrUnauthorized
	}

	err = b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		target, err := b.store.GetOrgMember(ctx, tx, orgID, userID)
		if err != nil {
			return err
		}
		if target.Role == role {
			return nil
		}

		if target.Role == proto.RoleOwner {
			if actorRole != proto.RoleOwner {
				return proto.ErrUnauthorized
			}

			owners, err := b.store.CountOrgOwners(ctx, tx, orgID)
			if err != nil {
				return err
			}
			if owners <= 1 {
				return proto.ErrLastOwner
			}
		}

		return b.store.UpdateOrgMemberRole(ctx, tx, orgID, userID, role)
	})
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return proto.ErrUserNotFound
		}
		return err
	}

	b.cache.Purge()
	return nil
}

// memberRole returns the role of the user in the organization, or
// proto.ErrUnauthorized when the user is not a member.
func (b *Backend) memberRole(ctx context.Context, user proto.User, orgID int64) (proto.OrgRole, error) {
	if user == nil {
		return "", proto.ErrUnauthorized
	}

	member, err := b.store.GetOrgMember(ctx, b.db, orgID, user.ID())
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return "", proto.ErrUnauthorized
		}
		return "", err
	}

	return member.Role, nil
}
