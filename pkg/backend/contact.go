package backend

import (
	"context"
	"errors"

	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
)

// CreateContact creates a contact in an organization the user belongs to.
// If the email matches an existing user the contact is linked immediately.
func (b *Backend) CreateContact(ctx context.Context, user proto.User, orgID int64, name, email, phone, company string) (models.Contact, error) {
	var contact models.Contact
	role, err := b.memberRole(ctx, user, orgID)
	if err != nil {
		return contact, err
	}
	if !role.AccessLevel().AtLeast(access.Editor) {
		return contact, proto.ErrUnauthorized
	}

	return b.store.CreateContact(ctx, b.db, orgID, name, email, phone, company)
}

// Contact returns a contact of an organization the user belongs to.
func (b *Backend) Contact(ctx context.Context, user proto.User, contactID int64) (models.Contact, error) {
	contact, err := b.contact(ctx, contactID)
	if err != nil {
		return contact, err
	}
	if _, err := b.memberRole(ctx, user, contact.OrgID); err != nil {
		return models.Contact{}, err
	}

	return contact, nil
}

// Contacts lists an organization's contacts.
func (b *Backend) Contacts(ctx context.Context, user proto.User, orgID int64) ([]models.Contact, error) {
	if _, err := b.memberRole(ctx, user, orgID); err != nil {
		return nil, err
	}

	return b.store.ListContactsByOrg(ctx, b.db, orgID)
}

// UpdateContact updates a contact. An email change relinks the contact, the
// store resolves the matching user on write.
func (b *Backend) UpdateContact(ctx context.Context, user proto.User, contactID int64, name, email, phone, company string) error {
	contact, err := b.contact(ctx, contactID)
	if err != nil {
		return err
	}

	role, err := b.memberRole(ctx, user, contact.OrgID)
	if err != nil {
		return err
	}
	if !role.AccessLevel().AtLeast(access.Editor) {
		return proto.ErrUnauthorized
	}

	if err := b.store.UpdateContact(ctx, b.db, contactID, name, email, phone, company); err != nil {
		return err
	}

	b.cache.Purge()
	return nil
}

// DeleteContact deletes a contact and its project grants. Requires an admin
// role in the owning organization.
func (b *Backend) DeleteContact(ctx context.Context, user proto.User, contactID int64) error {
	contact, err := b.contact(ctx, contactID)
	if err != nil {
		return err
	}

	role, err := b.memberRole(ctx, user, contact.OrgID)
	if err != nil {
		return err
	}
	if role != proto.RoleOwner && role != proto.RoleAdmin {
		return proto.ErrUnauthorized
	}

	if err := b.store.DeleteContactByID(ctx, b.db, contactID); err != nil {
		return err
	}

	b.cache.Purge()
	return nil
}

func (b *Backend) contact(ctx context.Context, contactID int64) (models.Contact, error) {
	contact, err := b.store.GetContactByID(ctx, b.db, contactID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return contact, proto.ErrContactNotFound
		}
		return contact, err
	}

	return contact, nil
}

// SyncContacts relinks every org's contacts to platform users by matching
// email. Useful after importing contacts in bulk.
func (b *Backend) SyncContacts(ctx context.Context) (int64, error) {
	users, err := b.store.GetAllUsers(ctx, b.db)
	if err != nil {
		return 0, err
	}

	var linked int64
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		for _, u := range users {
			if u.Email == "" {
				continue
			}
			n, err := b.store.LinkContactsToUserByEmail(ctx, tx, u.ID, u.Email)
			if err != nil {
				return err
			}
			linked += n
		}
		return nil
	}); err != nil {
		return 0, err
	}

	b.cache.Purge()
	return linked, nil
}
