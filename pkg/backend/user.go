package backend

import (
	"context"
	"errors"
	"strings"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
)

// UserByExternalID returns a user by their identity provider id.
func (b *Backend) UserByExternalID(ctx context.Context, externalID string) (proto.User, error) {
	m, err := b.store.FindUserByExternalID(ctx, b.db, externalID)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return nil, proto.ErrUserNotFound
		}
		return nil, err
	}

	return &user{user: m}, nil
}

// UserByEmail returns a user by their email address.
func (b *Backend) UserByEmail(ctx context.Context, email string) (proto.User, error) {
	m, err := b.store.FindUserByEmail(ctx, b.db, strings.ToLower(email))
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return nil, proto.ErrUserNotFound
		}
		return nil, err
	}

	return &user{user: m}, nil
}

// UserByID returns a user by their internal id.
func (b *Backend) UserByID(ctx context.Context, id int64) (proto.User, error) {
	m, err := b.store.GetUserByID(ctx, b.db, id)
	if err != nil {
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			return nil, proto.ErrUserNotFound
		}
		return nil, err
	}

	return &user{user: m}, nil
}

// Users returns all users.
func (b *Backend) Users(ctx context.Context) ([]proto.User, error) {
	ms, err := b.store.GetAllUsers(ctx, b.db)
	if err != nil {
		return nil, err
	}

	users := make([]proto.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, &user{user: m})
	}

	return users, nil
}

// UpdateUser updates the user profile matching the identity's external id.
func (b *Backend) UpdateUser(ctx context.Context, identity proto.Identity) error {
	return b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := b.store.UpdateUserByExternalID(ctx, tx, identity); err != nil {
			return err
		}

		// An email change can link the user to different contacts.
		u, err := b.store.FindUserByExternalID(ctx, tx, identity.ExternalID)
		if err != nil {
			return err
		}
		if _, err := b.store.LinkContactsToUserByEmail(ctx, tx, u.ID, u.Email); err != nil {
			return err
		}

		b.cache.Purge()
		return nil
	})
}

// DeleteUserByExternalID deletes the user matching the external id. Linked
// contacts are kept and unlinked so their grants survive the user.
func (b *Backend) DeleteUserByExternalID(ctx context.Context, externalID string) error {
	err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		u, err := b.store.FindUserByExternalID(ctx, tx, externalID)
		if err != nil {
			return err
		}

		if err := b.store.UnlinkContactsFromUser(ctx, tx, u.ID); err != nil {
			return err
		}

		return b.store.DeleteUserByExternalID(ctx, tx, externalID)
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

type user struct {
	user models.User
}

var _ proto.User = (*user)(nil)

// ID implements proto.User.
func (u *user) ID() int64 {
	return u.user.ID
}

// ExternalID implements proto.User.
func (u *user) ExternalID() string {
	return u.user.ExternalID
}

// Email implements proto.User.
func (u *user) Email() string {
	return u.user.Email
}

// DisplayName implements proto.User.
func (u *user) DisplayName() string {
	var parts []string
	if u.user.FirstName.Valid && u.user.FirstName.String != "" {
		parts = append(parts, u.user.FirstName.String)
	}
	if u.user.LastName.Valid && u.user.LastName.String != "" {
		parts = append(parts, u.user.LastName.String)
	}
	if len(parts) == 0 {
		return u.user.Email
	}
	return strings.Join(parts, " ")
}
