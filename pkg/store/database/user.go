package database

import (
	"context"
	"strings"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/store"
	"github.com/craftplan/craftplan/pkg/utils"
)

type userStore struct{}

var _ store.UserStore = (*userStore)(nil)

// CreateUser implements store.UserStore.
func (*userStore) CreateUser(ctx context.Context, tx db.Handler, identity proto.Identity) (models.User, error) {
	email := strings.ToLower(identity.Email)
	if err := utils.ValidateEmail(email); err != nil {
		return models.User{}, err //nolint:wrapcheck
	}

	query := tx.Rebind(`INSERT INTO users (external_id, email, first_name, last_name, avatar_url, updated_at)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var userID int64
	if err := tx.GetContext(ctx, &userID, query, identity.ExternalID, email,
		nullString(identity.FirstName), nullString(identity.LastName), nullString(identity.AvatarURL)); err != nil {
		return models.User{}, err //nolint:wrapcheck
	}

	var m models.User
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM users WHERE id = ?;`), userID)
	return m, err //nolint:wrapcheck
}

// UpdateUserByExternalID implements store.UserStore.
func (*userStore) UpdateUserByExternalID(ctx context.Context, tx db.Handler, identity proto.Identity) error {
	email := strings.ToLower(identity.Email)
	if err := utils.ValidateEmail(email); err != nil {
		return err //nolint:wrapcheck
	}

	query := tx.Rebind(`UPDATE users
			SET email = ?, first_name = ?, last_name = ?, avatar_url = ?, updated_at = CURRENT_TIMESTAMP
			WHERE external_id = ?;`)
	_, err := tx.ExecContext(ctx, query, email,
		nullString(identity.FirstName), nullString(identity.LastName), nullString(identity.AvatarURL),
		identity.ExternalID)
	return err //nolint:wrapcheck
}

// DeleteUserByExternalID implements store.UserStore.
func (*userStore) DeleteUserByExternalID(ctx context.Context, tx db.Handler, externalID string) error {
	query := tx.Rebind(`DELETE FROM users WHERE external_id = ?;`)
	_, err := tx.ExecContext(ctx, query, externalID)
	return err //nolint:wrapcheck
}

// GetUserByID implements store.UserStore.
func (*userStore) GetUserByID(ctx context.Context, tx db.Handler, id int64) (models.User, error) {
	var m models.User
	query := tx.Rebind(`SELECT * FROM users WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// FindUserByExternalID implements store.UserStore.
func (*userStore) FindUserByExternalID(ctx context.Context, tx db.Handler, externalID string) (models.User, error) {
	var m models.User
	query := tx.Rebind(`SELECT * FROM users WHERE external_id = ?;`)
	err := tx.GetContext(ctx, &m, query, externalID)
	return m, err //nolint:wrapcheck
}

// FindUserByEmail implements store.UserStore.
func (*userStore) FindUserByEmail(ctx context.Context, tx db.Handler, email string) (models.User, error) {
	var m models.User
	query := tx.Rebind(`SELECT * FROM users WHERE email = ?;`)
	err := tx.GetContext(ctx, &m, query, strings.ToLower(email))
	return m, err //nolint:wrapcheck
}

// FindUserByAccessToken implements store.UserStore.
func (*userStore) FindUserByAccessToken(ctx context.Context, tx db.Handler, token string) (models.User, error) {
	var m models.User
	query := tx.Rebind(`SELECT users.*
			FROM users
			INNER JOIN access_tokens ON users.id = access_tokens.user_id
			WHERE access_tokens.token = ?;`)
	err := tx.GetContext(ctx, &m, query, token)
	return m, err //nolint:wrapcheck
}

// GetAllUsers implements store.UserStore.
func (*userStore) GetAllUsers(ctx context.Context, tx db.Handler) ([]models.User, error) {
	var ms []models.User
	query := tx.Rebind(`SELECT * FROM users;`)
	err := tx.SelectContext(ctx, &ms, query)
	return ms, err //nolint:wrapcheck
}
