package backend

import (
	"context"
	"errors"
	"time"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
)

// AccessToken is a personal access token.
type AccessToken struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    int64     `json:"-"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAccessToken creates an access token for a user. Only the hash is
// stored, the plain token is returned once.
func (b *Backend) CreateAccessToken(ctx context.Context, user proto.User, name string, expiresAt time.Time) (string, error) {
	token := GenerateToken()
	tokenHash := HashToken(token)

	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		_, err := b.store.CreateAccessToken(ctx, tx, name, user.ID(), tokenHash, expiresAt)
		if err != nil {
			return db.WrapError(err)
		}

		return nil
	}); err != nil {
		return "", err
	}

	return token, nil
}

// DeleteAccessToken deletes an access token for a user.
func (b *Backend) DeleteAccessToken(ctx context.Context, user proto.User, id int64) error {
	err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		_, err := b.store.GetAccessToken(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}

		if err := b.store.DeleteAccessTokenForUser(ctx, tx, user.ID(), id); err != nil {
			return db.WrapError(err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrTokenNotFound
		}
		return err
	}

	return nil
}

// ListAccessTokens lists access tokens for a user.
func (b *Backend) ListAccessTokens(ctx context.Context, user proto.User) ([]AccessToken, error) {
	accessTokens, err := b.store.ListAccessTokensForUser(ctx, b.db, user.ID())
	if err != nil {
		return nil, db.WrapError(err)
	}

	tokens := make([]AccessToken, 0, len(accessTokens))
	for _, t := range accessTokens {
		token := AccessToken{
			ID:        t.ID,
			Name:      t.Name,
			TokenHash: t.Token,
			UserID:    t.UserID,
			CreatedAt: t.CreatedAt,
		}
		if t.ExpiresAt.Valid {
			token.ExpiresAt = t.ExpiresAt.Time
		}

		tokens = append(tokens, token)
	}

	return tokens, nil
}

// UserByAccessToken finds a user by access token.
// This also validates the token for expiration and returns proto.ErrTokenExpired.
func (b *Backend) UserByAccessToken(ctx context.Context, token string) (proto.User, error) {
	var m models.User
	token = HashToken(token)

	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		t, err := b.store.GetAccessTokenByToken(ctx, tx, token)
		if err != nil {
			return db.WrapError(err)
		}

		if t.ExpiresAt.Valid && t.ExpiresAt.Time.Before(time.Now()) {
			return proto.ErrTokenExpired
		}

		m, err = b.store.FindUserByAccessToken(ctx, tx, token)
		return db.WrapError(err)
	}); err != nil {
		err = db.WrapError(err)
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, proto.ErrUserNotFound
		}
		if !errors.Is(err, proto.ErrTokenExpired) {
			b.logger.Error("failed to find user by access token", "err", err)
		}
		return nil, err
	}

	return &user{user: m}, nil
}
