package database

import (
	"context"
	"time"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/store"
)

type accessTokenStore struct{}

var _ store.AccessTokenStore = (*accessTokenStore)(nil)

// CreateAccessToken implements store.AccessTokenStore.
func (*accessTokenStore) CreateAccessToken(ctx context.Context, tx db.Handler, name string, userID int64, token string, expiresAt time.Time) (models.AccessToken, error) {
	values := []interface{}{name, userID, token}
	valueIds := "?, ?, ?"
	sqlstr := "name, user_id, token"
	if !expiresAt.IsZero() {
		sqlstr += ", expires_at"
		valueIds += ", ?"
		values = append(values, expiresAt)
	}

	query := tx.Rebind(`INSERT INTO access_tokens (` + sqlstr + `, updated_at)
			VALUES (` + valueIds + `, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, values...); err != nil {
		return models.AccessToken{}, err //nolint:wrapcheck
	}

	var m models.AccessToken
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM access_tokens WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// GetAccessToken implements store.AccessTokenStore.
func (*accessTokenStore) GetAccessToken(ctx context.Context, tx db.Handler, id int64) (models.AccessToken, error) {
	var m models.AccessToken
	query := tx.Rebind(`SELECT * FROM access_tokens WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// GetAccessTokenByToken implements store.AccessTokenStore.
func (*accessTokenStore) GetAccessTokenByToken(ctx context.Context, tx db.Handler, token string) (models.AccessToken, error) {
	var m models.AccessToken
	query := tx.Rebind(`SELECT * FROM access_tokens WHERE token = ?;`)
	err := tx.GetContext(ctx, &m, query, token)
	return m, err //nolint:wrapcheck
}

// ListAccessTokensForUser implements store.AccessTokenStore.
func (*accessTokenStore) ListAccessTokensForUser(ctx context.Context, tx db.Handler, userID int64) ([]models.AccessToken, error) {
	var ms []models.AccessToken
	query := tx.Rebind(`SELECT * FROM access_tokens WHERE user_id = ? ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query, userID)
	return ms, err //nolint:wrapcheck
}

// DeleteAccessTokenForUser implements store.AccessTokenStore.
func (*accessTokenStore) DeleteAccessTokenForUser(ctx context.Context, tx db.Handler, userID int64, id int64) error {
	query := tx.Rebind(`DELETE FROM access_tokens WHERE id = ? AND user_id = ?;`)
	res, err := tx.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return db.ErrRecordNotFound
	}

	return nil
}
