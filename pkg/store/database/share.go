package database

import (
	"context"
	"time"

	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/store"
)

type shareStore struct{}

var _ store.ShareStore = (*shareStore)(nil)

// CreateShare implements store.ShareStore.
func (*shareStore) CreateShare(ctx context.Context, tx db.Handler, projectID, orgID int64, level access.Level) (models.ProjectShare, error) {
	query := tx.Rebind(`INSERT INTO project_shares (project_id, org_id, access_level, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, projectID, orgID, level); err != nil {
		return models.ProjectShare{}, err //nolint:wrapcheck
	}

	var m models.ProjectShare
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM project_shares WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// GetShareByID implements store.ShareStore.
func (*shareStore) GetShareByID(ctx context.Context, tx db.Handler, id int64) (models.ProjectShare, error) {
	var m models.ProjectShare
	query := tx.Rebind(`SELECT * FROM project_shares WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// GetShare implements store.ShareStore.
func (*shareStore) GetShare(ctx context.Context, tx db.Handler, projectID, orgID int64) (models.ProjectShare, error) {
	var m models.ProjectShare
	query := tx.Rebind(`SELECT * FROM project_shares WHERE project_id = ? AND org_id = ?;`)
	err := tx.GetContext(ctx, &m, query, projectID, orgID)
	return m, err //nolint:wrapcheck
}

// ListSharesByProject implements store.ShareStore.
func (*shareStore) ListSharesByProject(ctx context.Context, tx db.Handler, projectID int64) ([]models.ProjectShare, error) {
	var ms []models.ProjectShare
	query := tx.Rebind(`SELECT * FROM project_shares WHERE project_id = ? ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query, projectID)
	return ms, err //nolint:wrapcheck
}

// ListSharesForOrg implements store.ShareStore.
func (*shareStore) ListSharesForOrg(ctx context.Context, tx db.Handler, orgID int64) ([]models.ProjectShare, error) {
	var ms []models.ProjectShare
	query := tx.Rebind(`SELECT * FROM project_shares WHERE org_id = ? ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query, orgID)
	return ms, err //nolint:wrapcheck
}

// ListAcceptedSharesForUser implements store.ShareStore.
func (*shareStore) ListAcceptedSharesForUser(ctx context.Context, tx db.Handler, projectID, userID int64) ([]models.ProjectShare, error) {
	var ms []models.ProjectShare
	query := tx.Rebind(`SELECT project_shares.*
			FROM project_shares
			INNER JOIN organization_members ON organization_members.org_id = project_shares.org_id
			WHERE project_shares.project_id = ?
			  AND project_shares.accepted_at IS NOT NULL
			  AND organization_members.user_id = ?;`)
	err := tx.SelectContext(ctx, &ms, query, projectID, userID)
	return ms, err //nolint:wrapcheck
}

// AcceptShare implements store.ShareStore.
func (*shareStore) AcceptShare(ctx context.Context, tx db.Handler, id int64) error {
	query := tx.Rebind(`UPDATE project_shares
			SET accepted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND accepted_at IS NULL;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// DeleteShareByID implements store.ShareStore.
func (*shareStore) DeleteShareByID(ctx context.Context, tx db.Handler, id int64) error {
	query := tx.Rebind(`DELETE FROM project_shares WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// DeleteExpiredShares implements store.ShareStore.
func (*shareStore) DeleteExpiredShares(ctx context.Context, tx db.Handler, before time.Time) (int64, error) {
	query := tx.Rebind(`DELETE FROM project_shares
			WHERE accepted_at IS NULL AND created_at < ?;`)
	res, err := tx.ExecContext(ctx, query, before)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	n, err := res.RowsAffected()
	return n, err //nolint:wrapcheck
}
