package database

import (
	"context"

	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/store"
)

type projectContactStore struct{}

var _ store.ProjectContactStore = (*projectContactStore)(nil)

// GrantContact implements store.ProjectContactStore.
func (*projectContactStore) GrantContact(ctx context.Context, tx db.Handler, projectID, contactID int64, level access.Level, role string, isPrimary bool) (models.ProjectContact, error) {
	query := tx.Rebind(`INSERT INTO project_contacts (project_id, contact_id, access_level, role, is_primary, updated_at)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, projectID, contactID, level, role, isPrimary); err != nil {
		return models.ProjectContact{}, err //nolint:wrapcheck
	}

	var m models.ProjectContact
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM project_contacts WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// UpdateContactGrant implements store.ProjectContactStore.
func (*projectContactStore) UpdateContactGrant(ctx context.Context, tx db.Handler, projectID, contactID int64, level access.Level, role string, isPrimary bool) error {
	query := tx.Rebind(`UPDATE project_contacts
			SET access_level = ?, role = ?, is_primary = ?, updated_at = CURRENT_TIMESTAMP
			WHERE project_id = ? AND contact_id = ?;`)
	_, err := tx.ExecContext(ctx, query, level, role, isPrimary, projectID, contactID)
	return err //nolint:wrapcheck
}

// RevokeContact implements store.ProjectContactStore.
func (*projectContactStore) RevokeContact(ctx context.Context, tx db.Handler, projectID, contactID int64) error {
	query := tx.Rebind(`DELETE FROM project_contacts WHERE project_id = ? AND contact_id = ?;`)
	_, err := tx.ExecContext(ctx, query, projectID, contactID)
	return err //nolint:wrapcheck
}

// ListProjectContacts implements store.ProjectContactStore.
func (*projectContactStore) ListProjectContacts(ctx context.Context, tx db.Handler, projectID int64) ([]models.ProjectContact, error) {
	var ms []models.ProjectContact
	query := tx.Rebind(`SELECT * FROM project_contacts WHERE project_id = ? ORDER BY is_primary DESC, id;`)
	err := tx.SelectContext(ctx, &ms, query, projectID)
	return ms, err //nolint:wrapcheck
}

// ListContactGrantsForUser implements store.ProjectContactStore.
func (*projectContactStore) ListContactGrantsForUser(ctx context.Context, tx db.Handler, projectID, userID int64) ([]models.ProjectContact, error) {
	var ms []models.ProjectContact
	query := tx.Rebind(`SELECT project_contacts.*
			FROM project_contacts
			INNER JOIN contacts ON contacts.id = project_contacts.contact_id
			WHERE project_contacts.project_id = ? AND contacts.user_id = ?;`)
	err := tx.SelectContext(ctx, &ms, query, projectID, userID)
	return ms, err //nolint:wrapcheck
}
