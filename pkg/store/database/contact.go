package database

import (
	"context"
	"strings"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/store"
	"github.com/craftplan/craftplan/pkg/utils"
)

type contactStore struct{}

var _ store.ContactStore = (*contactStore)(nil)

// CreateContact implements store.ContactStore.
func (*contactStore) CreateContact(ctx context.Context, tx db.Handler, orgID int64, name, email, phone, company string) (models.Contact, error) {
	if err := utils.ValidateName(name); err != nil {
		return models.Contact{}, err //nolint:wrapcheck
	}

	email = strings.ToLower(email)
	if email != "" {
		if err := utils.ValidateEmail(email); err != nil {
			return models.Contact{}, err //nolint:wrapcheck
		}
	}

	// Link to an existing user right away when the email matches.
	query := tx.Rebind(`INSERT INTO contacts (org_id, user_id, name, email, phone, company, updated_at)
			VALUES (?, (SELECT id FROM users WHERE email = ?), ?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, orgID, email, name,
		nullString(email), nullString(phone), nullString(company)); err != nil {
		return models.Contact{}, err //nolint:wrapcheck
	}

	var m models.Contact
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM contacts WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// GetContactByID implements store.ContactStore.
func (*contactStore) GetContactByID(ctx context.Context, tx db.Handler, id int64) (models.Contact, error) {
	var m models.Contact
	query := tx.Rebind(`SELECT * FROM contacts WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// ListContactsByOrg implements store.ContactStore.
func (*contactStore) ListContactsByOrg(ctx context.Context, tx db.Handler, orgID int64) ([]models.Contact, error) {
	var ms []models.Contact
	query := tx.Rebind(`SELECT * FROM contacts WHERE org_id = ? ORDER BY name;`)
	err := tx.SelectContext(ctx, &ms, query, orgID)
	return ms, err //nolint:wrapcheck
}

// ListContactsForUser implements store.ContactStore.
func (*contactStore) ListContactsForUser(ctx context.Context, tx db.Handler, userID int64) ([]models.Contact, error) {
	var ms []models.Contact
	query := tx.Rebind(`SELECT * FROM contacts WHERE user_id = ? ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query, userID)
	return ms, err //nolint:wrapcheck
}

// UpdateContact implements store.ContactStore.
func (*contactStore) UpdateContact(ctx context.Context, tx db.Handler, id int64, name, email, phone, company string) error {
	if err := utils.ValidateName(name); err != nil {
		return err //nolint:wrapcheck
	}

	email = strings.ToLower(email)
	if email != "" {
		if err := utils.ValidateEmail(email); err != nil {
			return err //nolint:wrapcheck
		}
	}

	// Changing the email re-links the contact to the matching user, if any.
	query := tx.Rebind(`UPDATE contacts
			SET name = ?, email = ?, phone = ?, company = ?,
			  user_id = (SELECT id FROM users WHERE email = ?),
			  updated_at = CURRENT_TIMESTAMP
			WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, name,
		nullString(email), nullString(phone), nullString(company), email, id)
	return err //nolint:wrapcheck
}

// DeleteContactByID implements store.ContactStore.
func (*contactStore) DeleteContactByID(ctx context.Context, tx db.Handler, id int64) error {
	query := tx.Rebind(`DELETE FROM contacts WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// LinkContactsToUserByEmail implements store.ContactStore.
func (*contactStore) LinkContactsToUserByEmail(ctx context.Context, tx db.Handler, userID int64, email string) (int64, error) {
	query := tx.Rebind(`UPDATE contacts
			SET user_id = ?, updated_at = CURRENT_TIMESTAMP
			WHERE email = ? AND user_id IS NULL;`)
	res, err := tx.ExecContext(ctx, query, userID, strings.ToLower(email))
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	n, err := res.RowsAffected()
	return n, err //nolint:wrapcheck
}

// UnlinkContactsFromUser implements store.ContactStore.
func (*contactStore) UnlinkContactsFromUser(ctx context.Context, tx db.Handler, userID int64) error {
	query := tx.Rebind(`UPDATE contacts
			SET user_id = NULL, updated_at = CURRENT_TIMESTAMP
			WHERE user_id = ?;`)
	_, err := tx.ExecContext(ctx, query, userID)
	return err //nolint:wrapcheck
}
