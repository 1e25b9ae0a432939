package database

import (
	"context"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/store"
	"github.com/craftplan/craftplan/pkg/utils"
)

type orgStore struct{}

var _ store.OrgStore = (*orgStore)(nil)

// CreateOrg implements store.OrgStore.
func (*orgStore) CreateOrg(ctx context.Context, tx db.Handler, name string) (models.Organization, error) {
	if err := utils.ValidateName(name); err != nil {
		return models.Organization{}, err //nolint:wrapcheck
	}

	query := tx.Rebind(`INSERT INTO organizations (name, updated_at)
			VALUES (?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, name); err != nil {
		return models.Organization{}, err //nolint:wrapcheck
	}

	var m models.Organization
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM organizations WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// GetAllOrgs implements store.OrgStore.
func (*orgStore) GetAllOrgs(ctx context.Context, tx db.Handler) ([]models.Organization, error) {
	var ms []models.Organization
	err := tx.SelectContext(ctx, &ms, `SELECT * FROM organizations ORDER BY id;`)
	return ms, err //nolint:wrapcheck
}

// GetOrgByID implements store.OrgStore.
func (*orgStore) GetOrgByID(ctx context.Context, tx db.Handler, id int64) (models.Organization, error) {
	var m models.Organization
	query := tx.Rebind(`SELECT * FROM organizations WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// ListOrgsForUser implements store.OrgStore.
func (*orgStore) ListOrgsForUser(ctx context.Context, tx db.Handler, userID int64) ([]models.Organization, error) {
	var ms []models.Organization
	query := tx.Rebind(`SELECT organizations.*
			FROM organizations
			INNER JOIN organization_members ON organizations.id = organization_members.org_id
			WHERE organization_members.user_id = ?
			ORDER BY organizations.name;`)
	err := tx.SelectContext(ctx, &ms, query, userID)
	return ms, err //nolint:wrapcheck
}

// RenameOrg implements store.OrgStore.
func (*orgStore) RenameOrg(ctx context.Context, tx db.Handler, id int64, name string) error {
	if err := utils.ValidateName(name); err != nil {
		return err //nolint:wrapcheck
	}

	query := tx.Rebind(`UPDATE organizations SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, name, id)
	return err //nolint:wrapcheck
}

// DeleteOrgByID implements store.OrgStore.
func (*orgStore) DeleteOrgByID(ctx context.Context, tx db.Handler, id int64) error {
	query := tx.Rebind(`DELETE FROM organizations WHERE id = ?;`)
	_, err := tx.ExecContext(ctx, query, id)
	return err //nolint:wrapcheck
}

// AddOrgMember implements store.OrgStore.
func (*orgStore) AddOrgMember(ctx context.Context, tx db.Handler, orgID, userID int64, role proto.OrgRole) error {
	query := tx.Rebind(`INSERT INTO organization_members (org_id, user_id, role, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP);`)
	_, err := tx.ExecContext(ctx, query, orgID, userID, role)
	return err //nolint:wrapcheck
}

// RemoveOrgMember implements store.OrgStore.
func (*orgStore) RemoveOrgMember(ctx context.Context, tx db.Handler, orgID, userID int64) error {
	query := tx.Rebind(`DELETE FROM organization_members WHERE org_id = ? AND user_id = ?;`)
	_, err := tx.ExecContext(ctx, query, orgID, userID)
	return err //nolint:wrapcheck
}

// UpdateOrgMemberRole implements store.OrgStore.
func (*orgStore) UpdateOrgMemberRole(ctx context.Context, tx db.Handler, orgID, userID int64, role proto.OrgRole) error {
	query := tx.Rebind(`UPDATE organization_members
			SET role = ?, updated_at = CURRENT_TIMESTAMP
			WHERE org_id = ? AND user_id = ?;`)
	_, err := tx.ExecContext(ctx, query, role, orgID, userID)
	return err //nolint:wrapcheck
}

// GetOrgMember implements store.OrgStore.
func (*orgStore) GetOrgMember(ctx context.Context, tx db.Handler, orgID, userID int64) (models.OrganizationMember, error) {
	var m models.OrganizationMember
	query := tx.Rebind(`SELECT * FROM organization_members WHERE org_id = ? AND user_id = ?;`)
	err := tx.GetContext(ctx, &m, query, orgID, userID)
	return m, err //nolint:wrapcheck
}

// ListOrgMembers implements store.OrgStore.
func (*orgStore) ListOrgMembers(ctx context.Context, tx db.Handler, orgID int64) ([]models.OrganizationMember, error) {
	var ms []models.OrganizationMember
	query := tx.Rebind(`SELECT * FROM organization_members WHERE org_id = ? ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query, orgID)
	return ms, err //nolint:wrapcheck
}

// ListOrgMembershipsForUser implements store.OrgStore.
func (*orgStore) ListOrgMembershipsForUser(ctx context.Context, tx db.Handler, userID int64) ([]models.OrganizationMember, error) {
	var ms []models.OrganizationMember
	query := tx.Rebind(`SELECT * FROM organization_members WHERE user_id = ? ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query, userID)
	return ms, err //nolint:wrapcheck
}

// CountOrgOwners implements store.OrgStore.
func (*orgStore) CountOrgOwners(ctx context.Context, tx db.Handler, orgID int64) (int, error) {
	var count int
	query := tx.Rebind(`SELECT COUNT(*) FROM organization_members WHERE org_id = ? AND role = ?;`)
	err := tx.GetContext(ctx, &count, query, orgID, proto.RoleOwner)
	return count, err //nolint:wrapcheck
}
