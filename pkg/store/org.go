package store

import (
	"context"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
)

// OrgStore is a store for organizations and their memberships.
type OrgStore interface {
	CreateOrg(ctx context.Context, h db.Handler, name string) (models.Organization, error)
	GetOrgByID(ctx context.Context, h db.Handler, id int64) (models.Organization, error)
	ListOrgsForUser(ctx context.Context, h db.Handler, userID int64) ([]models.Organization, error)
	GetAllOrgs(ctx context.Context, h db.Handler) ([]models.Organization, error)
	RenameOrg(ctx context.Context, h db.Handler, id int64, name string) error
	DeleteOrgByID(ctx context.Context, h db.Handler, id int64) error

	AddOrgMember(ctx context.Context, h db.Handler, orgID, userID int64, role proto.OrgRole) error
	RemoveOrgMember(ctx context.Context, h db.Handler, orgID, userID int64) error
	UpdateOrgMemberRole(ctx context.Context, h db.Handler, orgID, userID int64, role proto.OrgRole) error
	GetOrgMember(ctx context.Context, h db.Handler, orgID, userID int64) (models.OrganizationMember, error)
	ListOrgMembers(ctx context.Context, h db.Handler, orgID int64) ([]models.OrganizationMember, error)
	ListOrgMembershipsForUser(ctx context.Context, h db.Handler, userID int64) ([]models.OrganizationMember, error)
	CountOrgOwners(ctx context.Context, h db.Handler, orgID int64) (int, error)
}
