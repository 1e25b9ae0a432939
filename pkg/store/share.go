package store

import (
	"context"
	"time"

	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
)

// ShareStore is an interface for managing organization-to-organization
// project shares.
type ShareStore interface {
	CreateShare(ctx context.Context, h db.Handler, projectID, orgID int64, level access.Level) (models.ProjectShare, error)
	GetShareByID(ctx context.Context, h db.Handler, id int64) (models.ProjectShare, error)
	GetShare(ctx context.Context, h db.Handler, projectID, orgID int64) (models.ProjectShare, error)
	ListSharesByProject(ctx context.Context, h db.Handler, projectID int64) ([]models.ProjectShare, error)
	ListSharesForOrg(ctx context.Context, h db.Handler, orgID int64) ([]models.ProjectShare, error)

	// ListAcceptedSharesForUser returns all accepted shares of the project
	// granted to any organization the user belongs to.
	ListAcceptedSharesForUser(ctx context.Context, h db.Handler, projectID, userID int64) ([]models.ProjectShare, error)

	AcceptShare(ctx context.Context, h db.Handler, id int64) error
	DeleteShareByID(ctx context.Context, h db.Handler, id int64) error

	// DeleteExpiredShares removes unaccepted shares created before the
	// given time. Returns the number of shares removed.
	DeleteExpiredShares(ctx context.Context, h db.Handler, before time.Time) (int64, error)
}

// ProjectContactStore is an interface for managing per-contact project
// grants.
type ProjectContactStore interface {
	GrantContact(ctx context.Context, h db.Handler, projectID, contactID int64, level access.Level, role string, isPrimary bool) (models.ProjectContact, error)
	UpdateContactGrant(ctx context.Context, h db.Handler, projectID, contactID int64, level access.Level, role string, isPrimary bool) error
	RevokeContact(ctx context.Context, h db.Handler, projectID, contactID int64) error
	ListProjectContacts(ctx context.Context, h db.Handler, projectID int64) ([]models.ProjectContact, error)

	// ListContactGrantsForUser returns all grants on the project held by
	// contacts linked to the user.
	ListContactGrantsForUser(ctx context.Context, h db.Handler, projectID, userID int64) ([]models.ProjectContact, error)
}
