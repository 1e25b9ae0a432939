package store

import (
	"context"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
)

// ContactStore is an interface for managing organization contacts.
type ContactStore interface {
	CreateContact(ctx context.Context, h db.Handler, orgID int64, name, email, phone, company string) (models.Contact, error)
	GetContactByID(ctx context.Context, h db.Handler, id int64) (models.Contact, error)
	ListContactsByOrg(ctx context.Context, h db.Handler, orgID int64) ([]models.Contact, error)
	ListContactsForUser(ctx context.Context, h db.Handler, userID int64) ([]models.Contact, error)
	UpdateContact(ctx context.Context, h db.Handler, id int64, name, email, phone, company string) error
	DeleteContactByID(ctx context.Context, h db.Handler, id int64) error

	// LinkContactsToUserByEmail links all unlinked contacts whose email
	// matches to the given user. Returns the number of contacts linked.
	LinkContactsToUserByEmail(ctx context.Context, h db.Handler, userID int64, email string) (int64, error)
	UnlinkContactsFromUser(ctx context.Context, h db.Handler, userID int64) error
}
