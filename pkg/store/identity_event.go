package store

import (
	"context"

	"github.com/craftplan/craftplan/pkg/db"
)

// IdentityEventStore records processed identity provider webhook events so
// duplicate deliveries can be detected.
type IdentityEventStore interface {
	// RecordIdentityEvent records a processed event. It returns
	// db.ErrDuplicateKey if the event id has been seen before.
	RecordIdentityEvent(ctx context.Context, h db.Handler, eventID, typ string) error

	// DeleteIdentityEvent forgets a recorded event so the provider's
	// retry of that event id is processed again.
	DeleteIdentityEvent(ctx context.Context, h db.Handler, eventID string) error
}
