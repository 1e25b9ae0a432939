package database

import (
	"context"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/store"
)

type identityEventStore struct{}

var _ store.IdentityEventStore = (*identityEventStore)(nil)

// RecordIdentityEvent implements store.IdentityEventStore.
func (*identityEventStore) RecordIdentityEvent(ctx context.Context, tx db.Handler, eventID, typ string) error {
	query := tx.Rebind(`INSERT INTO identity_events (event_id, type) VALUES (?, ?);`)
	_, err := tx.ExecContext(ctx, query, eventID, typ)
	return db.WrapError(err)
}

// DeleteIdentityEvent implements store.IdentityEventStore.
func (*identityEventStore) DeleteIdentityEvent(ctx context.Context, tx db.Handler, eventID string) error {
	query := tx.Rebind(`DELETE FROM identity_events WHERE event_id = ?;`)
	_, err := tx.ExecContext(ctx, query, eventID)
	return db.WrapError(err)
}
