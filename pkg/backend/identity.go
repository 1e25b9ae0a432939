package backend

import (
	"context"
	"errors"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/proto"
)

// Identity provider webhook event types.
const (
	IdentityEventUserCreated   = "user.created"
	IdentityEventUserUpdated   = "user.updated"
	IdentityEventUserDeleted   = "user.deleted"
	IdentityEventMemberCreated = "membership.created"
	IdentityEventMemberDeleted = "membership.deleted"
)

// ProcessIdentityEvent applies an identity provider webhook event. Events
// are deduplicated by their id, a replayed delivery is a no-op. Updates for
// unknown users degrade to a bootstrap instead of failing.
func (b *Backend) ProcessIdentityEvent(ctx context.Context, eventID, typ string, identity proto.Identity) error {
	if err := b.store.RecordIdentityEvent(ctx, b.db, eventID, typ); err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			b.logger.Debug("skipping duplicate identity event", "event_id", eventID)
			return nil
		}
		return err
	}

	if err := b.applyIdentityEvent(ctx, eventID, typ, identity); err != nil {
		// Forget the event so the provider's retry is not mistaken
		// for a duplicate.
		if derr := b.store.DeleteIdentityEvent(ctx, b.db, eventID); derr != nil {
			b.logger.Error("failed to release identity event", "event_id", eventID, "err", derr)
		}
		return err
	}

	return nil
}

func (b *Backend) applyIdentityEvent(ctx context.Context, eventID, typ string, identity proto.Identity) error {
	switch typ {
	case IdentityEventUserCreated:
		_, err := b.EnsureUser(ctx, identity)
		return err
	case IdentityEventUserUpdated:
		err := b.UpdateUser(ctx, identity)
		if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
			// The provider knows about a user we never saw.
			_, err = b.EnsureUser(ctx, identity)
		}
		return err
	case IdentityEventUserDeleted:
		err := b.DeleteUserByExternalID(ctx, identity.ExternalID)
		if errors.Is(err, proto.ErrUserNotFound) {
			return nil
		}
		return err
	case IdentityEventMemberCreated:
		// Provider memberships map onto our own orgs only through the
		// bootstrapped personal org. Make sure the member exists.
		_, err := b.EnsureUser(ctx, identity)
		return err
	case IdentityEventMemberDeleted:
		// Org membership is managed in-app, nothing to reconcile.
		return nil
	default:
		b.logger.Warn("ignoring unknown identity event", "type", typ, "event_id", eventID)
		return nil
	}
}
