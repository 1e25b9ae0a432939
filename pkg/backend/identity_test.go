package backend

import (
	"errors"
	"testing"

	"github.com/craftplan/craftplan/pkg/proto"
)

func TestProcessIdentityEventDedup(t *testing.T) {
	ctx, be := testBackend(t)

	identity := proto.Identity{ExternalID: "ext-1", Email: "jamie@example.com"}
	if err := be.ProcessIdentityEvent(ctx, "evt-1", IdentityEventUserCreated, identity); err != nil {
		t.Fatal(err)
	}

	// A replayed delivery is a no-op, even with a different payload.
	replay := proto.Identity{ExternalID: "ext-other", Email: "other@example.com"}
	if err := be.ProcessIdentityEvent(ctx, "evt-1", IdentityEventUserCreated, replay); err != nil {
		t.Fatalf("replayed event => %v, want nil error", err)
	}
	if _, err := be.UserByExternalID(ctx, "ext-other"); !errors.Is(err, proto.ErrUserNotFound) {
		t.Error("replayed event created a user")
	}
}

func TestProcessIdentityEventRetryAfterFailure(t *testing.T) {
	ctx, be := testBackend(t)

	// A payload without an external id cannot be applied.
	bad := proto.Identity{Email: "jamie@example.com"}
	if err := be.ProcessIdentityEvent(ctx, "evt-1", IdentityEventUserCreated, bad); err == nil {
		t.Fatal("event without external id => nil error, want error")
	}

	// A failed delivery must not poison the event id, the provider's
	// retry carries the same one.
	good := proto.Identity{ExternalID: "ext-1", Email: "jamie@example.com"}
	if err := be.ProcessIdentityEvent(ctx, "evt-1", IdentityEventUserCreated, good); err != nil {
		t.Fatalf("retried event => %v, want nil error", err)
	}
	if _, err := be.UserByExternalID(ctx, "ext-1"); err != nil {
		t.Errorf("UserByExternalID() => %v, want created user", err)
	}
}

func TestProcessIdentityEventUpdate(t *testing.T) {
	ctx, be := testBackend(t)

	identity := proto.Identity{ExternalID: "ext-1", Email: "jamie@example.com"}
	if err := be.ProcessIdentityEvent(ctx, "evt-1", IdentityEventUserCreated, identity); err != nil {
		t.Fatal(err)
	}

	identity.FirstName = "Jamie"
	identity.LastName = "Doe"
	if err := be.ProcessIdentityEvent(ctx, "evt-2", IdentityEventUserUpdated, identity); err != nil {
		t.Fatal(err)
	}

	u, err := be.UserByExternalID(ctx, "ext-1")
	if err != nil {
		t.Fatal(err)
	}
	if u.DisplayName() != "Jamie Doe" {
		t.Errorf("DisplayName() => %q, want %q", u.DisplayName(), "Jamie Doe")
	}
}

func TestProcessIdentityEventUpdateUnknownUser(t *testing.T) {
	ctx, be := testBackend(t)

	// An update for a user we never saw degrades to a bootstrap.
	identity := proto.Identity{ExternalID: "ext-new", Email: "new@example.com"}
	if err := be.ProcessIdentityEvent(ctx, "evt-1", IdentityEventUserUpdated, identity); err != nil {
		t.Fatal(err)
	}
	if _, err := be.UserByExternalID(ctx, "ext-new"); err != nil {
		t.Errorf("UserByExternalID() => %v, want bootstrapped user", err)
	}
}

func TestProcessIdentityEventDelete(t *testing.T) {
	ctx, be := testBackend(t)

	identity := proto.Identity{ExternalID: "ext-1", Email: "jamie@example.com"}
	if err := be.ProcessIdentityEvent(ctx, "evt-1", IdentityEventUserCreated, identity); err != nil {
		t.Fatal(err)
	}
	if err := be.ProcessIdentityEvent(ctx, "evt-2", IdentityEventUserDeleted, identity); err != nil {
		t.Fatal(err)
	}
	if _, err := be.UserByExternalID(ctx, "ext-1"); !errors.Is(err, proto.ErrUserNotFound) {
		t.Errorf("UserByExternalID(deleted) => %v, want ErrUserNotFound", err)
	}

	// Deleting an unknown user is a no-op.
	if err := be.ProcessIdentityEvent(ctx, "evt-3", IdentityEventUserDeleted, identity); err != nil {
		t.Errorf("delete unknown => %v, want nil error", err)
	}
}

func TestProcessIdentityEventUnknownType(t *testing.T) {
	ctx, be := testBackend(t)
	if err := be.ProcessIdentityEvent(ctx, "evt-1", "session.created", proto.Identity{ExternalID: "x"}); err != nil {
		t.Errorf("unknown event type => %v, want nil error", err)
	}
}
