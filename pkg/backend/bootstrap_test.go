package backend

import (
	"sync"
	"testing"

	"github.com/craftplan/craftplan/pkg/proto"
)

func TestEnsureUserBootstrap(t *testing.T) {
	ctx, be := testBackend(t)

	u, err := be.EnsureUser(ctx, proto.Identity{
		ExternalID: "ext-1",
		Email:      "jamie@example.com",
		FirstName:  "Jamie",
		LastName:   "Doe",
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.DisplayName() != "Jamie Doe" {
		t.Errorf("DisplayName() => %q, want %q", u.DisplayName(), "Jamie Doe")
	}

	orgs, err := be.Orgs(ctx, u)
	if err != nil {
		t.Fatal(err)
	}
	if len(orgs) != 1 {
		t.Fatalf("Orgs() => %d orgs, want 1", len(orgs))
	}

	members, err := be.OrgMembers(ctx, u, orgs[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 || members[0].Role != proto.RoleOwner {
		t.Fatalf("OrgMembers() => %+v, want a single owner membership", members)
	}
}

func TestEnsureUserIdempotent(t *testing.T) {
	ctx, be := testBackend(t)

	identity := proto.Identity{ExternalID: "ext-1", Email: "jamie@example.com"}
	first, err := be.EnsureUser(ctx, identity)
	if err != nil {
		t.Fatal(err)
	}
	second, err := be.EnsureUser(ctx, identity)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID() != second.ID() {
		t.Errorf("EnsureUser() => ids %d and %d, want the same user", first.ID(), second.ID())
	}

	orgs, _ := be.Orgs(ctx, first)
	if len(orgs) != 1 {
		t.Errorf("Orgs() => %d orgs, want 1", len(orgs))
	}
}

func TestEnsureUserMissingExternalID(t *testing.T) {
	ctx, be := testBackend(t)
	if _, err := be.EnsureUser(ctx, proto.Identity{Email: "x@example.com"}); err == nil {
		t.Error("EnsureUser() => nil error, want error for missing external id")
	}
}

func TestEnsureUserConcurrent(t *testing.T) {
	ctx, be := testBackend(t)

	identity := proto.Identity{ExternalID: "ext-racy", Email: "racy@example.com"}

	const n = 16
	ids := make([]int64, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := be.EnsureUser(ctx, identity)
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = u.ID()
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("EnsureUser() => %v, want nil error", errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("EnsureUser() => ids %d and %d, want the same user", ids[0], ids[i])
		}
	}

	u, err := be.UserByExternalID(ctx, identity.ExternalID)
	if err != nil {
		t.Fatal(err)
	}
	orgs, err := be.Orgs(ctx, u)
	if err != nil {
		t.Fatal(err)
	}
	if len(orgs) != 1 {
		t.Errorf("Orgs() => %d orgs, want exactly 1 after %d concurrent bootstraps", len(orgs), n)
	}
}
