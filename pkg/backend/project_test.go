package backend

import (
	"errors"
	"testing"

	"github.com/craftplan/craftplan/pkg/proto"
)

func TestCreateProjectRequiresAdmin(t *testing.T) {
	ctx, be := testBackend(t)
	owner := testUser(t, ctx, be, "ext-owner", "owner@example.com")
	admin := testUser(t, ctx, be, "ext-admin", "admin@example.com")
	member := testUser(t, ctx, be, "ext-member", "member@example.com")
	stranger := testUser(t, ctx, be, "ext-stranger", "stranger@example.com")

	org, err := be.CreateOrg(ctx, owner, "Acme Builders")
	if err != nil {
		t.Fatal(err)
	}
	if err := be.AddOrgMember(ctx, owner, org.ID, admin.Email(), proto.RoleAdmin); err != nil {
		t.Fatal(err)
	}
	if err := be.AddOrgMember(ctx, owner, org.ID, member.Email(), proto.RoleMember); err != nil {
		t.Fatal(err)
	}

	if _, err := be.CreateProject(ctx, member, org.ID, "Loft Conversion", "", 0); !errors.Is(err, proto.ErrUnauthorized) {
		t.Errorf("CreateProject(by member) => %v, want ErrUnauthorized", err)
	}
	if _, err := be.CreateProject(ctx, stranger, org.ID, "Loft Conversion", "", 0); !errors.Is(err, proto.ErrUnauthorized) {
		t.Errorf("CreateProject(by non-member) => %v, want ErrUnauthorized", err)
	}

	if _, err := be.CreateProject(ctx, admin, org.ID, "Loft Conversion", "", 0); err != nil {
		t.Errorf("CreateProject(by admin) => %v, want nil error", err)
	}
	if _, err := be.CreateProject(ctx, owner, org.ID, "Roof Repair", "", 0); err != nil {
		t.Errorf("CreateProject(by owner) => %v, want nil error", err)
	}
}
