package backend

import (
	"errors"
	"testing"

	"github.com/craftplan/craftplan/pkg/proto"
)

func TestLastOwnerProtection(t *testing.T) {
	ctx, be := testBackend(t)
	owner := testUser(t, ctx, be, "ext-owner", "owner@example.com")

	orgs, _ := be.Orgs(ctx, owner)
	orgID := orgs[0].ID

	if err := be.RemoveOrgMember(ctx, owner, orgID, owner.ID()); !errors.Is(err, proto.ErrLastOwner) {
		t.Errorf("RemoveOrgMember(last owner) => %v, want ErrLastOwner", err)
	}
	if err := be.UpdateOrgMemberRole(ctx, owner, orgID, owner.ID(), proto.RoleMember); !errors.Is(err, proto.ErrLastOwner) {
		t.Errorf("UpdateOrgMemberRole(demote last owner) => %v, want ErrLastOwner", err)
	}
}

func TestLastOwnerAllowsLeavingWithAnotherOwner(t *testing.T) {
	ctx, be := testBackend(t)
	owner := testUser(t, ctx, be, "ext-owner", "owner@example.com")
	second := testUser(t, ctx, be, "ext-second", "second@example.com")

	org, err := be.CreateOrg(ctx, owner, "Acme Builders")
	if err != nil {
		t.Fatal(err)
	}
	if err := be.AddOrgMember(ctx, owner, org.ID, second.Email(), proto.RoleOwner); err != nil {
		t.Fatal(err)
	}

	if err := be.RemoveOrgMember(ctx, owner, org.ID, owner.ID()); err != nil {
		t.Errorf("RemoveOrgMember(one of two owners) => %v, want nil error", err)
	}
}

func TestOrgMemberRoleRules(t *testing.T) {
	ctx, be := testBackend(t)
	owner := testUser(t, ctx, be, "ext-owner", "owner@example.com")
	admin := testUser(t, ctx, be, "ext-admin", "admin@example.com")
	member := testUser(t, ctx, be, "ext-member", "member@example.com")

	org, err := be.CreateOrg(ctx, owner, "Acme Builders")
	if err != nil {
		t.Fatal(err)
	}
	if err := be.AddOrgMember(ctx, owner, org.ID, admin.Email(), proto.RoleAdmin); err != nil {
		t.Fatal(err)
	}

	// Members cannot add other members.
	if err := be.AddOrgMember(ctx, member, org.ID, member.Email(), proto.RoleMember); !errors.Is(err, proto.ErrUnauthorized) {
		t.Errorf("AddOrgMember(by non-member) => %v, want ErrUnauthorized", err)
	}

	// Admins can add members but not grant ownership.
	if err := be.AddOrgMember(ctx, admin, org.ID, member.Email(), proto.RoleMember); err != nil {
		t.Errorf("AddOrgMember(by admin) => %v, want nil error", err)
	}
	if err := be.UpdateOrgMemberRole(ctx, admin, org.ID, member.ID(), proto.RoleOwner); !errors.Is(err, proto.ErrUnauthorized) {
		t.Errorf("UpdateOrgMemberRole(grant owner by admin) => %v, want ErrUnauthorized", err)
	}

	// Owners can.
	if err := be.UpdateOrgMemberRole(ctx, owner, org.ID, member.ID(), proto.RoleOwner); err != nil {
		t.Errorf("UpdateOrgMemberRole(grant owner by owner) => %v, want nil error", err)
	}
}
