package backend

import (
	"testing"

	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/proto"
)

func TestResolveOwnership(t *testing.T) {
	ctx, be := testBackend(t)
	owner := testUser(t, ctx, be, "ext-owner", "owner@example.com")

	orgs, err := be.Orgs(ctx, owner)
	if err != nil || len(orgs) != 1 {
		t.Fatalf("Orgs() => %v, %v, want one org", orgs, err)
	}

	project, err := be.CreateProject(ctx, owner, orgs[0].ID, "Kitchen remodel", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	r := be.Resolve(ctx, owner, project.ID)
	if r.Level != access.Admin || r.Source != access.SourceOwnership {
		t.Errorf("Resolve(owner) => %v/%v, want admin/ownership", r.Level, r.Source)
	}
}

func TestResolveMemberRoles(t *testing.T) {
	ctx, be := testBackend(t)
	owner := testUser(t, ctx, be, "ext-owner", "owner@example.com")
	member := testUser(t, ctx, be, "ext-member", "member@example.com")

	org, err := be.CreateOrg(ctx, owner, "Acme Builders")
	if err != nil {
		t.Fatal(err)
	}
	if err := be.AddOrgMember(ctx, owner, org.ID, member.Email(), proto.RoleMember); err != nil {
		t.Fatal(err)
	}

	project, err := be.CreateProject(ctx, owner, org.ID, "Loft conversion", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	r := be.Resolve(ctx, member, project.ID)
	if r.Level != access.Editor || r.Source != access.SourceOwnership {
		t.Errorf("Resolve(member) => %v/%v, want editor/ownership", r.Level, r.Source)
	}
}

func TestResolveDefaultDeny(t *testing.T) {
	ctx, be := testBackend(t)
	owner := testUser(t, ctx, be, "ext-owner", "owner@example.com")
	stranger := testUser(t, ctx, be, "ext-stranger", "stranger@example.com")

	orgs, _ := be.Orgs(ctx, owner)
	project, err := be.CreateProject(ctx, owner, orgs[0].ID, "Garage", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	if r := be.Resolve(ctx, stranger, project.ID); r.Level != access.NoAccess || r.Source != access.SourceNone {
		t.Errorf("Resolve(stranger) => %v/%v, want no-access/none", r.Level, r.Source)
	}
	if r := be.Resolve(ctx, nil, project.ID); r.Level != access.NoAccess {
		t.Errorf("Resolve(nil) => %v, want no-access", r.Level)
	}
	// Absence and lack of permission are indistinguishable.
	if r := be.Resolve(ctx, owner, 99999); r.Level != access.NoAccess {
		t.Errorf("Resolve(missing project) => %v, want no-access", r.Level)
	}
}

func TestResolveShare(t *testing.T) {
	ctx, be := testBackend(t)
	owner := testUser(t, ctx, be, "ext-owner", "owner@example.com")
	partner := testUser(t, ctx, be, "ext-partner", "partner@example.com")

	ownerOrgs, _ := be.Orgs(ctx, owner)
	partnerOrgs, _ := be.Orgs(ctx, partner)

	project, err := be.CreateProject(ctx, owner, ownerOrgs[0].ID, "Extension", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	share, err := be.ShareProject(ctx, owner, project.ID, partnerOrgs[0].ID, access.Editor)
	if err != nil {
		t.Fatal(err)
	}

	// An unaccepted share grants nothing.
	if r := be.Resolve(ctx, partner, project.ID); r.Level != access.NoAccess {
		t.Errorf("Resolve(unaccepted share) => %v, want no-access", r.Level)
	}

	if err := be.AcceptShare(ctx, partner, share.ID); err != nil {
		t.Fatal(err)
	}

	r := be.Resolve(ctx, partner, project.ID)
	if r.Level != access.Editor || r.Source != access.SourceShare {
		t.Errorf("Resolve(accepted share) => %v/%v, want editor/share", r.Level, r.Source)
	}

	// Revoking removes access again.
	if err := be.RevokeShare(ctx, owner, share.ID); err != nil {
		t.Fatal(err)
	}
	if r := be.Resolve(ctx, partner, project.ID); r.Level != access.NoAccess {
		t.Errorf("Resolve(revoked share) => %v, want no-access", r.Level)
	}
}

func TestResolveOwnershipBeatsShare(t *testing.T) {
	ctx, be := testBackend(t)
	owner := testUser(t, ctx, be, "ext-owner", "owner@example.com")
	member := testUser(t, ctx, be, "ext-member", "member@example.com")

	org, err := be.CreateOrg(ctx, owner, "Acme Builders")
	if err != nil {
		t.Fatal(err)
	}
	if err := be.AddOrgMember(ctx, owner, org.ID, member.Email(), proto.RoleMember); err != nil {
		t.Fatal(err)
	}

	project, err := be.CreateProject(ctx, owner, org.ID, "Annex", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	// Share the project back to the member's personal org at admin level.
	memberOrgs, _ := be.Orgs(ctx, member)
	var personal int64
	for _, o := range memberOrgs {
		if o.ID != org.ID {
			personal = o.ID
		}
	}
	share, err := be.ShareProject(ctx, owner, project.ID, personal, access.Admin)
	if err != nil {
		t.Fatal(err)
	}
	if err := be.AcceptShare(ctx, member, share.ID); err != nil {
		t.Fatal(err)
	}

	// Ownership wins outright even though the share level is higher.
	r := be.Resolve(ctx, member, project.ID)
	if r.Level != access.Editor || r.Source != access.SourceOwnership {
		t.Errorf("Resolve() => %v/%v, want editor/ownership", r.Level, r.Source)
	}
}

func TestResolveContactGrantsMax(t *testing.T) {
	ctx, be := testBackend(t)
	owner := testUser(t, ctx, be, "ext-owner", "owner@example.com")
	guest := testUser(t, ctx, be, "ext-guest", "guest@example.com")

	orgs, _ := be.Orgs(ctx, owner)
	orgID := orgs[0].ID

	p1, err := be.CreateProject(ctx, owner, orgID, "Site A", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := be.CreateProject(ctx, owner, orgID, "Site B", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	// Contact is linked to the guest user by email on creation.
	contact, err := be.CreateContact(ctx, owner, orgID, "Guest", guest.Email(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if !contact.UserID.Valid || contact.UserID.Int64 != guest.ID() {
		t.Fatalf("contact not linked to user: %+v", contact)
	}

	if _, err := be.GrantContact(ctx, owner, p1.ID, contact.ID, access.Viewer, "architect", false); err != nil {
		t.Fatal(err)
	}
	if _, err := be.GrantContact(ctx, owner, p2.ID, contact.ID, access.Editor, "architect", false); err != nil {
		t.Fatal(err)
	}

	if r := be.Resolve(ctx, guest, p1.ID); r.Level != access.Viewer || r.Source != access.SourceContact {
		t.Errorf("Resolve(p1) => %v/%v, want viewer/contact", r.Level, r.Source)
	}
	if r := be.Resolve(ctx, guest, p2.ID); r.Level != access.Editor || r.Source != access.SourceContact {
		t.Errorf("Resolve(p2) => %v/%v, want editor/contact", r.Level, r.Source)
	}

	// A second contact with the same email links to the same user. The
	// highest grant across the user's contacts wins.
	second, err := be.CreateContact(ctx, owner, orgID, "Guest LLC", guest.Email(), "", "Guest LLC")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := be.GrantContact(ctx, owner, p1.ID, second.ID, access.Admin, "contractor", false); err != nil {
		t.Fatal(err)
	}
	if r := be.Resolve(ctx, guest, p1.ID); r.Level != access.Admin || r.Source != access.SourceContact {
		t.Errorf("Resolve(p1, two contacts) => %v/%v, want admin/contact", r.Level, r.Source)
	}
}

func TestGuards(t *testing.T) {
	ctx, be := testBackend(t)
	owner := testUser(t, ctx, be, "ext-owner", "owner@example.com")
	member := testUser(t, ctx, be, "ext-member", "member@example.com")
	stranger := testUser(t, ctx, be, "ext-stranger", "stranger@example.com")

	org, err := be.CreateOrg(ctx, owner, "Acme Builders")
	if err != nil {
		t.Fatal(err)
	}
	if err := be.AddOrgMember(ctx, owner, org.ID, member.Email(), proto.RoleMember); err != nil {
		t.Fatal(err)
	}
	project, err := be.CreateProject(ctx, owner, org.ID, "Warehouse", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		user proto.User
		view bool
		edit bool
		mng  bool
	}{
		{"owner", owner, true, true, true},
		{"member", member, true, true, false},
		{"stranger", stranger, false, false, false},
		{"anonymous", nil, false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := be.CanView(ctx, tc.user, project.ID); got != tc.view {
				t.Errorf("CanView() => %v, want %v", got, tc.view)
			}
			if got := be.CanEdit(ctx, tc.user, project.ID); got != tc.edit {
				t.Errorf("CanEdit() => %v, want %v", got, tc.edit)
			}
			if got := be.CanManageStages(ctx, tc.user, project.ID); got != tc.mng {
				t.Errorf("CanManageStages() => %v, want %v", got, tc.mng)
			}
			if got := be.CanManageProject(ctx, tc.user, project.ID); got != tc.mng {
				t.Errorf("CanManageProject() => %v, want %v", got, tc.mng)
			}
		})
	}
}
