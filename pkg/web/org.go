package web

import (
	"context"
	"net/http"

	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/gorilla/mux"
)

// OrgController registers the organization routes.
func OrgController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/orgs", listOrgs).Methods(http.MethodGet)
	r.HandleFunc("/orgs", createOrg).Methods(http.MethodPost)
	r.HandleFunc("/orgs/{org:[0-9]+}", getOrg).Methods(http.MethodGet)
	r.HandleFunc("/orgs/{org:[0-9]+}", renameOrg).Methods(http.MethodPatch)
	r.HandleFunc("/orgs/{org:[0-9]+}", deleteOrg).Methods(http.MethodDelete)
	r.HandleFunc("/orgs/{org:[0-9]+}/members", listOrgMembers).Methods(http.MethodGet)
	r.HandleFunc("/orgs/{org:[0-9]+}/members", addOrgMember).Methods(http.MethodPost)
	r.HandleFunc("/orgs/{org:[0-9]+}/members/{user:[0-9]+}", updateOrgMember).Methods(http.MethodPatch)
	r.HandleFunc("/orgs/{org:[0-9]+}/members/{user:[0-9]+}", removeOrgMember).Methods(http.MethodDelete)
}

func listOrgs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgs, err := be.Orgs(ctx, user)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]orgResponse, 0, len(orgs))
	for _, o := range orgs {
		res = append(res, toOrgResponse(o))
	}
	renderJSON(w, http.StatusOK, res)
}

func createOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	org, err := be.CreateOrg(ctx, user, req.Name)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, toOrgResponse(org))
}

func getOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	org, err := be.Org(ctx, user, orgID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, toOrgResponse(org))
}

func renameOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.RenameOrg(ctx, user, orgID, req.Name); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

func deleteOrg(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.DeleteOrg(ctx, user, orgID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

func listOrgMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	members, err := be.OrgMembers(ctx, user, orgID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]memberResponse, 0, len(members))
	for _, m := range members {
		res = append(res, toMemberResponse(m))
	}
	renderJSON(w, http.StatusOK, res)
}

func addOrgMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		Email string        `json:"email"`
		Role  proto.OrgRole `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.AddOrgMember(ctx, user, orgID, req.Email, req.Role); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusCreated)(w, r)
}

func updateOrgMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}
	userID, err := pathID(r, "user")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		Role proto.OrgRole `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.UpdateOrgMemberRole(ctx, user, orgID, userID, req.Role); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

func removeOrgMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}
	userID, err := pathID(r, "user")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.RemoveOrgMember(ctx, user, orgID, userID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}
