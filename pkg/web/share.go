package web

import (
	"context"
	"net/http"

	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/gorilla/mux"
)

// ShareController registers the org-to-org project sharing routes.
func ShareController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/projects/{project:[0-9]+}/shares", listProjectShares).Methods(http.MethodGet)
	r.HandleFunc("/projects/{project:[0-9]+}/shares", shareProject).Methods(http.MethodPost)
	r.HandleFunc("/orgs/{org:[0-9]+}/shares", listOrgShares).Methods(http.MethodGet)
	r.HandleFunc("/shares/{share:[0-9]+}/accept", acceptShare).Methods(http.MethodPost)
	r.HandleFunc("/shares/{share:[0-9]+}", revokeShare).Methods(http.MethodDelete)
}

func listProjectShares(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	shares, err := be.SharesForProject(ctx, user, projectID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]shareResponse, 0, len(shares))
	for _, s := range shares {
		res = append(res, toShareResponse(s))
	}
	renderJSON(w, http.StatusOK, res)
}

func shareProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		OrgID int64        `json:"org_id"`
		Level access.Level `json:"level"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	share, err := be.ShareProject(ctx, user, projectID, req.OrgID, req.Level)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, toShareResponse(share))
}

func listOrgShares(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	shares, err := be.SharesForOrg(ctx, user, orgID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]shareResponse, 0, len(shares))
	for _, s := range shares {
		res = append(res, toShareResponse(s))
	}
	renderJSON(w, http.StatusOK, res)
}

func acceptShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	shareID, err := pathID(r, "share")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.AcceptShare(ctx, user, shareID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

func revokeShare(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	shareID, err := pathID(r, "share")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.RevokeShare(ctx, user, shareID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}
