package web

import (
	"context"
	"net/http"

	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/gorilla/mux"
)

// ContactController registers the org contact book and per-contact project
// grant routes.
func ContactController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/orgs/{org:[0-9]+}/contacts", listContacts).Methods(http.MethodGet)
	r.HandleFunc("/orgs/{org:[0-9]+}/contacts", createContact).Methods(http.MethodPost)
	r.HandleFunc("/contacts/{contact:[0-9]+}", getContact).Methods(http.MethodGet)
	r.HandleFunc("/contacts/{contact:[0-9]+}", updateContact).Methods(http.MethodPatch)
	r.HandleFunc("/contacts/{contact:[0-9]+}", deleteContact).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{project:[0-9]+}/contacts", listProjectContacts).Methods(http.MethodGet)
	r.HandleFunc("/projects/{project:[0-9]+}/contacts", grantContact).Methods(http.MethodPost)
	r.HandleFunc("/projects/{project:[0-9]+}/contacts/{contact:[0-9]+}", updateContactGrant).Methods(http.MethodPatch)
	r.HandleFunc("/projects/{project:[0-9]+}/contacts/{contact:[0-9]+}", revokeContact).Methods(http.MethodDelete)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

func listContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	contacts, err := be.Contacts(ctx, user, orgID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		res = append(res, toContactResponse(c))
	}
	renderJSON(w, http.StatusOK, res)
}

func createContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	contact, err := be.CreateContact(ctx, user, orgID, req.Name, req.Email, req.Phone, req.Company)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, toContactResponse(contact))
}

func getContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	contactID, err := pathID(r, "contact")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	contact, err := be.Contact(ctx, user, contactID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, toContactResponse(contact))
}

func updateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	contactID, err := pathID(r, "contact")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.UpdateContact(ctx, user, contactID, req.Name, req.Email, req.Phone, req.Company); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

func deleteContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	contactID, err := pathID(r, "contact")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.DeleteContact(ctx, user, contactID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

func listProjectContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	grants, err := be.ProjectContacts(ctx, user, projectID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]grantResponse, 0, len(grants))
	for _, g := range grants {
		res = append(res, toGrantResponse(g))
	}
	renderJSON(w, http.StatusOK, res)
}

type grantRequest struct {
	ContactID int64        `json:"contact_id"`
	Level     access.Level `json:"level"`
	Role      string       `json:"role"`
	IsPrimary bool         `json:"is_primary"`
}

func grantContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req grantRequest
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	grant, err := be.GrantContact(ctx, user, projectID, req.ContactID, req.Level, req.Role, req.IsPrimary)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, toGrantResponse(grant))
}

func updateContactGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}
	contactID, err := pathID(r, "contact")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req grantRequest
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.UpdateContactGrant(ctx, user, projectID, contactID, req.Level, req.Role, req.IsPrimary); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

func revokeContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}
	contactID, err := pathID(r, "contact")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.RevokeContact(ctx, user, projectID, contactID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}
