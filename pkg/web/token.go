package web

import (
	"context"
	"net/http"
	"time"

	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/gorilla/mux"
)

// TokenController registers the personal access token routes.
func TokenController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/user/tokens", listTokens).Methods(http.MethodGet)
	r.HandleFunc("/user/tokens", createToken).Methods(http.MethodPost)
	r.HandleFunc("/user/tokens/{token:[0-9]+}", deleteToken).Methods(http.MethodDelete)
}

func listTokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	tokens, err := be.ListAccessTokens(ctx, user)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, tokens)
}

func createToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	var req struct {
		Name      string    `json:"name"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	token, err := be.CreateAccessToken(ctx, user, req.Name, req.ExpiresAt)
	if err != nil {
		renderError(w, r, err)
		return
	}

	// The plain token is shown exactly once.
	renderJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func deleteToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	id, err := pathID(r, "token")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.DeleteAccessToken(ctx, user, id); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}
