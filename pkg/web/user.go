package web

import (
	"context"
	"net/http"

	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/gorilla/mux"
)

// UserController registers the current-user routes.
func UserController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/user", getCurrentUser).Methods(http.MethodGet)
}

func getCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := proto.UserFromContext(r.Context())
	renderJSON(w, http.StatusOK, toUserResponse(user))
}
