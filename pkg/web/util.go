package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/craftplan/craftplan/pkg/access"
	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/webhook"
)

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, fmt.Sprintf("%d %s", code, http.StatusText(code))) //nolint:errcheck,gosec
	}
}

func renderJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		json.NewEncoder(w).Encode(v) //nolint:errcheck,gosec
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// renderError maps backend errors onto HTTP status codes.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, proto.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, proto.ErrUserNotFound),
		errors.Is(err, proto.ErrOrgNotFound),
		errors.Is(err, proto.ErrProjectNotFound),
		errors.Is(err, proto.ErrContactNotFound),
		errors.Is(err, proto.ErrStageNotFound),
		errors.Is(err, proto.ErrShareNotFound),
		errors.Is(err, proto.ErrTokenNotFound),
		errors.Is(err, db.ErrRecordNotFound):
		code = http.StatusNotFound
	case errors.Is(err, proto.ErrLastOwner),
		errors.Is(err, db.ErrDuplicateKey):
		code = http.StatusConflict
	case errors.Is(err, proto.ErrTokenExpired):
		code = http.StatusUnauthorized
	case errors.Is(err, access.ErrInvalidLevel),
		errors.Is(err, backend.ErrInvalidRole),
		errors.Is(err, backend.ErrInvalidStatus),
		errors.Is(err, webhook.ErrInvalidContentType),
		errors.Is(err, webhook.ErrInvalidEvent),
		errors.Is(err, webhook.ErrInvalidURL),
		errors.Is(err, webhook.ErrInvalidScheme),
		errors.Is(err, webhook.ErrPrivateIP):
		code = http.StatusBadRequest
	}

	if code == http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("request failed", "err", err)
		renderJSON(w, code, errorResponse{Error: http.StatusText(code)})
		return
	}

	renderJSON(w, code, errorResponse{Error: err.Error()})
}

func renderBadRequest(w http.ResponseWriter, err error) {
	renderJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func renderNotFound(w http.ResponseWriter, r *http.Request) {
	renderStatus(http.StatusNotFound)(w, r)
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close() // nolint: errcheck
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
