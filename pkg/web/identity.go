package web

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/config"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/gorilla/mux"
)

const identitySignatureHeader = "X-Identity-Signature"

// IdentityController registers the identity provider webhook endpoint. It is
// authenticated by an HMAC signature, not a bearer token.
func IdentityController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/webhook/identity", postIdentityEvent).Methods(http.MethodPost)
}

type identityEventRequest struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"data"`
}

func postIdentityEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg := config.FromContext(ctx)
	be := backend.FromContext(ctx)

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if !verifyIdentitySignature(cfg.Identity.WebhookSecret, r.Header.Get(identitySignatureHeader), body) {
		renderStatus(http.StatusUnauthorized)(w, r)
		return
	}

	var req identityEventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		renderBadRequest(w, err)
		return
	}
	if req.ID == "" || req.Type == "" {
		renderStatus(http.StatusBadRequest)(w, r)
		return
	}

	identity := proto.Identity{
		ExternalID: req.Data.ID,
		Email:      req.Data.Email,
		FirstName:  req.Data.FirstName,
		LastName:   req.Data.LastName,
		AvatarURL:  req.Data.AvatarURL,
	}

	if err := be.ProcessIdentityEvent(ctx, req.ID, req.Type, identity); err != nil {
		renderError(w, r, err)
		return
	}

	renderStatus(http.StatusOK)(w, r)
}

// verifyIdentitySignature checks a "sha256=<hex>" signature over the raw
// request body.
func verifyIdentitySignature(secret, header string, body []byte) bool {
	if secret == "" || header == "" {
		return false
	}

	got, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body) // nolint: errcheck
	want := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(got), []byte(want))
}
