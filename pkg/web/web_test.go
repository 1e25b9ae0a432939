package web

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/config"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/migrate"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/store"
	"github.com/craftplan/craftplan/pkg/store/database"
	"github.com/craftplan/craftplan/pkg/test"
)

const testWebhookSecret = "test-secret"

// testRouter spins up the full router on a temp sqlite database.
func testRouter(t *testing.T) (context.Context, *backend.Backend, http.Handler) {
	return testRouterConfig(t, nil)
}

func testRouterConfig(t *testing.T, mutate func(*config.Config)) (context.Context, *backend.Backend, http.Handler) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.Identity.WebhookSecret = testWebhookSecret
	if mutate != nil {
		mutate(cfg)
	}
	ctx := config.WithContext(context.TODO(), cfg)

	dbx, err := test.OpenSqlite(ctx, t)
	if err != nil {
		t.Fatal(err)
	}
	if err := migrate.Migrate(ctx, dbx); err != nil {
		t.Fatal(err)
	}

	st := database.New(ctx, dbx)
	ctx = db.WithContext(ctx, dbx)
	ctx = store.WithContext(ctx, st)

	be := backend.New(ctx, cfg, dbx, st)
	ctx = backend.WithContext(ctx, be)

	return ctx, be, NewRouter(ctx)
}

func testToken(t *testing.T, ctx context.Context, be *backend.Backend, externalID, email string) string {
	t.Helper()

	u, err := be.EnsureUser(ctx, proto.Identity{ExternalID: externalID, Email: email})
	if err != nil {
		t.Fatal(err)
	}
	token, err := be.CreateAccessToken(ctx, u, "test", time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestHealthEndpoints(t *testing.T) {
	_, _, h := testRouter(t)

	for _, path := range []string{"/livez", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s => %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}

func TestAPIRequiresAuth(t *testing.T) {
	_, _, h := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/orgs", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /v1/orgs => %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/orgs", nil)
	req.Header.Set("Authorization", "Bearer cp_bogus")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /v1/orgs with bad token => %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAccessTokenAuth(t *testing.T) {
	ctx, be, h := testRouter(t)
	token := testToken(t, ctx, be, "ext-1", "jamie@example.com")

	req := httptest.NewRequest(http.MethodGet, "/v1/orgs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/orgs => %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var orgs []orgResponse
	if err := json.NewDecoder(rec.Body).Decode(&orgs); err != nil {
		t.Fatal(err)
	}
	if len(orgs) != 1 {
		t.Errorf("GET /v1/orgs => %d orgs, want the bootstrapped one", len(orgs))
	}
}

func TestProjectLifecycle(t *testing.T) {
	ctx, be, h := testRouter(t)
	token := testToken(t, ctx, be, "ext-1", "jamie@example.com")

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			if err := json.NewEncoder(&buf).Encode(body); err != nil {
				t.Fatal(err)
			}
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodGet, "/v1/orgs", nil)
	var orgs []orgResponse
	if err := json.NewDecoder(rec.Body).Decode(&orgs); err != nil {
		t.Fatal(err)
	}

	rec = do(http.MethodPost, fmt.Sprintf("/v1/orgs/%d/projects", orgs[0].ID), map[string]interface{}{
		"name": "Kitchen remodel",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST projects => %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}
	var project projectResponse
	if err := json.NewDecoder(rec.Body).Decode(&project); err != nil {
		t.Fatal(err)
	}
	if project.Status != "planning" {
		t.Errorf("new project status => %q, want planning", project.Status)
	}

	rec = do(http.MethodGet, fmt.Sprintf("/v1/projects/%d/phases", project.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET phases => %d, want %d", rec.Code, http.StatusOK)
	}
	var phases []phaseResponse
	if err := json.NewDecoder(rec.Body).Decode(&phases); err != nil {
		t.Fatal(err)
	}
	if len(phases) != 3 {
		t.Errorf("GET phases => %d phases, want 3", len(phases))
	}

	rec = do(http.MethodPatch, fmt.Sprintf("/v1/projects/%d", project.ID), map[string]interface{}{
		"name":   "Kitchen remodel",
		"status": "bogus",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PATCH invalid status => %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec = do(http.MethodDelete, fmt.Sprintf("/v1/projects/%d", project.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE project => %d, want %d", rec.Code, http.StatusNoContent)
	}
	rec = do(http.MethodGet, fmt.Sprintf("/v1/projects/%d", project.ID), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("GET deleted project => %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestIdentityWebhook(t *testing.T) {
	ctx, be, h := testRouter(t)

	body := []byte(`{"id":"evt-1","type":"user.created","data":{"id":"ext-1","email":"jamie@example.com"}}`)

	// Missing signature.
	req := httptest.NewRequest(http.MethodPost, "/webhook/identity", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unsigned webhook => %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// Bad signature.
	req = httptest.NewRequest(http.MethodPost, "/webhook/identity", bytes.NewReader(body))
	req.Header.Set(identitySignatureHeader, "sha256=deadbeef")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("badly signed webhook => %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// Valid signature bootstraps the user.
	req = httptest.NewRequest(http.MethodPost, "/webhook/identity", bytes.NewReader(body))
	req.Header.Set(identitySignatureHeader, signBody(body))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("signed webhook => %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
	}
	if _, err := be.UserByExternalID(ctx, "ext-1"); err != nil {
		t.Errorf("UserByExternalID() => %v, want user created by webhook", err)
	}

	// Replay is accepted and remains a no-op.
	req = httptest.NewRequest(http.MethodPost, "/webhook/identity", bytes.NewReader(body))
	req.Header.Set(identitySignatureHeader, signBody(body))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("replayed webhook => %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestVerifyIdentitySignature(t *testing.T) {
	body := []byte(`{"id":"evt-1"}`)
	if !verifyIdentitySignature(testWebhookSecret, signBody(body), body) {
		t.Error("valid signature rejected")
	}
	if verifyIdentitySignature(testWebhookSecret, signBody([]byte("other")), body) {
		t.Error("signature for a different body accepted")
	}
	if verifyIdentitySignature("", signBody(body), body) {
		t.Error("empty secret accepted")
	}
	if verifyIdentitySignature(testWebhookSecret, "", body) {
		t.Error("empty signature accepted")
	}
}
