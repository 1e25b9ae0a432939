package web

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/craftplan/craftplan/pkg/config"
	jose "github.com/go-jose/go-jose/v3"
	jwt "github.com/golang-jwt/jwt/v5"
)

// jwksServer serves a key set for key. The returned release channel gates
// every fetch after the first, fetches reports the request count.
func jwksServer(t *testing.T, key *rsa.PrivateKey, kid string) (srv *httptest.Server, fetches *atomic.Int32, release chan struct{}) {
	t.Helper()

	set := jose.JSONWebKeySet{
		Keys: []jose.JSONWebKey{
			{Key: &key.PublicKey, KeyID: kid, Algorithm: "RS256", Use: "sig"},
		},
	}
	body, err := json.Marshal(set)
	if err != nil {
		t.Fatal(err)
	}

	fetches = new(atomic.Int32)
	release = make(chan struct{})
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fetches.Add(1) > 1 {
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body) // nolint: errcheck
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() {
		select {
		case <-release:
		default:
			close(release)
		}
	})

	return srv, fetches, release
}

func testRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

func TestJWKSKeyfunc(t *testing.T) {
	key := testRSAKey(t)
	srv, fetches, _ := jwksServer(t, key, "k1")
	keys := newJWKS(srv.URL)

	got, err := keys.keyfunc(&jwt.Token{Header: map[string]interface{}{"kid": "k1"}})
	if err != nil {
		t.Fatalf("keyfunc(known kid) => %v, want key", err)
	}
	if pub, ok := got.(*rsa.PublicKey); !ok || !pub.Equal(&key.PublicKey) {
		t.Errorf("keyfunc(known kid) => %T, want the served public key", got)
	}
	if n := fetches.Load(); n != 1 {
		t.Errorf("fetch count => %d, want 1", n)
	}

	// A cached hit must not refetch.
	if _, err := keys.keyfunc(&jwt.Token{Header: map[string]interface{}{"kid": "k1"}}); err != nil {
		t.Fatal(err)
	}
	if n := fetches.Load(); n != 1 {
		t.Errorf("fetch count after cached hit => %d, want 1", n)
	}
}

func TestJWKSLookupDoesNotBlockOnRefresh(t *testing.T) {
	key := testRSAKey(t)
	srv, _, release := jwksServer(t, key, "k1")
	keys := newJWKS(srv.URL)

	// Prime the cache.
	if _, err := keys.keyfunc(&jwt.Token{Header: map[string]interface{}{"kid": "k1"}}); err != nil {
		t.Fatal(err)
	}

	// An unknown kid triggers a refresh that hangs on the server.
	unknown := make(chan error, 1)
	go func() {
		_, err := keys.keyfunc(&jwt.Token{Header: map[string]interface{}{"kid": "nope"}})
		unknown <- err
	}()

	// A known kid must keep resolving from the cache meanwhile.
	done := make(chan error, 1)
	go func() {
		_, err := keys.keyfunc(&jwt.Token{Header: map[string]interface{}{"kid": "k1"}})
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("keyfunc(cached kid) => %v, want key", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("cached lookup blocked behind an in-flight refresh")
	}

	close(release)
	if err := <-unknown; !errors.Is(err, ErrInvalidToken) {
		t.Errorf("keyfunc(unknown kid) => %v, want ErrInvalidToken", err)
	}
}

func TestJWTAuth(t *testing.T) {
	key := testRSAKey(t)
	srv, _, _ := jwksServer(t, key, "k1")

	const issuer = "https://id.example.com"
	_, _, h := testRouterConfig(t, func(cfg *config.Config) {
		cfg.Identity.Issuer = issuer
		cfg.Identity.JWKSURL = srv.URL
	})

	claims := jwt.MapClaims{
		"iss":   issuer,
		"sub":   "ext-jwt",
		"email": "jamie@example.com",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "k1"
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/user", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/user => %d, want %d", rec.Code, http.StatusOK)
	}

	var u userResponse
	if err := json.NewDecoder(rec.Body).Decode(&u); err != nil {
		t.Fatal(err)
	}
	if u.Email != "jamie@example.com" {
		t.Errorf("Email => %q, want %q", u.Email, "jamie@example.com")
	}

	// A token from another issuer is rejected.
	claims["iss"] = "https://evil.example.com"
	bad := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	bad.Header["kid"] = "k1"
	signedBad, err := bad.SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	req = httptest.NewRequest(http.MethodGet, "/v1/user", nil)
	req.Header.Set("Authorization", "Bearer "+signedBad)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /v1/user (wrong issuer) => %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
