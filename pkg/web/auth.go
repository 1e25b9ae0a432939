package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/config"
	"github.com/craftplan/craftplan/pkg/proto"
	jose "github.com/go-jose/go-jose/v3"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidToken is returned when a bearer token cannot be verified.
var ErrInvalidToken = errors.New("invalid bearer token")

const jwksRefreshInterval = 5 * time.Minute

// jwks is a cached copy of the identity provider's JSON Web Key Set.
// Lookups never block on the network, refreshes run outside the lock and
// concurrent ones collapse into a single fetch.
type jwks struct {
	url   string
	group singleflight.Group

	mu        sync.RWMutex
	set       jose.JSONWebKeySet
	fetchedAt time.Time
}

func newJWKS(url string) *jwks {
	return &jwks{url: url}
}

func (j *jwks) lookup(kid string) ([]jose.JSONWebKey, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.set.Key(kid), time.Since(j.fetchedAt) > jwksRefreshInterval
}

// keyfunc returns the verification key for a token, refreshing the set when
// the key id is unknown or the cached set went stale.
func (j *jwks) keyfunc(token *jwt.Token) (interface{}, error) {
	kid, _ := token.Header["kid"].(string)

	keys, stale := j.lookup(kid)
	if len(keys) == 0 || stale {
		if _, err, _ := j.group.Do("refresh", func() (interface{}, error) {
			return nil, j.refresh()
		}); err != nil {
			return nil, err
		}
		keys, _ = j.lookup(kid)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: unknown key id %q", ErrInvalidToken, kid)
	}

	return keys[0].Key, nil
}

func (j *jwks) refresh() error {
	res, err := http.Get(j.url) //nolint:gosec,noctx
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	defer res.Body.Close() // nolint: errcheck

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch jwks: %s", res.Status)
	}

	var set jose.JSONWebKeySet
	if err := json.NewDecoder(res.Body).Decode(&set); err != nil {
		return fmt.Errorf("decode jwks: %w", err)
	}

	j.mu.Lock()
	j.set = set
	j.fetchedAt = time.Now()
	j.mu.Unlock()
	return nil
}

// NewAuthMiddleware returns a middleware that authenticates requests. It
// accepts identity provider JWTs and personal access tokens as bearer
// credentials. JWT principals are bootstrapped on first sight, the
// authenticated user ends up in the request context.
func NewAuthMiddleware(ctx context.Context) func(http.Handler) http.Handler {
	cfg := config.FromContext(ctx)
	keys := newJWKS(cfg.Identity.JWKSURL)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			be := backend.FromContext(ctx)

			token := bearerToken(r)
			if token == "" {
				renderStatus(http.StatusUnauthorized)(w, r)
				return
			}

			var user proto.User
			var err error
			if strings.HasPrefix(token, "cp_") {
				user, err = be.UserByAccessToken(ctx, token)
			} else {
				user, err = userFromJWT(ctx, be, cfg, keys, token)
			}
			if err != nil {
				renderStatus(http.StatusUnauthorized)(w, r)
				return
			}

			r = r.WithContext(proto.WithUserContext(ctx, user))
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, prefix))
}

// userFromJWT verifies an identity provider token and resolves it to a
// user, bootstrapping the user on first sight.
func userFromJWT(ctx context.Context, be *backend.Backend, cfg *config.Config, keys *jwks, token string) (proto.User, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, keys.keyfunc,
		jwt.WithIssuer(cfg.Identity.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}

	identity := proto.Identity{
		ExternalID: sub,
		Email:      stringClaim(claims, "email"),
		FirstName:  stringClaim(claims, "given_name"),
		LastName:   stringClaim(claims, "family_name"),
		AvatarURL:  stringClaim(claims, "picture"),
	}

	return be.EnsureUser(ctx, identity)
}

func stringClaim(claims jwt.MapClaims, name string) string {
	s, _ := claims[name].(string)
	return s
}
