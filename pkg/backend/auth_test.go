package backend

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/craftplan/craftplan/pkg/proto"
)

func TestGenerateToken(t *testing.T) {
	token := GenerateToken()
	if token == "" {
		t.Fatal("token is empty")
	}
	if !strings.HasPrefix(token, "cp_") {
		t.Fatalf("token %q has no cp_ prefix", token)
	}
	if token == GenerateToken() {
		t.Fatal("two generated tokens are identical")
	}
}

func TestHashToken(t *testing.T) {
	token := GenerateToken()
	hash := HashToken(token)
	if hash == "" {
		t.Fatal("hash is empty")
	}
	if hash != HashToken(token) {
		t.Fatal("hashing is not deterministic")
	}
}

func TestAccessTokenRoundtrip(t *testing.T) {
	ctx, be := testBackend(t)
	user := testUser(t, ctx, be, "ext-1", "jamie@example.com")

	token, err := be.CreateAccessToken(ctx, user, "ci", time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	got, err := be.UserByAccessToken(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID() != user.ID() {
		t.Errorf("UserByAccessToken() => user %d, want %d", got.ID(), user.ID())
	}

	tokens, err := be.ListAccessTokens(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 || tokens[0].Name != "ci" {
		t.Fatalf("ListAccessTokens() => %+v, want one token named ci", tokens)
	}

	if err := be.DeleteAccessToken(ctx, user, tokens[0].ID); err != nil {
		t.Fatal(err)
	}
	if _, err := be.UserByAccessToken(ctx, token); !errors.Is(err, proto.ErrUserNotFound) {
		t.Errorf("UserByAccessToken(deleted) => %v, want ErrUserNotFound", err)
	}
}

func TestAccessTokenExpired(t *testing.T) {
	ctx, be := testBackend(t)
	user := testUser(t, ctx, be, "ext-1", "jamie@example.com")

	token, err := be.CreateAccessToken(ctx, user, "old", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := be.UserByAccessToken(ctx, token); !errors.Is(err, proto.ErrTokenExpired) {
		t.Errorf("UserByAccessToken(expired) => %v, want ErrTokenExpired", err)
	}
}
