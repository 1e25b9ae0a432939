package backend

import (
	"context"
	"testing"

	"github.com/craftplan/craftplan/pkg/config"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/migrate"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/store"
	"github.com/craftplan/craftplan/pkg/store/database"
	"github.com/craftplan/craftplan/pkg/test"
)

// testBackend spins up a backend on a temp sqlite database.
func testBackend(t *testing.T) (context.Context, *Backend) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataPath = t.TempDir()
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

	be := New(ctx, cfg, dbx, st)
	ctx = WithContext(ctx, be)

	return ctx, be
}

func testUser(t *testing.T, ctx context.Context, be *Backend, externalID, email string) proto.User {
	t.Helper()

	u, err := be.EnsureUser(ctx, proto.Identity{
		ExternalID: externalID,
		Email:      email,
	})
	if err != nil {
		t.Fatalf("EnsureUser(%q) => %v, want nil error", externalID, err)
	}
	return u
}
