package migrate

import (
	"context"
	"testing"

	"github.com/craftplan/craftplan/pkg/config"
	"github.com/craftplan/craftplan/pkg/db/internal/test"
)

func TestMigrate(t *testing.T) {
	ctx := config.WithContext(context.TODO(), config.DefaultConfig())
	dbx, err := test.OpenSqlite(ctx, t)
	if err != nil {
		t.Fatal(err)
	}
	if err := Migrate(ctx, dbx); err != nil {
		t.Errorf("Migrate() => %v, want nil error", err)
	}
	// Running again must be a no-op.
	if err := Migrate(ctx, dbx); err != nil {
		t.Errorf("second Migrate() => %v, want nil error", err)
	}
}

func TestRollback(t *testing.T) {
	ctx := config.WithContext(context.TODO(), config.DefaultConfig())
	dbx, err := test.OpenSqlite(ctx, t)
	if err != nil {
		t.Fatal(err)
	}
	if err := Migrate(ctx, dbx); err != nil {
		t.Fatalf("Migrate() => %v, want nil error", err)
	}
	if err := Rollback(ctx, dbx); err != nil {
		t.Errorf("Rollback() => %v, want nil error", err)
	}
}
