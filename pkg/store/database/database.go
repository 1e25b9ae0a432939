// Package database implements the store interfaces on top of sqlx.
package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/craftplan/craftplan/pkg/config"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/store"
)

type datastore struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	logger *log.Logger

	*userStore
	*orgStore
	*contactStore
	*projectStore
	*stageStore
	*shareStore
	*projectContactStore
	*templateStore
	*costStore
	*accessTokenStore
	*webhookStore
	*identityEventStore
}

// New returns a new store.Store database.
func New(ctx context.Context, db *db.DB) store.Store {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("store")

	s := &datastore{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		logger: logger,

		userStore:           &userStore{},
		orgStore:            &orgStore{},
		contactStore:        &contactStore{},
		projectStore:        &projectStore{},
		stageStore:          &stageStore{},
		shareStore:          &shareStore{},
		projectContactStore: &projectContactStore{},
		templateStore:       &templateStore{},
		costStore:           &costStore{},
		accessTokenStore:    &accessTokenStore{},
		webhookStore:        &webhookStore{},
		identityEventStore:  &identityEventStore{},
	}

	return s
}
