// Package backend implements the business logic for Craft Plan.
package backend

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/craftplan/craftplan/pkg/config"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/store"
	"golang.org/x/sync/singleflight"
)

// Backend is the Craft Plan backend that handles users, organizations,
// projects, and access management and operations.
type Backend struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	logger *log.Logger
	cache  *cache
	group  singleflight.Group
}

// New returns a new Craft Plan backend.
func New(ctx context.Context, cfg *config.Config, db *db.DB, st store.Store) *Backend {
	logger := log.FromContext(ctx).WithPrefix("backend")
	b := &Backend{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		store:  st,
		logger: logger,
	}

	b.cache = newCache(b, 1024)

	return b
}
