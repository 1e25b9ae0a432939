package jobs

import (
	"context"
	"time"

	"github.com/caarlos0/duration"
	"github.com/charmbracelet/log"
	"github.com/craftplan/craftplan/pkg/config"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/store"
)

func init() {
	Register("expire-shares", expireShares{})
}

// expireShares removes share invites that were never accepted within the
// configured TTL.
type expireShares struct{}

var _ Runner = expireShares{}

// Spec implements Runner.
func (expireShares) Spec(ctx context.Context) string {
	cfg := config.FromContext(ctx)
	return cfg.Jobs.ExpireShares
}

// Func implements Runner.
func (expireShares) Func(ctx context.Context) func() {
	cfg := config.FromContext(ctx)
	dbx := db.FromContext(ctx)
	datastore := store.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("jobs.expire-shares")
	return func() {
		ttl, err := duration.Parse(cfg.Share.InviteTTL)
		if err != nil {
			logger.Error("invalid share invite ttl", "ttl", cfg.Share.InviteTTL, "err", err)
			return
		}

		n, err := datastore.DeleteExpiredShares(ctx, dbx, time.Now().Add(-ttl))
		if err != nil {
			logger.Error("failed to expire shares", "err", err)
			return
		}

		if n > 0 {
			logger.Info("expired stale share invites", "count", n)
		}
	}
}
