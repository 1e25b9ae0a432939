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
	Register("prune-deliveries", pruneDeliveries{})
}

// pruneDeliveries removes webhook delivery records older than the
// configured retention.
type pruneDeliveries struct{}

var _ Runner = pruneDeliveries{}

// Spec implements Runner.
func (pruneDeliveries) Spec(ctx context.Context) string {
	cfg := config.FromContext(ctx)
	return cfg.Jobs.PruneDeliveries
}

// Func implements Runner.
func (pruneDeliveries) Func(ctx context.Context) func() {
	cfg := config.FromContext(ctx)
	dbx := db.FromContext(ctx)
	datastore := store.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("jobs.prune-deliveries")
	return func() {
		retention, err := duration.Parse(cfg.Webhook.DeliveryRetention)
		if err != nil {
			logger.Error("invalid delivery retention", "retention", cfg.Webhook.DeliveryRetention, "err", err)
			return
		}

		n, err := datastore.PruneWebhookDeliveries(ctx, dbx, time.Now().Add(-retention))
		if err != nil {
			logger.Error("failed to prune webhook deliveries", "err", err)
			return
		}

		if n > 0 {
			logger.Info("pruned webhook deliveries", "count", n)
		}
	}
}
