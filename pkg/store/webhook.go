package store

import (
	"context"
	"time"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/google/uuid"
)

// WebhookStore is an interface for managing outbound project webhooks.
type WebhookStore interface {
	// GetWebhookByID returns a webhook by its ID.
	GetWebhookByID(ctx context.Context, h db.Handler, projectID int64, id int64) (models.Webhook, error)
	// GetWebhooksByProjectID returns all webhooks for a project.
	GetWebhooksByProjectID(ctx context.Context, h db.Handler, projectID int64) ([]models.Webhook, error)
	// GetWebhooksByProjectIDWhereEvent returns all webhooks for a project where event is in the events.
	GetWebhooksByProjectIDWhereEvent(ctx context.Context, h db.Handler, projectID int64, events []int) ([]models.Webhook, error)
	// CreateWebhook creates a webhook.
	CreateWebhook(ctx context.Context, h db.Handler, projectID int64, url string, secret string, contentType int, active bool) (int64, error)
	// UpdateWebhookByID updates a webhook by its ID.
	UpdateWebhookByID(ctx context.Context, h db.Handler, projectID int64, id int64, url string, secret string, contentType int, active bool) error
	// DeleteWebhookForProjectByID deletes a webhook for a project by its ID.
	DeleteWebhookForProjectByID(ctx context.Context, h db.Handler, projectID int64, id int64) error

	// GetWebhookEventsByWebhookID returns all webhook events for a webhook.
	GetWebhookEventsByWebhookID(ctx context.Context, h db.Handler, webhookID int64) ([]models.WebhookEvent, error)
	// CreateWebhookEvents creates webhook events for a webhook.
	CreateWebhookEvents(ctx context.Context, h db.Handler, webhookID int64, events []int) error
	// DeleteWebhookEventsByID deletes webhook events by their IDs.
	DeleteWebhookEventsByID(ctx context.Context, h db.Handler, ids []int64) error

	// GetWebhookDeliveryByID returns a webhook delivery by its ID.
	GetWebhookDeliveryByID(ctx context.Context, h db.Handler, webhookID int64, id uuid.UUID) (models.WebhookDelivery, error)
	// ListWebhookDeliveriesByWebhookID returns all webhook deliveries for a webhook.
	// This only returns the delivery ID, response status, and event.
	ListWebhookDeliveriesByWebhookID(ctx context.Context, h db.Handler, webhookID int64) ([]models.WebhookDelivery, error)
	// CreateWebhookDelivery creates a webhook delivery.
	CreateWebhookDelivery(ctx context.Context, h db.Handler, id uuid.UUID, webhookID int64, event int, url string, method string, requestError error, requestHeaders string, requestBody string, responseStatus int, responseHeaders string, responseBody string) error
	// PruneWebhookDeliveries removes deliveries created before the given
	// time. Returns the number of deliveries removed.
	PruneWebhookDeliveries(ctx context.Context, h db.Handler, before time.Time) (int64, error)
}
