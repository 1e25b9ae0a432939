package database

import (
	"context"
	"time"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type webhookStore struct{}

var _ store.WebhookStore = (*webhookStore)(nil)

// GetWebhookByID implements store.WebhookStore.
func (*webhookStore) GetWebhookByID(ctx context.Context, tx db.Handler, projectID int64, id int64) (models.Webhook, error) {
	var m models.Webhook
	query := tx.Rebind(`SELECT * FROM webhooks WHERE project_id = ? AND id = ?;`)
	err := tx.GetContext(ctx, &m, query, projectID, id)
	return m, err //nolint:wrapcheck
}

// GetWebhooksByProjectID implements store.WebhookStore.
func (*webhookStore) GetWebhooksByProjectID(ctx context.Context, tx db.Handler, projectID int64) ([]models.Webhook, error) {
	var ms []models.Webhook
	query := tx.Rebind(`SELECT * FROM webhooks WHERE project_id = ? ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query, projectID)
	return ms, err //nolint:wrapcheck
}

// GetWebhooksByProjectIDWhereEvent implements store.WebhookStore.
func (*webhookStore) GetWebhooksByProjectIDWhereEvent(ctx context.Context, tx db.Handler, projectID int64, events []int) ([]models.Webhook, error) {
	query, args, err := sqlx.In(`SELECT DISTINCT webhooks.*
			FROM webhooks
			INNER JOIN webhook_events ON webhook_events.webhook_id = webhooks.id
			WHERE webhooks.project_id = ? AND webhooks.active = true AND webhook_events.event IN (?);`,
		projectID, events)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	var ms []models.Webhook
	err = tx.SelectContext(ctx, &ms, tx.Rebind(query), args...)
	return ms, err //nolint:wrapcheck
}

// CreateWebhook implements store.WebhookStore.
func (*webhookStore) CreateWebhook(ctx context.Context, tx db.Handler, projectID int64, url string, secret string, contentType int, active bool) (int64, error) {
	query := tx.Rebind(`INSERT INTO webhooks (project_id, url, secret, content_type, active, updated_at)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	err := tx.GetContext(ctx, &id, query, projectID, url, secret, contentType, active)
	return id, err //nolint:wrapcheck
}

// UpdateWebhookByID implements store.WebhookStore.
func (*webhookStore) UpdateWebhookByID(ctx context.Context, tx db.Handler, projectID int64, id int64, url string, secret string, contentType int, active bool) error {
	query := tx.Rebind(`UPDATE webhooks
			SET url = ?, secret = ?, content_type = ?, active = ?, updated_at = CURRENT_TIMESTAMP
			WHERE project_id = ? AND id = ?;`)
	_, err := tx.ExecContext(ctx, query, url, secret, contentType, active, projectID, id)
	return err //nolint:wrapcheck
}

// DeleteWebhookForProjectByID implements store.WebhookStore.
func (*webhookStore) DeleteWebhookForProjectByID(ctx context.Context, tx db.Handler, projectID int64, id int64) error {
	query := tx.Rebind(`DELETE FROM webhooks WHERE project_id = ? AND id = ?;`)
	_, err := tx.ExecContext(ctx, query, projectID, id)
	return err //nolint:wrapcheck
}

// GetWebhookEventsByWebhookID implements store.WebhookStore.
func (*webhookStore) GetWebhookEventsByWebhookID(ctx context.Context, tx db.Handler, webhookID int64) ([]models.WebhookEvent, error) {
	var ms []models.WebhookEvent
	query := tx.Rebind(`SELECT * FROM webhook_events WHERE webhook_id = ? ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query, webhookID)
	return ms, err //nolint:wrapcheck
}

// CreateWebhookEvents implements store.WebhookStore.
func (*webhookStore) CreateWebhookEvents(ctx context.Context, tx db.Handler, webhookID int64, events []int) error {
	query := tx.Rebind(`INSERT INTO webhook_events (webhook_id, event) VALUES (?, ?);`)
	for _, event := range events {
		if _, err := tx.ExecContext(ctx, query, webhookID, event); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

// DeleteWebhookEventsByID implements store.WebhookStore.
func (*webhookStore) DeleteWebhookEventsByID(ctx context.Context, tx db.Handler, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM webhook_events WHERE id IN (?);`, ids)
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(query), args...)
	return err //nolint:wrapcheck
}

// GetWebhookDeliveryByID implements store.WebhookStore.
func (*webhookStore) GetWebhookDeliveryByID(ctx context.Context, tx db.Handler, webhookID int64, id uuid.UUID) (models.WebhookDelivery, error) {
	var m models.WebhookDelivery
	query := tx.Rebind(`SELECT * FROM webhook_deliveries WHERE webhook_id = ? AND id = ?;`)
	err := tx.GetContext(ctx, &m, query, webhookID, id)
	return m, err //nolint:wrapcheck
}

// ListWebhookDeliveriesByWebhookID implements store.WebhookStore.
func (*webhookStore) ListWebhookDeliveriesByWebhookID(ctx context.Context, tx db.Handler, webhookID int64) ([]models.WebhookDelivery, error) {
	var ms []models.WebhookDelivery
	query := tx.Rebind(`SELECT id, webhook_id, event, response_status, created_at
			FROM webhook_deliveries
			WHERE webhook_id = ?
			ORDER BY created_at DESC;`)
	err := tx.SelectContext(ctx, &ms, query, webhookID)
	return ms, err //nolint:wrapcheck
}

// CreateWebhookDelivery implements store.WebhookStore.
func (*webhookStore) CreateWebhookDelivery(ctx context.Context, tx db.Handler, id uuid.UUID, webhookID int64, event int, url string, method string, requestError error, requestHeaders string, requestBody string, responseStatus int, responseHeaders string, responseBody string) error {
	var reqErr interface{}
	if requestError != nil {
		reqErr = requestError.Error()
	}

	query := tx.Rebind(`INSERT INTO webhook_deliveries (
			id, webhook_id, event, request_url, request_method, request_error,
			request_headers, request_body, response_status, response_headers, response_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	_, err := tx.ExecContext(ctx, query, id, webhookID, event, url, method, reqErr,
		requestHeaders, requestBody, responseStatus, responseHeaders, responseBody)
	return err //nolint:wrapcheck
}

// PruneWebhookDeliveries implements store.WebhookStore.
func (*webhookStore) PruneWebhookDeliveries(ctx context.Context, tx db.Handler, before time.Time) (int64, error) {
	query := tx.Rebind(`DELETE FROM webhook_deliveries WHERE created_at < ?;`)
	res, err := tx.ExecContext(ctx, query, before)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	n, err := res.RowsAffected()
	return n, err //nolint:wrapcheck
}
