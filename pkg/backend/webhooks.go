package backend

import (
	"context"
	"encoding/json"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/webhook"
	"github.com/google/uuid"
)

// CreateWebhook creates a webhook for a project. Requires admin access.
func (b *Backend) CreateWebhook(ctx context.Context, user proto.User, projectID int64, url string, contentType webhook.ContentType, secret string, events []webhook.Event, active bool) error {
	if !b.CanManageProject(ctx, user, projectID) {
		return proto.ErrUnauthorized
	}
	if err := webhook.ValidateWebhookURL(url); err != nil {
		return err
	}

	return b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		lastID, err := b.store.CreateWebhook(ctx, tx, projectID, url, secret, int(contentType), active)
		if err != nil {
			return db.WrapError(err)
		}

		evs := make([]int, len(events))
		for i, e := range events {
			evs[i] = int(e)
		}
		if err := b.store.CreateWebhookEvents(ctx, tx, lastID, evs); err != nil {
			return db.WrapError(err)
		}

		return nil
	})
}

// Webhook returns a webhook for a project. Requires admin access.
func (b *Backend) Webhook(ctx context.Context, user proto.User, projectID int64, id int64) (webhook.Hook, error) {
	if !b.CanManageProject(ctx, user, projectID) {
		return webhook.Hook{}, proto.ErrUnauthorized
	}

	var wh webhook.Hook
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		h, err := b.store.GetWebhookByID(ctx, tx, projectID, id)
		if err != nil {
			return db.WrapError(err)
		}
		events, err := b.store.GetWebhookEventsByWebhookID(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}

		wh = webhook.Hook{
			Webhook:     h,
			ContentType: webhook.ContentType(h.ContentType), //nolint:gosec
			Events:      make([]webhook.Event, len(events)),
		}
		for i, e := range events {
			wh.Events[i] = webhook.Event(e.Event)
		}

		return nil
	}); err != nil {
		return webhook.Hook{}, db.WrapError(err)
	}

	return wh, nil
}

// ListWebhooks lists webhooks for a project. Requires admin access.
func (b *Backend) ListWebhooks(ctx context.Context, user proto.User, projectID int64) ([]webhook.Hook, error) {
	if !b.CanManageProject(ctx, user, projectID) {
		return nil, proto.ErrUnauthorized
	}

	var webhooks []models.Webhook
	webhookEvents := map[int64][]models.WebhookEvent{}
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		webhooks, err = b.store.GetWebhooksByProjectID(ctx, tx, projectID)
		if err != nil {
			return err
		}

		for _, h := range webhooks {
			events, err := b.store.GetWebhookEventsByWebhookID(ctx, tx, h.ID)
			if err != nil {
				return err
			}
			webhookEvents[h.ID] = events
		}

		return nil
	}); err != nil {
		return nil, db.WrapError(err)
	}

	hooks := make([]webhook.Hook, len(webhooks))
	for i, h := range webhooks {
		events := make([]webhook.Event, len(webhookEvents[h.ID]))
		for i, e := range webhookEvents[h.ID] {
			events[i] = webhook.Event(e.Event)
		}

		hooks[i] = webhook.Hook{
			Webhook:     h,
			ContentType: webhook.ContentType(h.ContentType), //nolint:gosec
			Events:      events,
		}
	}

	return hooks, nil
}

// UpdateWebhook updates a webhook. Requires admin access.
func (b *Backend) UpdateWebhook(ctx context.Context, user proto.User, projectID int64, id int64, url string, contentType webhook.ContentType, secret string, updatedEvents []webhook.Event, active bool) error {
	if !b.CanManageProject(ctx, user, projectID) {
		return proto.ErrUnauthorized
	}
	if err := webhook.ValidateWebhookURL(url); err != nil {
		return err
	}

	return b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if err := b.store.UpdateWebhookByID(ctx, tx, projectID, id, url, secret, int(contentType), active); err != nil {
			return db.WrapError(err)
		}

		currentEvents, err := b.store.GetWebhookEventsByWebhookID(ctx, tx, id)
		if err != nil {
			return db.WrapError(err)
		}

		// Delete events that are no longer in the list.
		toBeDeleted := make([]int64, 0)
		for _, e := range currentEvents {
			found := false
			for _, ne := range updatedEvents {
				if int(ne) == e.Event {
					found = true
					break
				}
			}
			if !found {
				toBeDeleted = append(toBeDeleted, e.ID)
			}
		}

		if err := b.store.DeleteWebhookEventsByID(ctx, tx, toBeDeleted); err != nil {
			return db.WrapError(err)
		}

		// Prune events that are already in the list.
		newEvents := make([]int, 0)
		for _, e := range updatedEvents {
			found := false
			for _, ne := range currentEvents {
				if int(e) == ne.Event {
					found = true
					break
				}
			}
			if !found {
				newEvents = append(newEvents, int(e))
			}
		}

		return db.WrapError(b.store.CreateWebhookEvents(ctx, tx, id, newEvents))
	})
}

// DeleteWebhook deletes a webhook for a project. Requires admin access.
func (b *Backend) DeleteWebhook(ctx context.Context, user proto.User, projectID int64, id int64) error {
	if !b.CanManageProject(ctx, user, projectID) {
		return proto.ErrUnauthorized
	}

	return b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := b.store.GetWebhookByID(ctx, tx, projectID, id); err != nil {
			return db.WrapError(err)
		}

		return db.WrapError(b.store.DeleteWebhookForProjectByID(ctx, tx, projectID, id))
	})
}

// ListWebhookDeliveries lists webhook deliveries for a webhook. Requires
// admin access.
func (b *Backend) ListWebhookDeliveries(ctx context.Context, user proto.User, projectID int64, id int64) ([]webhook.Delivery, error) {
	if !b.CanManageProject(ctx, user, projectID) {
		return nil, proto.ErrUnauthorized
	}

	if _, err := b.store.GetWebhookByID(ctx, b.db, projectID, id); err != nil {
		return nil, db.WrapError(err)
	}

	deliveries, err := b.store.ListWebhookDeliveriesByWebhookID(ctx, b.db, id)
	if err != nil {
		return nil, db.WrapError(err)
	}

	ds := make([]webhook.Delivery, len(deliveries))
	for i, d := range deliveries {
		ds[i] = webhook.Delivery{
			WebhookDelivery: d,
			Event:           webhook.Event(d.Event),
		}
	}

	return ds, nil
}

// WebhookDelivery returns a webhook delivery. Requires admin access.
func (b *Backend) WebhookDelivery(ctx context.Context, user proto.User, projectID int64, webhookID int64, id uuid.UUID) (webhook.Delivery, error) {
	if !b.CanManageProject(ctx, user, projectID) {
		return webhook.Delivery{}, proto.ErrUnauthorized
	}

	var delivery webhook.Delivery
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := b.store.GetWebhookByID(ctx, tx, projectID, webhookID); err != nil {
			return db.WrapError(err)
		}

		d, err := b.store.GetWebhookDeliveryByID(ctx, tx, webhookID, id)
		if err != nil {
			return db.WrapError(err)
		}

		delivery = webhook.Delivery{
			WebhookDelivery: d,
			Event:           webhook.Event(d.Event),
		}

		return nil
	}); err != nil {
		return webhook.Delivery{}, db.WrapError(err)
	}

	return delivery, nil
}

// RedeliverWebhookDelivery redelivers a webhook delivery. Requires admin
// access.
func (b *Backend) RedeliverWebhookDelivery(ctx context.Context, user proto.User, projectID int64, id int64, delID uuid.UUID) error {
	if !b.CanManageProject(ctx, user, projectID) {
		return proto.ErrUnauthorized
	}

	var delivery models.WebhookDelivery
	var wh models.Webhook
	if err := b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		wh, err = b.store.GetWebhookByID(ctx, tx, projectID, id)
		if err != nil {
			return db.WrapError(err)
		}

		delivery, err = b.store.GetWebhookDeliveryByID(ctx, tx, id, delID)
		return db.WrapError(err)
	}); err != nil {
		return db.WrapError(err)
	}

	var payload json.RawMessage
	if err := json.Unmarshal([]byte(delivery.RequestBody), &payload); err != nil {
		b.logger.Error("failed to unmarshal webhook payload", "delivery", delID, "err", err)
		return err
	}

	return webhook.SendWebhook(ctx, wh, webhook.Event(delivery.Event), payload)
}
