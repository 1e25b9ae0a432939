package web

import (
	"context"
	"net/http"

	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/craftplan/craftplan/pkg/webhook"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// WebhookController registers the outbound project webhook routes.
func WebhookController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/projects/{project:[0-9]+}/webhooks", listWebhooks).Methods(http.MethodGet)
	r.HandleFunc("/projects/{project:[0-9]+}/webhooks", createWebhook).Methods(http.MethodPost)
	r.HandleFunc("/projects/{project:[0-9]+}/webhooks/{webhook:[0-9]+}", getWebhook).Methods(http.MethodGet)
	r.HandleFunc("/projects/{project:[0-9]+}/webhooks/{webhook:[0-9]+}", updateWebhook).Methods(http.MethodPut)
	r.HandleFunc("/projects/{project:[0-9]+}/webhooks/{webhook:[0-9]+}", deleteWebhook).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{project:[0-9]+}/webhooks/{webhook:[0-9]+}/deliveries", listDeliveries).Methods(http.MethodGet)
	r.HandleFunc("/projects/{project:[0-9]+}/webhooks/{webhook:[0-9]+}/deliveries/{delivery}", getDelivery).Methods(http.MethodGet)
	r.HandleFunc("/projects/{project:[0-9]+}/webhooks/{webhook:[0-9]+}/deliveries/{delivery}/redeliver", redeliver).Methods(http.MethodPost)
}

type webhookRequest struct {
	URL         string              `json:"url"`
	ContentType webhook.ContentType `json:"content_type"`
	Secret      string              `json:"secret"`
	Events      []webhook.Event     `json:"events"`
	Active      bool                `json:"active"`
}

func listWebhooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	hooks, err := be.ListWebhooks(ctx, user, projectID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]webhookResponse, 0, len(hooks))
	for _, h := range hooks {
		res = append(res, toWebhookResponse(h))
	}
	renderJSON(w, http.StatusOK, res)
}

func createWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req webhookRequest
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.CreateWebhook(ctx, user, projectID, req.URL, req.ContentType, req.Secret, req.Events, req.Active); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusCreated)(w, r)
}

func getWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}
	webhookID, err := pathID(r, "webhook")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	hook, err := be.Webhook(ctx, user, projectID, webhookID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, toWebhookResponse(hook))
}

func updateWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}
	webhookID, err := pathID(r, "webhook")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req webhookRequest
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.UpdateWebhook(ctx, user, projectID, webhookID, req.URL, req.ContentType, req.Secret, req.Events, req.Active); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

func deleteWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}
	webhookID, err := pathID(r, "webhook")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.DeleteWebhook(ctx, user, projectID, webhookID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

func listDeliveries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}
	webhookID, err := pathID(r, "webhook")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	deliveries, err := be.ListWebhookDeliveries(ctx, user, projectID, webhookID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]deliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		res = append(res, toDeliveryResponse(d))
	}
	renderJSON(w, http.StatusOK, res)
}

func getDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}
	webhookID, err := pathID(r, "webhook")
	if err != nil {
		renderBadRequest(w, err)
		return
	}
	deliveryID, err := uuid.Parse(mux.Vars(r)["delivery"])
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	delivery, err := be.WebhookDelivery(ctx, user, projectID, webhookID, deliveryID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, toDeliveryResponse(delivery))
}

func redeliver(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}
	webhookID, err := pathID(r, "webhook")
	if err != nil {
		renderBadRequest(w, err)
		return
	}
	deliveryID, err := uuid.Parse(mux.Vars(r)["delivery"])
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.RedeliverWebhookDelivery(ctx, user, projectID, webhookID, deliveryID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusAccepted)(w, r)
}
