package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/craftplan/craftplan/pkg/config"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter returns a new HTTP router.
func NewRouter(ctx context.Context) http.Handler {
	logger := log.FromContext(ctx).WithPrefix("http")
	cfg := config.FromContext(ctx)
	router := mux.NewRouter()

	HealthController(ctx, router)
	IdentityController(ctx, router)

	// API routes
	api := router.PathPrefix("/v1").Subrouter()
	api.Use(NewAuthMiddleware(ctx))
	UserController(ctx, api)
	OrgController(ctx, api)
	ProjectController(ctx, api)
	StageController(ctx, api)
	ShareController(ctx, api)
	ContactController(ctx, api)
	CostController(ctx, api)
	TemplateController(ctx, api)
	TokenController(ctx, api)
	WebhookController(ctx, api)

	router.PathPrefix("/").HandlerFunc(renderNotFound)

	// Context handler
	// Adds context to the request
	h := NewLoggingMiddleware(router, logger)
	h = NewContextHandler(ctx)(h)
	h = NewCORSMiddleware(cfg.HTTP.AllowedOrigins)(h)
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler()(h)

	return h
}
