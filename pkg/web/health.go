package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/craftplan/craftplan/pkg/db"
	"github.com/gorilla/mux"
)

// HealthController registers the health check routes for the web server.
func HealthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/livez", getLiveness)
	r.HandleFunc("/readyz", getReadiness)
}

func getLiveness(w http.ResponseWriter, _ *http.Request) {
	renderStatus(http.StatusOK)(w, nil)
}

// getReadiness reports ready only when the database answers a ping.
func getReadiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := db.FromContext(ctx).PingContext(ctx); err != nil {
		log.FromContext(ctx).Error("readiness check failed", "err", err)
		renderStatus(http.StatusServiceUnavailable)(w, nil)
		return
	}

	renderStatus(http.StatusOK)(w, nil)
}
