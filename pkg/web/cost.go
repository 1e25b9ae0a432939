package web

import (
	"context"
	"net/http"

	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/gorilla/mux"
)

// CostController registers the stage cost and note routes.
func CostController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/stages/{stage:[0-9]+}/costs", listCosts).Methods(http.MethodGet)
	r.HandleFunc("/stages/{stage:[0-9]+}/costs", createCost).Methods(http.MethodPost)
	r.HandleFunc("/costs/{cost:[0-9]+}", updateCost).Methods(http.MethodPatch)
	r.HandleFunc("/costs/{cost:[0-9]+}", deleteCost).Methods(http.MethodDelete)
	r.HandleFunc("/stages/{stage:[0-9]+}/notes", listNotes).Methods(http.MethodGet)
	r.HandleFunc("/stages/{stage:[0-9]+}/notes", createNote).Methods(http.MethodPost)
	r.HandleFunc("/notes/{note:[0-9]+}", deleteNote).Methods(http.MethodDelete)
}

// centsOrNull maps an absent amount to the backend's null sentinel.
func centsOrNull(v *int64) int64 {
	if v == nil {
		return -1
	}
	return *v
}

func listCosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	stageID, err := pathID(r, "stage")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	costs, err := be.Costs(ctx, user, stageID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]costResponse, 0, len(costs))
	for _, c := range costs {
		res = append(res, toCostResponse(c))
	}
	renderJSON(w, http.StatusOK, res)
}

func createCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	stageID, err := pathID(r, "stage")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		Description   string `json:"description"`
		EstimateCents *int64 `json:"estimate_cents"`
		ActualCents   *int64 `json:"actual_cents"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	cost, err := be.CreateCost(ctx, user, stageID, req.Description, centsOrNull(req.EstimateCents), centsOrNull(req.ActualCents))
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, toCostResponse(cost))
}

func updateCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	costID, err := pathID(r, "cost")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		Description   string `json:"description"`
		EstimateCents *int64 `json:"estimate_cents"`
		ActualCents   *int64 `json:"actual_cents"`
		Paid          bool   `json:"paid"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.UpdateCost(ctx, user, costID, req.Description, centsOrNull(req.EstimateCents), centsOrNull(req.ActualCents), req.Paid); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

func deleteCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	costID, err := pathID(r, "cost")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.DeleteCost(ctx, user, costID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

func listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	stageID, err := pathID(r, "stage")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	notes, err := be.Notes(ctx, user, stageID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, toNoteResponse(n))
	}
	renderJSON(w, http.StatusOK, res)
}

func createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	stageID, err := pathID(r, "stage")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	note, err := be.CreateNote(ctx, user, stageID, req.Body)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, toNoteResponse(note))
}

func deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	noteID, err := pathID(r, "note")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.DeleteNote(ctx, user, noteID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}
