package web

import (
	"context"
	"net/http"

	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/gorilla/mux"
)

// StageController registers the stage routes.
func StageController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/phases/{phase:[0-9]+}/stages", listStages).Methods(http.MethodGet)
	r.HandleFunc("/phases/{phase:[0-9]+}/stages", createStage).Methods(http.MethodPost)
	r.HandleFunc("/phases/{phase:[0-9]+}/stages/order", reorderStages).Methods(http.MethodPut)
	r.HandleFunc("/stages/{stage:[0-9]+}", updateStage).Methods(http.MethodPatch)
	r.HandleFunc("/stages/{stage:[0-9]+}", deleteStage).Methods(http.MethodDelete)
}

func listStages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	phaseID, err := pathID(r, "phase")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	stages, err := be.Stages(ctx, user, phaseID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]stageResponse, 0, len(stages))
	for _, s := range stages {
		res = append(res, toStageResponse(s))
	}
	renderJSON(w, http.StatusOK, res)
}

func createStage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	phaseID, err := pathID(r, "phase")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		Name     string `json:"name"`
		Kind     string `json:"kind"`
		Position int    `json:"position"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	stage, err := be.CreateStage(ctx, user, phaseID, req.Name, req.Kind, req.Position)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, toStageResponse(stage))
}

func reorderStages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	phaseID, err := pathID(r, "phase")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.ReorderStages(ctx, user, phaseID, req.IDs); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

// updateStage applies a partial stage update. Absent fields are untouched.
func updateStage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	stageID, err := pathID(r, "stage")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		Name      *string `json:"name"`
		Enabled   *bool   `json:"enabled"`
		Completed *bool   `json:"completed"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	if req.Name != nil {
		if err := be.RenameStage(ctx, user, stageID, *req.Name); err != nil {
			renderError(w, r, err)
			return
		}
	}
	if req.Enabled != nil {
		if err := be.SetStageEnabled(ctx, user, stageID, *req.Enabled); err != nil {
			renderError(w, r, err)
			return
		}
	}
	if req.Completed != nil {
		if err := be.SetStageCompleted(ctx, user, stageID, *req.Completed); err != nil {
			renderError(w, r, err)
			return
		}
	}

	renderStatus(http.StatusNoContent)(w, r)
}

func deleteStage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	stageID, err := pathID(r, "stage")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.DeleteStage(ctx, user, stageID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}
