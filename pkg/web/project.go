package web

import (
	"context"
	"net/http"

	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/gorilla/mux"
)

// ProjectController registers the project routes.
func ProjectController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/orgs/{org:[0-9]+}/projects", listProjects).Methods(http.MethodGet)
	r.HandleFunc("/orgs/{org:[0-9]+}/projects", createProject).Methods(http.MethodPost)
	r.HandleFunc("/projects/{project:[0-9]+}", getProject).Methods(http.MethodGet)
	r.HandleFunc("/projects/{project:[0-9]+}", updateProject).Methods(http.MethodPatch)
	r.HandleFunc("/projects/{project:[0-9]+}", deleteProject).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{project:[0-9]+}/phases", listPhases).Methods(http.MethodGet)
}

func listProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	projects, err := be.ProjectsForOrg(ctx, user, orgID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		res = append(res, toProjectResponse(p))
	}
	renderJSON(w, http.StatusOK, res)
}

func createProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		Name       string `json:"name"`
		Address    string `json:"address"`
		TemplateID int64  `json:"template_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	project, err := be.CreateProject(ctx, user, orgID, req.Name, req.Address, req.TemplateID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, toProjectResponse(project))
}

func getProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	project, err := be.Project(ctx, user, projectID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, toProjectResponse(project))
}

func updateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		Status  string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	project, err := be.UpdateProject(ctx, user, projectID, req.Name, req.Address, req.Status)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, toProjectResponse(project))
}

func deleteProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.DeleteProject(ctx, user, projectID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}

func listPhases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	projectID, err := pathID(r, "project")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	phases, err := be.Phases(ctx, user, projectID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]phaseResponse, 0, len(phases))
	for _, p := range phases {
		res = append(res, toPhaseResponse(p))
	}
	renderJSON(w, http.StatusOK, res)
}
