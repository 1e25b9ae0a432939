package web

import (
	"context"
	"net/http"

	"github.com/craftplan/craftplan/pkg/backend"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/gorilla/mux"
)

// TemplateController registers the stage template routes.
func TemplateController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/orgs/{org:[0-9]+}/templates", listTemplates).Methods(http.MethodGet)
	r.HandleFunc("/orgs/{org:[0-9]+}/templates", createTemplate).Methods(http.MethodPost)
	r.HandleFunc("/templates/{template:[0-9]+}/items", listTemplateItems).Methods(http.MethodGet)
	r.HandleFunc("/templates/{template:[0-9]+}", deleteTemplate).Methods(http.MethodDelete)
}

func listTemplates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	templates, err := be.Templates(ctx, user, orgID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		res = append(res, toTemplateResponse(t))
	}
	renderJSON(w, http.StatusOK, res)
}

func createTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	orgID, err := pathID(r, "org")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	var req struct {
		Name  string `json:"name"`
		Items []struct {
			Name     string `json:"name"`
			Kind     string `json:"kind"`
			Position int    `json:"position"`
		} `json:"items"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderBadRequest(w, err)
		return
	}

	items := make([]models.StageTemplateItem, 0, len(req.Items))
	for _, i := range req.Items {
		items = append(items, models.StageTemplateItem{
			Name:     i.Name,
			Kind:     i.Kind,
			Position: i.Position,
		})
	}

	template, err := be.CreateTemplate(ctx, user, orgID, req.Name, items)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusCreated, toTemplateResponse(template))
}

func listTemplateItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	templateID, err := pathID(r, "template")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	items, err := be.TemplateItems(ctx, user, templateID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]templateItemResponse, 0, len(items))
	for _, i := range items {
		res = append(res, toTemplateItemResponse(i))
	}
	renderJSON(w, http.StatusOK, res)
}

func deleteTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)
	user := proto.UserFromContext(ctx)

	templateID, err := pathID(r, "template")
	if err != nil {
		renderBadRequest(w, err)
		return
	}

	if err := be.DeleteTemplate(ctx, user, templateID); err != nil {
		renderError(w, r, err)
		return
	}
	renderStatus(http.StatusNoContent)(w, r)
}
