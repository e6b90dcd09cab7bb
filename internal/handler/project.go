// internal/handler/project.go
package handler

import (
	"net/http"
	"net/url"

	"github.com/dangerclosesec/colab/internal/auth"
	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/middleware"
	"github.com/dangerclosesec/colab/internal/repository"
	"github.com/dangerclosesec/colab/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ProjectHandler serves project pages and the filtered listings.
type ProjectHandler struct {
	web
	projectService *service.ProjectService
	catalogService *service.CatalogService
}

func NewProjectHandler(
	projectService *service.ProjectService,
	catalogService *service.CatalogService,
	renderer *Renderer,
	sessions *auth.SessionManager,
) *ProjectHandler {
	return &ProjectHandler{
		web:            web{renderer: renderer, sessions: sessions},
		projectService: projectService,
		catalogService: catalogService,
	}
}

// listingForm is the filter form above the project listings.
type listingForm struct {
	Sectors         []uint `form:"sectors"`
	Stacks          []uint `form:"stacks"`
	PreferencesOnly bool   `form:"show_preferences_only"`
}

func (h *ProjectHandler) renderForm(w http.ResponseWriter, r *http.Request, title, action string, form url.Values, sectorID uint, errs map[string]string) {
	sectors, err := h.catalogService.Sectors(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "project_form", Data{
		"Title":    title,
		"Action":   action,
		"Form":     form,
		"Errors":   errs,
		"Sectors":  sectors,
		"SectorID": sectorID,
	})
}

func (h *ProjectHandler) AddProject(w http.ResponseWriter, r *http.Request) {
	current := middleware.CurrentUser(r.Context())
	username := chi.URLParam(r, "username")
	action := "/users/" + url.PathEscape(username) + "/projects/add"

	if current.Username != username {
		middleware.DenyAccess(w, r, h.sessions)
		return
	}

	if r.Method == http.MethodGet {
		h.renderForm(w, r, "Add project", action, url.Values{}, 0, nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err)
		return
	}

	var input service.ProjectInput
	if fields := decodeForm(&input, r.PostForm); fields != nil {
		h.renderForm(w, r, "Add project", action, r.PostForm, input.SectorID, fields)
		return
	}

	project, err := h.projectService.Create(r.Context(), current.Username, username, input)
	if err != nil {
		if fields := service.FieldErrors(err); fields != nil {
			h.renderForm(w, r, "Add project", action, r.PostForm, input.SectorID, fields)
			return
		}
		h.fail(w, r, err)
		return
	}

	h.flash(w, r, auth.FlashInfo, "You created new project")
	h.redirect(w, r, "/projects/"+project.ID.String())
}

func (h *ProjectHandler) projectID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.ErrProjectNotFound
	}
	return id, nil
}

func (h *ProjectHandler) ShowProject(w http.ResponseWriter, r *http.Request) {
	current := middleware.CurrentUser(r.Context())

	id, err := h.projectID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	project, err := h.projectService.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "project", Data{
		"Title":   project.Title,
		"Project": project,
		"IsOwner": project.OwnerID == current.ID,
	})
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	current := middleware.CurrentUser(r.Context())

	id, err := h.projectID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	action := "/projects/" + id.String() + "/update"

	if r.Method == http.MethodGet {
		project, err := h.projectService.GetOwned(r.Context(), current.Username, id)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		form := url.Values{}
		form.Set("title", project.Title)
		form.Set("description", project.Description)
		form.Set("git_repo", project.GitRepo)
		h.renderForm(w, r, "Edit project", action, form, project.SectorID, nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err)
		return
	}

	var input service.ProjectInput
	if fields := decodeForm(&input, r.PostForm); fields != nil {
		h.renderForm(w, r, "Edit project", action, r.PostForm, input.SectorID, fields)
		return
	}

	project, err := h.projectService.Update(r.Context(), current.Username, id, input)
	if err != nil {
		if fields := service.FieldErrors(err); fields != nil {
			h.renderForm(w, r, "Edit project", action, r.PostForm, input.SectorID, fields)
			return
		}
		h.fail(w, r, err)
		return
	}

	h.flash(w, r, auth.FlashInfo, "Project updated")
	h.redirect(w, r, "/projects/"+project.ID.String())
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	current := middleware.CurrentUser(r.Context())

	id, err := h.projectID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.projectService.Delete(r.Context(), current.Username, id); err != nil {
		h.fail(w, r, err)
		return
	}

	h.flash(w, r, auth.FlashInfo, "Project deleted")
	h.redirect(w, r, "/users/"+url.PathEscape(current.Username))
}

// ListProjects shows other users' projects.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListOwnedProjects shows the signed-in user's projects.
func (h *ProjectHandler) ListOwnedProjects(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// list reads the filter from the submitted form, or the query string on
// GET. Ids that do not parse are ignored.
func (h *ProjectHandler) list(w http.ResponseWriter, r *http.Request, owned bool) {
	current := middleware.CurrentUser(r.Context())

	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err)
		return
	}

	var in listingForm
	decodeForm(&in, r.Form)

	filter := repository.ProjectFilter{
		ViewerID:  current.ID,
		Owned:     owned,
		SectorIDs: positiveIDs(in.Sectors),
		StackIDs:  positiveIDs(in.Stacks),
	}
	if !owned {
		filter.PreferredOnly = in.PreferencesOnly
	}

	projects, err := h.projectService.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	sectors, err := h.catalogService.Sectors(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	stacks, err := h.catalogService.Stacks(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	title, action := "Projects", "/projects"
	if owned {
		title, action = "My projects", "/owned-projects"
	}

	h.renderer.Render(w, r, http.StatusOK, "projects", Data{
		"Title":    title,
		"Action":   action,
		"Owned":    owned,
		"Projects": projects,
		"Sectors":  sectors,
		"Stacks":   stacks,
		"Filter":   filter,
	})
}
