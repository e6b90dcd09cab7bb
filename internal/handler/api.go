// internal/handler/api.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/middleware"
	"github.com/dangerclosesec/colab/internal/model"
	"github.com/dangerclosesec/colab/internal/repository"
	"github.com/dangerclosesec/colab/internal/service"
	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// APIHandler serves the read-only JSON API.
type APIHandler struct {
	userService    *service.UserService
	projectService *service.ProjectService
	catalogService *service.CatalogService
}

func NewAPIHandler(
	userService *service.UserService,
	projectService *service.ProjectService,
	catalogService *service.CatalogService,
) *APIHandler {
	return &APIHandler{
		userService:    userService,
		projectService: projectService,
		catalogService: catalogService,
	}
}

type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	BaseResponse
	Token string `json:"token"`
}

type ProjectView struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	GitRepo       string    `json:"git_repo"`
	Owner         string    `json:"owner"`
	Sector        string    `json:"sector"`
	Stacks        []string  `json:"stacks"`
	Collaborators []string  `json:"collaborators"`
	CreatedAt     time.Time `json:"created_at"`
}

func newProjectView(p *model.Project) ProjectView {
	return ProjectView{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		GitRepo:       p.GitRepo,
		Owner:         p.Owner.Username,
		Sector:        p.Sector.Name,
		Stacks:        p.StackNames(),
		Collaborators: p.CollaboratorHandles(),
		CreatedAt:     p.CreatedAt.UTC(),
	}
}

type ProjectsResponse struct {
	BaseResponse
	Projects []ProjectView `json:"projects"`
}

type ProjectResponse struct {
	BaseResponse
	Project ProjectView `json:"project"`
}

type StacksResponse struct {
	BaseResponse
	Stacks []model.Stack `json:"stacks"`
}

type SectorsResponse struct {
	BaseResponse
	Sectors []model.Sector `json:"sectors"`
}

func (h *APIHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Username == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.userService.IssueToken(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.internalError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, TokenResponse{BaseResponse: BaseResponse{Ok: true}, Token: token})
}

// projectQuery is the query string of GET /api/projects.
type projectQuery struct {
	Sectors   []uint `form:"sector"`
	Stacks    []uint `form:"stack"`
	Owned     bool   `form:"owned"`
	Preferred bool   `form:"preferred"`
}

// ListProjects accepts repeated sector and stack ids plus the preferred
// and owned flags as query parameters.
func (h *APIHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.TokenIdentity(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var q projectQuery
	if fields := decodeForm(&q, r.URL.Query()); fields != nil {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		respondWithError(w, http.StatusBadRequest, "invalid query parameters: "+strings.Join(names, ", "))
		return
	}

	filter := repository.ProjectFilter{
		ViewerID:      viewer.UserID,
		Owned:         q.Owned,
		SectorIDs:     q.Sectors,
		StackIDs:      q.Stacks,
		PreferredOnly: q.Preferred,
	}

	projects, err := h.projectService.List(r.Context(), filter)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, newProjectView(&projects[i]))
	}

	respondWithJSON(w, http.StatusOK, ProjectsResponse{BaseResponse: BaseResponse{Ok: true}, Projects: views})
}

func (h *APIHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.projectService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.internalError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ProjectResponse{BaseResponse: BaseResponse{Ok: true}, Project: newProjectView(project)})
}

func (h *APIHandler) ListStacks(w http.ResponseWriter, r *http.Request) {
	stacks, err := h.catalogService.Stacks(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StacksResponse{BaseResponse: BaseResponse{Ok: true}, Stacks: stacks})
}

func (h *APIHandler) ListSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.catalogService.Sectors(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, SectorsResponse{BaseResponse: BaseResponse{Ok: true}, Sectors: sectors})
}

func (h *APIHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "api request failed", "error", err, "requestID", chmw.GetReqID(r.Context()))
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}
