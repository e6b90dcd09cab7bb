// internal/handler/routes.go
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dangerclosesec/colab/internal/auth"
	"github.com/dangerclosesec/colab/internal/middleware"
	"github.com/dangerclosesec/colab/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Services are the application services the routes dispatch to.
type Services struct {
	Users       *service.UserService
	Projects    *service.ProjectService
	Catalog     *service.CatalogService
	Preferences *service.PreferenceService
}

// NewRouter mounts the HTML pages, the JSON API under /api and /health.
// Every POST to an HTML page must carry the CSRF token of its form.
func NewRouter(
	svc Services,
	renderer *Renderer,
	sessions *auth.SessionManager,
	tokenManager *auth.TokenManager,
	csrfConfig CSRFConfig,
	logger *slog.Logger,
) http.Handler {
	accountHandler := NewAccountHandler(svc.Users, renderer, sessions)
	projectHandler := NewProjectHandler(svc.Projects, svc.Catalog, renderer, sessions)
	preferenceHandler := NewPreferenceHandler(svc.Preferences, svc.Catalog, renderer, sessions)
	apiHandler := NewAPIHandler(svc.Users, svc.Projects, svc.Catalog)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Timeout(60 * time.Second))

	r.Get("/health", HealthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"https://*", "http://*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           300,
		}))

		r.With(chimw.AllowContentType("application/json")).Post("/auth/token", apiHandler.Token)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(tokenManager))

			r.Get("/projects", apiHandler.ListProjects)
			r.Get("/projects/{id}", apiHandler.GetProject)
			r.Get("/stacks", apiHandler.ListStacks)
			r.Get("/sectors", apiHandler.ListSectors)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionUser(sessions, svc.Users))
		r.Use(csrfProtect(csrfConfig, renderer))

		r.Get("/", accountHandler.Home)
		r.Get("/register", accountHandler.Register)
		r.Post("/register", accountHandler.Register)
		r.Get("/login", accountHandler.Login)
		r.Post("/login", accountHandler.Login)
		r.Post("/logout", accountHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(sessions))

			r.Get("/profile", accountHandler.Profile)

			r.Route("/users/{username}", func(r chi.Router) {
				r.Get("/", accountHandler.ShowUser)
				r.Get("/edit", accountHandler.EditUser)
				r.Post("/edit", accountHandler.EditUser)
				r.Post("/delete", accountHandler.DeleteUser)
				r.Get("/projects/add", projectHandler.AddProject)
				r.Post("/projects/add", projectHandler.AddProject)
			})

			r.Get("/projects", projectHandler.ListProjects)
			r.Post("/projects", projectHandler.ListProjects)
			r.Get("/owned-projects", projectHandler.ListOwnedProjects)
			r.Post("/owned-projects", projectHandler.ListOwnedProjects)

			r.Route("/projects/{id}", func(r chi.Router) {
				r.Get("/", projectHandler.ShowProject)
				r.Get("/update", projectHandler.UpdateProject)
				r.Post("/update", projectHandler.UpdateProject)
				r.Post("/delete", projectHandler.DeleteProject)
			})

			r.Get("/preferences", preferenceHandler.Preferences)
			r.Post("/preferences", preferenceHandler.Preferences)
		})
	})

	return r
}
