// internal/handler/account.go
package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/dangerclosesec/colab/internal/auth"
	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/middleware"
	"github.com/dangerclosesec/colab/internal/service"
	"github.com/go-chi/chi/v5"
)

// AccountHandler serves registration, login and user pages.
type AccountHandler struct {
	web
	userService *service.UserService
}

func NewAccountHandler(userService *service.UserService, renderer *Renderer, sessions *auth.SessionManager) *AccountHandler {
	return &AccountHandler{
		web:         web{renderer: renderer, sessions: sessions},
		userService: userService,
	}
}

// Home shows the dashboard to signed-in users and the landing page otherwise.
func (h *AccountHandler) Home(w http.ResponseWriter, r *http.Request) {
	if middleware.CurrentUser(r.Context()) != nil {
		h.renderer.Render(w, r, http.StatusOK, "home", Data{"Title": "Home"})
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "index", Data{"Title": "Welcome"})
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderer.Render(w, r, http.StatusOK, "register", Data{"Title": "Register", "Form": url.Values{}})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, r, http.StatusBadRequest, "register", Data{"Title": "Register", "Form": url.Values{}})
		return
	}

	var input service.RegisterInput
	if fields := decodeForm(&input, r.PostForm); fields != nil {
		r.PostForm.Del("password")
		h.renderer.Render(w, r, http.StatusOK, "register", Data{
			"Title":  "Register",
			"Form":   r.PostForm,
			"Errors": fields,
		})
		return
	}

	user, err := h.userService.Register(r.Context(), input)
	if err != nil {
		if fields := service.FieldErrors(err); fields != nil {
			r.PostForm.Del("password")
			h.renderer.Render(w, r, http.StatusOK, "register", Data{
				"Title":  "Register",
				"Form":   r.PostForm,
				"Errors": fields,
			})
			return
		}
		h.fail(w, r, err)
		return
	}

	if err := h.sessions.Login(w, r, user.Username); err != nil {
		h.fail(w, r, err)
		return
	}
	h.flash(w, r, auth.FlashInfo, "Welcome "+user.FirstName)
	h.redirect(w, r, "/")
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderer.Render(w, r, http.StatusOK, "login", Data{"Title": "Log in", "Form": url.Values{}})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, r, http.StatusBadRequest, "login", Data{"Title": "Log in", "Form": url.Values{}})
		return
	}

	var creds loginForm
	errs := decodeForm(&creds, r.PostForm)
	if errs == nil {
		errs = map[string]string{}
	}
	if creds.Username == "" {
		errs["username"] = "This field is required."
	}
	if creds.Password == "" {
		errs["password"] = "This field is required."
	}

	if len(errs) == 0 {
		user, err := h.userService.Authenticate(r.Context(), creds.Username, creds.Password)
		switch {
		case err == nil:
			if err := h.sessions.Login(w, r, user.Username); err != nil {
				h.fail(w, r, err)
				return
			}
			h.redirect(w, r, "/")
			return
		case errors.Is(err, domain.ErrInvalidCredentials):
			errs["username"] = "Incorrect username or password"
		default:
			h.fail(w, r, err)
			return
		}
	}

	r.PostForm.Del("password")
	h.renderer.Render(w, r, http.StatusOK, "login", Data{
		"Title":  "Log in",
		"Form":   r.PostForm,
		"Errors": errs,
	})
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, "/")
}

// Profile sends the signed-in user to their own page.
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	h.redirect(w, r, "/users/"+url.PathEscape(user.Username))
}

func (h *AccountHandler) ShowUser(w http.ResponseWriter, r *http.Request) {
	current := middleware.CurrentUser(r.Context())

	user, err := h.userService.GetProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "user", Data{
		"Title":  user.Username,
		"User":   user,
		"IsSelf": current.Username == user.Username,
	})
}

func (h *AccountHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	current := middleware.CurrentUser(r.Context())
	username := chi.URLParam(r, "username")

	if current.Username != username {
		middleware.DenyAccess(w, r, h.sessions)
		return
	}

	if r.Method == http.MethodGet {
		form := url.Values{}
		form.Set("username", current.Username)
		form.Set("email", current.Email)
		form.Set("first_name", current.FirstName)
		form.Set("last_name", current.LastName)
		h.renderer.Render(w, r, http.StatusOK, "edit_user", Data{"Title": "Edit profile", "Form": form})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err)
		return
	}

	var input service.ProfileInput
	if fields := decodeForm(&input, r.PostForm); fields != nil {
		h.renderer.Render(w, r, http.StatusOK, "edit_user", Data{
			"Title":  "Edit profile",
			"Form":   r.PostForm,
			"Errors": fields,
		})
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), current.Username, username, input)
	if err != nil {
		if fields := service.FieldErrors(err); fields != nil {
			h.renderer.Render(w, r, http.StatusOK, "edit_user", Data{
				"Title":  "Edit profile",
				"Form":   r.PostForm,
				"Errors": fields,
			})
			return
		}
		h.fail(w, r, err)
		return
	}

	// the session is keyed by username
	if user.Username != username {
		if err := h.sessions.Login(w, r, user.Username); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	h.flash(w, r, auth.FlashInfo, "Profile updated")
	h.redirect(w, r, "/users/"+url.PathEscape(user.Username))
}

func (h *AccountHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	current := middleware.CurrentUser(r.Context())

	if err := h.userService.Delete(r.Context(), current.Username, chi.URLParam(r, "username")); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.sessions.Logout(w, r); err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, "/")
}
