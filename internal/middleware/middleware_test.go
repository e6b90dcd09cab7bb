package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/colab/internal/auth"
	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/middleware"
	"github.com/dangerclosesec/colab/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userLoaderFunc func(ctx context.Context, username string) (*model.User, error)

func (f userLoaderFunc) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return f(ctx, username)
}

// withCookies copies the cookies set on rec onto a new request.
func withCookies(rec *httptest.ResponseRecorder, method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func loggedIn(t *testing.T, sessions *auth.SessionManager, username string) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Login(rec, httptest.NewRequest(http.MethodPost, "/login", nil), username))
	return withCookies(rec, http.MethodGet, "/projects")
}

func TestSessionUser(t *testing.T) {
	sessions := auth.NewSessionManager("secret", 3600, false)
	ada := &model.User{Username: "ada"}

	var seen *model.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.CurrentUser(r.Context())
	})

	t.Run("anonymous request skips the lookup", func(t *testing.T) {
		seen = nil
		loader := userLoaderFunc(func(context.Context, string) (*model.User, error) {
			t.Fatal("unexpected lookup")
			return nil, nil
		})

		middleware.SessionUser(sessions, loader)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Nil(t, seen)
	})

	t.Run("loads the session user", func(t *testing.T) {
		seen = nil
		loader := userLoaderFunc(func(_ context.Context, username string) (*model.User, error) {
			assert.Equal(t, "ada", username)
			return ada, nil
		})

		middleware.SessionUser(sessions, loader)(next).ServeHTTP(httptest.NewRecorder(), loggedIn(t, sessions, "ada"))
		assert.Same(t, ada, seen)
	})

	t.Run("stale session is cleared", func(t *testing.T) {
		seen = nil
		loader := userLoaderFunc(func(context.Context, string) (*model.User, error) {
			return nil, domain.ErrUserNotFound
		})

		rec := httptest.NewRecorder()
		middleware.SessionUser(sessions, loader)(next).ServeHTTP(rec, loggedIn(t, sessions, "gone"))
		assert.Nil(t, seen)
		assert.Empty(t, sessions.Username(withCookies(rec, http.MethodGet, "/")))
	})
}

func TestRequireUser(t *testing.T) {
	sessions := auth.NewSessionManager("secret", 3600, false)
	called := false
	h := middleware.RequireUser(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	t.Run("anonymous visitor is redirected with a flash", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		flashes := sessions.Flashes(httptest.NewRecorder(), withCookies(rec, http.MethodGet, "/"))
		require.Len(t, flashes, 1)
		assert.Equal(t, auth.Flash{Category: auth.FlashDanger, Message: middleware.UnauthorizedMessage}, flashes[0])
	})

	t.Run("signed in user passes", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), &model.User{Username: "ada"}))

		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, called)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	ada := auth.Identity{UserID: uuid.New(), Username: "ada"}
	var (
		seen auth.Identity
		ok   bool
	)
	h := middleware.AuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, ok = middleware.TokenIdentity(r.Context())
	}))

	valid, err := tokens.Generate(ada)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen, ok = auth.Identity{}, false
			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.status == http.StatusOK, ok)
			if ok {
				assert.Equal(t, ada, seen)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := middleware.Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
