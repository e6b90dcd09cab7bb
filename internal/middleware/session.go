// internal/middleware/session.go
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/colab/internal/auth"
	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/model"
)

// UnauthorizedMessage is flashed when a page needs a different user.
const UnauthorizedMessage = "Access unauthorized."

var currentUserKey UserContextKey = "colab_current_user"

// UserLoader looks a user up by username.
type UserLoader interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// SessionUser loads the user named in the session cookie into the request
// context. A session pointing at a user that no longer exists is cleared.
func SessionUser(sessions *auth.SessionManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := sessions.Username(r)
			if username == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByUsername(r.Context(), username)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					if err := sessions.Logout(w, r); err != nil {
						slog.WarnContext(r.Context(), "failed to clear stale session", "error", err)
					}
				} else {
					slog.ErrorContext(r.Context(), "failed to load session user", "username", username, "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireUser redirects anonymous visitors to the landing page.
func RequireUser(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if CurrentUser(r.Context()) == nil {
				DenyAccess(w, r, sessions)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// DenyAccess flashes the unauthorized message and sends the visitor home.
func DenyAccess(w http.ResponseWriter, r *http.Request, sessions *auth.SessionManager) {
	if err := sessions.AddFlash(w, r, auth.FlashDanger, UnauthorizedMessage); err != nil {
		slog.WarnContext(r.Context(), "failed to store flash", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUser returns the signed-in user, or nil.
func CurrentUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(currentUserKey).(*model.User)
	return user
}
