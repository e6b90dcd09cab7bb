// internal/handler/csrf.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
)

// CSRFFieldName is the hidden form field carrying the token.
const CSRFFieldName = "csrf_token"

// CSRFConfig protects the HTML forms. Key must be 32 bytes. Secure is
// false when the site is served over plain http, which also skips the
// Referer check gorilla/csrf applies to TLS requests.
type CSRFConfig struct {
	Key    []byte
	Secure bool
}

func csrfProtect(cfg CSRFConfig, renderer *Renderer) func(http.Handler) http.Handler {
	protect := csrf.Protect(cfg.Key,
		csrf.Secure(cfg.Secure),
		csrf.Path("/"),
		csrf.FieldName(CSRFFieldName),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slog.WarnContext(r.Context(), "csrf check failed", "path", r.URL.Path, "reason", csrf.FailureReason(r))
			renderer.Render(w, r, http.StatusForbidden, "error", Data{
				"Title":   "Forbidden",
				"Message": "The form has expired. Go back, reload the page and try again.",
			})
		})),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if cfg.Secure {
			return protected
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
