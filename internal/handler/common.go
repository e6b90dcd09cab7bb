package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dangerclosesec/colab/internal/auth"
	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/dangerclosesec/colab/internal/middleware"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/form/v4"
)

type ErrorResponse struct {
	BaseResponse
	Error   string    `json:"error"`
	Details *[]string `json:"details,omitempty"`
}

type BaseResponse struct {
	Ok bool `json:"ok"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// HealthHandler reports that the process is serving requests.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// web carries what every HTML handler needs.
type web struct {
	renderer *Renderer
	sessions *auth.SessionManager
}

func (h *web) flash(w http.ResponseWriter, r *http.Request, category, message string) {
	if err := h.sessions.AddFlash(w, r, category, message); err != nil {
		slog.WarnContext(r.Context(), "failed to store flash", "error", err)
	}
}

func (h *web) redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// fail maps service errors to a response: authorization failures go
// home with a flash, missing records get a 404 page, anything else a 500.
func (h *web) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		middleware.DenyAccess(w, r, h.sessions)
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrNotFound):
		h.renderer.Render(w, r, http.StatusNotFound, "error", Data{
			"Title":   "Not found",
			"Message": "The page you are looking for does not exist.",
		})
	default:
		slog.ErrorContext(r.Context(), "request failed", "error", err, "requestID", chmw.GetReqID(r.Context()))
		h.renderer.Render(w, r, http.StatusInternalServerError, "error", Data{
			"Title":   "Something went wrong",
			"Message": "Please try again later.",
		})
	}
}

var formDecoder = form.NewDecoder()

// decodeForm fills dst from values using the `form` struct tags. Values
// that do not parse are reported per field, keyed by form name.
func decodeForm(dst interface{}, values url.Values) map[string]string {
	err := formDecoder.Decode(dst, values)
	if err == nil {
		return nil
	}

	var decodeErrs form.DecodeErrors
	if !errors.As(err, &decodeErrs) {
		return map[string]string{"": err.Error()}
	}

	fields := make(map[string]string, len(decodeErrs))
	for name := range decodeErrs {
		// slice elements are reported as name[i]
		if i := strings.IndexByte(name, '['); i > 0 {
			name = name[:i]
		}
		fields[name] = "Not a valid choice."
	}
	return fields
}

// positiveIDs drops the zero ids left behind by values that did not parse.
func positiveIDs(ids []uint) []uint {
	var out []uint
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out
}
