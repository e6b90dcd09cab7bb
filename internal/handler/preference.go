// internal/handler/preference.go
package handler

import (
	"net/http"

	"github.com/dangerclosesec/colab/internal/auth"
	"github.com/dangerclosesec/colab/internal/middleware"
	"github.com/dangerclosesec/colab/internal/service"
)

type preferencesForm struct {
	Sectors []uint `form:"sectors"`
	Stacks  []uint `form:"stacks"`
}

type PreferenceHandler struct {
	web
	preferenceService *service.PreferenceService
	catalogService    *service.CatalogService
}

func NewPreferenceHandler(
	preferenceService *service.PreferenceService,
	catalogService *service.CatalogService,
	renderer *Renderer,
	sessions *auth.SessionManager,
) *PreferenceHandler {
	return &PreferenceHandler{
		web:               web{renderer: renderer, sessions: sessions},
		preferenceService: preferenceService,
		catalogService:    catalogService,
	}
}

func (h *PreferenceHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	current := middleware.CurrentUser(r.Context())

	var (
		sectorIDs, stackIDs []uint
		errs                map[string]string
	)

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			h.fail(w, r, err)
			return
		}

		var in preferencesForm
		decodeForm(&in, r.PostForm)
		sectorIDs = positiveIDs(in.Sectors)
		stackIDs = positiveIDs(in.Stacks)

		err := h.preferenceService.Replace(r.Context(), current.ID, sectorIDs, stackIDs)
		if err == nil {
			h.flash(w, r, auth.FlashInfo, "Preferences saved")
			h.redirect(w, r, "/preferences")
			return
		}
		if errs = service.FieldErrors(err); errs == nil {
			h.fail(w, r, err)
			return
		}
	} else {
		prefs, err := h.preferenceService.Get(r.Context(), current.ID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		for _, s := range prefs.Sectors {
			sectorIDs = append(sectorIDs, s.ID)
		}
		for _, s := range prefs.Stacks {
			stackIDs = append(stackIDs, s.ID)
		}
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

	h.renderer.Render(w, r, http.StatusOK, "preferences", Data{
		"Title":     "Preferences",
		"Sectors":   sectors,
		"Stacks":    stacks,
		"SectorIDs": sectorIDs,
		"StackIDs":  stackIDs,
		"Errors":    errs,
	})
}
