package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ListTemplates returns all loaded template packs
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates := h.templates.List()

	resp := make([]*TemplateResponse, 0, len(templates))
	for _, t := range templates {
		resp = append(resp, newTemplateResponse(t))
	}
	render.JSON(w, r, resp)
}

// GetTemplate returns a single template pack
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	t, err := h.templates.Get(name)
	if err != nil {
		render.Render(w, r, errFor(err))
		return
	}
	render.JSON(w, r, newTemplateResponse(t))
}

// ReloadTemplates re-reads template packs from disk
func (h *Handler) ReloadTemplates(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Reload(); err != nil {
		h.logger.Error().Err(err).Msg("reload templates")
		render.Render(w, r, errInternal(err))
		return
	}

	render.JSON(w, r, map[string]int{"templates": len(h.templates.List())})
}
