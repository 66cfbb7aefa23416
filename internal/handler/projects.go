package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"dsforge/internal/codec"
	"dsforge/internal/scaffold"
)

// CreateProject runs a generation request
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req scaffold.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Render(w, r, errInvalidRequest(fmt.Errorf("decode request: %w", err)))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		render.Render(w, r, errInvalidRequest(err))
		return
	}

	res, err := h.engine.Generate(r.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Str("template", req.Template).Msg("generation failed")
		render.Render(w, r, errFor(err))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, res)
}

// ListProjects returns all recorded projects, newest first
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	if h.projects == nil {
		render.Render(w, r, errNotFound(fmt.Errorf("project registry not configured")))
		return
	}

	projects, err := h.projects.List(r.Context())
	if err != nil {
		render.Render(w, r, errFor(err))
		return
	}
	render.JSON(w, r, projects)
}

// GetProject returns one project record
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	if h.projects == nil {
		render.Render(w, r, errNotFound(fmt.Errorf("project registry not configured")))
		return
	}

	p, err := h.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, errFor(err))
		return
	}
	render.JSON(w, r, p)
}

// GetManifest returns the stored manifest of a project. The format query
// parameter selects the interchange format, default JSON.
func (h *Handler) GetManifest(w http.ResponseWriter, r *http.Request) {
	if h.projects == nil {
		render.Render(w, r, errNotFound(fmt.Errorf("project registry not configured")))
		return
	}

	m, err := h.projects.Manifest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, errFor(err))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	c, err := codec.ByFormat(format)
	if err != nil {
		render.Render(w, r, errInvalidRequest(err))
		return
	}

	if c.Format() == "yaml" {
		w.Header().Set("Content-Type", "application/yaml")
	}
	if err := c.Export(m, w); err != nil {
		h.logger.Error().Err(err).Msg("export manifest")
	}
}

// ArchiveProject streams the generated project tree as a zip archive
func (h *Handler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	if h.projects == nil {
		render.Render(w, r, errNotFound(fmt.Errorf("project registry not configured")))
		return
	}

	id := chi.URLParam(r, "id")
	p, err := h.projects.Get(r.Context(), id)
	if err != nil {
		render.Render(w, r, errFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.Slug+".zip"))

	if err := h.projects.Archive(r.Context(), id, w); err != nil {
		// Headers are gone at this point, log and cut the stream.
		h.logger.Error().Err(err).Str("id", id).Msg("archive project")
	}
}

// DeleteProject removes a project record, leaving generated files on disk
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if h.projects == nil {
		render.Render(w, r, errNotFound(fmt.Errorf("project registry not configured")))
		return
	}

	if err := h.projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Render(w, r, errFor(err))
		return
	}
	render.NoContent(w, r)
}
