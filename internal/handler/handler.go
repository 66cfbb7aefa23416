package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"dsforge/internal/loader"
	"dsforge/internal/log"
	"dsforge/internal/scaffold"
	"dsforge/internal/service"
)

// Handler wires the API surface to the scaffolding engine and registries
type Handler struct {
	templates *loader.Registry
	engine    *scaffold.Engine
	projects  *service.ProjectService
	events    http.Handler
	validate  *validator.Validate
	logger    zerolog.Logger
}

// New creates a handler. events may be nil when SSE is disabled; projects may
// be nil when no project registry is configured.
func New(templates *loader.Registry, engine *scaffold.Engine, projects *service.ProjectService, events http.Handler) *Handler {
	return &Handler{
		templates: templates,
		engine:    engine,
		projects:  projects,
		events:    events,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    log.WithComponent("handler"),
	}
}

// Routes builds the full router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/healthz", h.Health)

	// The events stream is exempt from the request timeout below.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.ListTemplates)
			r.Post("/reload", h.ReloadTemplates)
			r.Get("/{name}", h.GetTemplate)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", h.CreateProject)
			r.Get("/", h.ListProjects)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetProject)
				r.Delete("/", h.DeleteProject)
				r.Get("/manifest", h.GetManifest)
				r.Get("/archive", h.ArchiveProject)
			})
		})
	})

	if h.events != nil {
		r.Get("/events", h.events.ServeHTTP)
	}

	return r
}

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// requestLogger logs one line per request
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		h.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// cors allows browser frontends on other origins to use the API
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
