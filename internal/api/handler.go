// internal/api/handler.go
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	custom_errors "github-signal-sync/internal/errors"
	"github-signal-sync/internal/errutil"
	"github-signal-sync/internal/model"
)

// Service is the part of the syncer the API exposes.
type Service interface {
	Sync(ctx context.Context, id model.RepoIdentifier) (model.SyncResult, error)
	Summary(ctx context.Context, id model.RepoIdentifier) (model.Summary, error)
	RegisterRepository(ctx context.Context, id model.RepoIdentifier) (model.Repository, error)
}

// Handler is the container for API dependencies.
type Handler struct {
	svc         Service
	defaultRepo model.RepoIdentifier
	logger      *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
// defaultRepo backs the routes without an explicit repository and may be zero.
func NewRouter(svc Service, defaultRepo model.RepoIdentifier, logger *slog.Logger) http.Handler {
	h := &Handler{
		svc:         svc,
		defaultRepo: defaultRepo,
		logger:      logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)

	r.Get("/", h.healthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)

		// A full sync can take longer than any sensible read timeout.
		r.Post("/sync/github", h.syncDefault)
		r.Post("/repos/{owner}/{name}/sync", h.syncRepo)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			r.Get("/signals/summary", h.summaryDefault)
			r.Get("/repos/{owner}/{name}/summary", h.summaryRepo)
			r.Put("/repos/{owner}/{name}", h.registerRepo)
		})
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, StatusResponse{Status: "ok"})
}

// syncDefault syncs the configured repository.
// POST /api/sync/github
func (h *Handler) syncDefault(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireDefaultRepo(w, r)
	if !ok {
		return
	}
	h.sync(w, r, id)
}

// syncRepo syncs the repository named in the path.
// POST /api/repos/{owner}/{name}/sync
func (h *Handler) syncRepo(w http.ResponseWriter, r *http.Request) {
	h.sync(w, r, repoFromPath(r))
}

func (h *Handler) sync(w http.ResponseWriter, r *http.Request, id model.RepoIdentifier) {
	result, err := h.svc.Sync(r.Context(), id)
	if err != nil {
		h.respondWithError(w, r, "Sync failed", err)
		return
	}
	render.JSON(w, r, result)
}

// summaryDefault reports the stored totals of the configured repository.
// GET /api/signals/summary
func (h *Handler) summaryDefault(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireDefaultRepo(w, r)
	if !ok {
		return
	}
	h.summary(w, r, id)
}

// summaryRepo reports the stored totals of the repository named in the path.
// GET /api/repos/{owner}/{name}/summary
func (h *Handler) summaryRepo(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, repoFromPath(r))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request, id model.RepoIdentifier) {
	summary, err := h.svc.Summary(r.Context(), id)
	if err != nil {
		h.respondWithError(w, r, "Failed to get summary", err)
		return
	}
	render.JSON(w, r, summary)
}

// registerRepo records the repository named in the path.
// PUT /api/repos/{owner}/{name}
func (h *Handler) registerRepo(w http.ResponseWriter, r *http.Request) {
	repo, err := h.svc.RegisterRepository(r.Context(), repoFromPath(r))
	if err != nil {
		h.respondWithError(w, r, "Failed to register repository", err)
		return
	}
	render.JSON(w, r, repo)
}

func (h *Handler) requireDefaultRepo(w http.ResponseWriter, r *http.Request) (model.RepoIdentifier, bool) {
	if h.defaultRepo.IsZero() {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, Error(ErrCodeNoDefaultRepository, custom_errors.ErrNoDefaultRepository.Error()))
		return model.RepoIdentifier{}, false
	}
	return h.defaultRepo, true
}

func repoFromPath(r *http.Request) model.RepoIdentifier {
	return model.RepoIdentifier{
		Owner: chi.URLParam(r, "owner"),
		Name:  chi.URLParam(r, "name"),
	}
}

// respondWithError maps pipeline errors to a status code and error body.
func (h *Handler) respondWithError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	errutil.HandleError(r.Context(), h.logger, msg, err)

	var te *custom_errors.TransportError
	if errors.As(err, &te) {
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, Error(ErrCodeUpstream, te.Error()))
		return
	}
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, InternalError())
}
