package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Files  FileService
	Logger *slog.Logger // slog.Default() when nil
}

// NewRouter creates the HTTP router for the file store API.
func NewRouter(deps *Deps) http.Handler {
	h := NewHandler(deps.Files, deps.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)

	r.Route("/api/apps/{appID}", func(r chi.Router) {
		r.Put("/files/*", h.WriteFile)
		r.Get("/files/*", h.ReadFile)
		r.Delete("/files/*", h.DeleteFile)
		r.Post("/batch", h.BatchWrite)
		r.Post("/rename", h.Rename)
		r.Get("/tree", h.Tree)
		r.Get("/versions/*", h.Versions)
		r.Get("/impact/{fileID}", h.Impact)
		r.Post("/references", h.AddReference)
		r.Delete("/references", h.RemoveReference)
	})

	return r
}
