package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/collabboard/whiteboard-gallery/internal/auth"
)

// Routes mounts the full HTTP surface. Every route runs behind the identity
// middleware; the /api subtree additionally requires the user token and is
// rate limited.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(auth.Identity(h.Cookies))

	r.Get("/", h.Index)
	r.Get("/health", h.Health)
	r.Get("/session/create", h.CreateSession)
	r.Get("/session/{code}", h.JoinSession)

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Use(httprate.Limit(
			20,
			1*time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		))
		r.Post("/upload", h.UploadImage)
		r.Get("/images", h.ListImages)
		r.Get("/images/{filename}", h.GetImage)
		r.Delete("/delete/{filename}", h.DeleteImage)
		r.Get("/download", h.DownloadZIP)
		r.Get("/download-pdf", h.DownloadPDF)
	})

	return r
}
