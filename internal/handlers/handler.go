// Package handlers is the HTTP glue over the gallery core.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/collabboard/whiteboard-gallery/internal/auth"
	"github.com/collabboard/whiteboard-gallery/internal/blob"
	"github.com/collabboard/whiteboard-gallery/internal/export"
	"github.com/collabboard/whiteboard-gallery/internal/gallery"
	"github.com/collabboard/whiteboard-gallery/internal/store"
)

type Handler struct {
	Meta     *store.Metadata
	Registry *store.Registry
	Vis      *store.Visibility
	Gallery  *gallery.Pipeline
	Blobs    blob.BlobStore
	Fetcher  export.Fetcher
	Cookies  sessions.Store
	Log      *slog.Logger

	// Folder is the blob-store namespace all image paths live under.
	Folder string
}

func New(meta *store.Metadata, registry *store.Registry, vis *store.Visibility, blobs blob.BlobStore, fetcher export.Fetcher, cookies sessions.Store, folder string, log *slog.Logger) *Handler {
	return &Handler{
		Meta:     meta,
		Registry: registry,
		Vis:      vis,
		Gallery:  gallery.New(meta, vis),
		Blobs:    blobs,
		Fetcher:  fetcher,
		Cookies:  cookies,
		Log:      log,
		Folder:   folder,
	}
}

// currentSession resolves the request's whiteboard session, collapsing
// requests with no joined session into the shared default bucket.
func (h *Handler) currentSession(r *http.Request) string {
	if code := auth.SessionID(r.Context()); code != "" {
		return code
	}
	return store.DefaultSession
}
