package handlers

import (
	"bytes"
	"net/http"

	"github.com/collabboard/whiteboard-gallery/internal/auth"
	"github.com/collabboard/whiteboard-gallery/internal/export"
)

// DownloadZIP streams every visible image of the current session as a ZIP
// archive. Unreachable blobs leave a gap instead of failing the download.
func (h *Handler) DownloadZIP(w http.ResponseWriter, r *http.Request) {
	items, err := h.Gallery.Visible(h.currentSession(r), auth.UserID(r.Context()))
	if err != nil {
		http.Error(w, "Not Authorized", http.StatusUnauthorized)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteZIP(r.Context(), &buf, items, h.Fetcher, h.Log); err != nil {
		h.Log.Error("building zip export", "error", err)
		http.Error(w, "Failed to build archive", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="images.zip"`)
	w.Write(buf.Bytes())
}

// DownloadPDF renders every visible image of the current session into a PDF,
// one image per page.
func (h *Handler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	items, err := h.Gallery.Visible(h.currentSession(r), auth.UserID(r.Context()))
	if err != nil {
		http.Error(w, "Not Authorized", http.StatusUnauthorized)
		return
	}

	var buf bytes.Buffer
	if err := export.WritePDF(r.Context(), &buf, items, h.Fetcher, h.Log); err != nil {
		h.Log.Error("building pdf export", "error", err)
		http.Error(w, "Failed to build PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="images.pdf"`)
	w.Write(buf.Bytes())
}
