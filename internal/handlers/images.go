package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/h2non/bimg"

	"github.com/collabboard/whiteboard-gallery/internal/auth"
	"github.com/collabboard/whiteboard-gallery/models"
)

// UploadImage stores the multipart "image" field in the blob store under the
// current session and records its metadata.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		http.Error(w, "Not Authorized", http.StatusUnauthorized)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "No image provided", http.StatusBadRequest)
		return
	}
	defer file.Close()
	if header.Filename == "" {
		http.Error(w, "No selected file", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading upload", http.StatusInternalServerError)
		return
	}
	if bimg.DetermineImageType(data) == bimg.UNKNOWN {
		http.Error(w, "Unsupported image type", http.StatusBadRequest)
		return
	}

	sessionID := h.currentSession(r)
	timestamp := time.Now().Unix()
	extension := strings.ToLower(filepath.Ext(header.Filename))
	filename := fmt.Sprintf("whiteboard_%d%s", timestamp, extension)
	blobPath := fmt.Sprintf("%s/%s/%s", h.Folder, sessionID, filename)

	obj, err := h.Blobs.Store(r.Context(), blobPath, header.Header.Get("Content-Type"), bytes.NewReader(data))
	if err != nil {
		h.Log.Error("uploading image to blob store", "path", blobPath, "error", err)
		http.Error(w, "Failed to upload image: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.Meta.Put(sessionID, filename, models.ImageRecord{
		Timestamp: timestamp,
		BlobID:    obj.ID,
		URL:       obj.URL,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"message":       "Upload successful",
		"filename":      filename,
		"cloudinary_id": obj.ID,
		"url":           obj.URL,
	})
}

// ListImages returns the requesting user's view of the current session,
// oldest first.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.Gallery.List(h.currentSession(r), auth.UserID(r.Context()))
	if err != nil {
		http.Error(w, "Not Authorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(images)
}

// GetImage redirects to the blob URL, refusing filenames the user has
// deleted.
func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		http.Error(w, "Not Authorized", http.StatusUnauthorized)
		return
	}
	filename := chi.URLParam(r, "filename")
	if !h.Vis.IsVisible(userID, filename) {
		http.Error(w, "Not available", http.StatusNotFound)
		return
	}
	rec, ok := h.Meta.Lookup(h.currentSession(r), filename)
	if !ok {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, rec.URL, http.StatusFound)
}

// DeleteImage hides the filename from the requesting user only; other users
// and new users keep seeing the image.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if err := h.Vis.MarkDeleted(auth.UserID(r.Context()), filename); err != nil {
		http.Error(w, "Not Authorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Deleted"})
}
