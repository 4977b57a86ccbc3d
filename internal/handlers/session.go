package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/collabboard/whiteboard-gallery/internal/auth"
)

// Index drops any joined session, returning the browser to the shared
// default bucket.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if err := auth.ClearSessionCode(w, r, h.Cookies); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
}

// CreateSession generates a fresh session code and redirects to the join
// endpoint.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	code := h.Registry.Create()
	http.Redirect(w, r, "/session/"+code, http.StatusTemporaryRedirect)
}

// JoinSession validates the code and stores it in the browser cookie.
func (h *Handler) JoinSession(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !h.Registry.Validate(code) {
		http.Error(w, "Session not found or expired", http.StatusNotFound)
		return
	}
	if err := auth.SetSessionCode(w, r, h.Cookies, code); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":    "Joined session",
		"session_id": code,
	})
}
