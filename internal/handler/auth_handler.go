package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Momin-Abdurrehman/HandCricket/internal/auth"
)

// AuthHandler issues guest session tokens. There are no accounts; a guest
// token just names the player for the duration of a session.
type AuthHandler struct {
	jwtMgr *auth.JWTManager
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(jwtMgr *auth.JWTManager) *AuthHandler {
	return &AuthHandler{jwtMgr: jwtMgr}
}

// GuestLogin handles POST /api/v1/auth/guest
func (h *AuthHandler) GuestLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name,omitempty"`
	}
	// An empty body is fine; the name is optional.
	_ = decodeJSON(r, &req)
	if req.Name == "" {
		req.Name = "guest"
	}
	if len(req.Name) > 64 {
		writeError(w, http.StatusBadRequest, "name too long")
		return
	}

	session, err := h.jwtMgr.NewGuestSession(uuid.NewString(), req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}
