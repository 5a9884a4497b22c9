package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Momin-Abdurrehman/HandCricket/internal/auth"
	"github.com/Momin-Abdurrehman/HandCricket/internal/service"
	"github.com/Momin-Abdurrehman/HandCricket/pkg/game"
)

// MatchHandler handles match endpoints.
type MatchHandler struct {
	matchSvc *service.MatchService
}

// NewMatchHandler creates a MatchHandler.
func NewMatchHandler(matchSvc *service.MatchService) *MatchHandler {
	return &MatchHandler{matchSvc: matchSvc}
}

// CreateMatch handles POST /api/v1/matches
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Difficulty      string `json:"difficulty,omitempty"`
		Seed            *int64 `json:"seed,omitempty"`
		PlayerBatsFirst *bool  `json:"player_bats_first,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	playerName := auth.PlayerNameFromContext(r.Context())
	view, err := h.matchSvc.CreateMatch(r.Context(), playerName, req.Difficulty, req.Seed, req.PlayerBatsFirst)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// PlayMove handles POST /api/v1/matches/{id}/moves
func (h *MatchHandler) PlayMove(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	var req struct {
		Move int `json:"move"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.matchSvc.PlayTurn(r.Context(), matchID, req.Move)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMatchNotFound):
			writeError(w, http.StatusNotFound, "match not found")
		case errors.Is(err, game.ErrInvalidMove):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, game.ErrMatchOver):
			writeError(w, http.StatusConflict, "match is already over")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetMatch handles GET /api/v1/matches/{id}
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	view, err := h.matchSvc.GetMatch(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			writeError(w, http.StatusNotFound, "match not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetStatistics handles GET /api/v1/matches/{id}/stats
func (h *MatchHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	stats, err := h.matchSvc.GetStatistics(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			writeError(w, http.StatusNotFound, "match not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Rematch handles POST /api/v1/matches/{id}/rematch
func (h *MatchHandler) Rematch(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	var req struct {
		PlayerBatsFirst *bool `json:"player_bats_first,omitempty"`
	}
	_ = decodeJSON(r, &req)

	view, err := h.matchSvc.Rematch(r.Context(), matchID, req.PlayerBatsFirst)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			writeError(w, http.StatusNotFound, "match not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ListMatches handles GET /api/v1/matches
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			limit = v
		}
	}
	matches, err := h.matchSvc.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if matches == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// Summary handles GET /api/v1/stats/summary
func (h *MatchHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.matchSvc.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Leaderboard handles GET /api/v1/stats/leaderboard
func (h *MatchHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.matchSvc.Leaderboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// Health handles GET /healthz
func (h *MatchHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
