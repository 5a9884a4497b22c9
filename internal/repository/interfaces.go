package repository

import (
	"context"
	"encoding/json"

	"github.com/Momin-Abdurrehman/HandCricket/internal/model"
)

// MatchRepository defines match record data operations.
type MatchRepository interface {
	Create(ctx context.Context, m *model.Match) (*model.Match, error)
	FindByID(ctx context.Context, id string) (*model.Match, error)
	ListRecent(ctx context.Context, limit int) ([]model.Match, error)
	Summary(ctx context.Context) (*model.MatchSummary, error)
}

// MatchCache defines live match state operations (Redis).
type MatchCache interface {
	SetMatchState(ctx context.Context, matchID string, state json.RawMessage) error
	GetMatchState(ctx context.Context, matchID string) (json.RawMessage, error)
	DeleteMatchState(ctx context.Context, matchID string) error
	RecordWin(ctx context.Context, winner string) error
	Leaderboard(ctx context.Context) (map[string]int64, error)
}
