package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Momin-Abdurrehman/HandCricket/internal/model"
)

// MatchRepo handles match database operations.
type MatchRepo struct {
	db *sql.DB
}

// NewMatchRepo creates a MatchRepo.
func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Create inserts a completed match record.
func (r *MatchRepo) Create(ctx context.Context, m *model.Match) (*model.Match, error) {
	stored := *m
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO matches (player_name, difficulty, player_score, ai_score, winner, total_turns, move_log, prediction_accuracy, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		m.PlayerName, m.Difficulty, m.PlayerScore, m.AIScore, m.Winner, m.TotalTurns, []byte(m.MoveLog), m.Accuracy, m.FinishedAt,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	return &stored, nil
}

// FindByID returns a match by ID.
func (r *MatchRepo) FindByID(ctx context.Context, id string) (*model.Match, error) {
	var m model.Match
	var moveLog []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT id, player_name, difficulty, player_score, ai_score, winner, total_turns, move_log, prediction_accuracy, created_at, finished_at
		 FROM matches WHERE id = $1`, id,
	).Scan(&m.ID, &m.PlayerName, &m.Difficulty, &m.PlayerScore, &m.AIScore, &m.Winner, &m.TotalTurns, &moveLog, &m.Accuracy, &m.CreatedAt, &m.FinishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find match: %w", err)
	}
	m.MoveLog = moveLog
	return &m, nil
}

// ListRecent returns the most recently finished matches.
func (r *MatchRepo) ListRecent(ctx context.Context, limit int) ([]model.Match, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, player_name, difficulty, player_score, ai_score, winner, total_turns, prediction_accuracy, created_at, finished_at
		 FROM matches ORDER BY finished_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent matches: %w", err)
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		var m model.Match
		if err := rows.Scan(&m.ID, &m.PlayerName, &m.Difficulty, &m.PlayerScore, &m.AIScore, &m.Winner, &m.TotalTurns, &m.Accuracy, &m.CreatedAt, &m.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Summary returns aggregate statistics across all stored matches.
func (r *MatchRepo) Summary(ctx context.Context) (*model.MatchSummary, error) {
	var s model.MatchSummary
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE winner = 'player'),
		        COUNT(*) FILTER (WHERE winner = 'ai'),
		        COUNT(*) FILTER (WHERE winner = 'tie'),
		        COALESCE(AVG(player_score), 0),
		        COALESCE(AVG(ai_score), 0),
		        COALESCE(AVG(prediction_accuracy), 0),
		        COALESCE(AVG(total_turns), 0)
		 FROM matches`,
	).Scan(&s.TotalMatches, &s.PlayerWins, &s.AIWins, &s.Ties, &s.AvgPlayerScore, &s.AvgAIScore, &s.AvgAccuracy, &s.AvgMatchLength)
	if err != nil {
		return nil, fmt.Errorf("match summary: %w", err)
	}
	return &s, nil
}
