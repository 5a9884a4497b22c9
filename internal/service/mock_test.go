package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Momin-Abdurrehman/HandCricket/internal/model"
)

type mockMatchRepo struct {
	matches []model.Match
}

func newMockMatchRepo() *mockMatchRepo {
	return &mockMatchRepo{}
}

func (m *mockMatchRepo) Create(_ context.Context, match *model.Match) (*model.Match, error) {
	stored := *match
	stored.ID = fmt.Sprintf("match-%d", len(m.matches)+1)
	m.matches = append(m.matches, stored)
	return &stored, nil
}

func (m *mockMatchRepo) FindByID(_ context.Context, id string) (*model.Match, error) {
	for i := range m.matches {
		if m.matches[i].ID == id {
			cp := m.matches[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockMatchRepo) ListRecent(_ context.Context, limit int) ([]model.Match, error) {
	if limit <= 0 || limit > len(m.matches) {
		limit = len(m.matches)
	}
	out := make([]model.Match, limit)
	copy(out, m.matches[len(m.matches)-limit:])
	return out, nil
}

func (m *mockMatchRepo) Summary(_ context.Context) (*model.MatchSummary, error) {
	s := &model.MatchSummary{TotalMatches: len(m.matches)}
	for _, match := range m.matches {
		switch match.Winner {
		case "player":
			s.PlayerWins++
		case "ai":
			s.AIWins++
		default:
			s.Ties++
		}
	}
	return s, nil
}

type mockMatchCache struct {
	states map[string]json.RawMessage
	wins   map[string]int64
}

func newMockMatchCache() *mockMatchCache {
	return &mockMatchCache{
		states: make(map[string]json.RawMessage),
		wins:   make(map[string]int64),
	}
}

func (m *mockMatchCache) SetMatchState(_ context.Context, matchID string, state json.RawMessage) error {
	m.states[matchID] = state
	return nil
}

func (m *mockMatchCache) GetMatchState(_ context.Context, matchID string) (json.RawMessage, error) {
	return m.states[matchID], nil
}

func (m *mockMatchCache) DeleteMatchState(_ context.Context, matchID string) error {
	delete(m.states, matchID)
	return nil
}

func (m *mockMatchCache) RecordWin(_ context.Context, winner string) error {
	m.wins[winner]++
	return nil
}

func (m *mockMatchCache) Leaderboard(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(m.wins))
	for k, v := range m.wins {
		out[k] = v
	}
	return out, nil
}
