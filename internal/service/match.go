// Package service owns the match lifecycle: creating matches, pairing each
// one with its own adaptive agent, driving turns through the rules engine,
// and persisting finished matches.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Momin-Abdurrehman/HandCricket/internal/bot"
	"github.com/Momin-Abdurrehman/HandCricket/internal/model"
	"github.com/Momin-Abdurrehman/HandCricket/internal/repository"
	"github.com/Momin-Abdurrehman/HandCricket/pkg/game"
)

var (
	ErrMatchNotFound = errors.New("match not found")
)

// liveMatch pairs one rules engine with one agent. The mutex serializes
// turn processing so concurrent transports cannot interleave ChooseMove and
// Update calls.
type liveMatch struct {
	mu          sync.Mutex
	id          string
	playerName  string
	difficulty  string
	engine      *game.Engine
	agent       *bot.Agent
	rng         *rand.Rand
	playerMoves []int
	createdAt   time.Time
}

// MatchView is the transport-facing view of a match.
type MatchView struct {
	ID         string     `json:"id"`
	PlayerName string     `json:"player_name"`
	Difficulty string     `json:"difficulty"`
	State      game.State `json:"state"`
}

// TurnOutput is the result of one played turn.
type TurnOutput struct {
	Result game.TurnResult `json:"result"`
	State  game.State      `json:"state"`
}

// MatchService handles live matches and their persistence. Both the repo
// and the cache may be nil; the service then runs matches in memory only.
type MatchService struct {
	mu    sync.RWMutex
	live  map[string]*liveMatch
	repo  repository.MatchRepository
	cache repository.MatchCache
}

// NewMatchService creates a MatchService.
func NewMatchService(repo repository.MatchRepository, cache repository.MatchCache) *MatchService {
	return &MatchService{
		live:  make(map[string]*liveMatch),
		repo:  repo,
		cache: cache,
	}
}

// CreateMatch starts a new match against the agent at the given difficulty.
// A nil seed gives a time-seeded agent; a nil playerBatsFirst runs a toss.
func (s *MatchService) CreateMatch(ctx context.Context, playerName, difficulty string, seed *int64, playerBatsFirst *bool) (*MatchView, error) {
	if playerName == "" {
		playerName = "guest"
	}
	profile := bot.ProfileForDifficulty(difficulty)

	rngSeed := time.Now().UnixNano()
	if seed != nil {
		rngSeed = *seed
	}
	rng := rand.New(rand.NewSource(rngSeed))

	batsFirst := game.Toss(rng)
	if playerBatsFirst != nil {
		batsFirst = *playerBatsFirst
	}

	m := &liveMatch{
		id:         uuid.NewString(),
		playerName: playerName,
		difficulty: profile.Name,
		engine:     game.NewEngine(batsFirst),
		agent:      bot.NewSeededAgent(profile, rngSeed),
		rng:        rng,
		createdAt:  time.Now(),
	}

	s.mu.Lock()
	s.live[m.id] = m
	s.mu.Unlock()

	log.Info().Str("match_id", m.id).Str("difficulty", m.difficulty).Bool("player_bats_first", batsFirst).Msg("match created")

	view := &MatchView{ID: m.id, PlayerName: m.playerName, Difficulty: m.difficulty, State: m.engine.Snapshot()}
	s.mirrorState(ctx, m.id, view.State)
	return view, nil
}

// PlayTurn plays one turn of the given match with the player's move.
func (s *MatchService) PlayTurn(ctx context.Context, matchID string, playerMove int) (*TurnOutput, error) {
	m, err := s.find(matchID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.engine.GameOver() {
		return nil, game.ErrMatchOver
	}
	// Validate before consulting the agent so a bad request cannot desync
	// the prediction/outcome pairing.
	if playerMove < game.MinMove || playerMove > game.MaxMove {
		return nil, fmt.Errorf("%w: got %d", game.ErrInvalidMove, playerMove)
	}

	playerScore, aiScore := m.engine.Scores()
	aiBatting := !m.engine.PlayerBatting()
	aiMove := m.agent.ChooseMove(m.playerMoves, aiBatting, aiScore, playerScore, m.engine.Innings())

	result, err := m.engine.PlayTurn(playerMove, aiMove)
	if err != nil {
		return nil, err
	}

	m.agent.Update(playerMove, result.Out)
	m.playerMoves = append(m.playerMoves, playerMove)

	state := m.engine.Snapshot()
	out := &TurnOutput{Result: result, State: state}

	if result.GameOver {
		s.finishMatch(ctx, m, state)
	} else {
		s.mirrorState(ctx, m.id, state)
	}
	return out, nil
}

// GetMatch returns the current view of a live match.
func (s *MatchService) GetMatch(ctx context.Context, matchID string) (*MatchView, error) {
	m, err := s.find(matchID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return &MatchView{ID: m.id, PlayerName: m.playerName, Difficulty: m.difficulty, State: m.engine.Snapshot()}, nil
}

// GetStatistics returns the agent's prediction telemetry for a match.
func (s *MatchService) GetStatistics(ctx context.Context, matchID string) (*bot.Statistics, error) {
	m, err := s.find(matchID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.agent.Statistics()
	return &stats, nil
}

// Rematch resets a finished (or abandoned) match for another round. The
// agent keeps its learned tables, so it starts the new match already
// knowing the player's habits.
func (s *MatchService) Rematch(ctx context.Context, matchID string, playerBatsFirst *bool) (*MatchView, error) {
	m, err := s.find(matchID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	batsFirst := game.Toss(m.rng)
	if playerBatsFirst != nil {
		batsFirst = *playerBatsFirst
	}
	m.engine.Reset(batsFirst)
	m.agent.Reset()
	m.playerMoves = nil

	log.Info().Str("match_id", m.id).Bool("player_bats_first", batsFirst).Msg("rematch started")

	view := &MatchView{ID: m.id, PlayerName: m.playerName, Difficulty: m.difficulty, State: m.engine.Snapshot()}
	s.mirrorState(ctx, m.id, view.State)
	return view, nil
}

// CloseMatch drops a live match from memory and clears its cached state.
func (s *MatchService) CloseMatch(ctx context.Context, matchID string) error {
	s.mu.Lock()
	_, ok := s.live[matchID]
	delete(s.live, matchID)
	s.mu.Unlock()
	if !ok {
		return ErrMatchNotFound
	}
	if s.cache != nil {
		if err := s.cache.DeleteMatchState(ctx, matchID); err != nil {
			log.Warn().Err(err).Str("match_id", matchID).Msg("clear cached state")
		}
	}
	return nil
}

// ListRecent returns recently finished matches from storage.
func (s *MatchService) ListRecent(ctx context.Context, limit int) ([]model.Match, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.ListRecent(ctx, limit)
}

// Summary returns aggregate statistics across stored matches.
func (s *MatchService) Summary(ctx context.Context) (*model.MatchSummary, error) {
	if s.repo == nil {
		return &model.MatchSummary{}, nil
	}
	return s.repo.Summary(ctx)
}

// Leaderboard returns win counts per side from the cache.
func (s *MatchService) Leaderboard(ctx context.Context) (map[string]int64, error) {
	if s.cache == nil {
		return map[string]int64{}, nil
	}
	return s.cache.Leaderboard(ctx)
}

func (s *MatchService) find(matchID string) (*liveMatch, error) {
	s.mu.RLock()
	m, ok := s.live[matchID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

// finishMatch persists the completed match and updates the leaderboard.
// Persistence failures are logged, not returned: the turn itself succeeded.
func (s *MatchService) finishMatch(ctx context.Context, m *liveMatch, state game.State) {
	stats := m.agent.Statistics()
	log.Info().
		Str("match_id", m.id).
		Str("winner", string(state.Winner)).
		Int("player_score", state.PlayerScore).
		Int("ai_score", state.AIScore).
		Float64("prediction_accuracy", stats.PredictionAccuracy).
		Msg("match finished")

	if s.repo != nil {
		moveLog, err := json.Marshal(m.engine.Turns())
		if err != nil {
			log.Error().Err(err).Str("match_id", m.id).Msg("marshal move log")
			moveLog = nil
		}
		record := &model.Match{
			PlayerName:  m.playerName,
			Difficulty:  m.difficulty,
			PlayerScore: state.PlayerScore,
			AIScore:     state.AIScore,
			Winner:      string(state.Winner),
			TotalTurns:  state.TotalTurns,
			MoveLog:     moveLog,
			Accuracy:    stats.PredictionAccuracy,
			FinishedAt:  time.Now(),
		}
		if _, err := s.repo.Create(ctx, record); err != nil {
			log.Error().Err(err).Str("match_id", m.id).Msg("persist match")
		}
	}

	if s.cache != nil {
		if err := s.cache.RecordWin(ctx, string(state.Winner)); err != nil {
			log.Warn().Err(err).Str("match_id", m.id).Msg("update leaderboard")
		}
		if err := s.cache.DeleteMatchState(ctx, m.id); err != nil {
			log.Warn().Err(err).Str("match_id", m.id).Msg("clear cached state")
		}
	}
}

func (s *MatchService) mirrorState(ctx context.Context, matchID string, state game.State) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(state)
	if err != nil {
		log.Error().Err(err).Str("match_id", matchID).Msg("marshal state")
		return
	}
	if err := s.cache.SetMatchState(ctx, matchID, data); err != nil {
		log.Warn().Err(err).Str("match_id", matchID).Msg("mirror state")
	}
}
