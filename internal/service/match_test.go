package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Momin-Abdurrehman/HandCricket/pkg/game"
)

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestCreateMatchDefaults(t *testing.T) {
	svc := NewMatchService(nil, nil)
	view, err := svc.CreateMatch(context.Background(), "", "bogus", int64Ptr(1), nil)
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if view.ID == "" {
		t.Error("expected a match ID")
	}
	if view.PlayerName != "guest" {
		t.Errorf("expected default player name guest, got %s", view.PlayerName)
	}
	if view.Difficulty != "balanced" {
		t.Errorf("unknown difficulty should fall back to balanced, got %s", view.Difficulty)
	}
	if view.State.Innings != 1 || view.State.GameOver {
		t.Errorf("fresh match state wrong: %+v", view.State)
	}
}

func TestPlayTurnRejectsInvalidMove(t *testing.T) {
	svc := NewMatchService(nil, nil)
	view, err := svc.CreateMatch(context.Background(), "p", "easy", int64Ptr(2), boolPtr(true))
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	for _, mv := range []int{0, 7, -3} {
		if _, err := svc.PlayTurn(context.Background(), view.ID, mv); !errors.Is(err, game.ErrInvalidMove) {
			t.Errorf("PlayTurn(%d) error = %v, want ErrInvalidMove", mv, err)
		}
	}

	// A rejected move must not advance the match.
	got, err := svc.GetMatch(context.Background(), view.ID)
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if got.State.TotalTurns != 0 {
		t.Errorf("rejected moves advanced the match: %+v", got.State)
	}
}

func TestPlayTurnScores(t *testing.T) {
	svc := NewMatchService(nil, nil)
	view, err := svc.CreateMatch(context.Background(), "p", "balanced", int64Ptr(3), boolPtr(true))
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	out, err := svc.PlayTurn(context.Background(), view.ID, 4)
	if err != nil {
		t.Fatalf("PlayTurn: %v", err)
	}
	if out.Result.AIMove < 1 || out.Result.AIMove > 6 {
		t.Errorf("AI move out of range: %d", out.Result.AIMove)
	}
	if out.Result.Out {
		if out.State.Innings != 2 {
			t.Error("first-innings out must switch innings")
		}
	} else if out.State.PlayerScore != 4 {
		t.Errorf("player score = %d, want 4", out.State.PlayerScore)
	}
	if out.State.TotalTurns != 1 {
		t.Errorf("total turns = %d, want 1", out.State.TotalTurns)
	}
}

func TestMatchNotFound(t *testing.T) {
	svc := NewMatchService(nil, nil)
	if _, err := svc.PlayTurn(context.Background(), "nope", 3); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("PlayTurn error = %v, want ErrMatchNotFound", err)
	}
	if _, err := svc.GetMatch(context.Background(), "nope"); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("GetMatch error = %v, want ErrMatchNotFound", err)
	}
	if _, err := svc.GetStatistics(context.Background(), "nope"); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("GetStatistics error = %v, want ErrMatchNotFound", err)
	}
	if err := svc.CloseMatch(context.Background(), "nope"); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("CloseMatch error = %v, want ErrMatchNotFound", err)
	}
}

// playToCompletion drives a match until the engine reports game over.
func playToCompletion(t *testing.T, svc *MatchService, matchID string) game.State {
	t.Helper()
	moves := []int{1, 4, 2, 6, 3, 5}
	for turn := 0; turn < 500; turn++ {
		out, err := svc.PlayTurn(context.Background(), matchID, moves[turn%len(moves)])
		if err != nil {
			t.Fatalf("PlayTurn %d: %v", turn, err)
		}
		if out.Result.GameOver {
			return out.State
		}
	}
	t.Fatal("match did not finish within 500 turns")
	return game.State{}
}

func TestFinishedMatchIsPersisted(t *testing.T) {
	repo := newMockMatchRepo()
	cache := newMockMatchCache()
	svc := NewMatchService(repo, cache)

	view, err := svc.CreateMatch(context.Background(), "p", "hard", int64Ptr(11), boolPtr(true))
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	state := playToCompletion(t, svc, view.ID)

	if len(repo.matches) != 1 {
		t.Fatalf("expected 1 persisted match, got %d", len(repo.matches))
	}
	stored := repo.matches[0]
	if stored.PlayerScore != state.PlayerScore || stored.AIScore != state.AIScore {
		t.Errorf("stored scores (%d, %d) != final state (%d, %d)", stored.PlayerScore, stored.AIScore, state.PlayerScore, state.AIScore)
	}
	if stored.Winner != string(state.Winner) {
		t.Errorf("stored winner %q != %q", stored.Winner, state.Winner)
	}
	if stored.Difficulty != "hard" {
		t.Errorf("stored difficulty = %q", stored.Difficulty)
	}
	if len(stored.MoveLog) == 0 {
		t.Error("expected a move log on the stored match")
	}

	if cache.wins[string(state.Winner)] != 1 {
		t.Errorf("leaderboard wins = %v, want 1 for %q", cache.wins, state.Winner)
	}
	if _, ok := cache.states[view.ID]; ok {
		t.Error("cached live state must be cleared when the match ends")
	}

	// The finished match rejects further moves.
	if _, err := svc.PlayTurn(context.Background(), view.ID, 3); !errors.Is(err, game.ErrMatchOver) {
		t.Errorf("PlayTurn after finish error = %v, want ErrMatchOver", err)
	}
}

func TestRematchKeepsLearnedState(t *testing.T) {
	svc := NewMatchService(nil, nil)
	view, err := svc.CreateMatch(context.Background(), "p", "balanced", int64Ptr(21), boolPtr(true))
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	playToCompletion(t, svc, view.ID)

	again, err := svc.Rematch(context.Background(), view.ID, boolPtr(false))
	if err != nil {
		t.Fatalf("Rematch: %v", err)
	}
	if again.ID != view.ID {
		t.Errorf("rematch should keep the match ID, got %s", again.ID)
	}
	s := again.State
	if s.PlayerScore != 0 || s.AIScore != 0 || s.GameOver || s.Innings != 1 || s.TotalTurns != 0 {
		t.Errorf("rematch state not reset: %+v", s)
	}
	if s.PlayerBatting {
		t.Error("rematch must honor the batting override")
	}

	stats, err := svc.GetStatistics(context.Background(), view.ID)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.TotalPredictions != 0 {
		t.Errorf("rematch must clear telemetry, got %d predictions", stats.TotalPredictions)
	}

	// The rematch still plays: the agent's learned tables survived.
	out, err := svc.PlayTurn(context.Background(), view.ID, 5)
	if err != nil {
		t.Fatalf("PlayTurn after rematch: %v", err)
	}
	if out.State.TotalTurns != 1 {
		t.Errorf("rematch turn count = %d, want 1", out.State.TotalTurns)
	}
}

func TestStateMirroredToCache(t *testing.T) {
	cache := newMockMatchCache()
	svc := NewMatchService(nil, cache)

	view, err := svc.CreateMatch(context.Background(), "p", "easy", int64Ptr(4), boolPtr(true))
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if _, ok := cache.states[view.ID]; !ok {
		t.Fatal("expected live state mirrored at creation")
	}

	out, err := svc.PlayTurn(context.Background(), view.ID, 2)
	if err != nil {
		t.Fatalf("PlayTurn: %v", err)
	}
	if !out.Result.GameOver {
		if _, ok := cache.states[view.ID]; !ok {
			t.Error("expected live state mirrored after a turn")
		}
	}
}

func TestLeaderboardAndSummaryWithoutStores(t *testing.T) {
	svc := NewMatchService(nil, nil)
	board, err := svc.Leaderboard(context.Background())
	if err != nil || len(board) != 0 {
		t.Errorf("Leaderboard = %v, %v; want empty, nil", board, err)
	}
	summary, err := svc.Summary(context.Background())
	if err != nil || summary.TotalMatches != 0 {
		t.Errorf("Summary = %+v, %v; want empty, nil", summary, err)
	}
	recent, err := svc.ListRecent(context.Background(), 10)
	if err != nil || recent != nil {
		t.Errorf("ListRecent = %v, %v; want nil, nil", recent, err)
	}
}
