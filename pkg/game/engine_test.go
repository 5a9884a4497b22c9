package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestPlayTurnRejectsInvalidMoves(t *testing.T) {
	tests := []struct {
		name       string
		playerMove int
		aiMove     int
	}{
		{"player zero", 0, 3},
		{"player seven", 7, 3},
		{"player negative", -1, 3},
		{"ai zero", 3, 0},
		{"ai seven", 3, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(true)
			_, err := e.PlayTurn(tt.playerMove, tt.aiMove)
			if !errors.Is(err, ErrInvalidMove) {
				t.Errorf("PlayTurn(%d, %d) error = %v, want ErrInvalidMove", tt.playerMove, tt.aiMove, err)
			}
			if len(e.Turns()) != 0 {
				t.Error("rejected turn must not be logged")
			}
		})
	}
}

func TestPlayTurnScoresBattingSide(t *testing.T) {
	e := NewEngine(true)
	res, err := e.PlayTurn(4, 2)
	if err != nil {
		t.Fatalf("PlayTurn: %v", err)
	}
	if res.Out || res.Runs != 4 {
		t.Errorf("batting player should score 4, got out=%v runs=%d", res.Out, res.Runs)
	}
	player, ai := e.Scores()
	if player != 4 || ai != 0 {
		t.Errorf("scores = (%d, %d), want (4, 0)", player, ai)
	}

	e2 := NewEngine(false)
	res, err = e2.PlayTurn(4, 2)
	if err != nil {
		t.Fatalf("PlayTurn: %v", err)
	}
	if res.Runs != 2 {
		t.Errorf("batting AI should score its own pick 2, got %d", res.Runs)
	}
	player, ai = e2.Scores()
	if player != 0 || ai != 2 {
		t.Errorf("scores = (%d, %d), want (0, 2)", player, ai)
	}
}

func TestFirstInningsOutSwitchesSides(t *testing.T) {
	e := NewEngine(true)
	res, err := e.PlayTurn(3, 3)
	if err != nil {
		t.Fatalf("PlayTurn: %v", err)
	}
	if !res.Out || res.Runs != 0 {
		t.Errorf("matching picks must be out with no runs, got out=%v runs=%d", res.Out, res.Runs)
	}
	if !res.InningsComplete {
		t.Error("first-innings out must complete the innings")
	}
	if res.GameOver {
		t.Error("first-innings out must not end the match")
	}
	if e.Innings() != 2 || e.PlayerBatting() {
		t.Errorf("expected AI batting in innings 2, got innings=%d playerBatting=%v", e.Innings(), e.PlayerBatting())
	}
	if e.Target() != 1 {
		t.Errorf("target = %d, want 1 (chasing a duck)", e.Target())
	}
}

func TestChaseCompletesMatch(t *testing.T) {
	e := NewEngine(true)
	// Player bats 5 then is out for 5.
	mustPlay(t, e, 5, 2)
	mustPlay(t, e, 3, 3)
	if e.Target() != 6 {
		t.Fatalf("target = %d, want 6", e.Target())
	}

	// AI chases: 4 then 2 passes the target.
	mustPlay(t, e, 1, 4)
	res := mustPlay(t, e, 1, 2)
	if !res.GameOver || res.Winner != SideAI {
		t.Errorf("expected AI win on passing target, got over=%v winner=%q", res.GameOver, res.Winner)
	}
	if _, ai := e.Scores(); ai != 6 {
		t.Errorf("ai score = %d, want 6", ai)
	}
}

func TestSecondInningsOutDecidesWinner(t *testing.T) {
	e := NewEngine(false)
	// AI bats 6 then is out.
	mustPlay(t, e, 1, 6)
	mustPlay(t, e, 2, 2)

	// Player falls short: scores 3, then out.
	mustPlay(t, e, 3, 1)
	res := mustPlay(t, e, 5, 5)
	if !res.GameOver || res.Winner != SideAI {
		t.Errorf("expected AI to defend 6, got over=%v winner=%q", res.GameOver, res.Winner)
	}
}

func TestTieOnLevelScores(t *testing.T) {
	e := NewEngine(true)
	mustPlay(t, e, 4, 1)
	mustPlay(t, e, 2, 2) // player out for 4

	mustPlay(t, e, 1, 4) // ai reaches 4
	res := mustPlay(t, e, 6, 6)
	if !res.GameOver || res.Winner != SideNone {
		t.Errorf("expected tie at level scores, got over=%v winner=%q", res.GameOver, res.Winner)
	}
}

func TestPlayTurnAfterGameOver(t *testing.T) {
	e := NewEngine(true)
	mustPlay(t, e, 1, 1)
	mustPlay(t, e, 4, 4)
	if !e.GameOver() {
		t.Fatal("double duck should end the match")
	}
	if _, err := e.PlayTurn(1, 2); !errors.Is(err, ErrMatchOver) {
		t.Errorf("expected ErrMatchOver on a finished match, got %v", err)
	}
}

func TestResetClearsState(t *testing.T) {
	e := NewEngine(true)
	mustPlay(t, e, 5, 2)
	mustPlay(t, e, 3, 3)

	e.Reset(false)
	s := e.Snapshot()
	if s.PlayerScore != 0 || s.AIScore != 0 || s.Innings != 1 || s.GameOver || s.TotalTurns != 0 {
		t.Errorf("reset left state behind: %+v", s)
	}
	if s.PlayerBatting {
		t.Error("reset must honor the new batting side")
	}
}

func TestSnapshotTracksLog(t *testing.T) {
	e := NewEngine(true)
	mustPlay(t, e, 5, 2)
	mustPlay(t, e, 6, 1)

	s := e.Snapshot()
	if s.PlayerScore != 11 || s.TotalTurns != 2 || s.Innings != 1 || s.Target != 0 {
		t.Errorf("snapshot = %+v", s)
	}

	turns := e.Turns()
	if len(turns) != 2 || turns[0].Runs != 5 || turns[1].Batting != SidePlayer {
		t.Errorf("move log = %+v", turns)
	}
	// The returned log is a copy.
	turns[0].Runs = 99
	if e.Turns()[0].Runs != 5 {
		t.Error("Turns must return a copy of the log")
	}
}

func TestTossIsFair(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	heads := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if Toss(rng) {
			heads++
		}
	}
	ratio := float64(heads) / n
	if ratio < 0.45 || ratio > 0.55 {
		t.Errorf("toss ratio %v, want ~0.5", ratio)
	}
}

func mustPlay(t *testing.T, e *Engine, playerMove, aiMove int) TurnResult {
	t.Helper()
	res, err := e.PlayTurn(playerMove, aiMove)
	if err != nil {
		t.Fatalf("PlayTurn(%d, %d): %v", playerMove, aiMove, err)
	}
	return res
}
