// Package game implements the hand cricket rules engine: a two-innings
// state machine where matching picks dismiss the batter and non-matching
// picks score the batter's number. The engine validates input and tracks
// scores, innings, target, and winner; it knows nothing about how either
// side chooses its moves.
package game

import (
	"errors"
	"fmt"
	"math/rand"
)

// Valid moves are the numbers 1 through 6 inclusive.
const (
	MinMove = 1
	MaxMove = 6
)

var (
	ErrInvalidMove = errors.New("invalid move: choose a number between 1 and 6")
	ErrMatchOver   = errors.New("match is already over")
)

// Side identifies a participant in the match.
type Side string

const (
	SidePlayer Side = "player"
	SideAI     Side = "ai"
	// SideNone is the winner value for a tied match.
	SideNone Side = "tie"
)

// Turn is one entry in the match's move log.
type Turn struct {
	PlayerMove int  `json:"player_move"`
	AIMove     int  `json:"ai_move"`
	Batting    Side `json:"batting"`
	Innings    int  `json:"innings"`
	Runs       int  `json:"runs"`
	Out        bool `json:"out"`
}

// TurnResult describes what a single call to PlayTurn did to the match.
type TurnResult struct {
	PlayerMove      int  `json:"player_move"`
	AIMove          int  `json:"ai_move"`
	Out             bool `json:"out"`
	Runs            int  `json:"runs"`
	InningsComplete bool `json:"innings_complete"`
	GameOver        bool `json:"game_over"`
	Winner          Side `json:"winner,omitempty"`
}

// State is a serializable snapshot of the match.
type State struct {
	PlayerScore   int  `json:"player_score"`
	AIScore       int  `json:"ai_score"`
	PlayerBatting bool `json:"player_batting"`
	Innings       int  `json:"innings"`
	Target        int  `json:"target,omitempty"` // 0 during the first innings
	GameOver      bool `json:"game_over"`
	Winner        Side `json:"winner,omitempty"`
	TotalTurns    int  `json:"total_turns"`
}

// Engine holds the state of one match. It is not safe for concurrent use;
// callers serialize access per match.
type Engine struct {
	playerScore   int
	aiScore       int
	playerBatting bool
	innings       int
	gameOver      bool
	winner        Side
	turns         []Turn
}

// Toss picks who bats first with a fair coin.
func Toss(rng *rand.Rand) bool {
	return rng.Intn(2) == 0
}

// NewEngine creates an engine for a fresh match with the given side batting
// in the first innings.
func NewEngine(playerBatsFirst bool) *Engine {
	e := &Engine{}
	e.Reset(playerBatsFirst)
	return e
}

// Reset discards the match state and starts over with the given side
// batting first.
func (e *Engine) Reset(playerBatsFirst bool) {
	e.playerScore = 0
	e.aiScore = 0
	e.playerBatting = playerBatsFirst
	e.innings = 1
	e.gameOver = false
	e.winner = ""
	e.turns = nil
}

// PlayTurn processes one simultaneous pick from each side. It validates
// both moves, applies the out/score rule, switches innings on a
// first-innings dismissal, and finishes the match when the second innings
// ends by dismissal or by the chaser passing the target.
func (e *Engine) PlayTurn(playerMove, aiMove int) (TurnResult, error) {
	if e.gameOver {
		return TurnResult{}, ErrMatchOver
	}
	if playerMove < MinMove || playerMove > MaxMove {
		return TurnResult{}, fmt.Errorf("%w: got %d", ErrInvalidMove, playerMove)
	}
	if aiMove < MinMove || aiMove > MaxMove {
		return TurnResult{}, fmt.Errorf("%w: got %d", ErrInvalidMove, aiMove)
	}

	result := TurnResult{PlayerMove: playerMove, AIMove: aiMove}
	batting := SideAI
	if e.playerBatting {
		batting = SidePlayer
	}

	if playerMove == aiMove {
		result.Out = true
	} else if e.playerBatting {
		result.Runs = playerMove
		e.playerScore += playerMove
	} else {
		result.Runs = aiMove
		e.aiScore += aiMove
	}

	e.turns = append(e.turns, Turn{
		PlayerMove: playerMove,
		AIMove:     aiMove,
		Batting:    batting,
		Innings:    e.innings,
		Runs:       result.Runs,
		Out:        result.Out,
	})

	if e.innings == 1 {
		if result.Out {
			e.innings = 2
			e.playerBatting = !e.playerBatting
			result.InningsComplete = true
		}
		return result, nil
	}

	// Second innings: the match ends on a dismissal or once the chaser
	// has passed the first-innings score.
	chased := (e.playerBatting && e.playerScore > e.aiScore) ||
		(!e.playerBatting && e.aiScore > e.playerScore)
	if result.Out || chased {
		e.gameOver = true
		e.winner = e.decideWinner()
		result.GameOver = true
		result.Winner = e.winner
	}
	return result, nil
}

func (e *Engine) decideWinner() Side {
	switch {
	case e.playerScore > e.aiScore:
		return SidePlayer
	case e.aiScore > e.playerScore:
		return SideAI
	default:
		return SideNone
	}
}

// Target returns the score the chasing side needs to win, or 0 during the
// first innings.
func (e *Engine) Target() int {
	if e.innings != 2 {
		return 0
	}
	if e.playerBatting {
		return e.aiScore + 1
	}
	return e.playerScore + 1
}

// PlayerBatting reports whether the player is the batting side right now.
func (e *Engine) PlayerBatting() bool { return e.playerBatting }

// GameOver reports whether the match has finished.
func (e *Engine) GameOver() bool { return e.gameOver }

// Winner returns the match result, or "" while the match is live.
func (e *Engine) Winner() Side { return e.winner }

// Scores returns the current player and AI scores.
func (e *Engine) Scores() (player, ai int) { return e.playerScore, e.aiScore }

// Innings returns the current innings number (1 or 2).
func (e *Engine) Innings() int { return e.innings }

// Turns returns a copy of the move log.
func (e *Engine) Turns() []Turn {
	out := make([]Turn, len(e.turns))
	copy(out, e.turns)
	return out
}

// Snapshot returns a serializable view of the match state.
func (e *Engine) Snapshot() State {
	return State{
		PlayerScore:   e.playerScore,
		AIScore:       e.aiScore,
		PlayerBatting: e.playerBatting,
		Innings:       e.innings,
		Target:        e.Target(),
		GameOver:      e.gameOver,
		Winner:        e.winner,
		TotalTurns:    len(e.turns),
	}
}
