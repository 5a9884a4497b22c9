package model

import (
	"encoding/json"
	"time"
)

// Match represents a completed hand cricket match.
type Match struct {
	ID          string          `json:"id"`
	PlayerName  string          `json:"player_name"`
	Difficulty  string          `json:"difficulty"`
	PlayerScore int             `json:"player_score"`
	AIScore     int             `json:"ai_score"`
	Winner      string          `json:"winner"` // player, ai, tie
	TotalTurns  int             `json:"total_turns"`
	MoveLog     json.RawMessage `json:"move_log,omitempty"`
	Accuracy    float64         `json:"prediction_accuracy"`
	CreatedAt   time.Time       `json:"created_at"`
	FinishedAt  time.Time       `json:"finished_at"`
}

// TurnRecord is one logged turn inside a match's move log.
type TurnRecord struct {
	PlayerMove int    `json:"player_move"`
	AIMove     int    `json:"ai_move"`
	Batting    string `json:"batting"`
	Innings    int    `json:"innings"`
	Runs       int    `json:"runs"`
	Out        bool   `json:"out"`
}

// MatchSummary is an aggregate view across stored matches.
type MatchSummary struct {
	TotalMatches   int     `json:"total_matches"`
	PlayerWins     int     `json:"player_wins"`
	AIWins         int     `json:"ai_wins"`
	Ties           int     `json:"ties"`
	AvgPlayerScore float64 `json:"avg_player_score"`
	AvgAIScore     float64 `json:"avg_ai_score"`
	AvgAccuracy    float64 `json:"avg_prediction_accuracy"`
	AvgMatchLength float64 `json:"avg_match_length"`
}
