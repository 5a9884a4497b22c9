// Package stats aggregates results and prediction telemetry across
// matches. The tracker is consumed by the self-play arena and the server's
// summary endpoint.
package stats

import (
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/Momin-Abdurrehman/HandCricket/internal/model"
)

// PredictionRecord pairs a single prediction with its realized move.
type PredictionRecord struct {
	Predicted  int     `json:"predicted"`
	Actual     int     `json:"actual"`
	Confidence float64 `json:"confidence"`
	Correct    bool    `json:"correct"`
}

// Tracker accumulates match results and prediction records. Safe for
// concurrent use.
type Tracker struct {
	mu          sync.Mutex
	matches     []model.Match
	predictions []PredictionRecord
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// AddMatch records a completed match.
func (t *Tracker) AddMatch(m model.Match) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.matches = append(t.matches, m)
}

// AddPrediction records one prediction against the realized move.
func (t *Tracker) AddPrediction(predicted, actual int, confidence float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.predictions = append(t.predictions, PredictionRecord{
		Predicted:  predicted,
		Actual:     actual,
		Confidence: confidence,
		Correct:    predicted == actual,
	})
}

// WinRate returns the percentage of recorded matches won by the given side
// ("player", "ai", or "tie").
func (t *Tracker) WinRate(side string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.winRateLocked(side)
}

func (t *Tracker) winRateLocked(side string) float64 {
	if len(t.matches) == 0 {
		return 0
	}
	wins := 0
	for _, m := range t.matches {
		if m.Winner == side {
			wins++
		}
	}
	return 100 * float64(wins) / float64(len(t.matches))
}

// AverageScore returns the mean score for the given side across recorded
// matches.
func (t *Tracker) AverageScore(side string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.averageScoreLocked(side)
}

func (t *Tracker) averageScoreLocked(side string) float64 {
	if len(t.matches) == 0 {
		return 0
	}
	scores := make([]float64, len(t.matches))
	for i, m := range t.matches {
		if side == "player" {
			scores[i] = float64(m.PlayerScore)
		} else {
			scores[i] = float64(m.AIScore)
		}
	}
	return stat.Mean(scores, nil)
}

// PredictionAccuracy returns the percentage of recorded predictions that
// matched the realized move.
func (t *Tracker) PredictionAccuracy() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.accuracyLocked()
}

func (t *Tracker) accuracyLocked() float64 {
	if len(t.predictions) == 0 {
		return 0
	}
	correct := 0
	for _, p := range t.predictions {
		if p.Correct {
			correct++
		}
	}
	return 100 * float64(correct) / float64(len(t.predictions))
}

// MoveFrequency returns the percentage share of each move 1..6 in the
// given history.
func MoveFrequency(history []int) map[int]float64 {
	freq := make(map[int]float64, 6)
	for mv := 1; mv <= 6; mv++ {
		freq[mv] = 0
	}
	if len(history) == 0 {
		return freq
	}
	for _, mv := range history {
		if mv >= 1 && mv <= 6 {
			freq[mv]++
		}
	}
	for mv := range freq {
		freq[mv] = 100 * freq[mv] / float64(len(history))
	}
	return freq
}

// LearningCurve returns the prediction accuracy over time as a trailing
// moving average with the given window size.
func (t *Tracker) LearningCurve(windowSize int) []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.predictions) == 0 {
		return nil
	}
	if windowSize < 1 {
		windowSize = 1
	}
	curve := make([]float64, len(t.predictions))
	for i := range t.predictions {
		start := i - windowSize + 1
		if start < 0 {
			start = 0
		}
		correct := 0
		for _, p := range t.predictions[start : i+1] {
			if p.Correct {
				correct++
			}
		}
		curve[i] = 100 * float64(correct) / float64(i+1-start)
	}
	return curve
}

// Summary returns the aggregate view across every recorded match.
func (t *Tracker) Summary() model.MatchSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := model.MatchSummary{TotalMatches: len(t.matches)}
	if len(t.matches) == 0 {
		return s
	}

	lengths := make([]float64, len(t.matches))
	accuracies := make([]float64, len(t.matches))
	for i, m := range t.matches {
		switch m.Winner {
		case "player":
			s.PlayerWins++
		case "ai":
			s.AIWins++
		default:
			s.Ties++
		}
		lengths[i] = float64(m.TotalTurns)
		accuracies[i] = m.Accuracy
	}
	s.AvgPlayerScore = t.averageScoreLocked("player")
	s.AvgAIScore = t.averageScoreLocked("ai")
	s.AvgMatchLength = stat.Mean(lengths, nil)
	s.AvgAccuracy = stat.Mean(accuracies, nil)
	return s
}

// TotalPredictions returns the number of recorded prediction pairs.
func (t *Tracker) TotalPredictions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.predictions)
}
