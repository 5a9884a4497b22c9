package main

import (
	"math/rand"
	"testing"

	"github.com/Momin-Abdurrehman/HandCricket/internal/bot"
)

func TestPlayerModelsProduceValidMoves(t *testing.T) {
	for _, name := range []string{"uniform", "biased", "cycler", "mimic", "unknown"} {
		t.Run(name, func(t *testing.T) {
			p := newPlayerModel(name, 1)
			rng := rand.New(rand.NewSource(2))
			for i := 0; i < 200; i++ {
				mv := p.Move(rng)
				if mv < 1 || mv > 6 {
					t.Fatalf("%s produced move %d", p.Name(), mv)
				}
				p.Observe(1 + i%6)
			}
		})
	}
}

func TestCyclerRepeats(t *testing.T) {
	p := newPlayerModel("cycler", 1)
	first := []int{p.Move(nil), p.Move(nil), p.Move(nil), p.Move(nil)}
	second := []int{p.Move(nil), p.Move(nil), p.Move(nil), p.Move(nil)}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cycle not repeating: %v then %v", first, second)
		}
	}
}

func TestMimicCopiesLastAIMove(t *testing.T) {
	p := newPlayerModel("mimic", 1)
	p.Observe(5)
	if mv := p.Move(nil); mv != 5 {
		t.Errorf("mimic move = %d, want 5", mv)
	}
	p.Observe(2)
	if mv := p.Move(nil); mv != 2 {
		t.Errorf("mimic move = %d, want 2", mv)
	}
}

func TestRunMatchCompletes(t *testing.T) {
	for _, name := range []string{"uniform", "biased", "cycler", "mimic"} {
		t.Run(name, func(t *testing.T) {
			result, err := runMatch(newPlayerModel(name, 7), bot.ProfileBalanced, 7)
			if err != nil {
				t.Fatalf("runMatch: %v", err)
			}
			if result.Winner != "player" && result.Winner != "ai" && result.Winner != "tie" {
				t.Errorf("winner = %q", result.Winner)
			}
			if result.TotalTurns < 2 {
				t.Errorf("total turns = %d, expected at least one turn per innings", result.TotalTurns)
			}
			if len(result.MoveLog) == 0 {
				t.Error("expected a move log")
			}
		})
	}
}

func TestRunMatchDeterministic(t *testing.T) {
	a, err := runMatch(newPlayerModel("biased", 11), bot.ProfileHard, 11)
	if err != nil {
		t.Fatalf("runMatch: %v", err)
	}
	b, err := runMatch(newPlayerModel("biased", 11), bot.ProfileHard, 11)
	if err != nil {
		t.Fatalf("runMatch: %v", err)
	}
	if a.PlayerScore != b.PlayerScore || a.AIScore != b.AIScore || a.Winner != b.Winner || a.TotalTurns != b.TotalTurns {
		t.Errorf("same seed diverged: %+v vs %+v", a, b)
	}
}
