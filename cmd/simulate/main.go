// Command simulate runs scripted players against the adaptive agent to
// measure how quickly it locks onto different behavior profiles.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Momin-Abdurrehman/HandCricket/internal/bot"
	"github.com/Momin-Abdurrehman/HandCricket/internal/model"
	"github.com/Momin-Abdurrehman/HandCricket/internal/repository/postgres"
	"github.com/Momin-Abdurrehman/HandCricket/internal/stats"
	"github.com/Momin-Abdurrehman/HandCricket/pkg/game"
)

// maxTurns caps a single simulated match; a match this long means the
// sides stopped colliding entirely.
const maxTurns = 2000

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var (
		modelName  string
		difficulty string
		numMatches int
		workers    int
		seed       int64
		dbURL      string
		dryRun     bool
		jsonOut    bool
	)

	flag.StringVar(&modelName, "model", "uniform", "Player model (uniform, biased, cycler, mimic)")
	flag.StringVar(&difficulty, "difficulty", "balanced", "Agent difficulty (easy, balanced, hard)")
	flag.IntVar(&numMatches, "n", 10, "Number of matches to run")
	flag.IntVar(&workers, "workers", 1, "Concurrency (parallel matches)")
	flag.Int64Var(&seed, "seed", 0, "Base seed (0 = random)")
	flag.StringVar(&dbURL, "db", "", "Database URL (or use DATABASE_URL env)")
	flag.BoolVar(&dryRun, "dry-run", false, "Skip database writes")
	flag.BoolVar(&jsonOut, "json", false, "Output results as JSON")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Resolve DB URL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	var matchRepo *postgres.MatchRepo
	if !dryRun && dbURL != "" {
		db, err := postgres.Connect(dbURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Database connection failed")
		}
		defer db.Close()
		matchRepo = postgres.NewMatchRepo(db)
	}

	tracker := stats.NewTracker()
	profile := bot.ProfileForDifficulty(difficulty)

	var wg sync.WaitGroup
	var mu sync.Mutex
	sem := make(chan struct{}, workers)
	errCount := 0

	for i := 0; i < numMatches; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			matchSeed := seed + int64(idx)
			result, err := runMatch(newPlayerModel(modelName, matchSeed), profile, matchSeed)
			if err != nil {
				log.Error().Err(err).Int("match", idx+1).Msg("Match failed")
				mu.Lock()
				errCount++
				mu.Unlock()
				return
			}

			tracker.AddMatch(*result)
			if matchRepo != nil {
				if _, err := matchRepo.Create(context.Background(), result); err != nil {
					log.Error().Err(err).Int("match", idx+1).Msg("Persist failed")
				}
			}
			log.Info().
				Int("match", idx+1).
				Str("winner", result.Winner).
				Int("player_score", result.PlayerScore).
				Int("ai_score", result.AIScore).
				Float64("accuracy", result.Accuracy).
				Msg("Match completed")
		}(i)
	}
	wg.Wait()

	if jsonOut {
		printJSON(tracker, modelName, profile.Name, errCount)
	} else {
		printSummary(tracker, modelName, profile.Name, numMatches, errCount)
	}
}

// runMatch plays one full match between a scripted player and a fresh
// agent.
func runMatch(player playerModel, profile bot.Profile, seed int64) (*model.Match, error) {
	rng := rand.New(rand.NewSource(seed))
	agent := bot.NewSeededAgent(profile, seed)
	engine := game.NewEngine(game.Toss(rng))

	var playerMoves []int
	for turn := 0; turn < maxTurns; turn++ {
		playerScore, aiScore := engine.Scores()
		aiBatting := !engine.PlayerBatting()

		playerMove := player.Move(rng)
		aiMove := agent.ChooseMove(playerMoves, aiBatting, aiScore, playerScore, engine.Innings())

		result, err := engine.PlayTurn(playerMove, aiMove)
		if err != nil {
			return nil, err
		}
		agent.Update(playerMove, result.Out)
		playerMoves = append(playerMoves, playerMove)
		player.Observe(aiMove)

		if result.GameOver {
			state := engine.Snapshot()
			moveLog, err := json.Marshal(engine.Turns())
			if err != nil {
				return nil, err
			}
			agentStats := agent.Statistics()
			return &model.Match{
				PlayerName:  player.Name(),
				Difficulty:  profile.Name,
				PlayerScore: state.PlayerScore,
				AIScore:     state.AIScore,
				Winner:      string(state.Winner),
				TotalTurns:  state.TotalTurns,
				MoveLog:     moveLog,
				Accuracy:    agentStats.PredictionAccuracy,
				FinishedAt:  time.Now(),
			}, nil
		}
	}
	return nil, fmt.Errorf("match exceeded %d turns", maxTurns)
}

func printSummary(tracker *stats.Tracker, modelName, difficulty string, numMatches, errCount int) {
	s := tracker.Summary()
	fmt.Printf("\n=== %s vs %s agent ===\n", modelName, difficulty)
	fmt.Printf("Matches:       %d (%d failed)\n", numMatches, errCount)
	fmt.Printf("AI wins:       %d (%.1f%%)\n", s.AIWins, tracker.WinRate("ai"))
	fmt.Printf("Player wins:   %d (%.1f%%)\n", s.PlayerWins, tracker.WinRate("player"))
	fmt.Printf("Ties:          %d\n", s.Ties)
	fmt.Printf("Avg AI score:  %.1f\n", s.AvgAIScore)
	fmt.Printf("Avg player:    %.1f\n", s.AvgPlayerScore)
	fmt.Printf("Avg accuracy:  %.1f%%\n", s.AvgAccuracy)
	fmt.Printf("Avg length:    %.1f turns\n", s.AvgMatchLength)
}

func printJSON(tracker *stats.Tracker, modelName, difficulty string, errCount int) {
	out := struct {
		Model      string             `json:"model"`
		Difficulty string             `json:"difficulty"`
		Errors     int                `json:"errors"`
		Summary    model.MatchSummary `json:"summary"`
	}{
		Model:      modelName,
		Difficulty: difficulty,
		Errors:     errCount,
		Summary:    tracker.Summary(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Error().Err(err).Msg("Encode results failed")
	}
}
