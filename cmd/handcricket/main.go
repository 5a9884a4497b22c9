// Command handcricket plays an interactive terminal match against the
// adaptive agent.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Momin-Abdurrehman/HandCricket/internal/bot"
	"github.com/Momin-Abdurrehman/HandCricket/pkg/game"
)

func main() {
	var (
		difficulty string
		seed       int64
		name       string
	)
	flag.StringVar(&difficulty, "difficulty", "balanced", "Agent difficulty (easy, balanced, hard)")
	flag.Int64Var(&seed, "seed", 0, "Seed for reproducible matches (0 = random)")
	flag.StringVar(&name, "name", "you", "Your display name")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	profile := bot.ProfileForDifficulty(difficulty)
	agent := bot.NewSeededAgent(profile, seed)
	in := bufio.NewScanner(os.Stdin)

	fmt.Printf("Hand cricket vs the %s agent. Pick 1-6 each turn; a matching\n", profile.Name)
	fmt.Println("pick means out. Bat through both innings and beat the target.")

	for {
		playMatch(in, rng, agent, name)

		stats := agent.Statistics()
		fmt.Printf("\nAgent read you on %d of %d predicted turns (%.0f%% accuracy, %.2f avg confidence).\n",
			int(stats.PredictionAccuracy/100*float64(stats.TotalPredictions)+0.5),
			stats.TotalPredictions, stats.PredictionAccuracy, stats.AverageConfidence)
		if len(stats.FrequentPatterns) > 0 {
			fmt.Println("Your most repeated sequences:")
			for _, p := range stats.FrequentPatterns {
				fmt.Printf("  %v (x%d)\n", p.Moves, p.Count)
			}
		}

		if !askYesNo(in, "\nPlay again? The agent remembers your habits. (y/n) ") {
			return
		}
		agent.Reset()
	}
}

// playMatch runs one full match on the terminal.
func playMatch(in *bufio.Scanner, rng *rand.Rand, agent *bot.Agent, name string) {
	playerBatsFirst := game.Toss(rng)
	engine := game.NewEngine(playerBatsFirst)
	if playerBatsFirst {
		fmt.Printf("\nYou won the toss: %s bats first.\n", name)
	} else {
		fmt.Println("\nThe agent won the toss and bats first.")
	}

	var playerMoves []int
	for !engine.GameOver() {
		state := engine.Snapshot()
		if state.Innings == 2 && len(playerMoves) > 0 {
			fmt.Printf("[innings 2] %s %d / agent %d (target %d)\n", name, state.PlayerScore, state.AIScore, state.Target)
		}

		playerMove := askMove(in)
		playerScore, aiScore := engine.Scores()
		aiBatting := !engine.PlayerBatting()
		aiMove := agent.ChooseMove(playerMoves, aiBatting, aiScore, playerScore, engine.Innings())

		result, err := engine.PlayTurn(playerMove, aiMove)
		if err != nil {
			fmt.Println(err)
			continue
		}
		agent.Update(playerMove, result.Out)
		playerMoves = append(playerMoves, playerMove)

		fmt.Printf("  you: %d  agent: %d", playerMove, aiMove)
		switch {
		case result.Out:
			fmt.Println("  OUT!")
		case result.Runs > 0 && engine.PlayerBatting():
			fmt.Printf("  +%d runs for you\n", result.Runs)
		default:
			fmt.Printf("  +%d runs for the agent\n", result.Runs)
		}
		if result.InningsComplete {
			s := engine.Snapshot()
			fmt.Printf("Innings over. Target to win: %d\n", s.Target)
		}
	}

	final := engine.Snapshot()
	fmt.Printf("\nFinal score: %s %d, agent %d. ", name, final.PlayerScore, final.AIScore)
	switch final.Winner {
	case game.SidePlayer:
		fmt.Println("You win!")
	case game.SideAI:
		fmt.Println("The agent wins.")
	default:
		fmt.Println("Tied match.")
	}
}

// askMove prompts until the player enters a number from 1 to 6.
func askMove(in *bufio.Scanner) int {
	for {
		fmt.Print("your move (1-6): ")
		if !in.Scan() {
			fmt.Println("\nbye")
			os.Exit(0)
		}
		mv, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err != nil || mv < game.MinMove || mv > game.MaxMove {
			fmt.Println("pick a number from 1 to 6")
			continue
		}
		return mv
	}
}

func askYesNo(in *bufio.Scanner, prompt string) bool {
	fmt.Print(prompt)
	if !in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(in.Text()))
	return answer == "y" || answer == "yes"
}
