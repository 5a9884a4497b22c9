package bot

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// Profile is a difficulty configuration bundle for the agent.
type Profile struct {
	Name string
	// Randomness is the probability of deliberately overriding the learned
	// pick with an unpredictable one.
	Randomness float64
	// LearningSpeed is the number of observed turns needed to reach full
	// confidence in the learned signal.
	LearningSpeed int
	// PatternWeight caps how much of the final distribution the learned
	// signal may claim over the uniform hedge.
	PatternWeight float64
}

// Difficulty presets. Easy plays looser and trusts patterns less; hard is
// the opposite extreme.
var (
	ProfileEasy     = Profile{Name: "easy", Randomness: 0.25, LearningSpeed: 40, PatternWeight: 0.60}
	ProfileBalanced = Profile{Name: "balanced", Randomness: 0.10, LearningSpeed: 30, PatternWeight: 0.82}
	ProfileHard     = Profile{Name: "hard", Randomness: 0.03, LearningSpeed: 20, PatternWeight: 0.92}
)

// ProfileForDifficulty maps a difficulty name to its preset, defaulting to
// balanced.
func ProfileForDifficulty(difficulty string) Profile {
	switch difficulty {
	case "easy":
		return ProfileEasy
	case "hard":
		return ProfileHard
	default:
		return ProfileBalanced
	}
}

// Ensemble blend weights. They sum to 1; the uniform component keeps the
// agent from ever becoming fully deterministic.
const (
	weightNGram      = 0.18
	weightWindow     = 0.12
	weightEMA        = 0.15
	weightPatterns   = 0.12
	weightFTRL       = 0.13
	weightBandit     = 0.08
	weightClassifier = 0.04
	weightUniform    = 0.18
)

// Statistics is the agent's prediction telemetry for the current match.
type Statistics struct {
	TotalPredictions   int       `json:"total_predictions"`
	PredictionAccuracy float64   `json:"prediction_accuracy"` // percent, over paired turns
	AverageConfidence  float64   `json:"average_confidence"`
	FrequentPatterns   []Pattern `json:"frequent_patterns"` // top five by count
}

// Agent is the adaptive opponent. It owns one instance of every estimator,
// a seedable random source threaded through every randomized step, and the
// per-match telemetry. Estimator state is not safe for concurrent use; each
// match gets its own Agent.
type Agent struct {
	profile        Profile
	layersDisabled bool
	rng            *rand.Rand

	ngrams     *NGramModel
	window     *SlidingWindow
	ema        *EMAEstimator
	miner      *PatternMiner
	ftrl       *FTRLOptimizer
	bandit     *UCB1Bandit
	classifier *OnlineClassifier
	sim        *Simulator

	// Per-match state, cleared by Reset. The learned tables above survive.
	history     []int     // realized player moves observed via Update
	predicted   []int     // predicted move per telemetry turn
	realized    []int     // realized move for turns that carried a prediction
	confidences []float64 // ensemble confidence per telemetry turn
	pending     bool      // a prediction was recorded and awaits its outcome
}

// NewAgent creates an agent for the given profile with a time-seeded source.
func NewAgent(profile Profile) *Agent {
	return NewSeededAgent(profile, time.Now().UnixNano())
}

// NewSeededAgent creates an agent with a deterministic random source for
// reproducible matches and tests.
func NewSeededAgent(profile Profile, seed int64) *Agent {
	rng := rand.New(rand.NewSource(seed))
	return &Agent{
		profile:    profile,
		rng:        rng,
		ngrams:     NewNGramModel(3),
		window:     NewSlidingWindow(20),
		ema:        NewEMAEstimator(0.3),
		miner:      NewPatternMiner(2),
		ftrl:       NewFTRLOptimizer(),
		bandit:     NewUCB1Bandit(2.0),
		classifier: NewOnlineClassifier(rng, 0.01),
		sim:        NewSimulator(1000),
	}
}

// DisableLayers degrades the agent to pure uniform-random action selection.
// No predictions are made or recorded while disabled.
func (a *Agent) DisableLayers() {
	a.layersDisabled = true
}

// Profile returns the agent's difficulty configuration.
func (a *Agent) Profile() Profile {
	return a.profile
}

// ChooseMove picks the agent's next throw given the player's full move
// history and the game situation. With fewer than three observed moves, or
// with the layers disabled, the pick is uniform random and no telemetry is
// recorded.
func (a *Agent) ChooseMove(history []int, batting bool, ownScore, oppScore, innings int) int {
	if a.layersDisabled || len(history) < 3 {
		return 1 + a.rng.Intn(numMoves)
	}

	raw := a.ensemble(history)

	// Early-game hedge: blend toward uniform until enough turns have been
	// observed, capped by the profile's pattern weight.
	learningFactor := float64(len(history)) / float64(a.profile.LearningSpeed)
	if learningFactor > 1 {
		learningFactor = 1
	}
	trust := learningFactor * a.profile.PatternWeight
	final := make(dist, numMoves)
	for i := range final {
		final[i] = trust*raw[i] + (1-trust)/numMoves
	}
	final.normalize()

	// Telemetry: the predicted move comes from the final distribution; the
	// confidence from the raw ensemble, the learned signal before the hedge.
	a.predicted = append(a.predicted, final.argMax()+1)
	a.confidences = append(a.confidences, raw.max())
	a.pending = true

	if a.rng.Float64() < a.profile.Randomness {
		// Deliberate unpredictability: sample biased toward the moves the
		// ensemble considers least likely.
		weights := make(dist, numMoves)
		for i, p := range final {
			weights[i] = 1 - p
		}
		weights.normalize()
		move := weights.sample(a.rng)
		log.Debug().Str("profile", a.profile.Name).Int("move", move).Msg("exploration override")
		return move
	}

	return a.sim.Adaptive(a.rng, final, batting, ownScore, oppScore, innings)
}

// ensemble queries every estimator over the trailing history window and
// combines the distributions with the fixed blend weights.
func (a *Agent) ensemble(history []int) dist {
	recent := history
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}

	ngramProbs := a.ngrams.Predict(recent, defaultSmoothing)
	windowProbs := a.window.Distribution()
	emaProbs := a.ema.Distribution()
	patternProbs := a.miner.Predict(recent)
	ftrlProbs := a.ftrl.Probabilities()
	banditProbs := a.bandit.Probabilities()
	lrProbs := a.classifier.Predict(a.classifier.ExtractFeatures(history))

	combined := make(dist, numMoves)
	floats.AddScaled(combined, weightNGram, ngramProbs)
	floats.AddScaled(combined, weightWindow, windowProbs)
	floats.AddScaled(combined, weightEMA, emaProbs)
	floats.AddScaled(combined, weightPatterns, patternProbs)
	floats.AddScaled(combined, weightFTRL, ftrlProbs)
	floats.AddScaled(combined, weightBandit, banditProbs)
	floats.AddScaled(combined, weightClassifier, lrProbs)
	floats.AddScaled(combined, weightUniform, uniformDist())
	return combined.normalize()
}

// Update feeds the realized player move back into every estimator. Must be
// called exactly once per turn, after ChooseMove, with the player's move.
func (a *Agent) Update(move int, wasOut bool) {
	a.history = append(a.history, move)

	a.ngrams.Update([]int{move})
	a.window.Update(move)
	a.ema.Update(move)
	a.miner.Update([]int{move}, maxSuffixLen)

	if a.pending {
		a.pending = false
		predicted := a.predicted[len(a.predicted)-1]
		a.realized = append(a.realized, move)

		loss, reward := 1.0, 0.0
		if predicted == move {
			loss, reward = 0.0, 1.0
		}
		a.ftrl.Update(move-1, loss)
		a.bandit.Update(move-1, reward)
		log.Debug().Int("predicted", predicted).Int("realized", move).Bool("out", wasOut).Msg("prediction outcome")
	}

	if len(a.history) > 1 {
		features := a.classifier.ExtractFeatures(a.history[:len(a.history)-1])
		a.classifier.Update(features, move-1)
	}
}

// Statistics reports prediction telemetry for the current match plus the
// top mined patterns. Accuracy compares each prediction with the realized
// move of the same turn; turns that took the random path carry no pair.
func (a *Agent) Statistics() Statistics {
	stats := Statistics{TotalPredictions: len(a.predicted)}

	paired := len(a.realized)
	if paired > 0 {
		correct := 0
		for i := 0; i < paired; i++ {
			if a.predicted[i] == a.realized[i] {
				correct++
			}
		}
		stats.PredictionAccuracy = 100 * float64(correct) / float64(paired)
	}
	if len(a.confidences) > 0 {
		stats.AverageConfidence = floats.Sum(a.confidences) / float64(len(a.confidences))
	}

	patterns := a.miner.FrequentPatterns()
	if len(patterns) > 5 {
		patterns = patterns[:5]
	}
	stats.FrequentPatterns = patterns
	return stats
}

// Reset clears the per-match history and telemetry for a rematch. The
// learned tables (n-gram, patterns, FTRL, bandit, classifier) persist so the
// agent keeps what it knows about the player.
func (a *Agent) Reset() {
	a.history = nil
	a.predicted = nil
	a.realized = nil
	a.confidences = nil
	a.pending = false
}
