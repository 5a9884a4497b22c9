package main

import "math/rand"

// playerModel is a scripted opponent for the arena. Move picks the next
// throw; Observe feeds back the agent's throw for models that react to it.
type playerModel interface {
	Name() string
	Move(rng *rand.Rand) int
	Observe(aiMove int)
}

// newPlayerModel builds the named model, falling back to uniform.
func newPlayerModel(name string, seed int64) playerModel {
	switch name {
	case "biased":
		return &biasedPlayer{}
	case "cycler":
		return &cyclerPlayer{cycle: []int{2, 4, 6, 4}}
	case "mimic":
		return &mimicPlayer{last: 1 + rand.New(rand.NewSource(seed)).Intn(6)}
	default:
		return uniformPlayer{}
	}
}

// uniformPlayer throws uniformly at random: the hardest player to predict
// and the baseline the agent cannot beat by learning.
type uniformPlayer struct{}

func (uniformPlayer) Name() string            { return "uniform" }
func (uniformPlayer) Move(rng *rand.Rand) int { return 1 + rng.Intn(6) }
func (uniformPlayer) Observe(int)             {}

// biasedPlayer heavily favors the big numbers, the way impatient humans
// chasing quick runs do.
type biasedPlayer struct{}

func (*biasedPlayer) Name() string { return "biased" }

func (*biasedPlayer) Move(rng *rand.Rand) int {
	r := rng.Float64()
	switch {
	case r < 0.40:
		return 6
	case r < 0.70:
		return 4
	default:
		return 1 + rng.Intn(6)
	}
}

func (*biasedPlayer) Observe(int) {}

// cyclerPlayer repeats a fixed cycle of moves.
type cyclerPlayer struct {
	cycle []int
	pos   int
}

func (*cyclerPlayer) Name() string { return "cycler" }

func (p *cyclerPlayer) Move(*rand.Rand) int {
	mv := p.cycle[p.pos%len(p.cycle)]
	p.pos++
	return mv
}

func (*cyclerPlayer) Observe(int) {}

// mimicPlayer copies the agent's previous throw.
type mimicPlayer struct {
	last int
}

func (*mimicPlayer) Name() string          { return "mimic" }
func (p *mimicPlayer) Move(*rand.Rand) int { return p.last }
func (p *mimicPlayer) Observe(aiMove int)  { p.last = aiMove }
