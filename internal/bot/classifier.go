package bot

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// OnlineClassifier is a multinomial logistic regression over a fixed-size
// window of recent moves, updated one observation at a time by gradient
// descent.
type OnlineClassifier struct {
	nFeatures int
	nClasses  int
	eta       float64 // learning rate

	weights *mat.Dense // nFeatures x nClasses
	bias    []float64
}

// classifierFeatures is the feature window: up to the last 10 moves, each
// normalized to [0,1] by dividing by the move alphabet size.
const classifierFeatures = 10

// NewOnlineClassifier creates a classifier with small random initial weights
// drawn from the given source.
func NewOnlineClassifier(rng *rand.Rand, eta float64) *OnlineClassifier {
	backing := make([]float64, classifierFeatures*numMoves)
	for i := range backing {
		backing[i] = rng.NormFloat64() * 0.01
	}
	return &OnlineClassifier{
		nFeatures: classifierFeatures,
		nClasses:  numMoves,
		eta:       eta,
		weights:   mat.NewDense(classifierFeatures, numMoves, backing),
		bias:      make([]float64, numMoves),
	}
}

// ExtractFeatures builds the feature vector from a move history: the most
// recent moves fill the leading slots, scaled by 1/6; unused slots stay zero.
func (c *OnlineClassifier) ExtractFeatures(history []int) []float64 {
	features := make([]float64, c.nFeatures)
	if len(history) == 0 {
		return features
	}
	recent := history
	if len(recent) > c.nFeatures {
		recent = recent[len(recent)-c.nFeatures:]
	}
	for i, mv := range recent {
		features[i] = float64(mv) / numMoves
	}
	return features
}

// Predict returns softmax(features·W + b).
func (c *OnlineClassifier) Predict(features []float64) dist {
	x := mat.NewVecDense(c.nFeatures, features)
	var logits mat.VecDense
	logits.MulVec(c.weights.T(), x)
	raw := make([]float64, c.nClasses)
	for i := range raw {
		raw[i] = logits.AtVec(i) + c.bias[i]
	}
	return softmax(raw)
}

// Update applies one gradient-descent step toward the observed class:
// the prediction error (softmax minus one-hot target) scales an outer-product
// correction of the weights and a direct correction of the bias.
func (c *OnlineClassifier) Update(features []float64, trueClass int) {
	probs := c.Predict(features)
	errVec := make([]float64, c.nClasses)
	for i, p := range probs {
		errVec[i] = p
	}
	errVec[trueClass] -= 1

	x := mat.NewVecDense(c.nFeatures, features)
	e := mat.NewVecDense(c.nClasses, errVec)
	c.weights.RankOne(c.weights, -c.eta, x, e)
	for i := range c.bias {
		c.bias[i] -= c.eta * errVec[i]
	}
}
