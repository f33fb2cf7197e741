package agent

import (
	"math"

	"mctsbot/experiments/metrics"
	"mctsbot/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent[S any, A comparable] struct {
	mcts        *searcher.MCTS[S, A]
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent for self-play that samples moves in
// proportion to their root visits, sharpened or flattened by temperature.
func NewTrainingAgent[S any, A comparable](mcts *searcher.MCTS[S, A], temperature float64, seed uint64) Agent[S, A] {
	if temperature <= 0 {
		temperature = 1.0
	}
	return &trainingAgent[S, A]{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent[S, A]) FindMove(state S, player searcher.Player) (A, metrics.SearchMetric, error) {
	decision, err := a.mcts.Think(state, player)
	if err != nil {
		return decision.Action, decision.Metric, err
	}
	probs := adjustTemperature(decision.Visits, a.temperature)
	return decision.Actions[sample(probs, a.rng.Float64())], decision.Metric, nil
}

// adjustTemperature turns visits into move probabilities. Visits are scaled by
// the max count before the power so low temperatures cannot overflow.
func adjustTemperature(visits []int, temperature float64) []float64 {
	exponent := 1.0 / temperature
	maxVisit := 0
	for _, visit := range visits {
		maxVisit = max(maxVisit, visit)
	}
	adjusted := make([]float64, len(visits))
	if maxVisit == 0 {
		return adjusted
	}

	sum := 0.0
	for i, visit := range visits {
		prob := math.Pow(float64(visit)/float64(maxVisit), exponent)
		sum += prob
		adjusted[i] = prob
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(probs []float64, sampled float64) int {
	cumulative := 0.0
	last := 0
	for i, prob := range probs {
		if prob == 0 {
			continue
		}
		last = i
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return last // Fallback in case of rounding errors
}
