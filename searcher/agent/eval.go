package agent

import (
	"mctsbot/experiments/metrics"
	"mctsbot/searcher"
)

type evaluationAgent[S any, A comparable] struct {
	mcts *searcher.MCTS[S, A]
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent[S any, A comparable](mcts *searcher.MCTS[S, A]) Agent[S, A] {
	return evaluationAgent[S, A]{mcts: mcts}
}

func (a evaluationAgent[S, A]) FindMove(state S, player searcher.Player) (A, metrics.SearchMetric, error) {
	decision, err := a.mcts.Think(state, player)
	return decision.Action, decision.Metric, err
}
