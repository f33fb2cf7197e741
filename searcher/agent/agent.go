package agent

import (
	"mctsbot/experiments/metrics"
	"mctsbot/searcher"
)

type Agent[S any, A comparable] interface {
	// FindMove returns the move to play for player and the metrics (if collected) of the search
	FindMove(state S, player searcher.Player) (A, metrics.SearchMetric, error)
}
