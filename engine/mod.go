package engine

import (
	"mctsbot/experiments/metrics"
	"mctsbot/searcher"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays a game till it ends or a max number of moves is reached
	Run() (winner searcher.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
