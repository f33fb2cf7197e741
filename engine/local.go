package engine

import (
	"fmt"
	"math"
	"time"

	"mctsbot/experiments/metrics"
	"mctsbot/searcher"
	"mctsbot/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Local plays every agent in-process against a single board
type Local[S any, A comparable] struct {
	Board   searcher.Board[S, A]
	State   S
	Agents  map[searcher.Player]agent.Agent[S, A]
	History []A
}

var _ Engine = (*Local[int, int])(nil)

func LocalEngine[S any, A comparable](board searcher.Board[S, A], state S, agents map[searcher.Player]agent.Agent[S, A]) *Local[S, A] {
	if len(agents) < 2 {
		panic("need at least two agents")
	}
	return &Local[S, A]{
		Board:  board,
		State:  state,
		Agents: agents,
	}
}

// Run executes the entire game loop until the board reports the game ended.
func (e *Local[S, A]) Run() (searcher.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.Board.CurrentPlayer(e.State)),
		StartTime:      time.Now(),
	}
	log.Info().Msgf("player %d is starting", gameMetric.StartingPlayer)

	var moveMetrics []metrics.MoveMetric
	step := 1
	for !e.Board.IsEnded(e.State) && step <= MaxMoves {
		player := e.Board.CurrentPlayer(e.State)
		a, ok := e.Agents[player]
		if !ok {
			return 0, gameMetric, moveMetrics, fmt.Errorf("no agent for player %d", player)
		}

		move, searchMetric, err := a.FindMove(e.State, player)
		if err != nil {
			return 0, gameMetric, moveMetrics, fmt.Errorf("player %d failed to find a move: %w", player, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			SearchMetric: searchMetric,
		})

		next, err := e.Board.NextState(e.State, move)
		if err != nil {
			return 0, gameMetric, moveMetrics, fmt.Errorf("player %d played %v: %w", player, move, err)
		}
		log.Debug().Msgf("step %d: player %d played %v", step, player, move)

		e.History = append(e.History, move)
		e.State = next
		step++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(e.History)

	if !e.Board.IsEnded(e.State) {
		log.Warn().Msgf("stopped after %d moves without a result", MaxMoves)
		return 0, gameMetric, moveMetrics, nil
	}

	winner := Winner(e.Board.PointsValues(e.State))
	gameMetric.Winner = int(winner)
	return winner, gameMetric, moveMetrics, nil
}

// Winner returns the player with strictly the most points, or 0 on a draw
func Winner(points map[searcher.Player]float64) searcher.Player {
	var best searcher.Player
	bestPoints := math.Inf(-1)
	for player, value := range points {
		if value > bestPoints {
			best, bestPoints = player, value
		}
	}
	for player, value := range points {
		if player != best && value == bestPoints {
			return 0
		}
	}
	return best
}
