package searcher

import (
	"math"

	"golang.org/x/exp/rand"
)

// RandomPolicy plays uniformly among the legal actions
type RandomPolicy[S any, A comparable] struct{}

func (RandomPolicy[S, A]) Choose(board Board[S, A], state S, actions []A, rng *rand.Rand) (A, error) {
	return actions[rng.Intn(len(actions))], nil
}

// Tiebreak decides between equally scored heuristic moves
type Tiebreak int

const (
	TieRandom Tiebreak = iota
	TieFirst
)

// Move classes of the heuristic policy, higher is better
const (
	ScoreWin       = 100 // the move ends the game with the mover on top
	ScoreGain      = 5   // the move earns the mover a scoring unit
	ScoreNeutral   = 1
	ScoreReplyUnit = -5  // the opponent can answer by earning a unit
	ScoreReplyWin  = -10 // the opponent can answer by winning
	// ScoreGift is for boards where a move can resolve a unit for the opponent;
	// it never fires in strictly alternating games like the bundled ones.
	ScoreGift      = -50
)

// HeuristicPolicy looks one or two plies ahead to steer rollouts away from
// obvious blunders. Units are only considered when Scorer is set.
type HeuristicPolicy[S any, A comparable] struct {
	Scorer   Scorer[S]
	Tiebreak Tiebreak
}

func NewHeuristicPolicy[S any, A comparable](scorer Scorer[S], tiebreak Tiebreak) HeuristicPolicy[S, A] {
	return HeuristicPolicy[S, A]{Scorer: scorer, Tiebreak: tiebreak}
}

func (p HeuristicPolicy[S, A]) Choose(board Board[S, A], state S, actions []A, rng *rand.Rand) (A, error) {
	actor := board.CurrentPlayer(state)

	maxScore := math.MinInt
	var candidates []int
	for i, action := range actions {
		score, err := p.Classify(board, state, actor, action)
		if err != nil {
			return action, err
		}
		if score > maxScore {
			maxScore = score
			candidates = candidates[:0]
		}
		if score == maxScore {
			candidates = append(candidates, i)
		}
	}

	if p.Tiebreak == TieFirst || len(candidates) == 1 {
		return actions[candidates[0]], nil
	}
	return actions[candidates[rng.Intn(len(candidates))]], nil
}

// Classify scores a single move for actor
func (p HeuristicPolicy[S, A]) Classify(board Board[S, A], state S, actor Player, action A) (int, error) {
	next, err := board.NextState(state, action)
	if err != nil {
		return 0, oracleErrorf("classifying %v: %v", action, err)
	}

	if board.IsEnded(next) {
		if leads(board.PointsValues(next), actor) {
			return ScoreWin, nil
		}
		if p.gained(state, next, actor) {
			return ScoreGain, nil
		}
		return ScoreNeutral, nil
	}

	opponent := board.CurrentPlayer(next)
	if opponent != actor && p.gained(state, next, opponent) {
		return ScoreGift, nil
	}
	if p.gained(state, next, actor) {
		return ScoreGain, nil
	}

	replyUnit := false
	for _, reply := range board.LegalActions(next) {
		after, err := board.NextState(next, reply)
		if err != nil {
			return 0, oracleErrorf("classifying reply %v: %v", reply, err)
		}
		if board.IsEnded(after) && leads(board.PointsValues(after), opponent) {
			return ScoreReplyWin, nil
		}
		if !replyUnit && p.gained(next, after, opponent) {
			replyUnit = true
		}
	}
	if replyUnit {
		return ScoreReplyUnit, nil
	}
	return ScoreNeutral, nil
}

func (p HeuristicPolicy[S, A]) gained(before, after S, player Player) bool {
	if p.Scorer == nil {
		return false
	}
	return p.Scorer.Units(after, player) > p.Scorer.Units(before, player)
}

// leads reports whether player holds strictly the most points
func leads(points map[Player]float64, player Player) bool {
	mine, ok := points[player]
	if !ok {
		return false
	}
	for other, value := range points {
		if other != player && value >= mine {
			return false
		}
	}
	return true
}
