package searcher

import "golang.org/x/exp/rand"

// Player identifies a seat at the table. Statistics in the search tree are
// always kept from the perspective of the Player running the search.
type Player int

// Board is the rules oracle the search consumes. Implementations must treat
// states as values: NextState returns a successor and never mutates its input.
type Board[S any, A comparable] interface {
	IsEnded(state S) bool
	// LegalActions is empty iff the state is terminal. The order must be
	// stable for a given state, it is used to break selection ties.
	LegalActions(state S) []A
	NextState(state S, action A) (S, error)
	CurrentPlayer(state S) Player
	// PointsValues is only defined for terminal states
	PointsValues(state S) map[Player]float64
}

// Scorer is implemented by boards with intermediate scoring units, such as
// small boards won in ultimate tic-tac-toe.
type Scorer[S any] interface {
	Units(state S, player Player) int
}

// Policy picks the next move during a rollout. actions is never empty.
type Policy[S any, A comparable] interface {
	Choose(board Board[S, A], state S, actions []A, rng *rand.Rand) (A, error)
}
