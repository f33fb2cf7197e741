package searcher

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// stateOf replays the actions from the root to the node
func stateOf[A comparable](t *testing.T, tree *Tree[A], board Board[mockState, A], root mockState, id NodeID) mockState {
	var path []A
	for n := id; n != tree.Root(); n = tree.Parent(n) {
		path = append([]A{tree.Action(n)}, path...)
	}
	state := root
	for _, a := range path {
		next, err := board.NextState(state, a)
		require.NoError(t, err)
		state = next
	}
	return state
}

func requireConsistentTree(t *testing.T, tree *Tree[int], board *mockBoard, root mockState) {
	for i := 0; i < tree.Len(); i++ {
		id := NodeID(i)
		state := stateOf[int](t, tree, board, root, id)

		seen := map[int]bool{}
		for _, child := range tree.Children(id) {
			require.Equal(t, id, tree.Parent(child))
			seen[tree.Action(child)] = true
		}
		for _, action := range tree.Untried(id) {
			require.False(t, seen[action], "Action %d is both tried and untried", action)
			seen[action] = true
		}
		require.Len(t, seen, len(board.LegalActions(state)), "Node %d should cover its legal actions", id)

		if id != tree.Root() {
			require.GreaterOrEqual(t, tree.Visits(id), 1, "Every non-root node should be visited")
		}
		require.GreaterOrEqual(t, tree.Wins(id), 0.0)
		require.LessOrEqual(t, tree.Wins(id), float64(tree.Visits(id)))
	}
}

func TestSearch(t *testing.T) {
	for _, iterations := range []int{1, 2, 3, 10, 50, 200} {
		board := twoPly()
		m := NewMCTS[mockState, int](board, nil, WithIterations(iterations), WithSeed(3))

		tree, err := m.Search("", 1)

		require.NoError(t, err)
		require.Equal(t, iterations, tree.Visits(tree.Root()), "Root visits should equal the budget")
		requireConsistentTree(t, tree, board, "")
	}
}

func TestSearchFindsWinningMove(t *testing.T) {
	m := NewMCTS[mockState, int](twoPly(), nil, WithIterations(200), WithSeed(11))

	decision, err := m.Think("", 1)

	require.NoError(t, err)
	require.Equal(t, 1, decision.Action, "Only move 1 wins against every reply")
	require.Equal(t, []int{0, 1, 2}, decision.Actions)
	sum := 0
	for _, v := range decision.Visits {
		sum += v
	}
	require.Equal(t, 200, sum)
	require.Greater(t, decision.Policy()[1], 0.5)
}

func TestSearchForSecondPlayer(t *testing.T) {
	// From "0" player 2 wins by answering 1
	m := NewMCTS[mockState, int](twoPly(), nil, WithIterations(50), WithSeed(5))

	action, err := m.Decide("0", 2)

	require.NoError(t, err)
	require.Equal(t, 1, action)
}

func TestDecideDeterminism(t *testing.T) {
	m := NewMCTS[mockState, int](twoPly(), nil, WithIterations(30), WithSeed(99))
	first, err := m.Think("", 1)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := m.Think("", 1)
		require.NoError(t, err)
		require.Equal(t, first.Action, again.Action)
		require.Equal(t, first.Visits, again.Visits, "Same seed should replay the same search")
	}
}

func TestDecideSingleMove(t *testing.T) {
	for _, iterations := range []int{1, 2, 50} {
		m := NewMCTS[mockState, int](forced(), nil, WithIterations(iterations))

		action, err := m.Decide("", 1)

		require.NoError(t, err)
		require.Equal(t, 7, action)
	}
}

func TestDecideEndedGame(t *testing.T) {
	board := twoPly()
	m := NewMCTS[mockState, int](board, nil, WithMetrics())

	_, err := m.Decide("1.0", 1)

	require.ErrorIs(t, err, ErrGameOver)
	_, err = m.Search("2.1", 2)
	require.ErrorIs(t, err, ErrGameOver)
}

func TestOracleViolations(t *testing.T) {
	t.Run("root without moves that is not ended", func(t *testing.T) {
		board := &mockBoard{moves: map[mockState][]int{}, points: map[mockState]map[Player]float64{}}

		_, err := NewMCTS[mockState, int](board, nil).Decide("", 1)

		require.True(t, errors.Is(err, ErrOracle))
	})

	t.Run("rollout reaching a dead end", func(t *testing.T) {
		board := &mockBoard{
			moves:  map[mockState][]int{"": {0}, "0": {0}},
			points: map[mockState]map[Player]float64{},
		}
		// "0.0" is neither ended nor has moves
		_, err := NewMCTS[mockState, int](board, nil, WithIterations(5)).Decide("", 1)

		require.True(t, errors.Is(err, ErrOracle))
	})

	t.Run("search drops the tree on a dead end", func(t *testing.T) {
		board := &mockBoard{
			moves:  map[mockState][]int{"": {0}},
			points: map[mockState]map[Player]float64{},
		}
		// "0" is neither ended nor has moves, expanding it fails
		tree, err := NewMCTS[mockState, int](board, nil, WithIterations(3)).Search("", 1)

		require.True(t, errors.Is(err, ErrOracle))
		require.Nil(t, tree)
	})

	t.Run("missing points for the searching player", func(t *testing.T) {
		board := forced()
		board.points["7.0"] = map[Player]float64{2: 1}
		board.points["7.1"] = map[Player]float64{2: 1}

		_, err := NewMCTS[mockState, int](board, nil, WithIterations(5)).Decide("", 1)

		require.True(t, errors.Is(err, ErrOracle))
	})
}

func TestMetrics(t *testing.T) {
	m := NewMCTS[mockState, int](twoPly(), nil, WithIterations(40), WithMetrics(), WithSeed(2))

	decision, err := m.Think("", 1)

	require.NoError(t, err)
	require.Equal(t, 40, decision.Metric.Iterations)
	require.Equal(t, 1, decision.Metric.Goroutines)
	// 3 root children and 6 grandchildren can be expanded at most
	require.LessOrEqual(t, decision.Metric.Expansions, 9)
	require.Equal(t, 2, decision.Metric.MaxDepth)
}

func TestRootParallel(t *testing.T) {
	t.Run("merges every worker's visits", func(t *testing.T) {
		m := NewMCTS[mockState, int](twoPly(), nil, WithIterations(101), WithGoroutines(4), WithSeed(8),
			WithExploration(0.5), WithMetrics())

		decision, err := m.Think("", 1)

		require.NoError(t, err)
		sum := 0
		for _, v := range decision.Visits {
			sum += v
		}
		require.Equal(t, 101, sum, "Merged root visits should equal the budget")
		require.Equal(t, 101, decision.Metric.Iterations)
		require.Equal(t, 1, decision.Action)
	})

	t.Run("more goroutines than iterations", func(t *testing.T) {
		m := NewMCTS[mockState, int](forced(), nil, WithIterations(2), WithGoroutines(8))

		decision, err := m.Think("", 1)

		require.NoError(t, err)
		require.Equal(t, []int{2}, decision.Visits)
	})

	t.Run("is reproducible with a seed", func(t *testing.T) {
		m := NewMCTS[mockState, int](twoPly(), nil, WithIterations(60), WithGoroutines(3), WithSeed(21))

		first, err := m.Think("", 1)
		require.NoError(t, err)
		second, err := m.Think("", 1)
		require.NoError(t, err)

		require.Equal(t, first.Visits, second.Visits)
	})

	t.Run("reports worker errors", func(t *testing.T) {
		board := forced()
		delete(board.points, "7.1")
		board.moves["7.1"] = nil

		_, err := NewMCTS[mockState, int](board, nil, WithIterations(20), WithGoroutines(2)).Decide("", 1)

		require.True(t, errors.Is(err, ErrOracle))
	})
}

func TestRobustChild(t *testing.T) {
	require.Equal(t, 1, robustChild([]int{3, 9, 4}))
	require.Equal(t, 0, robustChild([]int{5, 5, 5}), "Ties go to the first action")
	require.Equal(t, 2, robustChild([]int{0, 1, 2}))
}

func TestPackageDecide(t *testing.T) {
	action, err := Decide[mockState, int](forced(), "", 1, 1, DefaultExploration, nil)
	require.NoError(t, err)
	require.Equal(t, 7, action)

	_, err = Decide[mockState, int](forced(), "", 1, 0, DefaultExploration, nil)
	require.Error(t, err)

	_, err = Decide[mockState, int](forced(), "", 1, 10, -1, nil)
	require.Error(t, err)
}
