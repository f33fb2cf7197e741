package searcher

import (
	"mctsbot/experiments/metrics"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(s *settings)

type settings struct {
	goroutines  int
	iterations  int
	exploration float64
	seed        uint64
	seeded      bool
	metrics     metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(s *settings) {
		if iterations > 0 {
			s.iterations = iterations
		}
	}
}

func WithExploration(c float64) Option {
	return func(s *settings) {
		if c >= 0 {
			s.exploration = c
		}
	}
}

// WithSeed makes every search of the MCTS replay the same random choices
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
		s.seeded = true
	}
}

// WithGoroutines grows that many independent trees and merges their root
// visits (root parallelisation)
func WithGoroutines(goroutines int) Option {
	return func(s *settings) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

type MCTS[S any, A comparable] struct {
	settings
	board  Board[S, A]
	policy Policy[S, A]
}

// NewMCTS builds a searcher for board. A nil policy plays uniformly random rollouts.
func NewMCTS[S any, A comparable](board Board[S, A], policy Policy[S, A], options ...Option) *MCTS[S, A] {
	m := &MCTS[S, A]{ // Default values
		settings: settings{
			goroutines:  1,
			iterations:  VanillaIterations,
			exploration: DefaultExploration,
			metrics:     metrics.NewDummyCollector(),
		},
		board:  board,
		policy: policy,
	}
	for _, option := range options {
		option(&m.settings)
	}
	if m.policy == nil {
		m.policy = RandomPolicy[S, A]{}
	}
	return m
}

// Decision is the outcome of one search
type Decision[A comparable] struct {
	Action  A
	Actions []A   // root actions in board order
	Visits  []int // merged root child visits, aligned with Actions
	Metric  metrics.SearchMetric
}

// Policy maps each visited root action to its share of the root visits
func (d Decision[A]) Policy() map[A]float64 {
	total := 0
	for _, v := range d.Visits {
		total += v
	}
	policy := make(map[A]float64, len(d.Actions))
	if total == 0 {
		return policy
	}
	for i, v := range d.Visits {
		if v > 0 {
			policy[d.Actions[i]] = float64(v) / float64(total)
		}
	}
	return policy
}

// Decide returns the most visited root action after the iteration budget
func (m *MCTS[S, A]) Decide(state S, identity Player) (A, error) {
	decision, err := m.Think(state, identity)
	return decision.Action, err
}

// Think runs the whole search and reports root statistics along with the action
func (m *MCTS[S, A]) Think(state S, identity Player) (Decision[A], error) {
	if err := m.checkRoot(state); err != nil {
		return Decision[A]{}, err
	}

	seed := m.seed
	if !m.seeded {
		seed = SeedGenerator()
	}

	m.metrics.Start(m.goroutines)
	var trees []*Tree[A]
	var err error
	if m.goroutines > 1 {
		trees, err = m.growParallel(state, identity, seed)
	} else {
		var tree *Tree[A]
		tree, err = m.grow(state, identity, m.iterations, seed)
		trees = []*Tree[A]{tree}
	}
	metric := m.metrics.Complete()
	if err != nil {
		return Decision[A]{}, err
	}

	decision := Decision[A]{
		Actions: trees[0].nodes[0].actions,
		Visits:  make([]int, len(trees[0].nodes[0].actions)),
		Metric:  metric,
	}
	for _, tree := range trees {
		for i, v := range tree.visitCounts() {
			decision.Visits[i] += v
		}
	}
	best := robustChild(decision.Visits)
	decision.Action = decision.Actions[best]

	log.Debug().Msgf("player %d picked %v with %d of %d visits", identity, decision.Action,
		decision.Visits[best], m.iterations)
	return decision, nil
}

// Search grows a single tree with the full iteration budget
func (m *MCTS[S, A]) Search(state S, identity Player) (*Tree[A], error) {
	if err := m.checkRoot(state); err != nil {
		return nil, err
	}

	seed := m.seed
	if !m.seeded {
		seed = SeedGenerator()
	}
	m.metrics.Start(1)
	tree, err := m.grow(state, identity, m.iterations, seed)
	m.metrics.Complete()
	if err != nil {
		return nil, err
	}
	return tree, nil
}

func (m *MCTS[S, A]) checkRoot(state S) error {
	if m.board.IsEnded(state) {
		return ErrGameOver
	}
	if len(m.board.LegalActions(state)) == 0 {
		return oracleErrorf("root is not ended but has no legal actions")
	}
	return nil
}

func (m *MCTS[S, A]) growParallel(state S, identity Player, seed uint64) ([]*Tree[A], error) {
	workers := min(m.goroutines, m.iterations)
	trees := make([]*Tree[A], workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		share := m.iterations / workers
		if i < m.iterations%workers {
			share++
		}
		g.Go(func() error {
			tree, err := m.grow(state, identity, share, seed+uint64(i))
			trees[i] = tree
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trees, nil
}

// grow builds a fresh tree from state with the given number of iterations
func (m *MCTS[S, A]) grow(state S, identity Player, iterations int, seed uint64) (*Tree[A], error) {
	rng := rand.New(rand.NewSource(seed))
	tree := newTree(m.board, state, identity)

	for i := 0; i < iterations; i++ {
		if err := m.simulate(tree, state, rng); err != nil {
			return nil, errors.WithMessagef(err, "iteration %d", i+1)
		}
		m.metrics.AddIteration()
	}
	return tree, nil
}

func (m *MCTS[S, A]) simulate(tree *Tree[A], state S, rng *rand.Rand) error {
	newNode, newState, err := m.selectThenExpand(tree, state, rng)
	if err != nil {
		return err
	}

	terminal, err := rollout(m.board, newState, m.policy, rng)
	if err != nil {
		return err
	}

	points := m.board.PointsValues(terminal)
	outcome, ok := points[tree.identity]
	if !ok {
		return oracleErrorf("no points value for player %d", tree.identity)
	}

	touched := backup(tree, newNode, outcome)
	m.metrics.ObserveDepth(touched - 1)
	return nil
}

// selectThenExpand walks down from the root until the state ends or a node is
// expanded
func (m *MCTS[S, A]) selectThenExpand(tree *Tree[A], state S, rng *rand.Rand) (NodeID, S, error) {
	id := tree.Root()
	for !m.board.IsEnded(state) {
		child, next, selected, err := selectOrExpand(tree, m.board, id, state, m.exploration, rng)
		if err != nil {
			return NoNode, state, err
		}
		id, state = child, next
		if !selected {
			m.metrics.AddExpansion()
			break
		}
	}
	return id, state, nil
}

// rollout plays the policy's moves until the game ends
func rollout[S any, A comparable](board Board[S, A], state S, policy Policy[S, A], rng *rand.Rand) (S, error) {
	for !board.IsEnded(state) {
		moves := board.LegalActions(state)
		if len(moves) == 0 {
			return state, oracleErrorf("state is not ended but has no legal actions")
		}

		move, err := policy.Choose(board, state, moves, rng)
		if err != nil {
			return state, err
		}

		next, err := board.NextState(state, move)
		if err != nil {
			return state, oracleErrorf("rolling out %v: %v", move, err)
		}
		state = next
	}
	return state, nil
}

// robustChild returns the index of the most visited action, the first one on ties
func robustChild(visits []int) int {
	bestIndex := 0
	for i, v := range visits {
		if v > visits[bestIndex] {
			bestIndex = i
		}
	}
	return bestIndex
}

// Decide searches state for identity with a fresh MCTS
func Decide[S any, A comparable](board Board[S, A], state S, identity Player, iterations int, exploration float64, policy Policy[S, A]) (A, error) {
	if iterations < 1 {
		return *new(A), errors.Errorf("iteration budget must be positive, got %d", iterations)
	}
	if exploration < 0 {
		return *new(A), errors.Errorf("exploration factor must not be negative, got %v", exploration)
	}
	m := NewMCTS(board, policy, WithIterations(iterations), WithExploration(exploration))
	return m.Decide(state, identity)
}
