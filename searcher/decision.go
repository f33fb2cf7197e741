package searcher

import (
	"math"

	"golang.org/x/exp/rand"
)

// expand plays a random untried action of the node and registers the new child
func expand[S any, A comparable](t *Tree[A], board Board[S, A], id NodeID, state S, rng *rand.Rand) (NodeID, S, error) {
	n := &t.nodes[id]
	pick := rng.Intn(len(n.untried))
	ith := n.untried[pick]
	action := n.actions[ith]

	next, err := board.NextState(state, action)
	if err != nil {
		return NoNode, state, oracleErrorf("expanding %v: %v", action, err)
	}

	last := len(n.untried) - 1
	n.untried[pick] = n.untried[last]
	n.untried = n.untried[:last]

	child := addNode(t, board, next, id, action)
	// The arena may have grown, n is stale
	t.nodes[id].children[ith] = child
	if kid := &t.nodes[child]; !kid.terminal && len(kid.actions) == 0 {
		return NoNode, state, oracleErrorf("state after %v is not ended but has no legal actions", action)
	}
	return child, next, nil
}

// pickChild returns the index of the child with the max UCT value, the first
// one in board order on ties
func pickChild[A comparable](t *Tree[A], id NodeID, c float64) int {
	n := &t.nodes[id]
	if n.visits == 0 {
		panic("node has children but no visits")
	}

	policy := newUCT(c, n.visits)
	opponent := n.mover != t.identity

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		kid := &t.nodes[child]
		score := policy.evaluate(kid.wins, kid.visits, opponent)
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	if maxIndex < 0 {
		panic("no child has a comparable UCT value")
	}
	return maxIndex
}

// selectOrExpand moves one step down the tree: it expands the node when it
// still has untried actions, otherwise it follows the best UCT child.
func selectOrExpand[S any, A comparable](t *Tree[A], board Board[S, A], id NodeID, state S, c float64, rng *rand.Rand) (NodeID, S, bool, error) {
	n := &t.nodes[id]
	if len(n.untried) > 0 { // Expandable node
		child, next, err := expand(t, board, id, state, rng)
		return child, next, false, err
	}

	if len(n.children) == 0 {
		return NoNode, state, false, oracleErrorf("state is not ended but has no legal actions")
	}

	// Fully expanded node
	ith := pickChild(t, id, c)
	next, err := board.NextState(state, n.actions[ith])
	if err != nil {
		return NoNode, state, false, oracleErrorf("selecting %v: %v", n.actions[ith], err)
	}
	return n.children[ith], next, true, nil
}

// backup adds the outcome to every node from id up to the root and returns
// how many nodes were touched
func backup[A comparable](t *Tree[A], id NodeID, outcome float64) int {
	touched := 0
	for id != NoNode {
		n := &t.nodes[id]
		n.visits++
		n.wins += outcome
		id = n.parent
		touched++
	}
	return touched
}
