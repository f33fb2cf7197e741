package searcher

// NodeID indexes a node in its tree's arena
type NodeID int32

// NoNode is the parent of the root and marks untried children
const NoNode NodeID = -1

type node[A comparable] struct {
	parent   NodeID
	action   A
	actions  []A      // legal actions in board order
	children []NodeID // parallel to actions, NoNode until expanded
	untried  []int    // indices into actions
	mover    Player
	terminal bool
	visits   int
	wins     float64
}

// Tree holds every node of one decision. Nodes refer to each other by index,
// so the whole tree is dropped at once when the decision is made.
type Tree[A comparable] struct {
	nodes    []node[A]
	identity Player
}

func newTree[S any, A comparable](board Board[S, A], state S, identity Player) *Tree[A] {
	t := &Tree[A]{identity: identity}
	addNode(t, board, state, NoNode, *new(A))
	return t
}

// addNode appends a node for state, initialising its untried actions from the board
func addNode[S any, A comparable](t *Tree[A], board Board[S, A], state S, parent NodeID, action A) NodeID {
	// Terminal node
	if board.IsEnded(state) {
		t.nodes = append(t.nodes, node[A]{parent: parent, action: action, terminal: true})
		return NodeID(len(t.nodes) - 1)
	}

	actions := board.LegalActions(state)
	children := make([]NodeID, len(actions))
	untried := make([]int, len(actions))
	for i := range actions {
		children[i] = NoNode
		untried[i] = i
	}
	t.nodes = append(t.nodes, node[A]{
		parent:   parent,
		action:   action,
		actions:  actions,
		children: children,
		untried:  untried,
		mover:    board.CurrentPlayer(state),
	})
	return NodeID(len(t.nodes) - 1)
}

// Root is always the first node in the arena
func (t *Tree[A]) Root() NodeID {
	return 0
}

// Identity is the player the statistics are kept for
func (t *Tree[A]) Identity() Player {
	return t.identity
}

// Len is the number of nodes in the tree
func (t *Tree[A]) Len() int {
	return len(t.nodes)
}

func (t *Tree[A]) Parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

// Action returns the move that led to the node, the zero value for the root
func (t *Tree[A]) Action(id NodeID) A {
	return t.nodes[id].action
}

func (t *Tree[A]) Visits(id NodeID) int {
	return t.nodes[id].visits
}

func (t *Tree[A]) Wins(id NodeID) float64 {
	return t.nodes[id].wins
}

func (t *Tree[A]) Terminal(id NodeID) bool {
	return t.nodes[id].terminal
}

// Children lists expanded children in board action order
func (t *Tree[A]) Children(id NodeID) []NodeID {
	n := &t.nodes[id]
	kids := make([]NodeID, 0, len(n.children))
	for _, child := range n.children {
		if child != NoNode {
			kids = append(kids, child)
		}
	}
	return kids
}

// Untried lists the actions not yet expanded at the node
func (t *Tree[A]) Untried(id NodeID) []A {
	n := &t.nodes[id]
	moves := make([]A, len(n.untried))
	for i, ith := range n.untried {
		moves[i] = n.actions[ith]
	}
	return moves
}

// Child finds the child reached by action, or NoNode
func (t *Tree[A]) Child(id NodeID, action A) NodeID {
	n := &t.nodes[id]
	for i, a := range n.actions {
		if a == action {
			return n.children[i]
		}
	}
	return NoNode
}

// Depth counts the edges between the node and the root
func (t *Tree[A]) Depth(id NodeID) int {
	depth := 0
	for p := t.nodes[id].parent; p != NoNode; p = t.nodes[p].parent {
		depth++
	}
	return depth
}

// visitCounts returns root child visits aligned with the root actions
func (t *Tree[A]) visitCounts() []int {
	root := &t.nodes[0]
	counts := make([]int, len(root.actions))
	for i, child := range root.children {
		if child != NoNode {
			counts[i] = t.nodes[child].visits
		}
	}
	return counts
}
