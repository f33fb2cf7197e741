package searcher

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
)

// ToDot renders the tree down to maxDepth in graphviz format. A negative
// maxDepth renders every node.
func (t *Tree[A]) ToDot(maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	type entry struct {
		id    NodeID
		depth int
	}
	queue := []entry{{id: t.Root()}}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if err := g.AddNode("G", nodeName(e.id), map[string]string{
			"shape": "box",
			"label": strconv.Quote(t.label(e.id)),
		}); err != nil {
			return "", err
		}
		if e.id != t.Root() {
			if err := g.AddEdge(nodeName(t.Parent(e.id)), nodeName(e.id), true, nil); err != nil {
				return "", err
			}
		}

		if maxDepth >= 0 && e.depth >= maxDepth {
			continue
		}
		for _, child := range t.Children(e.id) {
			queue = append(queue, entry{id: child, depth: e.depth + 1})
		}
	}
	return g.String(), nil
}

func nodeName(id NodeID) string {
	return fmt.Sprintf("n%d", id)
}

func (t *Tree[A]) label(id NodeID) string {
	n := &t.nodes[id]
	move := "root"
	if id != t.Root() {
		move = fmt.Sprintf("%v", n.action)
	}
	rate := 0.0
	if n.visits > 0 {
		rate = n.wins / float64(n.visits)
	}
	return fmt.Sprintf("%s\nvisits=%d wins=%.1f rate=%.3f\nuntried=%d", move, n.visits, n.wins, rate, len(n.untried))
}
