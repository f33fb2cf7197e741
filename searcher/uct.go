package searcher

import "math"

type uct struct {
	c    float64
	logN float64
}

func newUCT(c float64, N int) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{c: c, logN: math.Log(float64(N))}
}

// evaluate scores a child holding q wins over n visits. Wins are stored for
// the searching player, so an opponent's node sees them inverted.
func (u uct) evaluate(q float64, n int, opponent bool) float64 {
	if n == 0 {
		panic("cannot compute UCT: 0 visits")
	}
	// UCT = q/n + c*sqrt(ln(N)/n)
	exploitation := q / float64(n)
	if opponent {
		exploitation = 1 - exploitation
	}
	return exploitation + u.c*math.Sqrt(u.logN/float64(n))
}
