package searcher

import (
	"fmt"
	"strconv"
	"strings"
)

// mockState is the sequence of moves played so far, e.g. "0.1.1"
type mockState string

func (s mockState) play(move int) mockState {
	if s == "" {
		return mockState(strconv.Itoa(move))
	}
	return mockState(fmt.Sprintf("%s.%d", s, move))
}

func (s mockState) depth() int {
	if s == "" {
		return 0
	}
	return strings.Count(string(s), ".") + 1
}

// mockBoard is a scripted game tree. Player 1 moves at even depths.
type mockBoard struct {
	moves  map[mockState][]int
	points map[mockState]map[Player]float64
	failOn map[mockState]bool // NextState refuses to leave these states
}

func (b *mockBoard) IsEnded(s mockState) bool {
	_, ok := b.points[s]
	return ok
}

func (b *mockBoard) LegalActions(s mockState) []int {
	if b.IsEnded(s) {
		return nil
	}
	return b.moves[s]
}

func (b *mockBoard) NextState(s mockState, move int) (mockState, error) {
	if b.failOn[s] {
		return s, fmt.Errorf("refusing to play %d from %q", move, s)
	}
	for _, m := range b.moves[s] {
		if m == move {
			return s.play(move), nil
		}
	}
	return s, fmt.Errorf("%d is not legal at %q", move, s)
}

func (b *mockBoard) CurrentPlayer(s mockState) Player {
	return Player(1 + s.depth()%2)
}

func (b *mockBoard) PointsValues(s mockState) map[Player]float64 {
	return b.points[s]
}

func win(p Player) map[Player]float64 {
	return map[Player]float64{p: 1, 3 - p: 0}
}

// twoPly is a depth-two game: player 1 picks 0, 1 or 2, player 2 answers
// with 0 or 1. Only "1" wins for player 1 whatever player 2 answers.
func twoPly() *mockBoard {
	b := &mockBoard{
		moves: map[mockState][]int{
			"":  {0, 1, 2},
			"0": {0, 1},
			"1": {0, 1},
			"2": {0, 1},
		},
		points: map[mockState]map[Player]float64{
			"0.0": win(1), "0.1": win(2),
			"1.0": win(1), "1.1": win(1),
			"2.0": win(2), "2.1": win(2),
		},
	}
	return b
}

// forced has a single legal move at the root
func forced() *mockBoard {
	return &mockBoard{
		moves:  map[mockState][]int{"": {7}, "7": {0, 1}},
		points: map[mockState]map[Player]float64{"7.0": win(1), "7.1": win(2)},
	}
}
