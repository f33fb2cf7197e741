// Package tictactoe is the classic 3x3 game as a searcher.Board.
package tictactoe

import (
	"fmt"
	"strings"

	"mctsbot/game"
	"mctsbot/searcher"
)

// Move is the index of a cell, row by row from the top left
type Move int

// State is a plain value, copying it copies the whole position
type State struct {
	Cells [9]searcher.Player
	Turn  searcher.Player
}

type Board struct{}

var _ searcher.Board[State, Move] = Board{}

func New() State {
	return State{Turn: game.Player1}
}

// Parse reads nine cells made of 'X', 'O' and '.'; whitespace is ignored
func Parse(cells string, turn searcher.Player) (State, error) {
	s := State{Turn: turn}
	i := 0
	for _, r := range cells {
		if r == ' ' || r == '\n' || r == '/' {
			continue
		}
		if i >= len(s.Cells) {
			return s, fmt.Errorf("too many cells in %q", cells)
		}
		switch r {
		case 'X', 'x':
			s.Cells[i] = game.Player1
		case 'O', 'o':
			s.Cells[i] = game.Player2
		case '.':
		default:
			return s, fmt.Errorf("unexpected cell %q", r)
		}
		i++
	}
	if i != len(s.Cells) {
		return s, fmt.Errorf("expected 9 cells, got %d", i)
	}
	return s, nil
}

func (Board) IsEnded(s State) bool {
	return game.LineWinner(s.Cells) != game.None || s.full()
}

func (b Board) LegalActions(s State) []Move {
	if b.IsEnded(s) {
		return nil
	}
	moves := make([]Move, 0, 9)
	for i, c := range s.Cells {
		if c == game.None {
			moves = append(moves, Move(i))
		}
	}
	return moves
}

func (b Board) NextState(s State, m Move) (State, error) {
	if b.IsEnded(s) {
		return s, fmt.Errorf("cannot play %d: game is over", m)
	}
	if m < 0 || int(m) >= len(s.Cells) {
		return s, fmt.Errorf("cannot play %d: out of the board", m)
	}
	if s.Cells[m] != game.None {
		return s, fmt.Errorf("cannot play %d: cell is taken", m)
	}
	s.Cells[m] = s.Turn
	s.Turn = game.Opponent(s.Turn)
	return s, nil
}

func (Board) CurrentPlayer(s State) searcher.Player {
	return s.Turn
}

func (Board) PointsValues(s State) map[searcher.Player]float64 {
	return game.Points(game.LineWinner(s.Cells))
}

// Winner returns the owner of a full line, or game.None
func (Board) Winner(s State) searcher.Player {
	return game.LineWinner(s.Cells)
}

func (s State) full() bool {
	for _, c := range s.Cells {
		if c == game.None {
			return false
		}
	}
	return true
}

func (s State) String() string {
	var b strings.Builder
	for i, c := range s.Cells {
		b.WriteString(game.Symbol(c))
		if i%3 == 2 && i != 8 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
