// Package uttt is ultimate tic-tac-toe: nine small boards laid out as one big
// board, where each move sends the opponent to the small board matching the
// cell just played.
package uttt

import (
	"fmt"
	"strings"

	"mctsbot/game"
	"mctsbot/searcher"
)

// Free means the mover may play in any unresolved small board
const Free = -1

// Move is a cell in a small board, both indexed row by row from 0 to 8
type Move struct {
	Box  int
	Cell int
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", m.Box/3, m.Box%3, m.Cell/3, m.Cell%3)
}

// State is a plain value, copying it copies the whole position
type State struct {
	Cells  [9][9]searcher.Player
	Owners [9]searcher.Player // game.None while a box is open, game.Tied once full without a winner
	Next   int                // box the mover is sent to, or Free
	Turn   searcher.Player
}

type Board struct{}

var (
	_ searcher.Board[State, Move] = Board{}
	_ searcher.Scorer[State]      = Board{}
)

func New() State {
	return State{Next: Free, Turn: game.Player1}
}

func (Board) IsEnded(s State) bool {
	if game.LineWinner(s.Owners) != game.None {
		return true
	}
	for _, owner := range s.Owners {
		if owner == game.None {
			return false
		}
	}
	return true
}

func (b Board) LegalActions(s State) []Move {
	if b.IsEnded(s) {
		return nil
	}
	if s.Next != Free {
		return s.boxMoves(s.Next, nil)
	}
	var moves []Move
	for box := range s.Cells {
		if s.Owners[box] == game.None {
			moves = s.boxMoves(box, moves)
		}
	}
	return moves
}

func (s State) boxMoves(box int, moves []Move) []Move {
	for cell, c := range s.Cells[box] {
		if c == game.None {
			moves = append(moves, Move{Box: box, Cell: cell})
		}
	}
	return moves
}

func (b Board) NextState(s State, m Move) (State, error) {
	if b.IsEnded(s) {
		return s, fmt.Errorf("cannot play %v: game is over", m)
	}
	if m.Box < 0 || m.Box > 8 || m.Cell < 0 || m.Cell > 8 {
		return s, fmt.Errorf("cannot play %v: out of the board", m)
	}
	if s.Next != Free && m.Box != s.Next {
		return s, fmt.Errorf("cannot play %v: must play in box %d", m, s.Next)
	}
	if s.Owners[m.Box] != game.None {
		return s, fmt.Errorf("cannot play %v: box is resolved", m)
	}
	if s.Cells[m.Box][m.Cell] != game.None {
		return s, fmt.Errorf("cannot play %v: cell is taken", m)
	}

	s.Cells[m.Box][m.Cell] = s.Turn
	if winner := game.LineWinner(s.Cells[m.Box]); winner != game.None {
		s.Owners[m.Box] = winner
	} else if full(s.Cells[m.Box]) {
		s.Owners[m.Box] = game.Tied
	}

	s.Next = m.Cell
	if s.Owners[m.Cell] != game.None {
		s.Next = Free
	}
	s.Turn = game.Opponent(s.Turn)
	return s, nil
}

func (Board) CurrentPlayer(s State) searcher.Player {
	return s.Turn
}

func (Board) PointsValues(s State) map[searcher.Player]float64 {
	return game.Points(game.LineWinner(s.Owners))
}

// Units counts the small boards won by player
func (Board) Units(s State, player searcher.Player) int {
	count := 0
	for _, owner := range s.Owners {
		if owner == player {
			count++
		}
	}
	return count
}

// OwnedBoxes maps every small board to its owner
func (Board) OwnedBoxes(s State) [9]searcher.Player {
	return s.Owners
}

// Winner returns the owner of a line of small boards, or game.None
func (Board) Winner(s State) searcher.Player {
	return game.LineWinner(s.Owners)
}

func full(grid [9]searcher.Player) bool {
	for _, c := range grid {
		if c == game.None {
			return false
		}
	}
	return true
}

func (s State) String() string {
	var b strings.Builder
	for row := 0; row < 9; row++ {
		if row > 0 && row%3 == 0 {
			b.WriteString("------+-------+------\n")
		}
		for col := 0; col < 9; col++ {
			if col > 0 && col%3 == 0 {
				b.WriteString("| ")
			}
			box := (row/3)*3 + col/3
			cell := (row%3)*3 + col%3
			b.WriteString(game.Symbol(s.Cells[box][cell]))
			if col != 8 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
