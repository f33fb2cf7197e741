// Package game holds what the bundled boards share: seats, lines and scoring.
package game

import "mctsbot/searcher"

const (
	None    searcher.Player = 0
	Player1 searcher.Player = 1
	Player2 searcher.Player = 2
	// Tied marks a sub-board that filled up without a winner
	Tied searcher.Player = -1
)

// Rows, columns and diagonals of a 3x3 grid
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func Opponent(p searcher.Player) searcher.Player {
	return Player1 + Player2 - p
}

// LineWinner returns the player owning a full line of the grid, or None
func LineWinner(grid [9]searcher.Player) searcher.Player {
	for _, line := range Lines {
		owner := grid[line[0]]
		if owner > None && owner == grid[line[1]] && owner == grid[line[2]] {
			return owner
		}
	}
	return None
}

// Points scores a finished two-player game: 1 for the winner, 0 for the
// loser, and half a point each on a draw.
func Points(winner searcher.Player) map[searcher.Player]float64 {
	switch winner {
	case Player1:
		return map[searcher.Player]float64{Player1: 1, Player2: 0}
	case Player2:
		return map[searcher.Player]float64{Player1: 0, Player2: 1}
	default:
		return map[searcher.Player]float64{Player1: 0.5, Player2: 0.5}
	}
}

func Symbol(p searcher.Player) string {
	switch p {
	case Player1:
		return "X"
	case Player2:
		return "O"
	case Tied:
		return "#"
	default:
		return "."
	}
}
