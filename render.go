package main

import (
	"fmt"
	"strings"

	"mctsbot/game"
	"mctsbot/searcher"

	"github.com/muesli/termenv"
)

// Colorize paints the player symbols of a rendered board
func Colorize(out *termenv.Output, board string) string {
	var b strings.Builder
	for _, r := range board {
		s := string(r)
		switch s {
		case game.Symbol(game.Player1):
			b.WriteString(out.String(s).Foreground(out.Color("9")).Bold().String())
		case game.Symbol(game.Player2):
			b.WriteString(out.String(s).Foreground(out.Color("12")).Bold().String())
		case game.Symbol(game.Tied), game.Symbol(game.None):
			b.WriteString(out.String(s).Faint().String())
		default:
			b.WriteString(s)
		}
	}
	return b.String()
}

func Result(out *termenv.Output, winner searcher.Player, moves int) string {
	if winner == game.None {
		return fmt.Sprintf("draw after %d moves", moves)
	}
	return fmt.Sprintf("%s wins after %d moves", Colorize(out, game.Symbol(winner)), moves)
}
