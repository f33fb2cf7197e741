package tictactoe

import (
	"testing"

	"mctsbot/game"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLegalActions(t *testing.T) {
	t.Run("empty board offers every cell", func(t *testing.T) {
		moves := Board{}.LegalActions(New())
		require.Len(t, moves, 9)
	})

	t.Run("taken cells are skipped in board order", func(t *testing.T) {
		s, err := Parse("X.O/.X./O..", game.Player2)
		require.NoError(t, err)

		want := []Move{1, 3, 5, 7, 8}
		if diff := cmp.Diff(want, Board{}.LegalActions(s)); diff != "" {
			t.Errorf("LegalActions() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ended game has no actions", func(t *testing.T) {
		s, err := Parse("XXX/OO./...", game.Player2)
		require.NoError(t, err)

		require.True(t, Board{}.IsEnded(s))
		require.Empty(t, Board{}.LegalActions(s))
	})
}

func TestNextState(t *testing.T) {
	t.Run("places the mover's mark and passes the turn", func(t *testing.T) {
		s := New()
		next, err := Board{}.NextState(s, 4)

		require.NoError(t, err)
		require.Equal(t, game.Player1, next.Cells[4])
		require.Equal(t, game.Player2, Board{}.CurrentPlayer(next))
		require.Equal(t, game.None, s.Cells[4], "Original state should not change")
	})

	t.Run("rejects taken cells", func(t *testing.T) {
		s, _ := Board{}.NextState(New(), 4)
		_, err := Board{}.NextState(s, 4)
		require.Error(t, err)
	})

	t.Run("rejects moves off the board", func(t *testing.T) {
		_, err := Board{}.NextState(New(), 9)
		require.Error(t, err)
	})
}

func TestPointsValues(t *testing.T) {
	t.Run("winner takes the point", func(t *testing.T) {
		s, err := Parse("OOO/XX./X..", game.Player1)
		require.NoError(t, err)

		points := Board{}.PointsValues(s)
		require.Equal(t, 1.0, points[game.Player2])
		require.Equal(t, 0.0, points[game.Player1])
	})

	t.Run("draw splits the point", func(t *testing.T) {
		s, err := Parse("XOX/XOO/OXX", game.Player2)
		require.NoError(t, err)

		require.True(t, Board{}.IsEnded(s))
		require.Equal(t, game.None, Board{}.Winner(s))
		require.Equal(t, 0.5, Board{}.PointsValues(s)[game.Player1])
	})
}

func TestParse(t *testing.T) {
	_, err := Parse("XO", game.Player1)
	require.Error(t, err)

	_, err = Parse("XO?......", game.Player1)
	require.Error(t, err)

	s, err := Parse("X../.O./..X", game.Player2)
	require.NoError(t, err)
	require.Equal(t, "X..\n.O.\n..X", s.String())
}
