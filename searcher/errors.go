package searcher

import "github.com/pkg/errors"

var (
	// ErrGameOver is returned when a decision is requested for an ended game.
	ErrGameOver = errors.New("cannot decide on an ended game")
	// ErrOracle marks a board that broke its own contract.
	ErrOracle = errors.New("board contract violation")
)

func oracleErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrOracle, format, args...)
}
