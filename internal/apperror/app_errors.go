package apperror

import "errors"

var (
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrGameOver        = errors.New("game is already over")
	ErrIndexOutOfRange = errors.New("history index out of range")

	ErrGameNotFound      = errors.New("game not found")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrCorruptHistory    = errors.New("corrupt game history")
	ErrTooManyConflicts  = errors.New("too many concurrent updates")
)

// IsIgnorable reports whether err is a rejection the display should treat as a no-op click.
func IsIgnorable(err error) bool {
	return errors.Is(err, ErrCellOccupied) || errors.Is(err, ErrGameOver)
}
