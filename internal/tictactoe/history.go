package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// History owns the live timeline of board snapshots and the index being viewed.
// It is never empty: position 0 is always the empty board.
type History struct {
	snapshots []entity.Board
	current   int
}

func NewHistory() *History {
	return &History{
		snapshots: []entity.Board{{}},
	}
}

// RestoreHistory rebuilds a history from stored snapshots, rejecting timelines that
// could not have been produced by ApplyMove.
func RestoreHistory(snapshots []entity.Board, current int) (*History, error) {
	if err := validateTimeline(snapshots); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptHistory, err)
	}

	if current < 0 || current >= len(snapshots) {
		return nil, fmt.Errorf("%w: current index %d of %d", apperror.ErrCorruptHistory, current, len(snapshots))
	}

	return &History{
		snapshots: append([]entity.Board(nil), snapshots...),
		current:   current,
	}, nil
}

// Current returns the snapshot at the viewed index.
func (that *History) Current() entity.Board {
	return that.snapshots[that.current]
}

// ApplyMove places the mark whose turn it is at cell, discarding any snapshots after the
// viewed one before appending the new board.
func (that *History) ApplyMove(cell int) error {
	board := that.Current()

	if err := validateMove(board, cell); err != nil {
		return err
	}

	board[cell] = entity.TurnFor(that.current)

	that.snapshots = append(that.snapshots[:that.current+1:that.current+1], board)
	that.current = len(that.snapshots) - 1

	return nil
}

// JumpTo moves the viewed index without touching the stored snapshots.
func (that *History) JumpTo(index int) error {
	if index < 0 || index >= len(that.snapshots) {
		return fmt.Errorf("%w: %d not in [0, %d]", apperror.ErrIndexOutOfRange, index, len(that.snapshots)-1)
	}

	that.current = index

	return nil
}

func (that *History) Len() int {
	return len(that.snapshots)
}

func (that *History) CurrentIndex() int {
	return that.current
}

// Snapshots returns a copy of the timeline.
func (that *History) Snapshots() []entity.Board {
	return append([]entity.Board(nil), that.snapshots...)
}

// validateMove - checks if the move is valid on the given board.
func validateMove(board entity.Board, cell int) error {
	if cell < 0 || cell >= len(board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	if entity.Evaluate(board).IsFinished() {
		return apperror.ErrGameOver
	}

	return nil
}

func validateTimeline(snapshots []entity.Board) error {
	if len(snapshots) == 0 {
		return errors.New("no snapshots")
	}

	if snapshots[0] != (entity.Board{}) {
		return errors.New("first snapshot is not empty")
	}

	for i := 1; i < len(snapshots); i++ {
		prev, next := snapshots[i-1], snapshots[i]

		if entity.Evaluate(prev).IsFinished() {
			return fmt.Errorf("move %d made after the game was over", i)
		}

		changed := 0
		for cell := range next {
			if prev[cell] == next[cell] {
				continue
			}
			if prev[cell] != entity.EmptyCell || next[cell] != entity.TurnFor(i-1) {
				return fmt.Errorf("move %d changes cell %d illegally", i, cell)
			}
			changed++
		}

		if changed != 1 {
			return fmt.Errorf("move %d changes %d cells", i, changed)
		}
	}

	return nil
}
