package game

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange   = errors.New("move out of range")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrGameOver     = errors.New("game already finished")
)

// CheckMove validates a move target before Board.Move is called with it.
func CheckMove(b *Board, row, col int) error {
	if row < 0 || row >= b.Size() || col < 0 || col >= b.Size() {
		return fmt.Errorf("%w: (%d, %d) on a %dx%d board", ErrOutOfRange, row, col, b.Size(), b.Size())
	}
	if b.Square(row, col) != Empty {
		return fmt.Errorf("%w: (%d, %d)", ErrCellOccupied, row, col)
	}
	return nil
}
