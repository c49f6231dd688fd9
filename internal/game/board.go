package game

import (
	"errors"
	"fmt"
)

// Cell is the content of one square: empty or one of the two players.
type Cell uint8

const (
	Empty Cell = iota
	PlayerA
	PlayerB
)

// Opponent returns the other player. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case PlayerA:
		return "PlayerA"
	case PlayerB:
		return "PlayerB"
	default:
		return "Empty"
	}
}

// PlayerMark is the display identity of a player, e.g. "X".
type PlayerMark string

// Players holds the marks for PlayerA and PlayerB, in that order.
type Players [2]PlayerMark

var DefaultPlayers = Players{PlayerX, PlayerO}

// Position is a cell coordinate on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

var (
	ErrBoardNotSquare = errors.New("board is not square")
	ErrUnknownMark    = errors.New("unknown player mark")
)

// Board is a square tic-tac-toe grid. The size never changes after construction
// and cells only change through Move.
type Board struct {
	size    int
	players Players
	cells   []Cell
}

// NewBoard returns an empty board of the given side length.
func NewBoard(size int, players Players) *Board {
	if size < 1 {
		panic(fmt.Sprintf("game: invalid board size %d", size))
	}
	return &Board{
		size:    size,
		players: players,
		cells:   make([]Cell, size*size),
	}
}

// NewBoardFromCells builds a board with initial contents.
func NewBoardFromCells(players Players, cells [][]Cell) (*Board, error) {
	size := len(cells)
	if size == 0 {
		return nil, ErrBoardNotSquare
	}
	b := NewBoard(size, players)
	for i, row := range cells {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBoardNotSquare, i, len(row), size)
		}
		copy(b.cells[i*size:(i+1)*size], row)
	}
	return b, nil
}

// ParseBoard builds a board from display marks. An empty string or a single
// space is an empty cell.
func ParseBoard(players Players, marks [][]PlayerMark) (*Board, error) {
	b := &Board{players: players}
	cells := make([][]Cell, len(marks))
	for i, row := range marks {
		cells[i] = make([]Cell, len(row))
		for j, mark := range row {
			c, ok := b.Cell(mark)
			if !ok {
				return nil, fmt.Errorf("%w: %q at (%d, %d)", ErrUnknownMark, mark, i, j)
			}
			cells[i][j] = c
		}
	}
	return NewBoardFromCells(players, cells)
}

func (b *Board) index(row, col int) int {
	return row*b.size + col
}

// Move sets (row, col) to player. Callers must check that the cell is in range
// and empty; see CheckMove.
func (b *Board) Move(player Cell, row, col int) {
	b.cells[b.index(row, col)] = player
}

// Square returns the value at (row, col).
func (b *Board) Square(row, col int) Cell {
	return b.cells[b.index(row, col)]
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Players() Players {
	return b.players
}

// Symbol maps a cell to its display glyph.
func (b *Board) Symbol(c Cell) PlayerMark {
	switch c {
	case PlayerA:
		return b.players[0]
	case PlayerB:
		return b.players[1]
	default:
		return " "
	}
}

// Cell maps a display glyph back to a cell.
func (b *Board) Cell(mark PlayerMark) (Cell, bool) {
	switch mark {
	case None, " ":
		return Empty, true
	case b.players[0]:
		return PlayerA, true
	case b.players[1]:
		return PlayerB, true
	}
	return Empty, false
}

// IsWin reports whether player owns a full row, column or diagonal.
func (b *Board) IsWin(player Cell) bool {
	for i := range b.size {
		if b.NumberInRow(i, player) == b.size || b.NumberInCol(i, player) == b.size {
			return true
		}
	}
	return b.NumberInDiag(0, player) == b.size || b.NumberInDiag(1, player) == b.size
}

// IsFork reports whether player has at least two distinct empty cells that
// would each win on their own.
func (b *Board) IsFork(player Cell) bool {
	count := 0
	for sq := range b.Squares() {
		if sq.Value != Empty {
			continue
		}
		next := b.Clone()
		next.Move(player, sq.Row, sq.Col)
		if next.IsWin(player) {
			count++
		}
	}
	return count > 1
}

// Clone returns a deep copy that shares no cells with b.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:    b.size,
		players: b.players,
		cells:   cells,
	}
}

// Center returns the middle cell. Boards with an even side have none.
func (b *Board) Center() (Position, bool) {
	if b.size%2 == 0 {
		return Position{}, false
	}
	c := (b.size - 1) / 2
	return Position{Row: c, Col: c}, true
}

// Corners lists the corners clockwise from the top-left.
func (b *Board) Corners() [4]Position {
	last := b.size - 1
	return [4]Position{
		{Row: 0, Col: 0},
		{Row: 0, Col: last},
		{Row: last, Col: last},
		{Row: last, Col: 0},
	}
}

// EmptySquares returns every empty cell in row-major order.
func (b *Board) EmptySquares() []Position {
	var blanks []Position
	for sq := range b.Squares() {
		if sq.Value == Empty {
			blanks = append(blanks, Position{Row: sq.Row, Col: sq.Col})
		}
	}
	return blanks
}

// Full reports whether no empty cell is left.
func (b *Board) Full() bool {
	for _, c := range b.cells {
		if c == Empty {
			return false
		}
	}
	return true
}

// Marks converts the board to display marks, empty cells as None.
func (b *Board) Marks() [][]PlayerMark {
	marks := make([][]PlayerMark, b.size)
	for i := range b.size {
		marks[i] = make([]PlayerMark, b.size)
		for j := range b.size {
			if c := b.Square(i, j); c != Empty {
				marks[i][j] = b.Symbol(c)
			}
		}
	}
	return marks
}
