package game

import "iter"

// Square is one cell yielded by Board.Squares.
type Square struct {
	Row   int
	Col   int
	Value Cell
}

// LineKind tells rows, columns and diagonals apart.
type LineKind uint8

const (
	RowLine LineKind = iota
	ColLine
	DiagLine
)

func (k LineKind) String() string {
	switch k {
	case RowLine:
		return "row"
	case ColLine:
		return "col"
	default:
		return "diag"
	}
}

// Line is a row, column or diagonal with the coordinates of its cells.
// Diagonal 0 runs top-left to bottom-right, diagonal 1 top-right to bottom-left.
type Line struct {
	Kind  LineKind
	Index int
	Cells []Position
}

// Squares yields every cell in row-major order.
func (b *Board) Squares() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		for i := range b.size {
			for j := range b.size {
				if !yield(Square{Row: i, Col: j, Value: b.Square(i, j)}) {
					return
				}
			}
		}
	}
}

// Rows yields (row index, cells of that row keyed by column).
func (b *Board) Rows() iter.Seq2[int, iter.Seq2[int, Cell]] {
	return b.lineSeq(b.size, func(i, k int) Position { return Position{Row: i, Col: k} })
}

// Cols yields (column index, cells of that column keyed by row).
func (b *Board) Cols() iter.Seq2[int, iter.Seq2[int, Cell]] {
	return b.lineSeq(b.size, func(j, k int) Position { return Position{Row: k, Col: j} })
}

// Diags yields exactly two entries: the main diagonal then the anti-diagonal.
func (b *Board) Diags() iter.Seq2[int, iter.Seq2[int, Cell]] {
	return b.lineSeq(2, b.diagPosition)
}

func (b *Board) diagPosition(d, k int) Position {
	if d == 0 {
		return Position{Row: k, Col: k}
	}
	return Position{Row: k, Col: b.size - 1 - k}
}

func (b *Board) lineSeq(n int, at func(line, k int) Position) iter.Seq2[int, iter.Seq2[int, Cell]] {
	return func(yield func(int, iter.Seq2[int, Cell]) bool) {
		for line := range n {
			inner := func(yieldCell func(int, Cell) bool) {
				for k := range b.size {
					p := at(line, k)
					if !yieldCell(k, b.Square(p.Row, p.Col)) {
						return
					}
				}
			}
			if !yield(line, inner) {
				return
			}
		}
	}
}

// Lines yields all rows, then all columns, then both diagonals.
func (b *Board) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		kinds := []struct {
			kind LineKind
			n    int
			at   func(line, k int) Position
		}{
			{RowLine, b.size, func(i, k int) Position { return Position{Row: i, Col: k} }},
			{ColLine, b.size, func(j, k int) Position { return Position{Row: k, Col: j} }},
			{DiagLine, 2, b.diagPosition},
		}
		for _, kd := range kinds {
			for line := range kd.n {
				cells := make([]Position, b.size)
				for k := range b.size {
					cells[k] = kd.at(line, k)
				}
				if !yield(Line{Kind: kd.kind, Index: line, Cells: cells}) {
					return
				}
			}
		}
	}
}

// Count returns how many cells of l hold player.
func (b *Board) Count(l Line, player Cell) int {
	n := 0
	for _, p := range l.Cells {
		if b.Square(p.Row, p.Col) == player {
			n++
		}
	}
	return n
}

func (b *Board) NumberInRow(row int, player Cell) int {
	n := 0
	for j := range b.size {
		if b.Square(row, j) == player {
			n++
		}
	}
	return n
}

func (b *Board) NumberInCol(col int, player Cell) int {
	n := 0
	for i := range b.size {
		if b.Square(i, col) == player {
			n++
		}
	}
	return n
}

// NumberInDiag counts player on diagonal 0 (main) or 1 (anti). Any other index
// counts nothing.
func (b *Board) NumberInDiag(diag int, player Cell) int {
	if diag != 0 && diag != 1 {
		return 0
	}
	n := 0
	for k := range b.size {
		p := b.diagPosition(diag, k)
		if b.Square(p.Row, p.Col) == player {
			n++
		}
	}
	return n
}
