package bot

import "ctchen222/tictac/internal/game"

// testKind selects the board predicate a lookahead checks.
type testKind uint8

const (
	testWin testKind = iota
	testFork
)

func (k testKind) passes(b *game.Board, player game.Cell) bool {
	switch k {
	case testWin:
		return b.IsWin(player)
	case testFork:
		return b.IsFork(player)
	}
	return false
}

// lookAheadTest plays player on each empty cell of a clone, in row-major order,
// and returns the first cell whose resulting board passes test.
func (a *AI) lookAheadTest(player game.Cell, test testKind) (game.Position, bool) {
	b := a.board()
	for sq := range b.Squares() {
		if sq.Value != game.Empty {
			continue
		}
		next := b.Clone()
		next.Move(player, sq.Row, sq.Col)
		if test.passes(next, player) {
			return game.Position{Row: sq.Row, Col: sq.Col}, true
		}
	}
	return game.Position{}, false
}

// LookAheadWin finds a cell that wins immediately for player.
func (a *AI) LookAheadWin(player game.Cell) (game.Position, bool) {
	return a.lookAheadTest(player, testWin)
}

// LookAheadGetFork finds a cell that gives player two ways to win.
func (a *AI) LookAheadGetFork(player game.Cell) (game.Position, bool) {
	return a.lookAheadTest(player, testFork)
}

// LookAheadBlockFork looks for a line where the AI can get N-1 in a row and
// force the opponent to answer, without that answer handing the opponent a
// fork. Rows are scanned before columns, columns before diagonals. When every
// forcing move lets the opponent fork, the last noted cell is played; with no
// candidate line at all it blocks the opponent's fork directly.
func (a *AI) LookAheadBlockFork() (game.Position, bool) {
	b := a.board()
	var fork game.Position
	noted := false

	for line := range b.Lines() {
		if b.Count(line, a.opponent) != 0 || b.Count(line, a.player) != b.Size()-2 {
			continue
		}
		blanks := emptyCells(b, line)
		if len(blanks) != 2 {
			continue
		}
		first, second := blanks[0], blanks[1]

		if !a.opponentForksAfter(b, first, second) {
			return first, true
		}
		fork, noted = second, true

		if !a.opponentForksAfter(b, second, first) {
			return second, true
		}
		fork, noted = first, true
	}

	if noted {
		return fork, true
	}
	return a.LookAheadGetFork(a.opponent)
}

// opponentForksAfter plays mine for the AI and the forced reply theirs for the
// opponent on a clone, then checks the opponent for a fork.
func (a *AI) opponentForksAfter(b *game.Board, mine, theirs game.Position) bool {
	next := b.Clone()
	next.Move(a.player, mine.Row, mine.Col)
	next.Move(a.opponent, theirs.Row, theirs.Col)
	return next.IsFork(a.opponent)
}

func emptyCells(b *game.Board, line game.Line) []game.Position {
	var blanks []game.Position
	for _, p := range line.Cells {
		if b.Square(p.Row, p.Col) == game.Empty {
			blanks = append(blanks, p)
		}
	}
	return blanks
}

// TryCorners answers an opponent corner with the opposite corner, checking
// (0,0)/(N-1,N-1) before (0,N-1)/(N-1,0). Otherwise it picks a random empty
// corner.
func (a *AI) TryCorners() (game.Position, bool) {
	b := a.board()
	corners := b.Corners()

	// indexes into corners: each corner followed by its opposite
	pairs := [][2]int{{0, 2}, {2, 0}, {1, 3}, {3, 1}}
	for _, pair := range pairs {
		taken, opposite := corners[pair[0]], corners[pair[1]]
		if b.Square(taken.Row, taken.Col) == a.opponent && b.Square(opposite.Row, opposite.Col) == game.Empty {
			return opposite, true
		}
	}

	var open []game.Position
	for _, c := range corners {
		if b.Square(c.Row, c.Col) == game.Empty {
			open = append(open, c)
		}
	}
	return a.pick(open)
}

// MoveRandom picks a uniformly random empty cell.
func (a *AI) MoveRandom() (game.Position, bool) {
	return a.pick(a.board().EmptySquares())
}

func (a *AI) pick(candidates []game.Position) (game.Position, bool) {
	if len(candidates) == 0 {
		return game.Position{}, false
	}
	return candidates[a.rng.IntN(len(candidates))], true
}
