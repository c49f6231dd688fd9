package game

// Game groups a board with the bookkeeping of one session. The board and the AI
// never touch these fields; the loop driving the session does.
type Game struct {
	Board   *Board
	Players Players
	Ply     int
	Winner  Cell
	Over    bool
}

func NewGame(board *Board) *Game {
	return &Game{
		Board:   board,
		Players: board.Players(),
		Winner:  Empty,
	}
}

// Advance records that player has just moved: the ply count goes up and the
// game ends on a win or a full board.
func (g *Game) Advance(player Cell) {
	g.Ply++
	if g.Board.IsWin(player) {
		g.Winner = player
		g.Over = true
		return
	}
	if g.Board.Full() {
		g.Over = true
	}
}

// IsDraw reports a finished game without a winner.
func (g *Game) IsDraw() bool {
	return g.Over && g.Winner == Empty
}
