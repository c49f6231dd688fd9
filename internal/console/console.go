package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"ctchen222/tictac/internal/bot"
	"ctchen222/tictac/internal/game"
)

var errBadFormat = errors.New("want two integers 'i j'")

// Run plays g on a terminal: the human types moves on in, ai answers, and the
// board is drawn on out. ai must be bound to g. The first player opens.
// Running out of input ends the game quietly; ctx is checked between turns.
func Run(ctx context.Context, in io.Reader, out io.Writer, g *game.Game, ai *bot.AI, human game.Cell) error {
	board := g.Board
	size := board.Size()
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "Welcome to TicTac! Press ENTER to begin.")
	if !scanner.Scan() {
		return scanner.Err()
	}

	for !g.Over && g.Ply < size*size {
		if err := ctx.Err(); err != nil {
			return err
		}

		if turn(g) == ai.Player() {
			if !ai.Move() {
				break
			}
			g.Advance(ai.Player())
			continue
		}

		fmt.Fprintf(out, "\n%s", board)
		fmt.Fprintf(out, "Enter your next move by typing 'i j' to move to the square in the ith row and jth column. Remember that 0 <= i, j <= %d.\n", size-1)
		if !scanner.Scan() {
			slog.DebugContext(ctx, "console input closed", "ply", g.Ply)
			return scanner.Err()
		}

		row, col, err := parseMove(scanner.Text())
		if err != nil {
			slog.DebugContext(ctx, "unparsable move", "input", scanner.Text(), "error", err)
			fmt.Fprintln(out, "Sorry you did not input the row and column number of the square you want to move in the right format")
			continue
		}

		switch err := game.CheckMove(board, row, col); {
		case errors.Is(err, game.ErrOutOfRange):
			fmt.Fprintf(out, "Remember that 0 <= i, j <= %d.\n", size-1)
		case errors.Is(err, game.ErrCellOccupied):
			fmt.Fprintln(out, "This square has already been played!")
		default:
			board.Move(human, row, col)
			g.Advance(human)
		}
	}

	fmt.Fprintf(out, "\n%s", board)
	switch g.Winner {
	case human:
		fmt.Fprintln(out, "Congrats you won!")
	case ai.Player():
		fmt.Fprintln(out, "Oh no! The computer beat you!")
	default:
		fmt.Fprintln(out, "Cat game! Good Job!")
	}
	slog.InfoContext(ctx, "console game finished", "winner", board.Symbol(g.Winner), "ply", g.Ply)
	return nil
}

func turn(g *game.Game) game.Cell {
	if g.Ply%2 == 0 {
		return game.PlayerA
	}
	return game.PlayerB
}

func parseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, errBadFormat
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("row: %w", err)
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("col: %w", err)
	}
	return row, col, nil
}
