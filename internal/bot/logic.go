package bot

import (
	"context"
	"log/slog"

	"ctchen222/tictac/internal/game"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// BotMoveCalculator implements the session.MoveCalculator interface.
type BotMoveCalculator struct{}

// CalculateNextMove wraps the package-level function in a span.
func (c *BotMoveCalculator) CalculateNextMove(ctx context.Context, board *game.Board, mark game.Cell, difficulty string) (game.Position, bool) {
	ctx, span := tracer.Start(ctx, "bot.CalculateNextMove", trace.WithAttributes(
		attribute.String("bot.mark", string(board.Symbol(mark))),
		attribute.String("bot.difficulty", difficulty),
	))
	defer span.End()

	pos, ok := CalculateNextMove(board, mark, difficulty)
	span.SetAttributes(attribute.Bool("move.found", ok))
	if ok {
		span.SetAttributes(attribute.Int("move.row", pos.Row), attribute.Int("move.col", pos.Col))
	}
	slog.DebugContext(ctx, "bot calculated move", "difficulty", difficulty, "row", pos.Row, "col", pos.Col, "found", ok)
	return pos, ok
}

// CalculateNextMove determines the bot's next move based on the specified difficulty.
// The board is not modified.
func CalculateNextMove(board *game.Board, botMark game.Cell, difficulty string) (game.Position, bool) {
	ai := NewAI(game.NewGame(board.Clone()), botMark)

	switch difficulty {
	case DifficultyEasy:
		return ai.MoveRandom()
	case DifficultyMedium:
		return mediumMove(ai)
	default:
		d, ok := ai.Decide()
		return d.Position, ok
	}
}

// mediumMove will win if it can, block if it must, otherwise move randomly.
func mediumMove(ai *AI) (game.Position, bool) {
	// 1. Win: Check if the bot can win in the next move
	if p, ok := ai.LookAheadWin(ai.player); ok {
		return p, true
	}

	// 2. Block: Check if the opponent is about to win and block them
	if p, ok := ai.LookAheadWin(ai.opponent); ok {
		return p, true
	}

	// 3. Random: Otherwise, make a random move
	return ai.MoveRandom()
}
