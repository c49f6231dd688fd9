package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"ctchen222/tictac/internal/api/models"
	"ctchen222/tictac/internal/api/response"
	"ctchen222/tictac/internal/game"
	"ctchen222/tictac/internal/session"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("api")

// BotService defines the interface for the stateless bot endpoint.
type BotService interface {
	NextMove(ctx context.Context, req *models.MoveRequest) (*models.MoveResponse, error)
}

type botService struct {
	moveCalculator session.MoveCalculator
	players        game.Players
	difficulty     string
}

// NewBotService creates a new BotService. difficulty is used when a request
// does not name one.
func NewBotService(calculator session.MoveCalculator, players game.Players, difficulty string) BotService {
	return &botService{
		moveCalculator: calculator,
		players:        players,
		difficulty:     difficulty,
	}
}

// NextMove returns the bot's move for req.Mark on req.Board. Finished and
// full boards get no move.
func (s *botService) NextMove(ctx context.Context, req *models.MoveRequest) (*models.MoveResponse, error) {
	ctx, span := tracer.Start(ctx, "api.NextMove", trace.WithAttributes(
		attribute.String("bot.mark", string(req.Mark)),
		attribute.String("bot.difficulty", req.Difficulty),
	))
	defer span.End()

	board, err := game.ParseBoard(s.players, req.Board)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid board")
		return nil, response.NewError(false, http.StatusBadRequest, err.Error())
	}

	mark, ok := board.Cell(req.Mark)
	if !ok || mark == game.Empty {
		err := fmt.Errorf("%w: %q", game.ErrUnknownMark, req.Mark)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid mark")
		return nil, response.NewError(false, http.StatusBadRequest, err.Error())
	}

	noMove := &models.MoveResponse{Row: -1, Col: -1}
	if board.IsWin(game.PlayerA) || board.IsWin(game.PlayerB) {
		slog.DebugContext(ctx, "board already decided")
		return noMove, nil
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = s.difficulty
	}

	pos, ok := s.moveCalculator.CalculateNextMove(ctx, board, mark, difficulty)
	if !ok {
		return noMove, nil
	}
	return &models.MoveResponse{Row: pos.Row, Col: pos.Col, Moved: true}, nil
}
