package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"ctchen222/tictac/internal/game"
	"ctchen222/tictac/internal/validator"
	"ctchen222/tictac/pkg/proto"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// HandleMessage handles a message from the player. It acts as a dispatcher.
// Anything the player got wrong is reported back as an error message.
func (s *Session) HandleMessage(ctx context.Context, rawMessage []byte) {
	ctx, span := tracer.Start(ctx, "session.HandleMessage", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("player.id", s.Player.ID),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.WarnContext(ctx, "error unmarshalling message", "session.id", s.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		s.sendError(ctx, "invalid message")
		return
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from player", "session.id", s.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		s.sendError(ctx, err.Error())
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	var err error
	switch message.Type {
	case proto.TypeStart:
		err = s.handleStart(ctx, &message)
	case proto.TypeMove:
		err = s.handleMove(ctx, &message)
	}
	if err != nil {
		slog.WarnContext(ctx, "rejected message", "session.id", s.ID, "type", message.Type, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Rejected message")
		s.sendError(ctx, err.Error())
	}
}

// handleStart begins a new game, dropping any game in progress.
func (s *Session) handleStart(ctx context.Context, message *proto.ClientToServerMessage) error {
	ctx, span := tracer.Start(ctx, "session.handleStart")
	defer span.End()

	board := game.NewBoard(s.settings.Size, s.settings.Players)

	mark := message.Mark
	if mark == game.None {
		mark = s.settings.Players[0]
		if game.RandomlyChooseFirstPlayer() == game.PlayerO {
			mark = s.settings.Players[1]
		}
	}
	human, ok := board.Cell(mark)
	if !ok || human == game.Empty {
		return fmt.Errorf("%w: %q", game.ErrUnknownMark, mark)
	}

	difficulty := message.Difficulty
	if difficulty == "" {
		difficulty = s.settings.Difficulty
	}

	s.game = game.NewGame(board)
	s.human = human
	s.difficulty = difficulty
	span.SetAttributes(attribute.String("player.mark", string(mark)), attribute.String("bot.difficulty", difficulty))
	slog.InfoContext(ctx, "game started", "session.id", s.ID, "mark", mark, "difficulty", difficulty)

	s.send(ctx, &proto.PlayerAssignmentMessage{
		Type:     proto.TypeAssignment,
		PlayerID: s.Player.ID,
		Mark:     mark,
	})

	if s.turn() == s.bot() {
		s.botMove(ctx)
	}
	s.sendUpdate(ctx)
	return nil
}

// handleMove applies the player's move and the bot's reply.
func (s *Session) handleMove(ctx context.Context, message *proto.ClientToServerMessage) error {
	if s.game == nil {
		return ErrNotStarted
	}
	if s.game.Over {
		return game.ErrGameOver
	}
	if len(message.Position) != 2 {
		return ErrMissingPosition
	}
	if s.turn() != s.human {
		return ErrNotYourTurn
	}

	row, col := message.Position[0], message.Position[1]
	ctx, span := tracer.Start(ctx, "session.handleMove", trace.WithAttributes(
		attribute.Int("move.row", row),
		attribute.Int("move.col", col),
	))
	defer span.End()

	board := s.game.Board
	if err := game.CheckMove(board, row, col); err != nil {
		span.SetAttributes(attribute.Bool("move.valid", false))
		return err
	}
	span.SetAttributes(attribute.Bool("move.valid", true))

	board.Move(s.human, row, col)
	s.advance(ctx, s.human)
	if !s.game.Over {
		s.botMove(ctx)
	}
	s.sendUpdate(ctx)
	return nil
}

func (s *Session) botMove(ctx context.Context) {
	pos, ok := s.moveCalculator.CalculateNextMove(ctx, s.game.Board, s.bot(), s.difficulty)
	if !ok {
		return
	}
	s.game.Board.Move(s.bot(), pos.Row, pos.Col)
	s.advance(ctx, s.bot())
}

func (s *Session) advance(ctx context.Context, mover game.Cell) {
	s.game.Advance(mover)
	if !s.game.Over {
		return
	}
	result := s.winner()
	slog.InfoContext(ctx, "game over", "session.id", s.ID, "winner", result, "ply", s.game.Ply)
	if s.finished != nil {
		s.finished.Add(ctx, 1, metric.WithAttributes(attribute.String("winner", string(result))))
	}
}

func (s *Session) sendUpdate(ctx context.Context) {
	var next game.PlayerMark
	if !s.game.Over {
		next = s.game.Board.Symbol(s.turn())
	}
	s.send(ctx, &proto.ServerToClientMessage{
		Type:   proto.TypeUpdate,
		Board:  s.game.Board.Marks(),
		Next:   next,
		Winner: s.winner(),
	})
}

func (s *Session) sendError(ctx context.Context, reason string) {
	s.send(ctx, &proto.ServerToClientMessage{Type: proto.TypeError, Reason: reason})
}

func (s *Session) send(ctx context.Context, message any) {
	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message", "session.id", s.ID, "error", err)
		return
	}
	if err := s.Player.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.ErrorContext(ctx, "error writing message to player", "session.id", s.ID, "player.id", s.Player.ID, "error", err)
	}
}
