package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"ctchen222/tictac/internal/game"
	"ctchen222/tictac/internal/player"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("session")
	meter  = otel.Meter("session")
)

var (
	ErrNotStarted      = errors.New("game not started")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrMissingPosition = errors.New("move needs a [row, col] position")
)

// MoveCalculator defines an interface for an agent that can calculate a game move.
type MoveCalculator interface {
	CalculateNextMove(ctx context.Context, board *game.Board, mark game.Cell, difficulty string) (game.Position, bool)
}

// Settings are the defaults a session starts its games with.
type Settings struct {
	Size       int
	Players    game.Players
	Difficulty string
}

// Session is one human playing the bot over a single connection. Games live
// only as long as the session; a start message replaces the current one.
type Session struct {
	ID     string
	Player *player.Player

	settings       Settings
	moveCalculator MoveCalculator
	finished       metric.Int64Counter

	mu         sync.Mutex
	game       *game.Game
	human      game.Cell
	difficulty string

	closeOnce sync.Once
}

// NewSession creates a session for p. Nothing is played until the client
// sends a start message.
func NewSession(id string, p *player.Player, calculator MoveCalculator, settings Settings) *Session {
	if settings.Size == 0 {
		settings.Size = game.ClassicSize
	}
	if settings.Players == (game.Players{}) {
		settings.Players = game.DefaultPlayers
	}

	finished, err := meter.Int64Counter("tictac.games.finished",
		metric.WithDescription("Games played to the end, by result"),
	)
	if err != nil {
		slog.Warn("failed to create games counter", "error", err)
	}

	return &Session{
		ID:             id,
		Player:         p,
		settings:       settings,
		moveCalculator: calculator,
		finished:       finished,
	}
}

// Serve reads messages until the connection fails or ctx is done. The
// connection is closed on return. A client hanging up is not an error.
func (s *Session) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.close)
	defer stop()
	defer s.close()

	slog.InfoContext(ctx, "session started", "session.id", s.ID, "player.id", s.Player.ID)

	for {
		_, msg, err := s.Player.Conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.InfoContext(ctx, "player left", "session.id", s.ID, "player.id", s.Player.ID)
				return nil
			}
			slog.WarnContext(ctx, "player connection error", "session.id", s.ID, "player.id", s.Player.ID, "error", err)
			return err
		}
		s.HandleMessage(ctx, msg)
	}
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		if err := s.Player.Conn.Close(); err != nil {
			slog.Debug("closing player connection", "session.id", s.ID, "error", err)
		}
	})
}

// turn is the cell due to move next. The first player always opens.
func (s *Session) turn() game.Cell {
	if s.game.Ply%2 == 0 {
		return game.PlayerA
	}
	return game.PlayerB
}

func (s *Session) bot() game.Cell {
	return s.human.Opponent()
}

// winner reports the result as a mark, Draw, or None while the game is on.
func (s *Session) winner() game.PlayerMark {
	switch {
	case s.game.Winner != game.Empty:
		return s.game.Board.Symbol(s.game.Winner)
	case s.game.Over:
		return game.Draw
	default:
		return game.None
	}
}
