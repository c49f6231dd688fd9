package hub

import (
	"context"
	"log/slog"
	"sync"

	"ctchen222/tictac/internal/player"
	"ctchen222/tictac/internal/session"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("hub")
	meter  = otel.Meter("hub")
)

// RegistrationRequest represents a request to register a player.
type RegistrationRequest struct {
	Player     *player.Player
	Difficulty string // "easy", "medium", "hard"; empty means the configured default
	Ctx        context.Context
}

// Hub manages all the live sessions.
type Hub struct {
	sessions       map[string]*session.Session
	mu             sync.RWMutex
	register       chan *RegistrationRequest
	unregister     chan *session.Session
	moveCalculator session.MoveCalculator
	settings       session.Settings
	active         metric.Int64UpDownCounter
	wg             sync.WaitGroup
}

// NewHub creates a new hub. Every session it starts uses calculator for the
// bot and settings for its games.
func NewHub(calculator session.MoveCalculator, settings session.Settings) *Hub {
	active, err := meter.Int64UpDownCounter("tictac.sessions.active",
		metric.WithDescription("Websocket sessions currently being served"),
	)
	if err != nil {
		slog.Warn("failed to create sessions counter", "error", err)
	}

	return &Hub{
		sessions:       make(map[string]*session.Session),
		register:       make(chan *RegistrationRequest),
		unregister:     make(chan *session.Session),
		moveCalculator: calculator,
		settings:       settings,
		active:         active,
	}
}

// Run starts the hub. It returns once ctx is done and every session it
// started has finished.
func (h *Hub) Run(ctx context.Context) {
	slog.InfoContext(ctx, "hub started")
	defer h.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "hub stopping", "sessions", h.Count())
			return

		case req := <-h.register:
			h.startSession(ctx, req)

		case s := <-h.unregister:
			h.mu.Lock()
			delete(h.sessions, s.ID)
			h.mu.Unlock()
			h.addActive(ctx, -1)
			slog.InfoContext(ctx, "session closed", "session.id", s.ID, "player.id", s.Player.ID)
		}
	}
}

// startSession serves a new session until its player leaves. Sessions live
// as long as the hub, not as long as the request that registered them.
func (h *Hub) startSession(ctx context.Context, req *RegistrationRequest) {
	var opts []trace.SpanStartOption
	if req.Ctx != nil {
		if sc := trace.SpanContextFromContext(req.Ctx); sc.IsValid() {
			opts = append(opts, trace.WithLinks(trace.Link{SpanContext: sc}))
		}
	}
	spanCtx, span := tracer.Start(ctx, "hub.startSession", opts...)
	defer span.End()

	settings := h.settings
	if req.Difficulty != "" {
		settings.Difficulty = req.Difficulty
	}

	s := session.NewSession(uuid.New().String(), req.Player, h.moveCalculator, settings)
	span.SetAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("player.id", req.Player.ID),
		attribute.String("bot.difficulty", settings.Difficulty),
	)

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	h.addActive(spanCtx, 1)
	slog.InfoContext(spanCtx, "session registered", "session.id", s.ID, "player.id", req.Player.ID)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if err := s.Serve(ctx); err != nil && ctx.Err() == nil {
			slog.WarnContext(ctx, "session ended with error", "session.id", s.ID, "error", err)
		}
		select {
		case h.unregister <- s:
		case <-ctx.Done():
		}
	}()
}

func (h *Hub) addActive(ctx context.Context, n int64) {
	if h.active != nil {
		h.active.Add(ctx, n)
	}
}

// Count reports the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Register returns the register channel.
func (h *Hub) Register() chan<- *RegistrationRequest {
	return h.register
}
