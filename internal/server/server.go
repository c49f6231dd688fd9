package server

import (
	"log/slog"
	"net/http"
	"time"

	"ctchen222/tictac/internal/api/controller"
	"ctchen222/tictac/internal/api/response"
	"ctchen222/tictac/internal/hub"
	"ctchen222/tictac/internal/player"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

type Server struct {
	hub           *hub.Hub
	botController *controller.BotController
	upgrader      websocket.Upgrader
	engine        *gin.Engine
}

func NewServer(h *hub.Hub, botController *controller.BotController) *Server {
	s := &Server{
		hub:           h,
		botController: botController,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.engine = s.setupRouter()
	return s
}

// Engine returns the gin engine serving every route.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), tracing(), requestLogger())

	r.GET("/healthz", s.botController.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/move", s.botController.NextMove)
	}

	r.GET("/ws", s.handleWebSocket)
	return r
}

// tracing starts a server span per request, continuing any incoming trace.
func tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, c.Request.Method+" "+c.FullPath(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// handleWebSocket's only responsibility is to upgrade the connection and
// pass a registration request to the hub.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)

	difficulty := c.Query("difficulty")
	switch difficulty {
	case "", "easy", "medium", "hard":
	default:
		response.ErrorResponse(c, http.StatusBadRequest, "unknown difficulty: "+difficulty)
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(ctx, "failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	// Get playerID from URL, or generate a new one.
	playerID := c.Query("playerId")
	if playerID == "" {
		playerID = uuid.New().String()
	}
	span.SetAttributes(attribute.String("player.id", playerID), attribute.String("game.difficulty", difficulty))

	// Send the registration request to the hub for processing.
	s.hub.Register() <- &hub.RegistrationRequest{
		Player:     player.NewPlayer(playerID, conn),
		Difficulty: difficulty,
		Ctx:        ctx, // Pass the context with the span
	}
}
