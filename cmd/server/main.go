package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctchen222/tictac/internal/api/controller"
	"ctchen222/tictac/internal/api/service"
	"ctchen222/tictac/internal/bot"
	"ctchen222/tictac/internal/config"
	"ctchen222/tictac/internal/hub"
	"ctchen222/tictac/internal/logger"
	"ctchen222/tictac/internal/server"
	"ctchen222/tictac/internal/session"
	"ctchen222/tictac/internal/telemetry"

	"github.com/gin-gonic/gin"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "server:", r)
			code = 1
		}
	}()

	path := os.Getenv("TICTAC_CONFIG")
	if path == "" {
		path = "config.yml"
	}
	cfg := config.MustLoad(path)
	logger.Init(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		return 1
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("error shutting down telemetry", "error", err)
		}
	}()

	moveCalculator := &bot.BotMoveCalculator{}

	// Create services
	botService := service.NewBotService(moveCalculator, cfg.Game.GamePlayers(), cfg.Game.Difficulty)

	// Create controllers
	botController := controller.NewBotController(botService)

	// Create hub
	h := hub.NewHub(moveCalculator, session.Settings{
		Size:       cfg.Game.Size,
		Players:    cfg.Game.GamePlayers(),
		Difficulty: cfg.Game.Difficulty,
	})
	hubCtx, stopHub := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		h.Run(hubCtx)
		close(hubDone)
	}()

	// Create the Gin-based server
	srv := server.NewServer(h, botController)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: srv.Engine(),
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			slog.Error("ListenAndServe", "error", err)
			code = 1
		}
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		code = 1
	}

	// Hijacked websocket connections are not covered by Shutdown.
	stopHub()
	<-hubDone

	slog.Info("Server exiting")
	return code
}
