package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/tictac/internal/bot"
	"ctchen222/tictac/internal/config"
	"ctchen222/tictac/internal/console"
	"ctchen222/tictac/internal/game"
	"ctchen222/tictac/internal/logger"
	"ctchen222/tictac/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "tictac:", r)
			code = 1
		}
	}()

	cfg := config.MustLoad(configPath())

	// The board goes to stdout, so logs go to stderr.
	logger.Init(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	board := game.NewBoard(cfg.Game.Size, cfg.Game.GamePlayers())
	g := game.NewGame(board)
	human := cfg.Game.HumanCell()
	ai := bot.NewAI(g, human.Opponent())

	if err := console.Run(ctx, os.Stdin, os.Stdout, g, ai, human); err != nil {
		slog.Error("game aborted", "error", err)
		return 1
	}
	return 0
}

func configPath() string {
	if path := os.Getenv("TICTAC_CONFIG"); path != "" {
		return path
	}
	return "config.yml"
}
