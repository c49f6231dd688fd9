package bot

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"ctchen222/tictac/internal/game"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

// Rule names the heuristic that produced a decision.
type Rule uint8

const (
	RuleWin Rule = iota
	RuleBlock
	RuleFork
	RuleBlockFork
	RuleCenter
	RuleCorner
	RuleRandom
)

func (r Rule) String() string {
	switch r {
	case RuleWin:
		return "win"
	case RuleBlock:
		return "block"
	case RuleFork:
		return "fork"
	case RuleBlockFork:
		return "block_fork"
	case RuleCenter:
		return "center"
	case RuleCorner:
		return "corner"
	default:
		return "random"
	}
}

// Decision is a chosen cell and the rule that chose it.
type Decision struct {
	Position game.Position
	Rule     Rule
}

// AI plays one side of a game with a fixed list of heuristics, checked in order:
// win, block, fork, block a fork, center, corner, anywhere.
// An AI is not safe for concurrent use.
type AI struct {
	game      *game.Game
	player    game.Cell
	opponent  game.Cell
	rng       *rand.Rand
	logger    *slog.Logger
	decisions metric.Int64Counter
}

type Option func(*AI)

// WithRand sets the random source used to break ties between corners and cells.
func WithRand(r *rand.Rand) Option {
	return func(a *AI) {
		a.rng = r
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *AI) {
		a.logger = l
	}
}

// NewAI binds an AI for player to g. The opponent is the other player.
func NewAI(g *game.Game, player game.Cell, opts ...Option) *AI {
	a := &AI{
		game:     g,
		player:   player,
		opponent: player.Opponent(),
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	counter, err := meter.Int64Counter("tictac.bot.decisions",
		metric.WithDescription("Moves chosen by the bot, by heuristic"),
	)
	if err != nil {
		a.logger.Warn("failed to create decisions counter", "error", err)
	}
	a.decisions = counter
	return a
}

func (a *AI) Player() game.Cell {
	return a.player
}

func (a *AI) board() *game.Board {
	return a.game.Board
}

// Move plays the chosen cell on the bound board. It returns false only when
// the board has no empty cell left.
func (a *AI) Move() bool {
	d, ok := a.Decide()
	if !ok {
		return false
	}
	a.board().Move(a.player, d.Position.Row, d.Position.Col)
	return true
}

// Decide picks a move without playing it.
func (a *AI) Decide() (Decision, bool) {
	b := a.board()

	if p, ok := a.LookAheadWin(a.player); ok {
		return a.decided(p, RuleWin), true
	}
	if p, ok := a.LookAheadWin(a.opponent); ok {
		return a.decided(p, RuleBlock), true
	}
	if p, ok := a.LookAheadGetFork(a.player); ok {
		return a.decided(p, RuleFork), true
	}
	if p, ok := a.LookAheadBlockFork(); ok {
		return a.decided(p, RuleBlockFork), true
	}
	if c, ok := b.Center(); ok && b.Square(c.Row, c.Col) == game.Empty {
		return a.decided(c, RuleCenter), true
	}
	if p, ok := a.TryCorners(); ok {
		return a.decided(p, RuleCorner), true
	}
	if p, ok := a.MoveRandom(); ok {
		return a.decided(p, RuleRandom), true
	}
	return Decision{}, false
}

func (a *AI) decided(p game.Position, rule Rule) Decision {
	a.logger.Debug("bot chose move",
		"player", a.board().Symbol(a.player),
		"row", p.Row,
		"col", p.Col,
		"rule", rule.String(),
	)
	if a.decisions != nil {
		a.decisions.Add(context.Background(), 1, metric.WithAttributes(attribute.String("rule", rule.String())))
	}
	return Decision{Position: p, Rule: rule}
}
