package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"ctchen222/tictac/internal/game"
	"ctchen222/tictac/internal/validator"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrUnknownHumanMark = errors.New("human-mark is not one of the configured players")

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"TICTAC_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFormat string    `yaml:"log-format" env:"TICTAC_LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
	HTTPPort  string    `yaml:"http-port" env:"TICTAC_HTTP_PORT" env-default:"8080" validate:"required,numeric"`
	Game      Game      `yaml:"game"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Game struct {
	// Size is kept configurable for the board, but only the classic grid is played.
	Size       int      `yaml:"size" env:"TICTAC_BOARD_SIZE" env-default:"3" validate:"eq=3"`
	Players    []string `yaml:"players" env:"TICTAC_PLAYERS" env-default:"X,O" validate:"len=2,unique,dive,len=1"`
	HumanMark  string   `yaml:"human-mark" env:"TICTAC_HUMAN_MARK" env-default:"X" validate:"required"`
	Difficulty string   `yaml:"difficulty" env:"TICTAC_DIFFICULTY" env-default:"hard" validate:"oneof=easy medium hard"`
}

type Telemetry struct {
	Enabled      bool   `yaml:"enabled" env:"TICTAC_TELEMETRY_ENABLED" env-default:"false"`
	OTLPEndpoint string `yaml:"otlp-endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:""`
	Stdout       bool   `yaml:"stdout" env:"TICTAC_TELEMETRY_STDOUT" env-default:"false"`
	ServiceName  string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"tic-tac-toe"`
}

// Load reads the YAML file at path, overridden by environment variables. A
// missing file falls back to environment variables and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); statErr == nil {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoad - load all configurations, panicking on failure.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

func (that *Config) Validate() error {
	if err := validator.GetValidator().Struct(that); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if !slices.Contains(that.Game.Players, that.Game.HumanMark) {
		return fmt.Errorf("%w: %q", ErrUnknownHumanMark, that.Game.HumanMark)
	}
	return nil
}

func (that *Game) GamePlayers() game.Players {
	return game.Players{game.PlayerMark(that.Players[0]), game.PlayerMark(that.Players[1])}
}

// HumanCell is the side the console player takes.
func (that *Game) HumanCell() game.Cell {
	if that.HumanMark == that.Players[1] {
		return game.PlayerB
	}
	return game.PlayerA
}

func (that *Config) HTTPAddr() string {
	return ":" + that.HTTPPort
}
