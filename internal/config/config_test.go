package config

import (
	"os"
	"path/filepath"
	"testing"

	"ctchen222/tictac/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the YAML file", func(t *testing.T) {
		// Given: a config file choosing O for the human
		path := writeConfig(t, `
log-level: debug
http-port: "9090"
game:
  players: ["x", "o"]
  human-mark: o
  difficulty: medium
`)

		// When: loading it
		conf, err := Load(path)

		// Then: file values win and the rest are defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "text", conf.LogFormat)
		assert.Equal(t, ":9090", conf.HTTPAddr())
		assert.Equal(t, 3, conf.Game.Size)
		assert.Equal(t, "medium", conf.Game.Difficulty)
		assert.Equal(t, game.Players{"x", "o"}, conf.Game.GamePlayers())
		assert.Equal(t, game.PlayerB, conf.Game.HumanCell())
		assert.Equal(t, "tic-tac-toe", conf.Telemetry.ServiceName)
	})

	t.Run("Falls back to defaults without a file", func(t *testing.T) {
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, game.DefaultPlayers, conf.Game.GamePlayers())
		assert.Equal(t, game.PlayerA, conf.Game.HumanCell())
		assert.Equal(t, "hard", conf.Game.Difficulty)
		assert.False(t, conf.Telemetry.Enabled)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		t.Setenv("TICTAC_LOG_LEVEL", "warn")
		path := writeConfig(t, "log-level: debug\n")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "warn", conf.LogLevel)
	})
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"board larger than classic", "game:\n  size: 4\n"},
		{"unknown log level", "log-level: chatty\n"},
		{"duplicate players", "game:\n  players: [\"X\", \"X\"]\n"},
		{"multi-character mark", "game:\n  players: [\"XX\", \"O\"]\n  human-mark: O\n"},
		{"unknown difficulty", "game:\n  difficulty: impossible\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	t.Run("human mark outside the players", func(t *testing.T) {
		_, err := Load(writeConfig(t, "game:\n  human-mark: Z\n"))
		assert.ErrorIs(t, err, ErrUnknownHumanMark)
	})
}

func TestMustLoadPanics(t *testing.T) {
	path := writeConfig(t, "game:\n  size: 5\n")
	assert.Panics(t, func() { MustLoad(path) })
}
