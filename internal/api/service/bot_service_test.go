package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"ctchen222/tictac/internal/api/models"
	"ctchen222/tictac/internal/api/response"
	"ctchen222/tictac/internal/bot"
	"ctchen222/tictac/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotService_NextMove(t *testing.T) {
	X, O := game.PlayerX, game.PlayerO

	tests := []struct {
		name     string
		req      models.MoveRequest
		want     *models.MoveResponse
		wantCode int
	}{
		{
			name: "Empty board takes the center",
			req: models.MoveRequest{
				Board: [][]game.PlayerMark{{"", "", ""}, {"", "", ""}, {"", "", ""}},
				Mark:  X,
			},
			want: &models.MoveResponse{Row: 1, Col: 1, Moved: true},
		},
		{
			name: "Spaces count as empty",
			req: models.MoveRequest{
				Board:      [][]game.PlayerMark{{X, X, " "}, {O, O, " "}, {" ", " ", " "}},
				Mark:       O,
				Difficulty: bot.DifficultyMedium,
			},
			want: &models.MoveResponse{Row: 1, Col: 2, Moved: true},
		},
		{
			name: "Full board",
			req: models.MoveRequest{
				Board: [][]game.PlayerMark{{X, O, X}, {O, X, O}, {O, X, O}},
				Mark:  X,
			},
			want: &models.MoveResponse{Row: -1, Col: -1},
		},
		{
			name: "Already won",
			req: models.MoveRequest{
				Board: [][]game.PlayerMark{{X, X, X}, {O, O, ""}, {"", "", ""}},
				Mark:  O,
			},
			want: &models.MoveResponse{Row: -1, Col: -1},
		},
		{
			name: "Unknown mark on the board",
			req: models.MoveRequest{
				Board: [][]game.PlayerMark{{"Z", "", ""}, {"", "", ""}, {"", "", ""}},
				Mark:  X,
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "Unknown mark to play",
			req: models.MoveRequest{
				Board: [][]game.PlayerMark{{"", "", ""}, {"", "", ""}, {"", "", ""}},
				Mark:  "Z",
			},
			wantCode: http.StatusBadRequest,
		},
	}

	svc := NewBotService(&bot.BotMoveCalculator{}, game.DefaultPlayers, bot.DifficultyHard)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.NextMove(context.Background(), &tt.req)

			if tt.wantCode != 0 {
				var apiErr response.Error
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, tt.wantCode, apiErr.Code)
				assert.Contains(t, apiErr.Error(), game.ErrUnknownMark.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
