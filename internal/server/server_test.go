package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ctchen222/tictac/internal/api/controller"
	"ctchen222/tictac/internal/api/service"
	"ctchen222/tictac/internal/bot"
	"ctchen222/tictac/internal/game"
	"ctchen222/tictac/internal/hub"
	"ctchen222/tictac/internal/session"
	"ctchen222/tictac/pkg/proto"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Extras  json.RawMessage `json:"extras"`
}

func newTestServer(t *testing.T) (*Server, *hub.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	calc := &bot.BotMoveCalculator{}
	h := hub.NewHub(calc, session.Settings{Difficulty: bot.DifficultyHard})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	svc := service.NewBotService(calc, game.DefaultPlayers, bot.DifficultyHard)
	return NewServer(h, controller.NewBotController(svc)), h
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"code":200,"extras":{"content":"ok"}}`, w.Body.String())
}

func TestServer_NextMove(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantExtras string
	}{
		{
			name:       "Empty board",
			body:       `{"board":[["","",""],["","",""],["","",""]],"mark":"O"}`,
			wantStatus: http.StatusOK,
			wantExtras: `{"row":1,"col":1,"moved":true}`,
		},
		{
			name:       "Block on medium",
			body:       `{"board":[["X","X",""],["","O",""],["","",""]],"mark":"O","difficulty":"medium"}`,
			wantStatus: http.StatusOK,
			wantExtras: `{"row":0,"col":2,"moved":true}`,
		},
		{
			name:       "Bad JSON",
			body:       `{"board":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Board with two rows",
			body:       `{"board":[["","",""],["","",""]],"mark":"X"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Missing mark",
			body:       `{"board":[["","",""],["","",""],["","",""]]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Unknown mark",
			body:       `{"board":[["","",""],["","",""],["","",""]],"mark":"Z"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Unknown difficulty",
			body:       `{"board":[["","",""],["","",""],["","",""]],"mark":"X","difficulty":"brutal"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	srv, _ := newTestServer(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/move", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			srv.Engine().ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			var env envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tt.wantStatus, env.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, env.Success)
			if tt.wantExtras != "" {
				assert.JSONEq(t, tt.wantExtras, string(env.Extras))
			}
		})
	}
}

func TestServer_WebSocketGame(t *testing.T) {
	// Given
	srv, h := newTestServer(t)
	ts := httptest.NewServer(srv.Engine())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?playerId=alice&difficulty=hard"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	// When
	require.NoError(t, conn.WriteJSON(proto.ClientToServerMessage{Type: proto.TypeStart, Mark: game.PlayerX}))

	// Then
	var assignment proto.PlayerAssignmentMessage
	require.NoError(t, conn.ReadJSON(&assignment))
	assert.Equal(t, proto.PlayerAssignmentMessage{Type: proto.TypeAssignment, PlayerID: "alice", Mark: game.PlayerX}, assignment)

	var update proto.ServerToClientMessage
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, proto.TypeUpdate, update.Type)
	assert.Equal(t, game.PlayerX, update.Next)
	assert.Equal(t, 1, h.Count())

	// When
	require.NoError(t, conn.WriteJSON(proto.ClientToServerMessage{Type: proto.TypeMove, Position: []int{0, 0}}))

	// Then
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, game.PlayerX, update.Board[0][0])
	assert.Equal(t, game.PlayerO, update.Board[1][1])

	// When the player leaves
	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

	// Then
	assert.Eventually(t, func() bool { return h.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServer_WebSocketRejectsUnknownDifficulty(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws?difficulty=brutal", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
