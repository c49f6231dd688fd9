package hub

import (
	"context"
	"io"
	"testing"
	"time"

	"ctchen222/tictac/internal/bot"
	"ctchen222/tictac/internal/player"
	"ctchen222/tictac/internal/player/mocks"
	"ctchen222/tictac/internal/session"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// blockingConn reads nothing until hangup is closed or the connection is.
func blockingConn(t *testing.T, hangup chan struct{}) *mocks.MockConnection {
	t.Helper()
	ctrl := gomock.NewController(t)
	conn := mocks.NewMockConnection(ctrl)
	closed := make(chan struct{})

	conn.EXPECT().ReadMessage().DoAndReturn(func() (int, []byte, error) {
		select {
		case <-hangup:
		case <-closed:
		}
		return 0, nil, io.EOF
	}).AnyTimes()
	conn.EXPECT().Close().DoAndReturn(func() error {
		close(closed)
		return nil
	}).Times(1)
	return conn
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	// Given
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(&bot.BotMoveCalculator{}, session.Settings{Difficulty: bot.DifficultyHard})
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	hangup := make(chan struct{})
	p := player.NewPlayer("p1", blockingConn(t, hangup))

	// When
	h.Register() <- &RegistrationRequest{Player: p, Ctx: context.Background()}

	// Then
	assert.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, 10*time.Millisecond)

	// When the player hangs up
	close(hangup)

	// Then
	assert.Eventually(t, func() bool { return h.Count() == 0 }, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestHub_RunStopsSessionsOnCancel(t *testing.T) {
	// Given
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(&bot.BotMoveCalculator{}, session.Settings{})
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	for _, id := range []string{"p1", "p2"} {
		h.Register() <- &RegistrationRequest{
			Player:     player.NewPlayer(id, blockingConn(t, make(chan struct{}))),
			Difficulty: bot.DifficultyEasy,
		}
	}
	assert.Eventually(t, func() bool { return h.Count() == 2 }, time.Second, 10*time.Millisecond)

	// When
	cancel()

	// Then
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
