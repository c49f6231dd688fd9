package game

import (
	"testing"
)

func TestNewGame(t *testing.T) {
	g := NewGame(NewBoard(3, DefaultPlayers))
	if g.Ply != 0 || g.Winner != Empty || g.Over {
		t.Errorf("NewGame() = %+v, want a fresh game", g)
	}
	if g.Players != DefaultPlayers {
		t.Errorf("NewGame() players = %v, want %v", g.Players, DefaultPlayers)
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name       string
		rows       []string
		player     Cell
		wantWinner Cell
		wantOver   bool
		wantDraw   bool
	}{
		{
			name:       "game continues",
			rows:       []string{"x..", ".o.", "..."},
			player:     PlayerB,
			wantWinner: Empty,
		},
		{
			name:       "x wins on a row",
			rows:       []string{"xxx", "oo.", "..."},
			player:     PlayerA,
			wantWinner: PlayerA,
			wantOver:   true,
		},
		{
			name:       "full board without a winner",
			rows:       []string{"xox", "xoo", "oxx"},
			player:     PlayerA,
			wantWinner: Empty,
			wantOver:   true,
			wantDraw:   true,
		},
		{
			name:       "winning move fills the board",
			rows:       []string{"xox", "oxo", "oxx"},
			player:     PlayerA,
			wantWinner: PlayerA,
			wantOver:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame(parse(t, tt.rows...))
			g.Advance(tt.player)
			if g.Ply != 1 {
				t.Errorf("Ply = %d, want 1", g.Ply)
			}
			if g.Winner != tt.wantWinner || g.Over != tt.wantOver || g.IsDraw() != tt.wantDraw {
				t.Errorf("Advance() got winner=%v over=%v draw=%v, want winner=%v over=%v draw=%v",
					g.Winner, g.Over, g.IsDraw(), tt.wantWinner, tt.wantOver, tt.wantDraw)
			}
		})
	}
}

func TestOpponent(t *testing.T) {
	if PlayerA.Opponent() != PlayerB || PlayerB.Opponent() != PlayerA || Empty.Opponent() != Empty {
		t.Errorf("Opponent() mapping is wrong")
	}
}

func TestRandomlyChooseFirstPlayer(t *testing.T) {
	// Run multiple times to ensure randomness, but check for valid output
	seenX := false
	seenO := false
	for i := 0; i < 100; i++ {
		player := RandomlyChooseFirstPlayer()
		if player != PlayerX && player != PlayerO {
			t.Errorf("RandomlyChooseFirstPlayer() returned invalid player: %v", player)
		}
		if player == PlayerX {
			seenX = true
		}
		if player == PlayerO {
			seenO = true
		}
	}

	if !seenX || !seenO {
		t.Errorf("RandomlyChooseFirstPlayer() did not return both PlayerX and PlayerO over 100 runs. Seen X: %v, Seen O: %v", seenX, seenO)
	}
}
