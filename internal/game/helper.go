package game

import "math/rand/v2"

const (
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"
	None    PlayerMark = ""

	// Draw is reported as the winner of a finished game nobody won.
	Draw PlayerMark = "Draw"

	// ClassicSize is the only side length the entry points accept.
	ClassicSize = 3
)

func RandomlyChooseFirstPlayer() PlayerMark {
	if rand.IntN(2) == 0 {
		return PlayerX
	}
	return PlayerO
}
