package models

import "ctchen222/tictac/internal/game"

// MoveRequest defines the structure for a next-move request.
type MoveRequest struct {
	Board      [][]game.PlayerMark `json:"board" binding:"required,len=3,dive,len=3"`
	Mark       game.PlayerMark     `json:"mark" binding:"required,len=1"`
	Difficulty string              `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// MoveResponse is the bot's answer. Row and Col are -1 when it did not move.
type MoveResponse struct {
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	Moved bool `json:"moved"`
}
