package proto

import "ctchen222/tictac/internal/game"

// Message types on the websocket.
const (
	TypeStart      = "start"
	TypeMove       = "move"
	TypeAssignment = "assignment"
	TypeUpdate     = "update"
	TypeError      = "error"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type       string          `json:"type" validate:"required,oneof=start move"`
	Position   []int           `json:"position,omitempty" validate:"omitempty,len=2"`
	Mark       game.PlayerMark `json:"mark,omitempty" validate:"omitempty,len=1"`
	Difficulty string          `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type   string              `json:"type" validate:"required"`
	Reason string              `json:"reason,omitempty"`
	Board  [][]game.PlayerMark `json:"board,omitempty"`
	Next   game.PlayerMark     `json:"next,omitempty"`
	Winner game.PlayerMark     `json:"winner,omitempty"`
}

// PlayerAssignmentMessage informs a player of their assigned mark.
type PlayerAssignmentMessage struct {
	Type     string          `json:"type"`
	PlayerID string          `json:"playerId,omitempty"`
	Mark     game.PlayerMark `json:"mark"`
}
