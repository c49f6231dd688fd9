package player

//go:generate mockgen -source=player.go -destination=mocks/connection.go -package=mocks

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Player represents the human side of a session.
type Player struct {
	ID   string
	Conn Connection
}

func NewPlayer(id string, conn Connection) *Player {
	return &Player{
		ID:   id,
		Conn: conn,
	}
}
