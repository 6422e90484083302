package game

// Store is the persistence adapter the engine runs on. Networked play backs
// it with Redis; local play and tests use the in-memory implementation. The
// engine serializes mutations per room itself, so implementations only need
// atomic single-key reads and writes.
type Store interface {
	// SaveRoom persists the state and the code index entry.
	SaveRoom(st *RoomState) error
	// GetRoom returns ErrRoomNotFound when the room does not exist.
	GetRoom(roomID string) (*RoomState, error)
	// GetRoomIDByCode resolves a join code; ErrRoomNotFound when absent.
	GetRoomIDByCode(code string) (string, error)
	// DeleteRoom removes the state and the code index entry.
	DeleteRoom(st *RoomState) error
}
