package game

import (
	"strings"
	"sync"
)

// MemoryStore keeps room state in process. It backs local (offline) play and
// the test suite with the exact same engine codepath as networked play.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*RoomState
	codes map[string]string // CODE -> roomID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string]*RoomState),
		codes: make(map[string]string),
	}
}

func (m *MemoryStore) SaveRoom(st *RoomState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[st.ID] = st.Clone()
	m.codes[strings.ToUpper(st.Code)] = st.ID
	return nil
}

func (m *MemoryStore) GetRoom(roomID string) (*RoomState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return st.Clone(), nil
}

func (m *MemoryStore) GetRoomIDByCode(code string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.codes[strings.ToUpper(code)]
	if !ok {
		return "", ErrRoomNotFound
	}
	return id, nil
}

func (m *MemoryStore) DeleteRoom(st *RoomState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, st.ID)
	delete(m.codes, strings.ToUpper(st.Code))
	return nil
}
