package store

import (
	"sync"

	"cardclash/internal/room"
)

// MemoryStore keeps live rooms in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*room.Room{},
	}
}

func (m *MemoryStore) GetRoom(id string) (*room.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// GetOrCreate returns the room stored under id, calling create under the
// write lock when there is none. The bool reports whether create ran.
func (m *MemoryStore) GetOrCreate(id string, create func() *room.Room) (*room.Room, bool) {
	if r, ok := m.GetRoom(id); ok {
		return r, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[id]; ok {
		return r, false
	}
	r := create()
	m.rooms[id] = r
	return r, true
}

// DeleteRoom removes r only if it is still the room stored under its id.
func (m *MemoryStore) DeleteRoom(r *room.Room) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.rooms[r.ID]; ok && cur == r {
		delete(m.rooms, r.ID)
		return true
	}
	return false
}

func (m *MemoryStore) Rooms() []*room.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*room.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}
