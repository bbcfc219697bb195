package room

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"cardclash/internal/config"
	"cardclash/internal/game"
	"cardclash/internal/shared"
)

type mapStore struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func newMapStore() *mapStore {
	return &mapStore{rooms: map[string]*Room{}}
}

func (s *mapStore) GetRoom(id string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

func (s *mapStore) GetOrCreate(id string, create func() *Room) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[id]; ok {
		return r, false
	}
	r := create()
	s.rooms[id] = r
	return r, true
}

func (s *mapStore) DeleteRoom(r *Room) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rooms[r.ID] == r {
		delete(s.rooms, r.ID)
		return true
	}
	return false
}

func (s *mapStore) Rooms() []*Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}

func (s *mapStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

type event struct {
	to   string
	name string
	data any
}

type recordingHub struct {
	mu     sync.Mutex
	events []event
}

func (h *recordingHub) Broadcast(roomID, name string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event{to: roomID, name: name, data: data})
}

func (h *recordingHub) Send(playerID, name string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event{to: playerID, name: name, data: data})
}

// closeEvent marks a CloseRoom call among the recorded events.
const closeEvent = "closeRoom"

func (h *recordingHub) CloseRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event{to: roomID, name: closeEvent})
}

func (h *recordingHub) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = nil
}

func (h *recordingHub) named(name string) []event {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []event
	for _, e := range h.events {
		if e.name == name {
			out = append(out, e)
		}
	}
	return out
}

func (h *recordingHub) lastState(t *testing.T) shared.GameState {
	t.Helper()
	states := h.named(shared.EventGameState)
	require.NotEmpty(t, states)
	return states[len(states)-1].data.(shared.GameState)
}

type memRecorder struct {
	mu      sync.Mutex
	results []shared.Result
}

func (r *memRecorder) Record(res shared.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *memRecorder) all() []shared.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shared.Result(nil), r.results...)
}

// stackedDeck returns a full deck whose first draws are the given cards, in
// order. The remaining cards follow in set order.
func stackedDeck(first ...game.Card) game.Deck {
	skip := make(map[game.Card]bool, len(first))
	for _, c := range first {
		skip[c] = true
	}
	var d game.Deck
	for _, c := range game.FullSet() {
		if !skip[c] {
			d = append(d, c)
		}
	}
	for i := len(first) - 1; i >= 0; i-- {
		d = append(d, first[i])
	}
	return d
}

type fixture struct {
	m     *Manager
	store *mapStore
	hub   *recordingHub
	rec   *memRecorder
	logs  *observer.ObservedLogs
	clock *fakeClock
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFixture(t *testing.T, cfg config.Game, deck func() game.Deck) *fixture {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	f := &fixture{
		store: newMapStore(),
		hub:   &recordingHub{},
		rec:   &memRecorder{},
		logs:  logs,
		clock: &fakeClock{now: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)},
	}
	opts := []Option{WithClock(f.clock.Now), WithInvariantChecks()}
	if deck != nil {
		opts = append(opts, WithDeckFactory(deck))
	}
	f.m = NewManager(f.store, cfg, f.rec, zap.New(core), opts...)
	f.m.SetHub(f.hub)
	t.Cleanup(func() {
		require.Zero(t, logs.FilterMessage("card partition broken").Len())
	})
	return f
}

func defaultGame() config.Game {
	return config.Game{MaxPlayers: 4, HandSize: 5}
}

// snapshot copies the interesting room fields under the lock.
type snapshot struct {
	players []Player
	deck    int
	discard []game.Card
	turn    int
	status  Status
}

func (f *fixture) snap(t *testing.T, roomID string) snapshot {
	t.Helper()
	r, ok := f.m.Get(roomID)
	require.True(t, ok, "room %s missing", roomID)
	r.mu.Lock()
	defer r.mu.Unlock()
	s := snapshot{
		deck:    r.Deck.Len(),
		discard: append([]game.Card(nil), r.Discard...),
		turn:    r.TurnIdx,
		status:  r.Status,
	}
	for _, p := range r.Players {
		s.players = append(s.players, Player{ID: p.ID, Name: p.Name, Hand: append([]game.Card(nil), p.Hand...)})
	}
	require.True(t, game.IsPartition(r.cardGroups()...))
	return s
}
