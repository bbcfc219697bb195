package room

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"cardclash/internal/config"
	"cardclash/internal/game"
	"cardclash/internal/shared"
)

const defaultPlayerName = "Player"

// Reasons a room leaves the registry.
const (
	closedFinished = "finished"
	closedEmpty    = "empty"
	closedIdle     = "idle"
)

type Option func(*Manager)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithDeckFactory replaces the shuffled deck given to new rooms.
func WithDeckFactory(f func() game.Deck) Option {
	return func(m *Manager) { m.newDeck = f }
}

// WithInvariantChecks verifies the 40-card partition after every mutation
// and logs an error when it is broken.
func WithInvariantChecks() Option {
	return func(m *Manager) { m.checkCards = true }
}

// Manager is the room registry and turn engine. Every method is safe for
// concurrent use; actions on one room are serialized by that room's mutex,
// actions on different rooms never wait on each other.
type Manager struct {
	store Store
	cfg   config.Game
	rec   Recorder
	log   *zap.Logger

	hubMu sync.RWMutex
	hub   Broadcaster

	now        func() time.Time
	newDeck    func() game.Deck
	checkCards bool
}

func NewManager(s Store, cfg config.Game, rec Recorder, log *zap.Logger, opts ...Option) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	m := &Manager{
		store:   s,
		cfg:     cfg,
		rec:     rec,
		log:     log,
		hub:     nopBroadcaster{},
		now:     time.Now,
		newDeck: game.NewDeck,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// SetHub wires the transport after construction; the hub itself needs the
// manager to dispatch inbound actions.
func (m *Manager) SetHub(hub Broadcaster) {
	m.hubMu.Lock()
	defer m.hubMu.Unlock()
	if hub == nil {
		hub = nopBroadcaster{}
	}
	m.hub = hub
}

func (m *Manager) broadcaster() Broadcaster {
	m.hubMu.RLock()
	defer m.hubMu.RUnlock()
	return m.hub
}

func (m *Manager) Get(roomID string) (*Room, bool) {
	return m.store.GetRoom(roomID)
}

// Len is the number of live rooms.
func (m *Manager) Len() int {
	return m.store.Len()
}

// State returns the public projection of a live room.
func (m *Manager) State(roomID string) (shared.GameState, bool) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return shared.GameState{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.retired {
		return shared.GameState{}, false
	}
	return publicView(r), true
}

func (m *Manager) ensureRoom(roomID string) *Room {
	r, created := m.store.GetOrCreate(roomID, func() *Room {
		return newRoom(roomID, m.newDeck(), m.now())
	})
	if created {
		m.log.Info("room created", zap.String("room", roomID))
	}
	return r
}

// Join seats a player and deals them a hand. Joining twice with the same
// identity changes nothing. The room is re-projected to its subscribers
// whether or not the seat was granted.
func (m *Manager) Join(roomID, playerID, name string) (*Room, error) {
	if strings.TrimSpace(roomID) == "" || playerID == "" {
		return nil, ErrInvalidRoomID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultPlayerName
	}

	for {
		r := m.ensureRoom(roomID)
		// A retired room was finished or reclaimed after lookup; the next
		// ensureRoom creates a fresh room under the same id.
		if ok, err := m.joinRoom(r, playerID, name); ok {
			return r, err
		}
	}
}

// joinRoom seats the player in r unless r has been retired.
func (m *Manager) joinRoom(r *Room, playerID, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.retired {
		return false, nil
	}
	err := m.seat(r, playerID, name)
	m.broadcastLocked(r)
	return true, err
}

func (m *Manager) seat(r *Room, playerID, name string) error {
	if r.indexOf(playerID) >= 0 {
		return nil
	}
	if r.Started() {
		return ErrGameStarted
	}
	if len(r.Players) >= m.cfg.MaxPlayers {
		return ErrRoomFull
	}

	p := &Player{ID: playerID, Name: name}
	p.Hand = r.Deck.Deal(m.cfg.HandSize)
	r.Players = append(r.Players, p)
	r.LastActivity = m.now()
	m.verify(r)

	m.log.Debug("player joined",
		zap.String("room", r.ID),
		zap.String("player", playerID),
		zap.String("name", name),
		zap.Int("seat", len(r.Players)-1),
	)
	return nil
}

// lockTurn finds the room and checks that playerID is the one to act. On
// success the room is returned locked.
func (m *Manager) lockTurn(roomID, playerID string) (*Room, *Player, error) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return nil, nil, ErrRoomNotFound
	}
	r.mu.Lock()
	if r.retired || r.Status == Finished {
		r.mu.Unlock()
		return nil, nil, ErrRoomNotFound
	}
	idx := r.indexOf(playerID)
	if idx < 0 {
		r.mu.Unlock()
		return nil, nil, ErrNotMember
	}
	if idx != r.TurnIdx {
		r.mu.Unlock()
		return nil, nil, ErrNotYourTurn
	}
	return r, r.Players[idx], nil
}

// Play lays the card at cardIndex of the player's hand on the discard pile.
// A rejected play returns an error and leaves the room untouched.
func (m *Manager) Play(roomID, playerID string, cardIndex int) error {
	r, p, err := m.lockTurn(roomID, playerID)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()

	if cardIndex < 0 || cardIndex >= len(p.Hand) {
		return ErrCardIndex
	}
	card := p.Hand[cardIndex]
	top, ok := r.top()
	if !ok || !game.CanPlay(card, top) {
		return ErrIllegalCard
	}

	r.Discard = append([]game.Card{card}, r.Discard...)
	p.Hand = game.RemoveAt(p.Hand, cardIndex)
	r.Status = InProgress
	r.LastActivity = m.now()
	m.verify(r)

	if game.HasWon(p.Hand) {
		m.finish(r, p)
		return nil
	}
	r.advanceTurn()
	m.broadcastLocked(r)
	return nil
}

// Draw moves the last card of the deck into the player's hand and passes the
// turn. With an empty deck nothing happens: there is no reshuffle of the
// discard pile.
func (m *Manager) Draw(roomID, playerID string) error {
	r, p, err := m.lockTurn(roomID, playerID)
	if err != nil {
		return err
	}
	defer r.mu.Unlock()

	c, ok := r.Deck.Draw()
	if !ok {
		return ErrDeckEmpty
	}
	p.Hand = append(p.Hand, c)
	r.Status = InProgress
	r.LastActivity = m.now()
	m.verify(r)

	r.advanceTurn()
	m.broadcastLocked(r)
	return nil
}

// Leave handles a player whose connection went away. Before the first action
// the seat is simply freed; during a game the player forfeits and, if only
// one player remains, that player wins. Cards in the leaver's hand go back
// under the deck.
func (m *Manager) Leave(roomID, playerID string) error {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.retired {
		return ErrRoomNotFound
	}
	idx := r.indexOf(playerID)
	if idx < 0 {
		return ErrNotMember
	}

	p := r.removePlayer(idx)
	r.LastActivity = m.now()
	m.verify(r)
	m.log.Info("player left",
		zap.String("room", r.ID),
		zap.String("player", p.ID),
		zap.Stringer("status", r.Status),
		zap.Int("remaining", len(r.Players)),
	)

	switch {
	case len(r.Players) == 0:
		m.retire(r, closedEmpty)
	case r.Status == InProgress && len(r.Players) == 1:
		m.finish(r, r.Players[0])
	default:
		m.broadcastLocked(r)
	}
	return nil
}

// Sweep removes rooms that have seen no activity for longer than ttl and
// returns how many were removed.
func (m *Manager) Sweep(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)
	n := 0
	for _, r := range m.store.Rooms() {
		r.mu.Lock()
		if !r.retired && r.LastActivity.Before(cutoff) {
			if len(r.Players) > 0 {
				m.broadcaster().Broadcast(r.ID, shared.EventRoomClosed, shared.RoomClosed{
					RoomID: r.ID,
					Reason: closedIdle,
				})
			}
			m.retire(r, closedIdle)
			n++
		}
		r.mu.Unlock()
	}
	return n
}

// finish ends the game with p as the winner. The caller holds r.mu.
func (m *Manager) finish(r *Room, p *Player) {
	r.Status = Finished
	m.broadcaster().Broadcast(r.ID, shared.EventGameOver, shared.GameOver{Winner: p.Name})
	m.rec.Record(shared.Result{
		RoomID:   r.ID,
		Winner:   p.Name,
		PlayedAt: m.now(),
	})
	m.log.Info("game over", zap.String("room", r.ID), zap.String("winner", p.Name))
	m.retire(r, closedFinished)
}

// retire removes the room from the registry and drops its subscribers. The
// caller holds r.mu, which guarantees a later ensureRoom never hands this
// room out again.
func (m *Manager) retire(r *Room, reason string) {
	r.retired = true
	if m.store.DeleteRoom(r) {
		m.log.Info("room removed", zap.String("room", r.ID), zap.String("reason", reason))
	}
	m.broadcaster().CloseRoom(r.ID)
}

func (m *Manager) verify(r *Room) {
	if !m.checkCards {
		return
	}
	if !game.IsPartition(r.cardGroups()...) {
		m.log.Error("card partition broken", zap.String("room", r.ID))
	}
}
