package room

import (
	"sync"
	"time"

	"cardclash/internal/game"
)

type Status int

const (
	Waiting Status = iota
	InProgress
	Finished
)

func (s Status) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case InProgress:
		return "in_progress"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

type Player struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Hand []game.Card `json:"-"`
}

// Room is one game table. Every field except ID is guarded by mu.
type Room struct {
	mu sync.Mutex

	ID           string
	Players      []*Player
	Deck         game.Deck
	Discard      []game.Card // Discard[0] is the top card
	TurnIdx      int
	Status       Status
	CreatedAt    time.Time
	LastActivity time.Time

	// retired is set once the room has been removed from the store; a
	// caller holding a stale pointer must treat it as gone.
	retired bool
}

type Store interface {
	GetRoom(id string) (*Room, bool)
	GetOrCreate(id string, create func() *Room) (*Room, bool)
	DeleteRoom(r *Room) bool
	Rooms() []*Room
	Len() int
}

// newRoom seeds the discard pile with one card from the deck.
func newRoom(id string, deck game.Deck, now time.Time) *Room {
	r := &Room{
		ID:           id,
		Deck:         deck,
		CreatedAt:    now,
		LastActivity: now,
	}
	if c, ok := r.Deck.Draw(); ok {
		r.Discard = []game.Card{c}
	}
	return r
}

// Started reports whether any play or draw has been applied.
func (r *Room) Started() bool {
	return r.Status != Waiting
}

func (r *Room) top() (game.Card, bool) {
	if len(r.Discard) == 0 {
		return game.Card{}, false
	}
	return r.Discard[0], true
}

func (r *Room) indexOf(playerID string) int {
	for i, p := range r.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

func (r *Room) currentPlayer() *Player {
	if len(r.Players) == 0 {
		return nil
	}
	return r.Players[r.TurnIdx%len(r.Players)]
}

func (r *Room) advanceTurn() {
	if len(r.Players) == 0 {
		r.TurnIdx = 0
		return
	}
	r.TurnIdx = (r.TurnIdx + 1) % len(r.Players)
}

// removePlayer drops the player at idx and returns their hand to the bottom
// of the deck. The turn stays with whoever was due to act next.
func (r *Room) removePlayer(idx int) *Player {
	p := r.Players[idx]
	r.Players = append(r.Players[:idx:idx], r.Players[idx+1:]...)
	r.Deck.PutBottom(p.Hand...)
	p.Hand = nil

	switch {
	case len(r.Players) == 0:
		r.TurnIdx = 0
	case idx < r.TurnIdx:
		r.TurnIdx--
	case r.TurnIdx >= len(r.Players):
		r.TurnIdx = 0
	}
	return p
}

// cardGroups lists every pile that holds cards, for partition checks.
func (r *Room) cardGroups() [][]game.Card {
	groups := make([][]game.Card, 0, len(r.Players)+2)
	groups = append(groups, r.Deck, r.Discard)
	for _, p := range r.Players {
		groups = append(groups, p.Hand)
	}
	return groups
}
