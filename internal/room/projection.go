package room

import (
	"slices"

	"github.com/samber/lo"

	"cardclash/internal/game"
	"cardclash/internal/shared"
)

// publicView projects what every member may see. The caller holds r.mu.
func publicView(r *Room) shared.GameState {
	st := shared.GameState{
		RoomID: r.ID,
		Players: lo.Map(r.Players, func(p *Player, _ int) shared.PlayerView {
			return shared.PlayerView{ID: p.ID, Name: p.Name, CardCount: len(p.Hand)}
		}),
		DeckCount: r.Deck.Len(),
		Status:    r.Status.String(),
	}
	if top, ok := r.top(); ok {
		st.DiscardTop = &top
	}
	if cp := r.currentPlayer(); cp != nil {
		st.CurrentTurn = cp.ID
	}
	return st
}

// privateView copies a player's hand so later mutations cannot leak into an
// already queued message.
func privateView(p *Player) shared.Hand {
	cards := slices.Clone(p.Hand)
	if cards == nil {
		cards = []game.Card{}
	}
	return shared.Hand{Cards: cards}
}

// broadcastLocked pushes the public state to the room and each hand to its
// owner. The caller holds r.mu so events leave in mutation order.
func (m *Manager) broadcastLocked(r *Room) {
	hub := m.broadcaster()
	hub.Broadcast(r.ID, shared.EventGameState, publicView(r))
	for _, p := range r.Players {
		hub.Send(p.ID, shared.EventYourHand, privateView(p))
	}
}
