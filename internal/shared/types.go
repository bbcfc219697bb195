package shared

import (
	"time"

	"cardclash/internal/game"
)

// Outbound event names.
const (
	EventSession    = "session"
	EventGameState  = "gameState"
	EventYourHand   = "yourHand"
	EventGameOver   = "gameOver"
	EventRoomClosed = "roomClosed"
)

// Inbound action names.
const (
	ActionJoinRoom = "joinRoom"
	ActionPlayCard = "playCard"
	ActionDrawCard = "drawCard"
)

// Session tells a freshly connected client its identity.
type Session struct {
	ID string `json:"id"`
}

type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CardCount int    `json:"cardCount"`
}

// GameState is the public projection of a room, sent to every member.
type GameState struct {
	RoomID      string       `json:"roomId"`
	Players     []PlayerView `json:"players"`
	DiscardTop  *game.Card   `json:"discardTop"`
	CurrentTurn string       `json:"currentTurn"`
	DeckCount   int          `json:"deckCount"`
	Status      string       `json:"status"`
}

// Hand is the private projection delivered only to its owner.
type Hand struct {
	Cards []game.Card `json:"cards"`
}

type GameOver struct {
	Winner string `json:"winner"`
}

// RoomClosed tells members that a room was reclaimed without a winner.
type RoomClosed struct {
	RoomID string `json:"roomId"`
	Reason string `json:"reason"`
}

// Result is one completed game, as persisted.
type Result struct {
	RoomID   string    `json:"roomId"`
	Winner   string    `json:"winner"`
	PlayedAt time.Time `json:"playedAt"`
}

type LeaderboardRow struct {
	WinnerName string `json:"winnerName"`
	Wins       int    `json:"wins"`
}
