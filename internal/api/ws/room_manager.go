package ws

import "cardclash/internal/room"

type RoomManager interface {
	Join(roomID, playerID, name string) (*room.Room, error)
	Play(roomID, playerID string, cardIndex int) error
	Draw(roomID, playerID string) error
	Leave(roomID, playerID string) error
}
