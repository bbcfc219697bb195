package room

import "errors"

// Rejected actions. None of them changes room state.
var (
	ErrInvalidRoomID = errors.New("room id required")
	ErrRoomNotFound  = errors.New("room not found")
	ErrNotMember     = errors.New("player not in room")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrCardIndex     = errors.New("card index out of range")
	ErrIllegalCard   = errors.New("card does not match top of discard pile")
	ErrDeckEmpty     = errors.New("deck is empty")
	ErrRoomFull      = errors.New("room is full")
	ErrGameStarted   = errors.New("game already started")
)
