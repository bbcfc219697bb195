package room

// Broadcaster delivers room events to connections. CloseRoom is called once a
// room leaves the registry so its subscribers stop receiving events for that id.
type Broadcaster interface {
	Broadcast(roomID string, event string, data any)
	Send(playerID string, event string, data any)
	CloseRoom(roomID string)
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, string, any) {}
func (nopBroadcaster) Send(string, string, any)      {}
func (nopBroadcaster) CloseRoom(string)              {}
