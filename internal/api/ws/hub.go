package ws

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"cardclash/internal/room"
	"cardclash/internal/shared"
)

type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*client]struct{}
	clients map[string]*client

	roomManager RoomManager
	log         *zap.Logger
}

func NewHub(roomManager RoomManager, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		rooms:       make(map[string]map[*client]struct{}),
		clients:     make(map[string]*client),
		roomManager: roomManager,
		log:         log,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type envelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

type joinRoomMsg struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type playCardMsg struct {
	RoomID    string `json:"roomId"`
	CardIndex *int   `json:"cardIndex"`
}

type drawCardMsg struct {
	RoomID string `json:"roomId"`
}

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := newClient(uuid.NewString(), conn, h.log)
	h.register(cl)
	cl.log.Info("client connected", zap.String("remote", c.Request.RemoteAddr))

	go cl.writePump()
	h.Send(cl.id, shared.EventSession, shared.Session{ID: cl.id})

	defer h.disconnect(cl)
	h.readPump(cl)
}

func (h *Hub) readPump(cl *client) {
	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cl.log.Debug("read failed", zap.Error(err))
			}
			return
		}
		var msg envelope
		if err := json.Unmarshal(data, &msg); err != nil {
			cl.log.Debug("malformed frame", zap.Error(err))
			continue
		}
		h.dispatch(cl, msg)
	}
}

// dispatch applies one inbound action. Rejected actions are logged and
// otherwise ignored; nothing is sent back.
func (h *Hub) dispatch(cl *client, msg envelope) {
	defer func() {
		if r := recover(); r != nil {
			cl.log.Error("action panicked",
				zap.String("action", msg.Action),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()

	var err error
	switch msg.Action {
	case shared.ActionJoinRoom:
		var in joinRoomMsg
		if err = json.Unmarshal(msg.Data, &in); err != nil || in.RoomID == "" {
			break
		}
		h.beginJoin(in.RoomID, cl)
		_, err = h.roomManager.Join(in.RoomID, cl.id, in.PlayerName)
		h.endJoin(in.RoomID, cl)
		if err == nil {
			cl.joined[in.RoomID] = struct{}{}
		}
	case shared.ActionPlayCard:
		var in playCardMsg
		if err = json.Unmarshal(msg.Data, &in); err != nil {
			break
		}
		if in.CardIndex == nil {
			err = room.ErrCardIndex
			break
		}
		err = h.roomManager.Play(in.RoomID, cl.id, *in.CardIndex)
	case shared.ActionDrawCard:
		var in drawCardMsg
		if err = json.Unmarshal(msg.Data, &in); err != nil {
			break
		}
		err = h.roomManager.Draw(in.RoomID, cl.id)
	default:
		cl.log.Debug("unknown action", zap.String("action", msg.Action))
		return
	}
	if err != nil {
		cl.log.Debug("action rejected", zap.String("action", msg.Action), zap.Error(err))
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[cl.id] = cl
}

// beginJoin subscribes cl to roomID before the join runs so the join's own
// broadcast reaches it. While the join is in flight CloseRoom leaves the
// subscription alone: the join lands in whichever room replaces the closed one.
func (h *Hub) beginJoin(roomID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*client]struct{})
	}
	h.rooms[roomID][cl] = struct{}{}
	cl.joining[roomID]++
}

func (h *Hub) endJoin(roomID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cl.joining[roomID]--; cl.joining[roomID] <= 0 {
		delete(cl.joining, roomID)
	}
}

// CloseRoom unsubscribes every connection from a room that has left the
// registry, so a later game under the same id only reaches its own members.
func (h *Hub) CloseRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.rooms[roomID]
	for cl := range subs {
		if cl.joining[roomID] == 0 {
			delete(subs, cl)
		}
	}
	if len(subs) == 0 {
		delete(h.rooms, roomID)
	}
}

func (h *Hub) disconnect(cl *client) {
	h.mu.Lock()
	delete(h.clients, cl.id)
	for roomID, subs := range h.rooms {
		delete(subs, cl)
		if len(subs) == 0 {
			delete(h.rooms, roomID)
		}
	}
	h.mu.Unlock()
	cl.close()

	for roomID := range cl.joined {
		if err := h.roomManager.Leave(roomID, cl.id); err != nil {
			cl.log.Debug("leave skipped", zap.String("room", roomID), zap.Error(err))
		}
	}
	cl.log.Info("client disconnected", zap.Int("rooms", len(cl.joined)))
}

// Broadcast queues an event for every connection subscribed to roomID.
func (h *Hub) Broadcast(roomID string, action string, data any) {
	msg, err := json.Marshal(outbound{Action: action, Data: data})
	if err != nil {
		h.log.Error("encode broadcast", zap.String("action", action), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.rooms[roomID] {
		cl.enqueue(msg)
	}
}

// Send queues an event for a single connection.
func (h *Hub) Send(clientID string, action string, data any) {
	h.mu.RLock()
	cl, ok := h.clients[clientID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	msg, err := json.Marshal(outbound{Action: action, Data: data})
	if err != nil {
		h.log.Error("encode message", zap.String("action", action), zap.Error(err))
		return
	}
	cl.enqueue(msg)
}

// Subscribers is the number of connections subscribed to roomID.
func (h *Hub) Subscribers(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
