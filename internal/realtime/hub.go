package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"yatra/pkg/logger"
)

const (
	agentsRoom     = "agents"
	handlerTimeout = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is enforced on the HTTP API; the socket only carries session ids.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func sessionRoom(sessionID string) string { return "session:" + sessionID }

// Hub tracks local websocket clients by room and relays broadcasts through
// the Bus so that clients connected to other instances receive them too.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	bus     Bus
	handler MessageHandler
	log     *logger.Logger
}

func NewHub(bus Bus, log *logger.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		bus:   bus,
		log:   log.With("service", "ChatHub"),
	}
}

// SetHandler wires the chat pipeline after construction; the pipeline
// itself broadcasts through the hub.
func (h *Hub) SetHandler(handler MessageHandler) {
	h.mu.Lock()
	h.handler = handler
	h.mu.Unlock()
}

// Start subscribes the hub to the bus until ctx is done.
func (h *Hub) Start(ctx context.Context) error {
	return h.bus.StartForwarder(ctx, h.deliver)
}

func (h *Hub) BroadcastToRoom(sessionID, event string, payload interface{}) {
	h.publish(sessionRoom(sessionID), event, payload)
}

func (h *Hub) BroadcastToAgents(event string, payload interface{}) {
	h.publish(agentsRoom, event, payload)
}

func (h *Hub) publish(room, event string, payload interface{}) {
	frame, err := encode(event, payload)
	if err != nil {
		h.log.Error("encode broadcast failed", "event", event, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.bus.Publish(ctx, BusMessage{Room: room, Frame: frame}); err != nil {
		h.log.Error("publish broadcast failed", "room", room, "event", event, "error", err)
	}
}

func (h *Hub) deliver(m BusMessage) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[m.Room]))
	for c := range h.rooms[m.Room] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.enqueue(m.Frame)
	}
}

func (h *Hub) join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
}

func (h *Hub) markAgent(c *Client, agentID string) {
	h.mu.Lock()
	c.userType = UserTypeAgent
	c.agentID = agentID
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range c.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	c.rooms = map[string]struct{}{}
}

// AgentPresent reports whether a local agent client has joined the session room.
func (h *Hub) AgentPresent(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[sessionRoom(sessionID)] {
		if c.userType == UserTypeAgent {
			return true
		}
	}
	return false
}

// ServeWS upgrades the request and runs the client pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := newClient(h, conn)
	h.log.Debug("websocket connected", "remote", r.RemoteAddr)

	go c.writePump()
	c.readPump()
}

func (h *Hub) handleFrame(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.sendEvent(EventMessageError, MessageError{Error: "invalid message format"})
		return
	}

	switch env.Type {
	case EventJoinChat:
		var in JoinChat
		if err := json.Unmarshal(env.Data, &in); err != nil || in.SessionID == "" {
			c.sendEvent(EventMessageError, MessageError{Error: "sessionId is required"})
			return
		}
		if in.UserType == UserTypeAgent {
			h.markAgent(c, in.AgentID)
		}
		h.join(c, sessionRoom(in.SessionID))
		c.sendEvent(EventJoinedChat, map[string]string{"sessionId": in.SessionID})

	case EventSendMessage:
		var in SendMessage
		if err := json.Unmarshal(env.Data, &in); err != nil || in.SessionID == "" || in.Message == "" {
			c.sendEvent(EventMessageError, MessageError{SessionID: in.SessionID, Error: "sessionId and message are required"})
			return
		}
		h.dispatch(c, in)

	case EventTyping:
		var in Typing
		if err := json.Unmarshal(env.Data, &in); err != nil || in.SessionID == "" {
			return
		}
		h.BroadcastToRoom(in.SessionID, EventUserTyping, in)

	case EventAgentAvailable:
		var in AgentAvailable
		_ = json.Unmarshal(env.Data, &in)
		h.markAgent(c, in.AgentID)
		h.join(c, agentsRoom)

	default:
		c.sendEvent(EventMessageError, MessageError{Error: "unknown event " + env.Type})
	}
}

func (h *Hub) dispatch(c *Client, in SendMessage) {
	h.mu.RLock()
	handler := h.handler
	h.mu.RUnlock()
	if handler == nil {
		c.sendEvent(EventMessageError, MessageError{SessionID: in.SessionID, Error: "chat is unavailable"})
		return
	}

	sender := in.Sender
	if sender == "" {
		h.mu.RLock()
		sender = c.userType
		h.mu.RUnlock()
	}
	msg := IncomingMessage{
		SessionID: in.SessionID,
		Sender:    sender,
		Message:   in.Message,
		Language:  in.Language,
	}
	agentPresent := h.AgentPresent(in.SessionID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()
		if err := handler.HandleIncoming(ctx, msg, agentPresent); err != nil {
			h.log.Warn("socket message failed", "session_id", msg.SessionID, "error", err)
			c.sendEvent(EventMessageError, MessageError{SessionID: msg.SessionID, Error: err.Error()})
		}
	}()
}
