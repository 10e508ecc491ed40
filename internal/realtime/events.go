package realtime

import (
	"context"
	"encoding/json"
)

// Inbound events.
const (
	EventJoinChat       = "join_chat"
	EventSendMessage    = "send_message"
	EventTyping         = "typing"
	EventAgentAvailable = "agent_available"
)

// Outbound events.
const (
	EventJoinedChat   = "joined_chat"
	EventNewMessage   = "new_message"
	EventUserTyping   = "user_typing"
	EventAgentNeeded  = "agent_needed"
	EventMessageError = "message_error"
)

const (
	UserTypeUser  = "user"
	UserTypeAgent = "agent"
)

// Envelope is the frame exchanged with websocket clients.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type JoinChat struct {
	SessionID string `json:"sessionId"`
	UserType  string `json:"userType"`
	AgentID   string `json:"agentId,omitempty"`
}

type SendMessage struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
	Sender    string `json:"sender"`
	Language  string `json:"language,omitempty"`
}

type Typing struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	IsTyping  bool   `json:"isTyping"`
}

type AgentAvailable struct {
	AgentID string `json:"agentId"`
}

type MessageError struct {
	SessionID string `json:"sessionId,omitempty"`
	Error     string `json:"error"`
}

// IncomingMessage is a chat message that arrived over a socket.
type IncomingMessage struct {
	SessionID string
	Sender    string
	Message   string
	Language  string
}

// MessageHandler persists socket messages and, when no agent is present,
// produces the automated reply. Replies reach clients through the hub's
// broadcasts, not through the return value.
type MessageHandler interface {
	HandleIncoming(ctx context.Context, msg IncomingMessage, agentPresent bool) error
}

func encode(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: event, Data: data})
}
