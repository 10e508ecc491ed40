package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"yatra/pkg/logger"
)

type recordingHandler struct {
	got   chan IncomingMessage
	agent chan bool
	err   error
}

func (h *recordingHandler) HandleIncoming(_ context.Context, msg IncomingMessage, agentPresent bool) error {
	h.got <- msg
	h.agent <- agentPresent
	return h.err
}

func newStartedHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(NewLocalBus(), logger.NewNop())
	if err := h.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	return h
}

func frame(t *testing.T, event string, payload interface{}) []byte {
	t.Helper()
	raw, err := encode(event, payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return raw
}

func next(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case raw := <-c.send:
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("bad frame %s: %v", raw, err)
		}
		return env
	case <-time.After(time.Second):
		t.Fatalf("no frame delivered")
		return Envelope{}
	}
}

func TestJoinAndBroadcast(t *testing.T) {
	h := newStartedHub(t)
	user := newClient(h, nil)
	other := newClient(h, nil)

	h.handleFrame(user, frame(t, EventJoinChat, JoinChat{SessionID: "s1", UserType: UserTypeUser}))
	if env := next(t, user); env.Type != EventJoinedChat {
		t.Fatalf("expected joined_chat, got %s", env.Type)
	}
	h.handleFrame(other, frame(t, EventJoinChat, JoinChat{SessionID: "s2"}))
	next(t, other)

	h.BroadcastToRoom("s1", EventNewMessage, map[string]string{"message": "hi"})
	if env := next(t, user); env.Type != EventNewMessage {
		t.Fatalf("expected new_message, got %s", env.Type)
	}
	select {
	case raw := <-other.send:
		t.Fatalf("other room received %s", raw)
	default:
	}
}

func TestAgentsRoom(t *testing.T) {
	h := newStartedHub(t)
	agent := newClient(h, nil)
	user := newClient(h, nil)
	h.handleFrame(agent, frame(t, EventAgentAvailable, AgentAvailable{AgentID: "a1"}))

	h.BroadcastToAgents(EventAgentNeeded, map[string]string{"sessionId": "s1"})
	if env := next(t, agent); env.Type != EventAgentNeeded {
		t.Fatalf("expected agent_needed, got %s", env.Type)
	}
	if len(user.send) != 0 {
		t.Fatalf("user should not see agent broadcasts")
	}
}

func TestSendMessageDispatchesToHandler(t *testing.T) {
	h := newStartedHub(t)
	handler := &recordingHandler{got: make(chan IncomingMessage, 1), agent: make(chan bool, 1)}
	h.SetHandler(handler)

	agent := newClient(h, nil)
	h.handleFrame(agent, frame(t, EventJoinChat, JoinChat{SessionID: "s1", UserType: UserTypeAgent, AgentID: "a1"}))
	next(t, agent)

	user := newClient(h, nil)
	h.handleFrame(user, frame(t, EventSendMessage, SendMessage{SessionID: "s1", Message: "hello"}))

	select {
	case msg := <-handler.got:
		if msg.Sender != UserTypeUser || msg.Message != "hello" {
			t.Fatalf("unexpected message %+v", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("handler not called")
	}
	if present := <-handler.agent; !present {
		t.Fatalf("expected the agent to be reported present")
	}
}

func TestHandlerErrorReachesSender(t *testing.T) {
	h := newStartedHub(t)
	handler := &recordingHandler{got: make(chan IncomingMessage, 1), agent: make(chan bool, 1), err: errors.New("chat session not found")}
	h.SetHandler(handler)

	user := newClient(h, nil)
	h.handleFrame(user, frame(t, EventSendMessage, SendMessage{SessionID: "missing", Message: "hello"}))
	if env := next(t, user); env.Type != EventMessageError {
		t.Fatalf("expected message_error, got %s", env.Type)
	}
}

func TestInvalidFrames(t *testing.T) {
	h := newStartedHub(t)
	c := newClient(h, nil)

	h.handleFrame(c, []byte("not json"))
	if env := next(t, c); env.Type != EventMessageError {
		t.Fatalf("expected message_error, got %s", env.Type)
	}
	h.handleFrame(c, frame(t, "dance", nil))
	if env := next(t, c); env.Type != EventMessageError {
		t.Fatalf("expected message_error, got %s", env.Type)
	}
	h.handleFrame(c, frame(t, EventSendMessage, SendMessage{SessionID: "s1"}))
	if env := next(t, c); env.Type != EventMessageError {
		t.Fatalf("expected message_error for an empty message, got %s", env.Type)
	}
}

func TestUnregisterLeavesRooms(t *testing.T) {
	h := newStartedHub(t)
	c := newClient(h, nil)
	h.handleFrame(c, frame(t, EventJoinChat, JoinChat{SessionID: "s1", UserType: UserTypeAgent}))
	next(t, c)
	if !h.AgentPresent("s1") {
		t.Fatalf("expected agent presence")
	}

	h.unregister(c)
	c.close()
	if h.AgentPresent("s1") {
		t.Fatalf("agent should be gone")
	}
	h.BroadcastToRoom("s1", EventNewMessage, "late")
	if len(c.send) != 0 {
		t.Fatalf("closed client received a frame")
	}
}
