package signal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/huddle-live/huddle/internal/core"
	"github.com/huddle-live/huddle/internal/domain"
)

func newTestController() *SignalWSController {
	relay := core.NewRelay(core.NewRegistry(), core.NopNotifier{})
	return NewSignalWSController(relay, 0, 0)
}

func newTestConn() *WsSignalConn {
	return &WsSignalConn{send: make(chan []byte, 16)}
}

// frames drains and decodes everything queued on the connection.
func frames(t *testing.T, c *WsSignalConn) []envelope {
	t.Helper()
	var out []envelope
	for {
		select {
		case raw := <-c.send:
			var env envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				t.Fatalf("bad frame on wire: %v", err)
			}
			out = append(out, env)
		default:
			return out
		}
	}
}

func eventsOf(envs []envelope, event string) []envelope {
	var out []envelope
	for _, e := range envs {
		if e.Type == event {
			out = append(out, e)
		}
	}
	return out
}

func TestDispatch_JoinRoom(t *testing.T) {
	ctl := newTestController()
	a, b := newTestConn(), newTestConn()

	ctl.handleMessage("a", a, []byte(`{"type":"join-room","data":{"roomId":"r1","displayName":"Alice"}}`))
	ctl.handleMessage("b", b, []byte(`{"type":"join-room","data":{"roomId":"r1","displayName":"Bob"}}`))

	snaps := eventsOf(frames(t, b), core.EventAllUsers)
	if len(snaps) != 1 {
		t.Fatalf("b got %d all-users frames, want 1", len(snaps))
	}
	var peers []core.PeerInfo
	if err := json.Unmarshal(snaps[0].Data, &peers); err != nil {
		t.Fatalf("all-users payload: %v", err)
	}
	if len(peers) != 1 || peers[0].ConnID != "a" || peers[0].DisplayName != "Alice" {
		t.Fatalf("b's snapshot = %+v, want [a/Alice]", peers)
	}

	joins := eventsOf(frames(t, a), core.EventUserJoined)
	if len(joins) != 1 {
		t.Fatalf("a got %d user-joined frames, want 1", len(joins))
	}
}

func TestDispatch_OfferForwardedVerbatim(t *testing.T) {
	ctl := newTestController()
	a, b := newTestConn(), newTestConn()
	ctl.handleMessage("a", a, []byte(`{"type":"join-room","data":{"roomId":"r1","displayName":"Alice"}}`))
	ctl.handleMessage("b", b, []byte(`{"type":"join-room","data":{"roomId":"r1","displayName":"Bob"}}`))
	frames(t, a)
	frames(t, b)

	blob := `{"type":"offer","sdp":"v=0 opaque"}`
	ctl.handleMessage("b", b, []byte(`{"type":"offer","data":{"offer":`+blob+`,"to":"a","displayName":"Bob"}}`))

	offers := eventsOf(frames(t, a), core.EventOffer)
	if len(offers) != 1 {
		t.Fatalf("a got %d offers, want 1", len(offers))
	}
	var p core.Offer
	if err := json.Unmarshal(offers[0].Data, &p); err != nil {
		t.Fatalf("offer payload: %v", err)
	}
	if p.From != "b" {
		t.Fatalf("offer from = %s, want the sending connection id", p.From)
	}
	if string(p.Offer) != blob {
		t.Fatalf("SDP blob was not forwarded verbatim: %s", p.Offer)
	}
	if got := len(eventsOf(frames(t, b), core.EventOffer)); got != 0 {
		t.Fatalf("offer echoed back to sender %d times", got)
	}
}

func TestDispatch_MalformedPayloadSkipsHandler(t *testing.T) {
	ctl := newTestController()
	a := newTestConn()

	ctl.handleMessage("a", a, []byte(`{"type":"join-room","data":{"displayName":"NoRoom"}}`))
	ctl.handleMessage("a", a, []byte(`{"type":"join-room","data":"not an object"}`))
	ctl.handleMessage("a", a, []byte(`not json at all`))

	if got := len(frames(t, a)); got != 0 {
		t.Fatalf("malformed joins produced %d frames", got)
	}
	if got := ctl.Relay.Rooms().RoomCount(); got != 0 {
		t.Fatalf("malformed joins created %d rooms", got)
	}
}

func TestDispatch_ToggleRequiresEnabledField(t *testing.T) {
	ctl := newTestController()
	a, b := newTestConn(), newTestConn()
	ctl.handleMessage("a", a, []byte(`{"type":"join-room","data":{"roomId":"r1","displayName":"Alice"}}`))
	ctl.handleMessage("b", b, []byte(`{"type":"join-room","data":{"roomId":"r1","displayName":"Bob"}}`))
	frames(t, b)

	ctl.handleMessage("a", a, []byte(`{"type":"toggle-audio","data":{"roomId":"r1"}}`))
	if got := len(eventsOf(frames(t, b), core.EventAudioToggle)); got != 0 {
		t.Fatalf("toggle without enabled field still broadcast %d events", got)
	}

	ctl.handleMessage("a", a, []byte(`{"type":"toggle-audio","data":{"roomId":"r1","enabled":false}}`))
	toggles := eventsOf(frames(t, b), core.EventAudioToggle)
	if len(toggles) != 1 {
		t.Fatalf("b got %d audio toggles, want 1", len(toggles))
	}
	var tg core.MediaToggle
	if err := json.Unmarshal(toggles[0].Data, &tg); err != nil {
		t.Fatalf("toggle payload: %v", err)
	}
	if tg.Enabled || tg.ConnID != domain.ConnID("a") {
		t.Fatalf("toggle payload = %+v, want enabled=false from a", tg)
	}
}

func TestDispatch_EmptyChatMessageIsRelayed(t *testing.T) {
	ctl := newTestController()
	a, b := newTestConn(), newTestConn()
	ctl.handleMessage("a", a, []byte(`{"type":"join-room","data":{"roomId":"r1","displayName":"Alice"}}`))
	ctl.handleMessage("b", b, []byte(`{"type":"join-room","data":{"roomId":"r1","displayName":"Bob"}}`))
	frames(t, b)

	ctl.handleMessage("a", a, []byte(`{"type":"chat-message","data":{"roomId":"r1","message":"","displayName":"Alice"}}`))

	msgs := eventsOf(frames(t, b), core.EventChatMessage)
	if len(msgs) != 1 {
		t.Fatalf("b got %d chat messages, want 1 (empty body is still a message)", len(msgs))
	}
	var msg core.ChatMessage
	if err := json.Unmarshal(msgs[0].Data, &msg); err != nil {
		t.Fatalf("chat payload: %v", err)
	}
	if msg.Message != "" || msg.ConnID != "a" {
		t.Fatalf("chat payload = %+v, want empty message from a", msg)
	}

	// A missing room id is still malformed and skipped.
	ctl.handleMessage("a", a, []byte(`{"type":"chat-message","data":{"message":"hi"}}`))
	if got := len(eventsOf(frames(t, b), core.EventChatMessage)); got != 0 {
		t.Fatalf("chat without roomId was relayed %d times", got)
	}
}

func TestPingInterval_DefaultsWhenUnset(t *testing.T) {
	ctl := newTestController()
	if got := ctl.pingInterval(); got != 54*time.Second {
		t.Fatalf("zero ping period defaulted to %v, want 54s", got)
	}
	ctl.PingPeriod = 10 * time.Second
	if got := ctl.pingInterval(); got != 10*time.Second {
		t.Fatalf("configured ping period = %v, want 10s", got)
	}
}

func TestDispatch_UnknownTypeIgnored(t *testing.T) {
	ctl := newTestController()
	a := newTestConn()
	ctl.handleMessage("a", a, []byte(`{"type":"teleport","data":{}}`))
	if got := len(frames(t, a)); got != 0 {
		t.Fatalf("unknown event produced %d frames", got)
	}
}

func TestDispatch_LeaveRoom(t *testing.T) {
	ctl := newTestController()
	a, b := newTestConn(), newTestConn()
	ctl.handleMessage("a", a, []byte(`{"type":"join-room","data":{"roomId":"r1","displayName":"Alice"}}`))
	ctl.handleMessage("b", b, []byte(`{"type":"join-room","data":{"roomId":"r1","displayName":"Bob"}}`))
	frames(t, a)

	ctl.handleMessage("b", b, []byte(`{"type":"leave-room","data":{"roomId":"r1"}}`))

	lefts := eventsOf(frames(t, a), core.EventUserLeft)
	if len(lefts) != 1 {
		t.Fatalf("a got %d user-left frames, want 1", len(lefts))
	}
	var left core.UserLeft
	if err := json.Unmarshal(lefts[0].Data, &left); err != nil {
		t.Fatalf("user-left payload: %v", err)
	}
	if left.ConnID != "b" || left.DisplayName != "Bob" {
		t.Fatalf("user-left = %+v, want b/Bob", left)
	}
}
