package core

import (
	"encoding/json"
	"time"

	"github.com/huddle-live/huddle/internal/domain"
)

// Outbound event names. Every payload carries the originating connection id
// so recipients can route to the matching peer-connection object.
const (
	EventAllUsers    = "all-users"
	EventUserJoined  = "user-joined"
	EventUserLeft    = "user-left"
	EventOffer       = "offer"
	EventAnswer      = "answer"
	EventCandidate   = "ice-candidate"
	EventChatMessage = "chat-message"
	EventHandRaised  = "hand-raised"
	EventAudioToggle = "user-audio-toggle"
	EventVideoToggle = "user-video-toggle"
)

// PeerInfo is the read-only member view handed to joiners (no transport
// fields, no media flags).
type PeerInfo struct {
	ConnID      domain.ConnID `json:"connId"`
	DisplayName string        `json:"displayName"`
}

type UserJoined struct {
	ConnID      domain.ConnID `json:"connId"`
	DisplayName string        `json:"displayName"`
}

type UserLeft struct {
	ConnID      domain.ConnID `json:"connId"`
	DisplayName string        `json:"displayName"`
}

// Offer, Answer and Candidate wrap opaque SDP/ICE blobs. The relay never
// looks inside them.
type Offer struct {
	Offer       json.RawMessage `json:"offer"`
	From        domain.ConnID   `json:"from"`
	DisplayName string          `json:"displayName"`
}

type Answer struct {
	Answer json.RawMessage `json:"answer"`
	From   domain.ConnID   `json:"from"`
}

type Candidate struct {
	Candidate json.RawMessage `json:"candidate"`
	From      domain.ConnID   `json:"from"`
}

type ChatMessage struct {
	Message     string        `json:"message"`
	DisplayName string        `json:"displayName"`
	ConnID      domain.ConnID `json:"connId"`
	Timestamp   time.Time     `json:"timestamp"`
}

type HandRaised struct {
	ConnID      domain.ConnID `json:"connId"`
	DisplayName string        `json:"displayName"`
}

type MediaToggle struct {
	ConnID  domain.ConnID `json:"connId"`
	Enabled bool          `json:"enabled"`
}
