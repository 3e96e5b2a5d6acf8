package http

import (
	"testing"

	"github.com/huddle-live/huddle/internal/config"
)

func TestICEServers_STUNOnly(t *testing.T) {
	cfg := &config.Config{STUNURLs: []string{"stun:stun.example.org:3478"}}
	servers := iceServersFromConfig(cfg)
	if len(servers) != 1 {
		t.Fatalf("got %d servers, want 1", len(servers))
	}
	if servers[0].URLs[0] != "stun:stun.example.org:3478" {
		t.Fatalf("unexpected urls: %v", servers[0].URLs)
	}
	if servers[0].Username != "" || servers[0].Credential != nil {
		t.Fatalf("STUN entry carries credentials")
	}
}

func TestICEServers_TURNRequiresFullCredentials(t *testing.T) {
	cfg := &config.Config{
		STUNURLs: []string{"stun:stun.example.org:3478"},
		TURNURL:  "turn:turn.example.org:3478",
		// no username/password
	}
	if got := len(iceServersFromConfig(cfg)); got != 1 {
		t.Fatalf("partial TURN config produced %d servers, want 1", got)
	}

	cfg.TURNUsername = "u"
	cfg.TURNPassword = "p"
	servers := iceServersFromConfig(cfg)
	if len(servers) != 2 {
		t.Fatalf("full TURN config produced %d servers, want 2", len(servers))
	}
	turn := servers[1]
	if turn.URLs[0] != "turn:turn.example.org:3478" || turn.Username != "u" || turn.Credential != "p" {
		t.Fatalf("unexpected TURN entry: %+v", turn)
	}
}

func TestICEServers_EmptyConfig(t *testing.T) {
	if got := len(iceServersFromConfig(&config.Config{})); got != 0 {
		t.Fatalf("empty config produced %d servers", got)
	}
}
