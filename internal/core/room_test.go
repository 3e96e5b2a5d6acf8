package core

import (
	"testing"

	"github.com/huddle-live/huddle/internal/domain"
)

func TestRoom_JoinOrderPreserved(t *testing.T) {
	room := NewRoom("r")
	ids := []domain.ConnID{"c", "a", "b"}
	for _, id := range ids {
		if _, ok := room.Join(id, string(id), &fakeConn{}); !ok {
			t.Fatalf("join %s rejected", id)
		}
	}

	members := room.Members()
	if len(members) != 3 {
		t.Fatalf("got %d members, want 3", len(members))
	}
	for i, m := range members {
		if m.ConnID != ids[i] {
			t.Fatalf("member %d = %s, want %s (join order)", i, m.ConnID, ids[i])
		}
	}

	// Removal keeps the remaining order intact.
	room.Remove("a")
	members = room.Members()
	if members[0].ConnID != "c" || members[1].ConnID != "b" {
		t.Fatalf("order after removal = %v, want [c b]", members)
	}
}

func TestRoom_JoinRejectsDuplicate(t *testing.T) {
	room := NewRoom("r")
	room.Join("a", "Alice", &fakeConn{})
	if _, ok := room.Join("a", "Alice again", &fakeConn{}); ok {
		t.Fatalf("duplicate join accepted")
	}
	if room.MemberCount() != 1 {
		t.Fatalf("member count %d, want 1", room.MemberCount())
	}
}

func TestRoom_RemoveReportsEmptiness(t *testing.T) {
	room := NewRoom("r")
	room.Join("a", "Alice", &fakeConn{})
	room.Join("b", "Bob", &fakeConn{})

	member, empty, ok := room.Remove("a")
	if !ok || empty {
		t.Fatalf("remove a: ok=%v empty=%v, want ok and non-empty", ok, empty)
	}
	if member.DisplayName != "Alice" {
		t.Fatalf("removed member name = %q", member.DisplayName)
	}

	_, empty, ok = room.Remove("b")
	if !ok || !empty {
		t.Fatalf("remove b: ok=%v empty=%v, want ok and empty", ok, empty)
	}

	// Absent removal is a safe no-op.
	if _, _, ok := room.Remove("b"); ok {
		t.Fatalf("removing absent member reported ok")
	}
}

func TestRoom_ToggleOnAbsentMember(t *testing.T) {
	room := NewRoom("r")
	if room.SetAudio("ghost", false) {
		t.Fatalf("SetAudio on absent member reported success")
	}
	if room.SetVideo("ghost", false) {
		t.Fatalf("SetVideo on absent member reported success")
	}
	if room.RaiseHand("ghost") {
		t.Fatalf("RaiseHand on absent member reported success")
	}
}

func TestRoom_BroadcastSkipsSenderAndCountsDrops(t *testing.T) {
	room := NewRoom("r")
	a, b, c := &fakeConn{}, &fakeConn{fail: true}, &fakeConn{}
	room.Join("a", "Alice", a)
	room.Join("b", "Bob", b)
	room.Join("c", "Cara", c)

	res := room.Broadcast("a", EventChatMessage, ChatMessage{Message: "hi", ConnID: "a"})
	if res.SentTo != 1 || res.Dropped != 1 {
		t.Fatalf("result = %+v, want 1 sent and 1 dropped", res)
	}
	if a.total() != 0 {
		t.Fatalf("sender received its own broadcast")
	}
	if c.total() != 1 {
		t.Fatalf("c received %d events, want 1", c.total())
	}
}
