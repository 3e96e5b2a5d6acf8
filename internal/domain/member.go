package domain

// Member represents one connection's participation meta inside a room.
// No transport or lifecycle logic here.
type Member struct {
	ConnID       ConnID
	DisplayName  string
	AudioEnabled bool
	VideoEnabled bool
	HandRaised   bool
}

// NewMember avoids raw literals in adapters and keeps construction obvious.
// New members start with live audio and video; the hand is down.
func NewMember(id ConnID, displayName string) *Member {
	return &Member{
		ConnID:       id,
		DisplayName:  displayName,
		AudioEnabled: true,
		VideoEnabled: true,
	}
}
