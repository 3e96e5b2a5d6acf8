package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/huddle-live/huddle/internal/core"
	"github.com/huddle-live/huddle/internal/domain"
)

func (ctl *SignalWSController) handleJoin(sid domain.ConnID, conn *WsSignalConn, data json.RawMessage) {
	var p struct {
		RoomID      string `json:"roomId"`
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad join-room payload")
		return
	}
	ctl.Relay.Join(domain.RoomID(p.RoomID), sid, p.DisplayName, conn)
}

func (ctl *SignalWSController) handleOffer(sid domain.ConnID, data json.RawMessage) {
	var p struct {
		Offer       json.RawMessage `json:"offer"`
		To          string          `json:"to"`
		DisplayName string          `json:"displayName"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.To == "" || len(p.Offer) == 0 {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad offer payload")
		return
	}
	// The sender id comes from the connection, not from the payload.
	ctl.Relay.Unicast(core.EventOffer, domain.ConnID(p.To), core.Offer{
		Offer:       p.Offer,
		From:        sid,
		DisplayName: p.DisplayName,
	})
}

func (ctl *SignalWSController) handleAnswer(sid domain.ConnID, data json.RawMessage) {
	var p struct {
		Answer json.RawMessage `json:"answer"`
		To     string          `json:"to"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.To == "" || len(p.Answer) == 0 {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad answer payload")
		return
	}
	ctl.Relay.Unicast(core.EventAnswer, domain.ConnID(p.To), core.Answer{
		Answer: p.Answer,
		From:   sid,
	})
}

func (ctl *SignalWSController) handleCandidate(sid domain.ConnID, data json.RawMessage) {
	var p struct {
		Candidate json.RawMessage `json:"candidate"`
		To        string          `json:"to"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.To == "" || len(p.Candidate) == 0 {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad ice-candidate payload")
		return
	}
	ctl.Relay.Unicast(core.EventCandidate, domain.ConnID(p.To), core.Candidate{
		Candidate: p.Candidate,
		From:      sid,
	})
}

func (ctl *SignalWSController) handleChat(sid domain.ConnID, data json.RawMessage) {
	var p struct {
		RoomID      string `json:"roomId"`
		Message     string `json:"message"`
		DisplayName string `json:"displayName"`
	}
	// An empty message is still a present field; only the room id is required.
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad chat-message payload")
		return
	}
	ctl.Relay.Chat(domain.RoomID(p.RoomID), sid, p.DisplayName, p.Message)
}

func (ctl *SignalWSController) handleRaiseHand(sid domain.ConnID, data json.RawMessage) {
	var p struct {
		RoomID      string `json:"roomId"`
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad raise-hand payload")
		return
	}
	ctl.Relay.RaiseHand(domain.RoomID(p.RoomID), sid, p.DisplayName)
}

type togglePayload struct {
	RoomID  string `json:"roomId"`
	Enabled *bool  `json:"enabled"`
}

func (ctl *SignalWSController) handleToggleAudio(sid domain.ConnID, data json.RawMessage) {
	var p togglePayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" || p.Enabled == nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad toggle-audio payload")
		return
	}
	ctl.Relay.SetAudio(domain.RoomID(p.RoomID), sid, *p.Enabled)
}

func (ctl *SignalWSController) handleToggleVideo(sid domain.ConnID, data json.RawMessage) {
	var p togglePayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" || p.Enabled == nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad toggle-video payload")
		return
	}
	ctl.Relay.SetVideo(domain.RoomID(p.RoomID), sid, *p.Enabled)
}

func (ctl *SignalWSController) handleLeave(sid domain.ConnID, data json.RawMessage) {
	var p struct {
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad leave-room payload")
		return
	}
	ctl.Relay.Leave(domain.RoomID(p.RoomID), sid)
}
