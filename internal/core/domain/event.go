package domain

import (
	"encoding/json"
)

type EventKind string

const (
	KindCall   EventKind = "call"   // fresh call attempt
	KindAccept EventKind = "accept" // callee picked up
	KindReject EventKind = "reject" // callee declined
	KindEnd    EventKind = "end"    // either side hung up
)

// CallEvent is a transient signaling message. Payload carries the sender's
// original frame data and is forwarded to the recipient byte for byte;
// To/From/Channel are parsed out of it only for routing.
type CallEvent struct {
	Kind    EventKind
	To      string
	From    string
	Channel string
	Payload json.RawMessage
}

func ParseCallEvent(kind EventKind, data json.RawMessage) (CallEvent, error) {
	var fields struct {
		To      string `json:"to"`
		From    string `json:"from"`
		Channel string `json:"channel"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return CallEvent{}, err
	}
	return CallEvent{
		Kind:    kind,
		To:      fields.To,
		From:    fields.From,
		Channel: fields.Channel,
		Payload: data,
	}, nil
}

// PushAlert is the fixed-shape payload of an out-of-band "incoming call" hint.
type PushAlert struct {
	Type    string `json:"type"`
	From    string `json:"from"`
	Channel string `json:"channel"`
}

func NewIncomingCallAlert(from, channel string) PushAlert {
	return PushAlert{
		Type:    "incoming_call",
		From:    from,
		Channel: channel,
	}
}
