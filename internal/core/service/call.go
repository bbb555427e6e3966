package service

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/vistacall/relay/internal/core/domain"
	"github.com/vistacall/relay/internal/core/port"
)

// Outbound event name per inbound kind. The recipient sees the sender's
// payload under these names, unmodified.
var forwardEvent = map[domain.EventKind]string{
	domain.KindCall:   "incoming_call",
	domain.KindAccept: "call_accepted",
	domain.KindReject: "call_rejected",
	domain.KindEnd:    "end_call",
}

// CallService relays call-lifecycle events between live connections. It holds
// no state of its own; the registry is the single source of truth for who is
// reachable. Events are never queued, retried or replayed.
type CallService struct {
	registry port.PresenceRegistry
}

func NewCallService(registry port.PresenceRegistry) *CallService {
	return &CallService{
		registry: registry,
	}
}

// HandleEvent routes one event from its originating connection. Only a fresh
// call attempt reports an unreachable recipient back to the originator;
// accept/reject/end react to a call the recipient already had presence to
// receive, so an unresolvable target drops them silently.
func (s *CallService) HandleEvent(ctx context.Context, kind domain.EventKind, origin port.Client, data json.RawMessage) error {
	ev, err := domain.ParseCallEvent(kind, data)
	if err != nil {
		return errors.Wrapf(err, "parse %s event", kind)
	}

	target, ok := s.registry.ResolveClient(ev.To)
	if !ok {
		if kind == domain.KindCall {
			s.notifyUnavailable(origin, ev.To)
			return nil
		}
		log.Debug().
			Str("kind", string(kind)).
			Str("to", ev.To).
			Msg("Recipient offline, dropping event")
		return nil
	}

	if err := target.Send(forwardEvent[kind], data); err != nil {
		// stale handle; the producing side owns any retry policy
		log.Debug().Err(err).
			Str("kind", string(kind)).
			Str("to", ev.To).
			Msg("Forward failed, dropping event")
	}
	return nil
}

func (s *CallService) notifyUnavailable(origin port.Client, to string) {
	data, err := json.Marshal(struct {
		To string `json:"to"`
	}{To: to})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode callee_unavailable notice")
		return
	}
	if err := origin.Send("callee_unavailable", data); err != nil {
		log.Debug().Err(err).Str("client_id", origin.ID()).Msg("Failed to notify caller")
	}
}
