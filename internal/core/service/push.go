package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/vistacall/relay/internal/core/domain"
	"github.com/vistacall/relay/internal/core/port"
)

// PushService rings a user's device out-of-band when no live connection can
// carry the call signal. At-most-once: one delivery attempt, no retry. The
// live-connection path is the primary signaling channel; this is only a hint.
type PushService struct {
	registry port.PresenceRegistry
	sender   port.PushSender
}

func NewPushService(registry port.PresenceRegistry, sender port.PushSender) *PushService {
	return &PushService{
		registry: registry,
		sender:   sender,
	}
}

func (s *PushService) Notify(ctx context.Context, to, from, channel string) error {
	token, ok := s.registry.ResolvePushToken(to)
	if !ok {
		return domain.ErrNoPushToken
	}

	alert := domain.NewIncomingCallAlert(from, channel)
	if err := s.sender.Send(ctx, token, alert); err != nil {
		log.Error().Err(err).Str("to", to).Msg("Push delivery failed")
		return fmt.Errorf("%w: %v", domain.ErrPushDeliveryFailed, err)
	}

	log.Info().Str("to", to).Str("from", from).Str("channel", channel).Msg("Push alert sent")
	return nil
}
