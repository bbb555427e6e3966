package service

import (
	"fmt"
	"time"

	"github.com/vistacall/relay/internal/core/domain"
	"github.com/vistacall/relay/internal/core/port"
)

// TokenService issues media-channel credentials. Expiry is a data value the
// media transport enforces, not something this relay schedules around.
type TokenService struct {
	signer     port.TokenSigner
	defaultTTL time.Duration
}

func NewTokenService(signer port.TokenSigner, defaultTTL time.Duration) *TokenService {
	return &TokenService{
		signer:     signer,
		defaultTTL: defaultTTL,
	}
}

// Issue signs a publisher credential for uid on channel. A non-positive ttl
// falls back to the configured default.
func (s *TokenService) Issue(channel string, uid uint32, ttl time.Duration) (domain.Credential, error) {
	if channel == "" {
		return domain.Credential{}, domain.Validation("channelName must not be empty")
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	expiresAt := time.Now().Add(ttl)

	token, err := s.signer.Sign(channel, uid, domain.RolePublisher, expiresAt)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("%w: %v", domain.ErrSigningFailed, err)
	}

	return domain.Credential{
		Token:     token,
		UID:       uid,
		Channel:   channel,
		ExpiresAt: expiresAt,
	}, nil
}
