package port

import (
	"time"

	"github.com/vistacall/relay/internal/core/domain"
)

// TokenSigner is the external signing primitive for media-channel credentials.
type TokenSigner interface {
	Sign(channel string, uid uint32, role domain.Role, expiresAt time.Time) (string, error)
}
