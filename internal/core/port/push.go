package port

import (
	"context"

	"github.com/vistacall/relay/internal/core/domain"
)

// PushSender delivers one alert to the external push collaborator.
type PushSender interface {
	Send(ctx context.Context, token string, alert domain.PushAlert) error
}
