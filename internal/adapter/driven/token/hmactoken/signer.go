// Package hmactoken signs media-channel access tokens with the application's
// shared certificate. The media transport verifies them independently; this
// process never parses a token back.
package hmactoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/vistacall/relay/internal/core/domain"
)

const tokenVersion = "007"

type Signer struct {
	appID          string
	appCertificate string
}

func NewSigner(appID, appCertificate string) *Signer {
	return &Signer{
		appID:          appID,
		appCertificate: appCertificate,
	}
}

// Sign binds (appID, channel, uid, role, expiry) under HMAC-SHA256. The token
// is the version prefix plus base64url(signature || message).
func (s *Signer) Sign(channel string, uid uint32, role domain.Role, expiresAt time.Time) (string, error) {
	if s.appID == "" || s.appCertificate == "" {
		return "", errors.New("app identity and certificate must be configured")
	}

	msg := fmt.Sprintf("%s:%s:%d:%s:%d", s.appID, channel, uid, role, expiresAt.Unix())
	mac := hmac.New(sha256.New, []byte(s.appCertificate))
	if _, err := mac.Write([]byte(msg)); err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	packed := append(mac.Sum(nil), []byte(msg)...)
	return tokenVersion + base64.RawURLEncoding.EncodeToString(packed), nil
}
