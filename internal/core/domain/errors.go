package domain

import "errors"

var (
	// ErrNoPushToken: fallback notification requested for a user that never
	// registered a push token.
	ErrNoPushToken = errors.New("no push token for recipient")

	// ErrPushDeliveryFailed: the push collaborator rejected or dropped the
	// alert. Never retried.
	ErrPushDeliveryFailed = errors.New("push delivery failed")

	// ErrSigningFailed: the credential signing primitive failed. Opaque to
	// callers, never retried.
	ErrSigningFailed = errors.New("token signing failed")
)

// ValidationError marks bad input from the caller. The HTTP layer maps it to
// a 400 response.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validation(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
