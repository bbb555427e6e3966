package domain

import "time"

type Role string

// RolePublisher is the only capability issued; subscriber-only grants are a
// concern of the media transport, not this relay.
const RolePublisher Role = "publisher"

// Credential grants time-bounded access to one media channel. It is returned
// to the caller and never stored; the media transport validates it on its own.
type Credential struct {
	Token     string
	UID       uint32
	Channel   string
	ExpiresAt time.Time
}
