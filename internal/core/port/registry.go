package port

// PresenceRegistry maps user identities to their live connection and push
// token. Every operation is atomic with respect to the others; callers from
// many connection goroutines may interleave freely.
type PresenceRegistry interface {
	// Register upserts the live connection for userID, superseding any
	// previous one. Empty userID or nil client is ignored.
	Register(userID string, c Client)

	// RegisterPushToken upserts the out-of-band push token for userID.
	// The token survives disconnects. Empty arguments are ignored.
	RegisterPushToken(userID, token string)

	ResolveClient(userID string) (Client, bool)
	ResolvePushToken(userID string) (string, bool)

	// ClearClient drops the live-connection entry owned by c, if c still
	// owns one. A registration superseded by a newer connection is never
	// clobbered by the old connection's disconnect.
	ClearClient(c Client)
}
