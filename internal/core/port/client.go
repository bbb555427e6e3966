package port

import "encoding/json"

// Client is a live bidirectional connection to one peer. Send must be safe
// for concurrent use: forwards from many originating connections may target
// the same client.
type Client interface {
	ID() string
	Send(event string, data json.RawMessage) error
	Close() error
}
