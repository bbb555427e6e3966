package service

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/vistacall/relay/internal/core/port"
)

type presenceEntry struct {
	client    port.Client // nil while the user is offline
	pushToken string
}

// Registry implements port.PresenceRegistry. One per process, constructed at
// startup and injected wherever presence is consulted.
//
// Entries are never evicted: a user that registered a push token and never
// reconnects keeps its record for the process lifetime. Known limitation.
type Registry struct {
	mu    sync.RWMutex
	users map[string]*presenceEntry
	// owners maps connection ID to the user that connection registered as,
	// captured at registration time. Disconnect cleanup goes through this
	// index instead of scanning users, so a stale disconnect can never
	// clear a newer registration.
	owners map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		users:  make(map[string]*presenceEntry),
		owners: make(map[string]string),
	}
}

func (r *Registry) entryLocked(userID string) *presenceEntry {
	e, ok := r.users[userID]
	if !ok {
		e = &presenceEntry{}
		r.users[userID] = e
	}
	return e
}

func (r *Registry) Register(userID string, c port.Client) {
	if userID == "" || c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.entryLocked(userID)
	if e.client != nil && e.client.ID() != c.ID() {
		// superseded connection no longer owns this user
		delete(r.owners, e.client.ID())
	}
	e.client = c
	r.owners[c.ID()] = userID
	log.Debug().Str("user_id", userID).Str("client_id", c.ID()).Msg("Live connection registered")
}

func (r *Registry) RegisterPushToken(userID, token string) {
	if userID == "" || token == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entryLocked(userID).pushToken = token
	log.Debug().Str("user_id", userID).Msg("Push token registered")
}

func (r *Registry) ResolveClient(userID string) (port.Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.users[userID]
	if !ok || e.client == nil {
		return nil, false
	}
	return e.client, true
}

func (r *Registry) ResolvePushToken(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.users[userID]
	if !ok || e.pushToken == "" {
		return "", false
	}
	return e.pushToken, true
}

func (r *Registry) ClearClient(c port.Client) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.owners[c.ID()]
	if !ok {
		return
	}
	delete(r.owners, c.ID())

	e, ok := r.users[userID]
	if !ok || e.client == nil || e.client.ID() != c.ID() {
		return
	}
	e.client = nil
	log.Debug().Str("user_id", userID).Str("client_id", c.ID()).Msg("Live connection cleared")
}

// Close disconnects every live connection. Push tokens stay in place.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for userID, e := range r.users {
		if e.client == nil {
			continue
		}
		if err := e.client.Close(); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Error closing client connection")
		}
		delete(r.owners, e.client.ID())
		e.client = nil
		count++
	}
	log.Info().Int("count", count).Msg("Registry closed. Disconnected all clients.")
}
