package service

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentFrame struct {
	event string
	data  json.RawMessage
}

// fakeClient records everything sent to it.
type fakeClient struct {
	id      string
	mu      sync.Mutex
	sent    []sentFrame
	sendErr error
	closed  bool
}

func (c *fakeClient) ID() string { return c.id }

func (c *fakeClient) Send(event string, data json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, sentFrame{event: event, data: data})
	return nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) frames() []sentFrame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]sentFrame(nil), c.sent...)
}

func (c *fakeClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestRegisterLastWriteWins(t *testing.T) {
	r := NewRegistry()
	c1 := &fakeClient{id: "conn-1"}
	c2 := &fakeClient{id: "conn-2"}

	r.Register("alice", c1)
	r.Register("alice", c2)

	got, ok := r.ResolveClient("alice")
	require.True(t, ok)
	assert.Equal(t, "conn-2", got.ID())
}

func TestStaleDisconnectDoesNotClobberNewerRegistration(t *testing.T) {
	r := NewRegistry()
	old := &fakeClient{id: "conn-old"}
	fresh := &fakeClient{id: "conn-new"}

	r.Register("alice", old)
	r.Register("alice", fresh)

	// the old connection's disconnect cleanup arrives late
	r.ClearClient(old)

	got, ok := r.ResolveClient("alice")
	require.True(t, ok, "newer registration must survive the stale cleanup")
	assert.Equal(t, "conn-new", got.ID())
}

func TestClearClientLeavesPushTokenIntact(t *testing.T) {
	r := NewRegistry()
	c := &fakeClient{id: "conn-1"}

	r.Register("alice", c)
	r.RegisterPushToken("alice", "ExponentPushToken[abc]")
	r.ClearClient(c)

	_, ok := r.ResolveClient("alice")
	assert.False(t, ok)

	token, ok := r.ResolvePushToken("alice")
	require.True(t, ok)
	assert.Equal(t, "ExponentPushToken[abc]", token)
}

func TestClearClientForUnregisteredConnectionIsNoop(t *testing.T) {
	r := NewRegistry()
	c := &fakeClient{id: "conn-1"}
	r.Register("alice", c)

	r.ClearClient(&fakeClient{id: "conn-never-registered"})

	_, ok := r.ResolveClient("alice")
	assert.True(t, ok)
}

func TestEmptyArgumentsIgnored(t *testing.T) {
	r := NewRegistry()

	r.Register("", &fakeClient{id: "conn-1"})
	r.Register("alice", nil)
	r.RegisterPushToken("", "token")
	r.RegisterPushToken("alice", "")

	_, ok := r.ResolveClient("alice")
	assert.False(t, ok)
	_, ok = r.ResolvePushToken("alice")
	assert.False(t, ok)
}

func TestPushTokenWithoutLiveConnection(t *testing.T) {
	r := NewRegistry()

	r.RegisterPushToken("alice", "tok")

	_, ok := r.ResolveClient("alice")
	assert.False(t, ok)
	token, ok := r.ResolvePushToken("alice")
	require.True(t, ok)
	assert.Equal(t, "tok", token)
}

func TestCloseDisconnectsAllClients(t *testing.T) {
	r := NewRegistry()
	c1 := &fakeClient{id: "conn-1"}
	c2 := &fakeClient{id: "conn-2"}
	r.Register("alice", c1)
	r.Register("bob", c2)
	r.RegisterPushToken("alice", "tok")

	r.Close()

	assert.True(t, c1.isClosed())
	assert.True(t, c2.isClosed())
	_, ok := r.ResolveClient("alice")
	assert.False(t, ok)
	_, ok = r.ResolvePushToken("alice")
	assert.True(t, ok)
}

func TestConcurrentRegisterResolveClear(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", n%5)
			c := &fakeClient{id: fmt.Sprintf("conn-%d", n)}
			r.Register(userID, c)
			r.RegisterPushToken(userID, "tok")
			r.ResolveClient(userID)
			r.ResolvePushToken(userID)
			r.ClearClient(c)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		token, ok := r.ResolvePushToken(fmt.Sprintf("user-%d", i))
		require.True(t, ok)
		assert.Equal(t, "tok", token)
	}
}
