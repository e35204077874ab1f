package server

import (
	"testing"

	"github.com/semz-ui/mercial-backend/internal/database"
	"github.com/semz-ui/mercial-backend/internal/stats"
	"github.com/semz-ui/mercial-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// newTestChatServer creates a ChatServer instance for testing purposes
func newTestChatServer(t *testing.T, db database.MessengerRepository, su *stats.MockStatsUpdater) *ChatServer {
	su.On("RegisterMetric", mock.Anything).Return(nil).Times(4)

	logger := testutil.TestLogger(t)
	cs, err := NewChatServer(logger, db, su)
	if err != nil {
		t.Fatalf("failed to create test ChatServer: %v", err)
	}
	return cs
}

// newTestClient builds a client that is wired to nothing but a send
// queue, enough to observe pushed events.
func newTestClient(t *testing.T, userId int) *Client {
	return &Client{
		userId:     userId,
		registered: true,
		send:       make(chan *ServerEvent, 256),
		stop:       make(chan struct{}),
		log:        testutil.TestLogger(t),
	}
}

func drainEvents(c *Client) []*ServerEvent {
	var events []*ServerEvent
	for {
		select {
		case ev := <-c.send:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestNewChatServer(t *testing.T) {
	db := &database.MockMessengerRepository{}
	defer db.AssertExpectations(t)

	su := &stats.MockStatsUpdater{}
	defer su.AssertExpectations(t)
	su.On("RegisterMetric", mock.Anything).Return(nil).Times(4)

	logger := testutil.TestLogger(t)
	cs, err := NewChatServer(logger, db, su)
	assert.NoError(t, err, "expected no error creating ChatServer")
	assert.NotNil(t, cs, "expected ChatServer to be non-nil")
	assert.Equal(t, logger, cs.log, "expected logger to be set")
	assert.Equal(t, db, cs.db, "expected database repository to be set")
	assert.NotNil(t, cs.presence, "expected presence registry to be initialized")
	assert.NotNil(t, cs.clients, "expected clients map to be initialized")
	assert.NotNil(t, cs.genExternalId, "expected external id generator to be set")
}

func TestChatServer_RegisterClient(t *testing.T) {
	t.Run("registered client enters presence and triggers broadcast", func(t *testing.T) {
		su := &stats.MockStatsUpdater{}
		su.On("Incr", "NumActiveClients").Twice()
		su.On("Incr", "NumOnlineUsers").Twice()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, &database.MockMessengerRepository{}, su)

		c1 := newTestClient(t, 1)
		cs.RegisterClient(c1)

		c2 := newTestClient(t, 2)
		cs.RegisterClient(c2)

		_, ok := cs.presence.Lookup(2)
		assert.True(t, ok, "expected user 2 to be registered in presence")

		// the earlier client saw both broadcasts
		events := drainEvents(c1)
		assert.Len(t, events, 2, "expected two online-user broadcasts")
		assert.Equal(t, EventGetOnlineUsers, events[0].Event)
		assert.Equal(t, []int{1}, events[0].Data)
		assert.Equal(t, []int{1, 2}, events[1].Data)
	})

	t.Run("unregistered client is served without presence", func(t *testing.T) {
		su := &stats.MockStatsUpdater{}
		su.On("Incr", "NumActiveClients").Once()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, &database.MockMessengerRepository{}, su)

		c := newTestClient(t, 0)
		c.registered = false
		cs.RegisterClient(c)

		assert.Empty(t, cs.presence.OnlineUserIds(), "expected no presence entry")

		events := drainEvents(c)
		assert.Len(t, events, 1, "expected broadcast to reach unregistered client")
		assert.Equal(t, EventGetOnlineUsers, events[0].Event)
		assert.Equal(t, []int{}, events[0].Data)
	})

	t.Run("reconnect overwrites without double counting", func(t *testing.T) {
		su := &stats.MockStatsUpdater{}
		su.On("Incr", "NumActiveClients").Twice()
		su.On("Incr", "NumOnlineUsers").Once()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, &database.MockMessengerRepository{}, su)

		c1 := newTestClient(t, 1)
		c2 := newTestClient(t, 1)
		cs.RegisterClient(c1)
		cs.RegisterClient(c2)

		cur, ok := cs.presence.Lookup(1)
		assert.True(t, ok)
		assert.Equal(t, c2, cur, "expected latest connection to own the presence entry")
	})
}

func TestChatServer_UnregisterClient(t *testing.T) {
	t.Run("removes presence and broadcasts", func(t *testing.T) {
		su := &stats.MockStatsUpdater{}
		su.On("Incr", "NumActiveClients").Twice()
		su.On("Incr", "NumOnlineUsers").Twice()
		su.On("Decr", "NumActiveClients").Once()
		su.On("Decr", "NumOnlineUsers").Once()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, &database.MockMessengerRepository{}, su)

		c1 := newTestClient(t, 1)
		c2 := newTestClient(t, 2)
		cs.RegisterClient(c1)
		cs.RegisterClient(c2)
		drainEvents(c1)
		drainEvents(c2)

		cs.UnregisterClient(c2)

		_, ok := cs.presence.Lookup(2)
		assert.False(t, ok, "expected user 2 to be removed from presence")

		events := drainEvents(c1)
		assert.Len(t, events, 1, "expected broadcast after unregister")
		assert.Equal(t, []int{1}, events[0].Data)
	})

	t.Run("repeated unregister is a no-op", func(t *testing.T) {
		su := &stats.MockStatsUpdater{}
		su.On("Incr", "NumActiveClients").Once()
		su.On("Incr", "NumOnlineUsers").Once()
		su.On("Decr", "NumActiveClients").Once()
		su.On("Decr", "NumOnlineUsers").Once()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, &database.MockMessengerRepository{}, su)

		c := newTestClient(t, 1)
		cs.RegisterClient(c)
		cs.UnregisterClient(c)
		cs.UnregisterClient(c)

		assert.Empty(t, cs.presence.OnlineUserIds())
	})

	t.Run("stale connection does not evict a reconnect", func(t *testing.T) {
		su := &stats.MockStatsUpdater{}
		su.On("Incr", "NumActiveClients").Twice()
		su.On("Incr", "NumOnlineUsers").Once()
		su.On("Decr", "NumActiveClients").Once()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, &database.MockMessengerRepository{}, su)

		c1 := newTestClient(t, 1)
		c2 := newTestClient(t, 1)
		cs.RegisterClient(c1)
		cs.RegisterClient(c2)

		// the old connection disconnects after being replaced
		cs.UnregisterClient(c1)

		cur, ok := cs.presence.Lookup(1)
		assert.True(t, ok, "expected user 1 to stay online")
		assert.Equal(t, c2, cur)
	})
}

func TestChatServer_Shutdown(t *testing.T) {
	su := &stats.MockStatsUpdater{}
	su.On("Incr", "NumActiveClients").Once()
	su.On("Incr", "NumOnlineUsers").Once()
	defer su.AssertExpectations(t)

	cs := newTestChatServer(t, &database.MockMessengerRepository{}, su)

	c := newTestClient(t, 1)
	cs.RegisterClient(c)

	cs.Shutdown()

	select {
	case <-c.stop:
	default:
		t.Error("expected client stop channel to be closed on shutdown")
	}
}
