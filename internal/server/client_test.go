package server

import (
	"encoding/json"
	"testing"

	"github.com/semz-ui/mercial-backend/internal/database"
	"github.com/semz-ui/mercial-backend/internal/stats"
	"github.com/semz-ui/mercial-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestClient_queueEvent(t *testing.T) {
	t.Run("queues event", func(t *testing.T) {
		c := &Client{
			send: make(chan *ServerEvent, 1),
			log:  testutil.TestLogger(t),
		}

		ok := c.queueEvent(MessagesSeenEvent("abc123"))
		assert.True(t, ok, "expected event to be queued")
		assert.Len(t, c.send, 1)
	})

	t.Run("drops event when queue is full", func(t *testing.T) {
		c := &Client{
			send: make(chan *ServerEvent, 1),
			log:  testutil.TestLogger(t),
		}

		c.queueEvent(MessagesSeenEvent("abc123"))
		ok := c.queueEvent(MessagesSeenEvent("abc123"))
		assert.False(t, ok, "expected event to be dropped when the queue is full")
	})
}

func TestClient_dispatch(t *testing.T) {
	t.Run("routes markMessagesAsSeen", func(t *testing.T) {
		db := &database.MockMessengerRepository{}
		defer db.AssertExpectations(t)

		cs := newTestChatServer(t, db, &stats.MockStatsUpdater{})

		conv := directConversation(7, "abc123", []int{1, 2}, 1)
		db.On("GetConversationByExternalId", "abc123").Return(conv, nil).Once()
		db.On("MarkMessagesSeen", 7).Return(nil).Once()
		db.On("ResetConversationSeen", 7).Return(nil).Once()

		su := cs.stats.(*stats.MockStatsUpdater)
		su.On("Incr", "NumMessagesSeen").Once()

		c := newTestClient(t, 2)
		c.chatServer = cs

		data, _ := json.Marshal(MarkSeenPayload{ConversationId: "abc123", UserId: 2})
		c.dispatch(&ClientEvent{Event: EventMarkMessagesAsSeen, Data: data})
	})

	t.Run("bad payload is dropped", func(t *testing.T) {
		db := &database.MockMessengerRepository{}
		defer db.AssertExpectations(t)

		cs := newTestChatServer(t, db, &stats.MockStatsUpdater{})

		c := newTestClient(t, 2)
		c.chatServer = cs

		c.dispatch(&ClientEvent{Event: EventMarkMessagesAsSeen, Data: json.RawMessage(`"not an object"`)})

		db.AssertNotCalled(t, "MarkMessagesSeen", mock.Anything)
	})

	t.Run("unknown event is ignored", func(t *testing.T) {
		cs := newTestChatServer(t, &database.MockMessengerRepository{}, &stats.MockStatsUpdater{})

		c := newTestClient(t, 2)
		c.chatServer = cs

		c.dispatch(&ClientEvent{Event: "typing"})
	})
}

func TestClient_stopClient(t *testing.T) {
	c := newTestClient(t, 1)

	c.stopClient()
	c.stopClient() // repeated stop must not panic

	select {
	case <-c.stop:
	default:
		t.Error("expected stop channel to be closed")
	}
}
