package server

import (
	"errors"
	"testing"

	"github.com/semz-ui/mercial-backend/internal/database"
	"github.com/semz-ui/mercial-backend/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMarkMessagesAsSeen(t *testing.T) {
	t.Run("marks all unseen and confirms to viewer", func(t *testing.T) {
		db := &database.MockMessengerRepository{}
		defer db.AssertExpectations(t)

		su := &stats.MockStatsUpdater{}
		su.On("Incr", "NumMessagesSeen").Once()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, db, su)

		viewer := newTestClient(t, 2)
		cs.presence.Register(2, viewer)

		conv := directConversation(7, "abc123", []int{1, 2}, 3)
		db.On("GetConversationByExternalId", "abc123").Return(conv, nil).Once()
		db.On("MarkMessagesSeen", 7).Return(nil).Once()
		db.On("ResetConversationSeen", 7).Return(nil).Once()

		cs.MarkMessagesAsSeen(MarkSeenPayload{ConversationId: "abc123", UserId: 2})

		events := drainEvents(viewer)
		if assert.Len(t, events, 1, "expected a messagesSeen confirmation") {
			assert.Equal(t, EventMessagesSeen, events[0].Event)
			assert.Equal(t, MessagesSeenPayload{ConversationId: "abc123"}, events[0].Data)
		}
	})

	t.Run("offline viewer gets no confirmation", func(t *testing.T) {
		db := &database.MockMessengerRepository{}
		defer db.AssertExpectations(t)

		su := &stats.MockStatsUpdater{}
		su.On("Incr", "NumMessagesSeen").Once()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, db, su)

		conv := directConversation(7, "abc123", []int{1, 2}, 1)
		db.On("GetConversationByExternalId", "abc123").Return(conv, nil).Once()
		db.On("MarkMessagesSeen", 7).Return(nil).Once()
		db.On("ResetConversationSeen", 7).Return(nil).Once()

		// storage writes still happen; the push is simply dropped
		cs.MarkMessagesAsSeen(MarkSeenPayload{ConversationId: "abc123", UserId: 2})
	})

	t.Run("storage error drops the event silently", func(t *testing.T) {
		db := &database.MockMessengerRepository{}
		defer db.AssertExpectations(t)

		su := &stats.MockStatsUpdater{}
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, db, su)

		viewer := newTestClient(t, 2)
		cs.presence.Register(2, viewer)

		conv := directConversation(7, "abc123", []int{1, 2}, 1)
		db.On("GetConversationByExternalId", "abc123").Return(conv, nil).Once()
		db.On("MarkMessagesSeen", 7).Return(errors.New("db down")).Once()

		cs.MarkMessagesAsSeen(MarkSeenPayload{ConversationId: "abc123", UserId: 2})

		db.AssertNotCalled(t, "ResetConversationSeen", mock.Anything)
		assert.Empty(t, drainEvents(viewer), "expected no confirmation after a failed write")
	})

	t.Run("unknown conversation is ignored", func(t *testing.T) {
		db := &database.MockMessengerRepository{}
		defer db.AssertExpectations(t)

		cs := newTestChatServer(t, db, &stats.MockStatsUpdater{})

		db.On("GetConversationByExternalId", "missing").Return(database.Conversation{}, errors.New("sql: no rows in result set")).Once()

		cs.MarkMessagesAsSeen(MarkSeenPayload{ConversationId: "missing", UserId: 2})

		db.AssertNotCalled(t, "MarkMessagesSeen", mock.Anything)
	})
}
