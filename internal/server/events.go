package server

import (
	"encoding/json"

	"github.com/semz-ui/mercial-backend/internal/types"
)

// Wire-level event names. These are contract with the frontend and must
// not change.
const (
	EventNewMessage         = "newMessage"
	EventUpdateConversation = "updateConversation"
	EventGetOnlineUsers     = "getOnlineUsers"
	EventMessagesSeen       = "messagesSeen"
	EventMarkMessagesAsSeen = "markMessagesAsSeen"
)

// ServerEvent is the envelope for every event pushed over a live
// connection.
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// ClientEvent is the envelope for events received from a client. Data is
// decoded per event name.
type ClientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type MarkSeenPayload struct {
	ConversationId string `json:"conversationId"`
	UserId         int    `json:"userId"`
}

type MessagesSeenPayload struct {
	ConversationId string `json:"conversationId"`
}

func NewMessageEvent(msg types.Message) *ServerEvent {
	return &ServerEvent{
		Event: EventNewMessage,
		Data:  msg,
	}
}

func UpdateConversationEvent(conv types.Conversation) *ServerEvent {
	return &ServerEvent{
		Event: EventUpdateConversation,
		Data:  conv,
	}
}

func OnlineUsersEvent(userIds []int) *ServerEvent {
	return &ServerEvent{
		Event: EventGetOnlineUsers,
		Data:  userIds,
	}
}

func MessagesSeenEvent(conversationId string) *ServerEvent {
	return &ServerEvent{
		Event: EventMessagesSeen,
		Data:  MessagesSeenPayload{ConversationId: conversationId},
	}
}
