package server

import (
	"github.com/semz-ui/mercial-backend/internal/database"
	"github.com/semz-ui/mercial-backend/internal/types"
)

// ConversationRecord builds the wire-facing conversation payload from a
// database row.
func ConversationRecord(conv database.Conversation) types.Conversation {
	c := types.Conversation{
		Id:         conv.Id,
		ExternalId: conv.ExternalId,
		AdminId:    conv.AdminId,
		IsGroup:    conv.IsGroup,
		LastMessage: types.LastMessage{
			Text:          conv.LastMessageText,
			SenderId:      conv.LastMessageSenderId,
			Type:          conv.LastMessageType,
			Seen:          conv.LastMessageSeen,
			NotSeenLength: conv.NotSeenLength,
		},
		GroupName:  conv.GroupName,
		GroupImage: conv.GroupImage,
		CreatedAt:  conv.CreatedAt,
		UpdatedAt:  conv.UpdatedAt,
	}

	for _, p := range conv.Participants {
		c.Participants = append(c.Participants, p.AccountId)
	}

	if conv.IsGroup {
		for _, p := range conv.Participants {
			c.Members = append(c.Members, types.UserSnapshot{
				Id:       p.AccountId,
				Username: p.Username,
				Avatar:   p.Avatar,
			})
		}
	}

	return c
}

// MessageRecord builds the wire-facing message payload. The conversation
// is addressed by its external id on the wire.
func MessageRecord(msg database.Message, conversationExternalId string) types.Message {
	return types.Message{
		Id:             msg.Id,
		ConversationId: conversationExternalId,
		SenderId:       msg.SenderId,
		SenderData: types.UserSnapshot{
			Id:       msg.SenderId,
			Username: msg.SenderUsername,
			Avatar:   msg.SenderAvatar,
		},
		Text:      msg.Text,
		Image:     msg.Image,
		Audio:     msg.Audio,
		Video:     msg.Video,
		Seen:      msg.Seen,
		CreatedAt: msg.CreatedAt,
	}
}
