package server

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/semz-ui/mercial-backend/internal/database"
	"github.com/semz-ui/mercial-backend/internal/types"
)

// SendMessageParams carries a send request into the delivery pipeline.
// ConversationId addresses an existing conversation; when it resolves to
// nothing, RecipientId is used to lazily create a direct conversation.
type SendMessageParams struct {
	ConversationId string
	RecipientId    int
	Text           string
	Image          string
	Audio          string
	Video          string
}

// SendMessage persists a new message and propagates it to live
// connections. The returned message reflects the persisted record; fan-out
// is best-effort and its failures are never surfaced to the sender.
func (cs *ChatServer) SendMessage(sender types.User, params SendMessageParams) (types.Message, error) {
	if params.Text == "" && params.Image == "" && params.Audio == "" && params.Video == "" {
		return types.Message{}, NewValidationError("message text is required")
	}

	conv, prevNotSeen, err := cs.resolveConversation(sender, params)
	if err != nil {
		return types.Message{}, err
	}

	// The message insert and the summary read-modify-write run together.
	// There is no optimistic locking on not_seen_length; concurrent sends
	// to the same conversation can under-count.
	var (
		wg      sync.WaitGroup
		msg     database.Message
		msgErr  error
		convErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		msg, msgErr = cs.db.CreateMessage(database.CreateMessageParams{
			ConversationId: conv.Id,
			SenderId:       sender.Id,
			SenderUsername: sender.Username,
			SenderAvatar:   sender.Avatar,
			Text:           params.Text,
			Image:          params.Image,
			Audio:          params.Audio,
			Video:          params.Video,
		})
	}()
	go func() {
		defer wg.Done()
		convErr = cs.db.UpdateConversationSummary(conv.Id, database.SummaryParams{
			Text:          params.Text,
			SenderId:      sender.Id,
			Type:          types.MessageTypeText,
			NotSeenLength: prevNotSeen + 1,
		})
	}()
	wg.Wait()

	if msgErr != nil {
		return types.Message{}, &StorageError{Op: "create message", Err: msgErr}
	}
	if convErr != nil {
		return types.Message{}, &StorageError{Op: "update conversation summary", Err: convErr}
	}

	// Re-fetch so the pushed payload reflects the updated summary.
	conv, err = cs.db.GetConversationByExternalId(conv.ExternalId)
	if err != nil {
		return types.Message{}, &StorageError{Op: "reload conversation", Err: err}
	}

	msgPayload := MessageRecord(msg, conv.ExternalId)
	cs.fanOut(ConversationRecord(conv), msgPayload, sender.Id)
	cs.stats.Incr("NumMessagesSent")

	return msgPayload, nil
}

// resolveConversation looks up the addressed conversation, creating a
// direct one on first contact. It returns the conversation and the unseen
// count prior to this send. Conversation creation and the subsequent
// message insert are not transactional; a crash in between leaves an
// empty conversation behind.
func (cs *ChatServer) resolveConversation(sender types.User, params SendMessageParams) (database.Conversation, int, error) {
	if params.ConversationId != "" {
		conv, err := cs.db.GetConversationByExternalId(params.ConversationId)
		if err == nil {
			return conv, conv.NotSeenLength, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return database.Conversation{}, 0, &StorageError{Op: "find conversation", Err: err}
		}
	}

	if params.RecipientId == 0 {
		return database.Conversation{}, 0, ErrConversationNotFound
	}

	externalId, err := cs.genExternalId()
	if err != nil {
		return database.Conversation{}, 0, &StorageError{Op: "generate conversation id", Err: err}
	}

	conv, err := cs.db.CreateConversation(database.CreateConversationParams{
		ExternalId: externalId,
		Participants: []database.Participant{
			{AccountId: sender.Id},
			{AccountId: params.RecipientId},
		},
		LastMessage: database.SummaryParams{
			Text:          params.Text,
			SenderId:      sender.Id,
			Type:          types.MessageTypeText,
			NotSeenLength: 1,
		},
	})
	if err != nil {
		return database.Conversation{}, 0, &StorageError{Op: "create conversation", Err: err}
	}

	// The creation already wrote this send's summary, so the summary
	// update recomputes it from the pre-send count of zero.
	return conv, 0, nil
}

// fanOut pushes newMessage followed by updateConversation to every
// resolved target. Pushes are fire-and-forget: a full queue or a racing
// disconnect drops the event with no retry.
func (cs *ChatServer) fanOut(conv types.Conversation, msg types.Message, senderId int) {
	targets, err := resolveRecipients(cs.presence, conv, senderId)
	if err != nil {
		cs.log.Println("fan-out:", err)
		return
	}

	for _, c := range targets {
		c.queueEvent(NewMessageEvent(msg))
		c.queueEvent(UpdateConversationEvent(conv))
	}
}
