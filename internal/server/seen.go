package server

// MarkMessagesAsSeen reconciles a "user viewed conversation" signal with
// persisted state: every unseen message in the conversation is marked
// seen in one write, the summary unseen counter is reset, and a
// confirmation is pushed to the viewing user's connection. There is no
// response channel for these events, so storage errors are logged and
// the event is dropped.
func (cs *ChatServer) MarkMessagesAsSeen(p MarkSeenPayload) {
	conv, err := cs.db.GetConversationByExternalId(p.ConversationId)
	if err != nil {
		cs.log.Println("markMessagesAsSeen: find conversation:", err)
		return
	}

	if err := cs.db.MarkMessagesSeen(conv.Id); err != nil {
		cs.log.Println("markMessagesAsSeen: mark messages:", err)
		return
	}

	if err := cs.db.ResetConversationSeen(conv.Id); err != nil {
		cs.log.Println("markMessagesAsSeen: reset summary:", err)
		return
	}

	cs.stats.Incr("NumMessagesSeen")

	// Confirmation goes to the viewer, matching current frontend
	// expectations.
	if c, ok := cs.presence.Lookup(p.UserId); ok {
		c.queueEvent(MessagesSeenEvent(p.ConversationId))
	}
}
