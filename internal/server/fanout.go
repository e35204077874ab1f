package server

import (
	"github.com/semz-ui/mercial-backend/internal/types"
)

// resolveRecipients computes the connections that should be notified of
// an event on conv, excluding the acting user. For a direct conversation
// the target is the single other participant; anything else is a data
// integrity error. For a group every online participant except the sender
// is targeted, in participant order. Offline users are simply absent from
// the result; there is no store-and-forward.
func resolveRecipients(registry *PresenceRegistry, conv types.Conversation, senderId int) ([]*Client, error) {
	others := make([]int, 0, len(conv.Participants))
	for _, id := range conv.Participants {
		if id != senderId {
			others = append(others, id)
		}
	}

	if !conv.IsGroup {
		if len(others) != 1 {
			return nil, &IntegrityError{
				ConversationId: conv.ExternalId,
				Msg:            "direct conversation must have exactly one other participant",
			}
		}

		if c, ok := registry.Lookup(others[0]); ok {
			return []*Client{c}, nil
		}
		return nil, nil
	}

	return registry.LookupMany(others), nil
}
