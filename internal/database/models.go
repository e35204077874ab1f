package database

import "time"

type Account struct {
	Id           int
	Username     string
	EmailAddress string
	PasswordHash string
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Conversation struct {
	Id                  int
	ExternalId          string
	IsGroup             bool
	AdminId             int
	GroupName           string
	GroupImage          string
	LastMessageText     string
	LastMessageSenderId int
	LastMessageType     string
	LastMessageSeen     bool
	NotSeenLength       int
	Participants        []Participant
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Participant is a member snapshot captured when the user was added to
// the conversation. Username and Avatar are denormalized for display.
type Participant struct {
	AccountId int
	Username  string
	Avatar    string
}

type Message struct {
	Id             int
	ConversationId int
	SenderId       int
	SenderUsername string
	SenderAvatar   string
	Text           string
	Image          string
	Audio          string
	Video          string
	Seen           bool
	CreatedAt      time.Time
}

type CreateAccountParams struct {
	Username     string
	EmailAddress string
	PasswordHash string
	Avatar       string
}

type UpdateAccountParams struct {
	AccountId    int
	Username     string
	PasswordHash string
	Avatar       string
}

type CreateConversationParams struct {
	ExternalId   string
	IsGroup      bool
	AdminId      int
	GroupName    string
	GroupImage   string
	Participants []Participant
	LastMessage  SummaryParams
}

// SummaryParams is the lastMessage summary written onto a conversation.
type SummaryParams struct {
	Text          string
	SenderId      int
	Type          string
	Seen          bool
	NotSeenLength int
}

type CreateMessageParams struct {
	ConversationId int
	SenderId       int
	SenderUsername string
	SenderAvatar   string
	Text           string
	Image          string
	Audio          string
	Video          string
}
