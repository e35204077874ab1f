package types

import (
	"time"
)

type User struct {
	Id           int       `json:"id"`
	Username     string    `json:"username"`
	EmailAddress string    `json:"email_address,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	Password     string    `json:"-"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// UserSnapshot is the denormalized view of a user embedded in messages
// and group member lists. It is captured at write time and only refreshed
// by the profile-update fan-out, not by this core.
type UserSnapshot struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// LastMessage summarizes the most recent message of a conversation.
// NotSeenLength counts messages accumulated since the last seen-sync.
type LastMessage struct {
	Text          string `json:"text"`
	SenderId      int    `json:"sender"`
	Type          string `json:"type"`
	Seen          bool   `json:"seen"`
	NotSeenLength int    `json:"notSeenLength"`
}

type Conversation struct {
	Id           int            `json:"-"`
	ExternalId   string         `json:"id"`
	Participants []int          `json:"participants"`
	AdminId      int            `json:"admin,omitempty"`
	IsGroup      bool           `json:"isGroup"`
	LastMessage  LastMessage    `json:"lastMessage"`
	GroupName    string         `json:"groupName,omitempty"`
	GroupImage   string         `json:"groupImage,omitempty"`
	Members      []UserSnapshot `json:"members,omitempty"`
	CreatedAt    time.Time      `json:"created_at,omitempty"`
	UpdatedAt    time.Time      `json:"updated_at,omitempty"`
}

type Message struct {
	Id             int          `json:"id"`
	ConversationId string       `json:"conversationId"`
	SenderId       int          `json:"sender"`
	SenderData     UserSnapshot `json:"senderData"`
	Text           string       `json:"text"`
	Image          string       `json:"img,omitempty"`
	Audio          string       `json:"audio,omitempty"`
	Video          string       `json:"video,omitempty"`
	Seen           bool         `json:"seen"`
	CreatedAt      time.Time    `json:"created_at,omitempty"`
}

const (
	MessageTypeText  = "text"
	MessageTypeAlert = "alert"
)
