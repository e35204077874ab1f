package database

type MessengerRepository interface {
	Ping() error
	CreateAccount(params CreateAccountParams) (Account, error)
	UpdateAccount(params UpdateAccountParams) (Account, error)
	GetAccountById(accountId int) (Account, error)
	GetAccountByEmail(email string) (Account, error)
	GetAccountsByIds(accountIds []int) ([]Account, error)
	GetConversationByExternalId(externalId string) (Conversation, error)
	ListConversations(accountId int) ([]Conversation, error)
	CreateConversation(params CreateConversationParams) (Conversation, error)
	UpdateConversationSummary(conversationId int, summary SummaryParams) error
	CreateMessage(params CreateMessageParams) (Message, error)
	ListMessages(conversationId int) ([]Message, error)
	CountUnseenMessages(conversationId, excludeSenderId int) (int, error)
	MarkMessagesSeen(conversationId int) error
	ResetConversationSeen(conversationId int) error
}
