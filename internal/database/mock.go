package database

import (
	"github.com/stretchr/testify/mock"
)

type MockMessengerRepository struct {
	mock.Mock
}

func (m *MockMessengerRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockMessengerRepository) CreateAccount(params CreateAccountParams) (Account, error) {
	args := m.Called(params)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockMessengerRepository) UpdateAccount(params UpdateAccountParams) (Account, error) {
	args := m.Called(params)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockMessengerRepository) GetAccountById(accountId int) (Account, error) {
	args := m.Called(accountId)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockMessengerRepository) GetAccountByEmail(email string) (Account, error) {
	args := m.Called(email)
	return args.Get(0).(Account), args.Error(1)
}
func (m *MockMessengerRepository) GetAccountsByIds(accountIds []int) ([]Account, error) {
	args := m.Called(accountIds)
	return args.Get(0).([]Account), args.Error(1)
}
func (m *MockMessengerRepository) GetConversationByExternalId(externalId string) (Conversation, error) {
	args := m.Called(externalId)
	return args.Get(0).(Conversation), args.Error(1)
}
func (m *MockMessengerRepository) ListConversations(accountId int) ([]Conversation, error) {
	args := m.Called(accountId)
	return args.Get(0).([]Conversation), args.Error(1)
}
func (m *MockMessengerRepository) CreateConversation(params CreateConversationParams) (Conversation, error) {
	args := m.Called(params)
	return args.Get(0).(Conversation), args.Error(1)
}
func (m *MockMessengerRepository) UpdateConversationSummary(conversationId int, summary SummaryParams) error {
	args := m.Called(conversationId, summary)
	return args.Error(0)
}
func (m *MockMessengerRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockMessengerRepository) ListMessages(conversationId int) ([]Message, error) {
	args := m.Called(conversationId)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockMessengerRepository) CountUnseenMessages(conversationId, excludeSenderId int) (int, error) {
	args := m.Called(conversationId, excludeSenderId)
	return args.Int(0), args.Error(1)
}
func (m *MockMessengerRepository) MarkMessagesSeen(conversationId int) error {
	args := m.Called(conversationId)
	return args.Error(0)
}
func (m *MockMessengerRepository) ResetConversationSeen(conversationId int) error {
	args := m.Called(conversationId)
	return args.Error(0)
}
