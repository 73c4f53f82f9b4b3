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
func (m *MockMessengerRepository) CreateAccount(params CreateAccountParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockMessengerRepository) GetAccountById(accountId string) (User, error) {
	args := m.Called(accountId)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockMessengerRepository) GetAccountByEmail(email string) (User, error) {
	args := m.Called(email)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockMessengerRepository) ListAccountsExcept(accountId string) ([]User, error) {
	args := m.Called(accountId)
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockMessengerRepository) UpdateUsername(accountId, username string) error {
	args := m.Called(accountId, username)
	return args.Error(0)
}
func (m *MockMessengerRepository) UpdateAvatar(accountId, avatarUrl string) error {
	args := m.Called(accountId, avatarUrl)
	return args.Error(0)
}
func (m *MockMessengerRepository) UpdateLastOnline(accountId string) error {
	args := m.Called(accountId)
	return args.Error(0)
}
func (m *MockMessengerRepository) GetConversation(callerId, otherId string) ([]Message, error) {
	args := m.Called(callerId, otherId)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockMessengerRepository) CreateMessage(senderId, receiverId, body string) (Message, error) {
	args := m.Called(senderId, receiverId, body)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockMessengerRepository) ListFavorites(userId string) ([]Favorite, error) {
	args := m.Called(userId)
	return args.Get(0).([]Favorite), args.Error(1)
}
func (m *MockMessengerRepository) CreateFavorite(params CreateFavoriteParams) (Favorite, error) {
	args := m.Called(params)
	return args.Get(0).(Favorite), args.Error(1)
}
