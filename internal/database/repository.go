package database

type MessengerRepository interface {
	Ping() error
	CreateAccount(params CreateAccountParams) (User, error)
	GetAccountById(accountId string) (User, error)
	GetAccountByEmail(email string) (User, error)
	ListAccountsExcept(accountId string) ([]User, error)
	UpdateUsername(accountId, username string) error
	UpdateAvatar(accountId, avatarUrl string) error
	UpdateLastOnline(accountId string) error
	GetConversation(callerId, otherId string) ([]Message, error)
	CreateMessage(senderId, receiverId, body string) (Message, error)
	ListFavorites(userId string) ([]Favorite, error)
	CreateFavorite(params CreateFavoriteParams) (Favorite, error)
}
