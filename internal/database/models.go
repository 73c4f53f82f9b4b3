package database

import (
	"database/sql"
	"time"
)

type User struct {
	Id                   string
	Username             string
	EmailAddress         string
	PasswordHash         string
	Avatar               sql.NullString
	LastOnline           time.Time
	CreatedAt            time.Time
	InvisibleMode        bool
	HideLastSeen         bool
	HideProfileInfo      bool
	Theme                string
	CustomPrimaryColor   string
	CustomSecondaryColor string
}

type Message struct {
	Id         string
	SenderId   string
	ReceiverId string
	Body       string
	CreatedAt  time.Time
	IsRead     bool
}

type Favorite struct {
	Id        string
	UserId    string
	Type      string
	Body      sql.NullString
	FileUrl   sql.NullString
	VoiceUrl  sql.NullString
	CreatedAt time.Time
	Orig      sql.NullString
}

type CreateAccountParams struct {
	Username     string
	EmailAddress string
	PasswordHash string
}

type CreateFavoriteParams struct {
	UserId   string
	Type     string
	Body     sql.NullString
	FileUrl  sql.NullString
	VoiceUrl sql.NullString
	Orig     sql.NullString
}
