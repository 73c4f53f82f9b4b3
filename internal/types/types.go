package types

import (
	"time"
)

// AccountSummary is what registration and login return: never the hash,
// never the settings. Token is only present on login.
type AccountSummary struct {
	UserId   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token,omitempty"`
}

type UserSummary struct {
	Id         string    `json:"id"`
	Username   string    `json:"username"`
	Avatar     *string   `json:"avatar"`
	LastOnline time.Time `json:"last_online"`
}

type Profile struct {
	UserId               string    `json:"user_id"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	Avatar               *string   `json:"avatar"`
	LastOnline           time.Time `json:"last_online"`
	InvisibleMode        bool      `json:"invisible_mode"`
	HideLastSeen         bool      `json:"hide_last_seen"`
	HideProfileInfo      bool      `json:"hide_profile_info"`
	Theme                string    `json:"theme"`
	CustomPrimaryColor   string    `json:"custom_primary_color"`
	CustomSecondaryColor string    `json:"custom_secondary_color"`
}

type Message struct {
	Id         string    `json:"id"`
	SenderId   string    `json:"sender_id"`
	ReceiverId string    `json:"receiver_id"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	IsRead     bool      `json:"is_read"`
}

// Favorite exposes its timestamp as epoch seconds, not a formatted time.
// Orig is the deserialized snapshot, or the raw stored text when the stored
// value does not parse.
type Favorite struct {
	Id        string  `json:"id"`
	Type      string  `json:"type"`
	Text      *string `json:"text"`
	FileUrl   *string `json:"file_url"`
	VoiceUrl  *string `json:"voice_url"`
	Timestamp float64 `json:"timestamp"`
	Orig      any     `json:"orig,omitempty"`
}
