package database

import (
	"time"

	"github.com/google/uuid"
)

// ListFavorites returns the user's saved items newest first. A favorite is a
// value snapshot: it has no foreign key into messages, so deleting or
// mutating the source message never touches it.
func (db *PgMessengerRepository) ListFavorites(userId string) ([]Favorite, error) {
	rows, err := db.conn.Query(
		"SELECT id, user_id, type, body, file_url, voice_url, created_at, orig FROM favorite_messages "+
			"WHERE user_id = $1 ORDER BY created_at DESC, seq DESC",
		userId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var fav Favorite
		if err = rows.Scan(&fav.Id, &fav.UserId, &fav.Type, &fav.Body, &fav.FileUrl, &fav.VoiceUrl, &fav.CreatedAt, &fav.Orig); err != nil {
			break
		}

		favorites = append(favorites, fav)
	}
	if err != nil {
		return nil, err
	}

	return favorites, rows.Err()
}

// CreateFavorite persists a snapshot. The type field does not constrain
// which of body/file_url/voice_url are populated; callers may supply any
// combination.
func (db *PgMessengerRepository) CreateFavorite(params CreateFavoriteParams) (Favorite, error) {
	res := db.conn.QueryRow(
		"INSERT INTO favorite_messages (id, user_id, type, body, file_url, voice_url, created_at, orig) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8) "+
			"RETURNING id, user_id, type, body, file_url, voice_url, created_at, orig",
		uuid.NewString(),
		params.UserId,
		params.Type,
		params.Body,
		params.FileUrl,
		params.VoiceUrl,
		time.Now().UTC(),
		params.Orig,
	)

	var fav Favorite
	err := res.Scan(&fav.Id, &fav.UserId, &fav.Type, &fav.Body, &fav.FileUrl, &fav.VoiceUrl, &fav.CreatedAt, &fav.Orig)

	return fav, err
}
