package database

import (
	"time"

	"github.com/google/uuid"
)

// GetConversation returns every message exchanged between the caller and the
// other user, oldest first, and marks the caller's unread incoming messages
// as read in the same transaction. The returned rows carry the is_read value
// observed before the update: a message that was unread at query time comes
// back with IsRead false even though it is persisted as read on commit.
func (db *PgMessengerRepository) GetConversation(callerId, otherId string) ([]Message, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	rows, err := tx.Query(
		"SELECT id, sender_id, receiver_id, body, created_at, is_read FROM messages "+
			"WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1) "+
			"ORDER BY created_at, seq",
		callerId,
		otherId,
	)
	if err != nil {
		return nil, err
	}

	var messages []Message
	for rows.Next() {
		var msg Message
		if err = rows.Scan(&msg.Id, &msg.SenderId, &msg.ReceiverId, &msg.Body, &msg.CreatedAt, &msg.IsRead); err != nil {
			break
		}

		messages = append(messages, msg)
	}
	rows.Close()
	if err != nil {
		return nil, err
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		"UPDATE messages SET is_read = TRUE "+
			"WHERE sender_id = $1 AND receiver_id = $2 AND NOT is_read",
		otherId,
		callerId,
	)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return messages, nil
}

func (db *PgMessengerRepository) CreateMessage(senderId, receiverId, body string) (Message, error) {
	res := db.conn.QueryRow(
		"INSERT INTO messages (id, sender_id, receiver_id, body, created_at) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING id, sender_id, receiver_id, body, created_at, is_read",
		uuid.NewString(),
		senderId,
		receiverId,
		body,
		time.Now().UTC(),
	)

	var msg Message
	err := res.Scan(&msg.Id, &msg.SenderId, &msg.ReceiverId, &msg.Body, &msg.CreatedAt, &msg.IsRead)

	return msg, err
}
