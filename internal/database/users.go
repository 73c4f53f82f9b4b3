package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

const userColumns = "id, username, email, password_hash, avatar, last_online, created_at, " +
	"invisible_mode, hide_last_seen, hide_profile_info, theme, custom_primary_color, custom_secondary_color"

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.Id,
		&u.Username,
		&u.EmailAddress,
		&u.PasswordHash,
		&u.Avatar,
		&u.LastOnline,
		&u.CreatedAt,
		&u.InvisibleMode,
		&u.HideLastSeen,
		&u.HideProfileInfo,
		&u.Theme,
		&u.CustomPrimaryColor,
		&u.CustomSecondaryColor,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}

	return u, err
}

// CreateAccount inserts a new user with default privacy and theme settings.
// The existence pre-check only decides which conflict to report (email takes
// precedence over username); the unique indexes remain the authority under
// concurrent registration, so a racing duplicate insert still surfaces as
// ErrEmailTaken or ErrUsernameTaken rather than a driver error.
func (db *PgMessengerRepository) CreateAccount(params CreateAccountParams) (User, error) {
	row := db.conn.QueryRow(
		"SELECT email, username FROM users WHERE email = $1 OR username = $2 LIMIT 1",
		params.EmailAddress,
		params.Username,
	)

	var email, username string
	err := row.Scan(&email, &username)
	if err == nil {
		if email == params.EmailAddress {
			return User{}, ErrEmailTaken
		}
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return User{}, err
	}

	res := db.conn.QueryRow(
		"INSERT INTO users (id, username, email, password_hash, last_online, created_at) "+
			"VALUES ($1, $2, $3, $4, $5, $5) RETURNING id, username, email",
		uuid.NewString(),
		params.Username,
		params.EmailAddress,
		params.PasswordHash,
		time.Now().UTC(),
	)

	var u User
	if err := res.Scan(&u.Id, &u.Username, &u.EmailAddress); err != nil {
		return User{}, mapUniqueViolation(err)
	}

	return u, nil
}

func (db *PgMessengerRepository) GetAccountById(accountId string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE id = $1 LIMIT 1",
		accountId,
	)

	return scanUser(row)
}

func (db *PgMessengerRepository) GetAccountByEmail(email string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE email = $1 LIMIT 1",
		email,
	)

	return scanUser(row)
}

func (db *PgMessengerRepository) ListAccountsExcept(accountId string) ([]User, error) {
	rows, err := db.conn.Query(
		"SELECT id, username, avatar, last_online FROM users WHERE id != $1 ORDER BY username",
		accountId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err = rows.Scan(&u.Id, &u.Username, &u.Avatar, &u.LastOnline); err != nil {
			break
		}

		users = append(users, u)
	}
	if err != nil {
		return nil, err
	}

	return users, rows.Err()
}

// UpdateUsername renames an account in place. The rename is a single UPDATE,
// so the users_username_key index arbitrates concurrent renames to the same
// name; the loser gets ErrUsernameTaken and neither account changes.
func (db *PgMessengerRepository) UpdateUsername(accountId, username string) error {
	res, err := db.conn.Exec(
		"UPDATE users SET username = $2 WHERE id = $1",
		accountId,
		username,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (db *PgMessengerRepository) UpdateAvatar(accountId, avatarUrl string) error {
	res, err := db.conn.Exec(
		"UPDATE users SET avatar = $2 WHERE id = $1",
		accountId,
		avatarUrl,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (db *PgMessengerRepository) UpdateLastOnline(accountId string) error {
	_, err := db.conn.Exec(
		"UPDATE users SET last_online = $2 WHERE id = $1",
		accountId,
		time.Now().UTC(),
	)

	return err
}
