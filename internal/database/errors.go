package database

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
)

// unique_violation, https://www.postgresql.org/docs/current/errcodes-appendix.html
const uniqueViolationCode = "23505"

// mapUniqueViolation translates a unique-index violation into the
// matching conflict sentinel so callers never see driver errors for
// duplicate email/username inserts. Any other error passes through.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		switch pqErr.Constraint {
		case "users_email_key":
			return ErrEmailTaken
		case "users_username_key":
			return ErrUsernameTaken
		}
	}

	return err
}
