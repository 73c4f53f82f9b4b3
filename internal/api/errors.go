package api

import (
	"fmt"
	"net/http"
	"strings"
)

// Client-facing messages are localized; they are part of the API contract
// and must not be reworded. Login failures for a wrong email and a wrong
// password share one message on purpose.
const (
	msgEmailTaken     = "Email уже используется"
	msgUsernameTaken  = "Имя пользователя уже занято"
	msgBadCredentials = "Неверный email или пароль"
	msgInvalidToken   = "Недействительный токен"
	msgMissingToken   = "Нет токена"
	msgUserNotFound   = "Пользователь не найден"
)

type ApiError struct {
	StatusCode int               `json:"status_code"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
	Err        error             `json:"-"`
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}

	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func lower(s string) string {
	return strings.ToLower(s)
}

func NewBadRequestError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    lower(http.StatusText(http.StatusBadRequest)),
	}
}

// NewValidationError reports missing or malformed input with per-field
// detail.
func NewValidationError(fields map[string]string) *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    lower(http.StatusText(http.StatusBadRequest)),
		Fields:     fields,
	}
}

func NewNotFoundError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusNotFound,
		Message:    lower(http.StatusText(http.StatusNotFound)),
	}
}

func NewInternalServerError(err error) *ApiError {
	return &ApiError{
		StatusCode: http.StatusInternalServerError,
		Message:    lower(http.StatusText(http.StatusInternalServerError)),
		Err:        err,
	}
}

func NewUnauthorizedError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusUnauthorized,
		Message:    lower(http.StatusText(http.StatusUnauthorized)),
	}
}

func NewMethodNotAllowedError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusMethodNotAllowed,
		Message:    lower(http.StatusText(http.StatusMethodNotAllowed)),
	}
}

func NewEmailTakenError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    msgEmailTaken,
	}
}

func NewUsernameTakenError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    msgUsernameTaken,
	}
}

func NewInvalidCredentialsError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusUnauthorized,
		Message:    msgBadCredentials,
	}
}

func NewInvalidTokenError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusUnauthorized,
		Message:    msgInvalidToken,
	}
}

func NewMissingTokenError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusUnauthorized,
		Message:    msgMissingToken,
	}
}

func NewUserNotFoundError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusNotFound,
		Message:    msgUserNotFound,
	}
}
