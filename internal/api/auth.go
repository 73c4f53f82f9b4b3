package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mpetrenko/go-messenger/internal/database"
	"github.com/mpetrenko/go-messenger/internal/stats"
	"github.com/mpetrenko/go-messenger/internal/types"
	"golang.org/x/crypto/bcrypt"
)

const tokenQueryParam = "token"

type contextKey string

const userIdKey contextKey = "user-id"

func WithUserId(ctx context.Context, userId string) context.Context {
	return context.WithValue(ctx, userIdKey, userId)
}

func UserId(ctx context.Context) (string, bool) {
	userId, ok := ctx.Value(userIdKey).(string)

	return userId, ok
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func hashPassword(passwd string) (string, error) {
	passwdHash, err := bcrypt.GenerateFromPassword([]byte(passwd), bcrypt.DefaultCost)
	return string(passwdHash), err
}

func verifyPassword(passwdHash, passwd string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(passwdHash), []byte(passwd))
	return err == nil
}

func (s *MessengerApp) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	fields := make(map[string]string)
	if req.Username == "" {
		fields["username"] = "required"
	}
	if req.Email == "" {
		fields["email"] = "required"
	}
	if req.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		errResp := NewValidationError(fields)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	pwdHash, err := hashPassword(req.Password)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	params := database.CreateAccountParams{
		Username:     req.Username,
		EmailAddress: req.Email,
		PasswordHash: pwdHash,
	}

	newUser, err := s.db.CreateAccount(params)
	if err != nil {
		var errResp *ApiError
		switch {
		case errors.Is(err, database.ErrEmailTaken):
			errResp = NewEmailTakenError()
		case errors.Is(err, database.ErrUsernameTaken):
			errResp = NewUsernameTakenError()
		default:
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.MetricRegistrations)

	s.writeJson(w, http.StatusOK, types.AccountSummary{
		UserId:   newUser.Id,
		Username: newUser.Username,
		Email:    newUser.EmailAddress,
	})
}

func (s *MessengerApp) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	fields := make(map[string]string)
	if req.Email == "" {
		fields["email"] = "required"
	}
	if req.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		errResp := NewValidationError(fields)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbUser, err := s.db.GetAccountByEmail(req.Email)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, database.ErrNotFound) {
			// same response as a wrong password, so the caller cannot
			// probe which field was wrong
			errResp = NewInvalidCredentialsError()
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !verifyPassword(dbUser.PasswordHash, req.Password) {
		errResp := NewInvalidCredentialsError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.db.UpdateLastOnline(dbUser.Id); err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	token, err := s.sessions.Create(r.Context(), dbUser.Id)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.MetricLogins)

	s.writeJson(w, http.StatusOK, types.AccountSummary{
		UserId:   dbUser.Id,
		Username: dbUser.Username,
		Email:    dbUser.EmailAddress,
		Token:    token,
	})
}

func (s *MessengerApp) logout(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(tokenQueryParam)
	if err := s.sessions.Destroy(r.Context(), token); err != nil {
		s.log.Printf("destroy session: %v", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
