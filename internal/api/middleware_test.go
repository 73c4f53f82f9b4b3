package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mpetrenko/go-messenger/internal/session"
	"github.com/mpetrenko/go-messenger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestErrorHandler_PanicRecovery(t *testing.T) {
	buf := &bytes.Buffer{}
	app := &MessengerApp{
		log: testutil.TestLogger(t),
	}

	app.log.SetOutput(buf)

	// handler that panics
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("test panic"))
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	handler := app.errorHandler(panicHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "close", rr.Header().Get("Connection"))
	assert.Contains(t, buf.String(), "panic: test panic")
}

func Test_errorHandler_NoPanic(t *testing.T) {
	app := &MessengerApp{}

	// simple handler that does not panic
	called := false
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	handler := app.errorHandler(okHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.True(t, called, "expected handler to be called")
}

func Test_authMiddleware(t *testing.T) {
	tokenHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId, ok := UserId(r.Context())
		if !ok {
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(userId))
	})

	t.Run("valid token", func(t *testing.T) {
		mockSessions := &session.MockSessionStore{}
		defer mockSessions.AssertExpectations(t)
		mockSessions.On("Validate", mock.Anything, "good-token").Return("user-1", true, nil).Once()

		app := newTestApp(t, nil, mockSessions, nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/?token=good-token", nil)
		handler := app.authMiddleware(tokenHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-1", rr.Body.String())
		assert.Equal(t, "no-store, no-cache, must-revalidate, private", rr.Header().Get("Cache-Control"))
	})

	t.Run("missing token", func(t *testing.T) {
		app := newTestApp(t, nil, nil, nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler := app.authMiddleware(tokenHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		var apiErr ApiError
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&apiErr))
		assert.Equal(t, *NewMissingTokenError(), apiErr)
	})

	t.Run("invalid token", func(t *testing.T) {
		mockSessions := &session.MockSessionStore{}
		defer mockSessions.AssertExpectations(t)
		mockSessions.On("Validate", mock.Anything, "expired").Return("", false, nil).Once()

		app := newTestApp(t, nil, mockSessions, nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/?token=expired", nil)
		handler := app.authMiddleware(tokenHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		var apiErr ApiError
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&apiErr))
		assert.Equal(t, *NewInvalidTokenError(), apiErr)
	})

	t.Run("session store error", func(t *testing.T) {
		mockSessions := &session.MockSessionStore{}
		defer mockSessions.AssertExpectations(t)
		mockSessions.On("Validate", mock.Anything, "tok").Return("", false, errors.New("redis down")).Once()

		app := newTestApp(t, nil, mockSessions, nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/?token=tok", nil)
		handler := app.authMiddleware(tokenHandler)
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
