package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "jobtracker/internal/errors"
	"jobtracker/internal/model"
	"jobtracker/internal/session"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) (*model.User, *session.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.User), args.Get(1).(*session.Session), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*model.User, *session.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.User), args.Get(1).(*session.Session), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func sessionCookie(rec interface{ Result() *http.Response }) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandlerRegister(t *testing.T) {
	codec := session.NewCookieCodec("test-secret")
	userID := uuid.New()

	t.Run("registers and sets a signed session cookie", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Register", mock.Anything, "alice", "secret1").Return(
			&model.User{ID: userID, Username: "alice"},
			&session.Session{ID: "sess-1", UserID: userID, Username: "alice"},
			nil,
		)
		h := NewAuthHandler(mockSvc, codec, false)

		c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
			`{"username":"alice","password":"secret1"}`, userID)
		assert.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp AuthResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp.User.Username)

		cookie := sessionCookie(rec)
		assert.NotNil(t, cookie)
		id, err := codec.Decode(cookie.Value)
		assert.NoError(t, err)
		assert.Equal(t, "sess-1", id)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Register", mock.Anything, "alice", "secret1").
			Return(nil, nil, apperrors.ErrUsernameTaken)
		h := NewAuthHandler(mockSvc, codec, false)

		c, _ := newTestContext(t, http.MethodPost, "/api/auth/register",
			`{"username":"alice","password":"secret1"}`, userID)
		err := h.Register(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusConflict, httpErr.Code)
	})

	t.Run("username too short", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService), codec, false)
		c, _ := newTestContext(t, http.MethodPost, "/api/auth/register",
			`{"username":"al","password":"secret1"}`, userID)
		err := h.Register(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)

		resp, ok := httpErr.Message.(apperrors.ErrorResponse)
		assert.True(t, ok)
		assert.NotEmpty(t, resp.Errors)
		assert.Equal(t, "Username", resp.Errors[0].Field)
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	codec := session.NewCookieCodec("test-secret")
	userID := uuid.New()

	t.Run("bad password and unknown user share one response shape", func(t *testing.T) {
		for _, body := range []string{
			`{"username":"alice","password":"wrong"}`,
			`{"username":"nobody","password":"secret1"}`,
		} {
			mockSvc := new(MockAuthService)
			mockSvc.On("Login", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, nil, apperrors.ErrInvalidCredentials)
			h := NewAuthHandler(mockSvc, codec, false)

			c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", body, userID)
			err := h.Login(c)
			httpErr, ok := err.(*echo.HTTPError)
			assert.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

			resp, ok := httpErr.Message.(apperrors.ErrorResponse)
			assert.True(t, ok)
			assert.Equal(t, "invalid credentials", resp.Message)
			assert.Empty(t, resp.Errors)
		}
	})

	t.Run("successful login sets a session cookie", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Login", mock.Anything, "alice", "secret1").Return(
			&model.User{ID: userID, Username: "alice"},
			&session.Session{ID: "sess-2", UserID: userID, Username: "alice"},
			nil,
		)
		h := NewAuthHandler(mockSvc, codec, false)

		c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
			`{"username":"alice","password":"secret1"}`, userID)
		assert.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, sessionCookie(rec))
	})
}

func TestAuthHandlerLogout(t *testing.T) {
	codec := session.NewCookieCodec("test-secret")
	userID := uuid.New()

	t.Run("clears the cookie", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Logout", mock.Anything, "sess-1").Return(nil)
		h := NewAuthHandler(mockSvc, codec, false)

		c, rec := newTestContext(t, http.MethodPost, "/api/auth/logout", "", userID)
		assert.NoError(t, h.Logout(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		cookie := sessionCookie(rec)
		assert.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	})

	t.Run("store failure is a 500", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("Logout", mock.Anything, "sess-1").Return(errors.New("redis down"))
		h := NewAuthHandler(mockSvc, codec, false)

		c, _ := newTestContext(t, http.MethodPost, "/api/auth/logout", "", userID)
		err := h.Logout(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	})
}

func TestAuthHandlerMe(t *testing.T) {
	codec := session.NewCookieCodec("test-secret")
	userID := uuid.New()
	h := NewAuthHandler(new(MockAuthService), codec, false)

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/me", "", userID)
	assert.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp MeResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID, resp.User.ID)
	assert.Equal(t, "alice", resp.User.Username)
}
