package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "jobtracker/internal/errors"
	"jobtracker/internal/model"
	"jobtracker/internal/repository"
	"jobtracker/internal/session"
)

const bcryptCost = 10

// AuthService handles registration, login and logout. The "me" lookup reads
// the session payload directly in the handler and needs no service call.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, *session.Session, error)
	Login(ctx context.Context, username, password string) (*model.User, *session.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	userRepo repository.UserRepository
	sessions session.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessions session.Store) AuthService {
	return &authService{userRepo: userRepo, sessions: sessions}
}

// Register creates a user with a bcrypt-hashed password and establishes a
// session. A taken username yields ErrUsernameTaken.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, *session.Session, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, nil, apperrors.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two concurrent registrations can both pass the lookup above; the
		// unique index catches the loser, which is still a conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, apperrors.ErrUsernameTaken
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	sess, err := s.sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	return user, sess, nil
}

// Login verifies credentials and establishes a session. Unknown username and
// wrong password both return ErrInvalidCredentials so callers cannot tell
// which check failed.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, *session.Session, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	return user, sess, nil
}

// Logout destroys the session. A store failure propagates so the handler can
// answer 500 rather than pretending the session is gone.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
