package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todoapi/internal/apperr"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

const credentialsMessage = "unable to authenticate with provided credentials"

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
	FirstName            string
	LastName             string
}

// ProfileUpdate lists the profile fields that may change after sign-up.
// Nil fields keep their stored values.
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// AuthService owns registration, login, logout, and token resolution.
// Tokens are opaque UUIDs held in the session store; with a zero TTL they
// stay valid until explicit logout.
type AuthService struct {
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	policy   PasswordPolicy
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(users *repository.UserRepository, sessions *repository.SessionRepository, policy PasswordPolicy, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		policy:   policy,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Register creates an account and issues a fresh session token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, "", apperr.Validation("username is required")
	}
	if input.Password != input.PasswordConfirmation {
		return nil, "", apperr.Validation("passwords don't match")
	}
	if err := s.policy.Validate(input.Password, username); err != nil {
		return nil, "", err
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, "", apperr.Validation("a user with that username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperr.Internal(err)
	}

	hash, err := s.policy.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, "", apperr.Validation("a user with that username already exists")
		}
		return nil, "", apperr.Internal(err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user's active token,
// reusing an existing one so repeated logins are idempotent.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Authentication(credentialsMessage)
		}
		return nil, "", apperr.Internal(err)
	}

	if !s.policy.Verify(user.PasswordHash, password) {
		return nil, "", apperr.Authentication(credentialsMessage)
	}

	session, err := s.sessions.FindActiveByUser(ctx, user.ID, s.now())
	switch {
	case err == nil:
		return user, session.Token, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		token, err := s.issueToken(ctx, user.ID)
		if err != nil {
			return nil, "", err
		}
		return user, token, nil
	default:
		return nil, "", apperr.Internal(err)
	}
}

// Logout invalidates the token. An unknown token is an authentication
// failure, not a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	deleted, err := s.sessions.DeleteByToken(ctx, token)
	if err != nil {
		return apperr.Internal(err)
	}
	if !deleted {
		return apperr.Authentication("invalid token")
	}
	return nil
}

// Resolve exchanges a token for its user. Every authenticated operation
// goes through here first.
func (s *AuthService) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperr.Authentication("authentication required")
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authentication("invalid token")
		}
		return nil, apperr.Internal(err)
	}
	if session.Expired(s.now()) {
		return nil, apperr.Authentication("invalid token")
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authentication("invalid token")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// UpdateProfile changes only the supplied fields and returns the fresh
// user record.
func (s *AuthService) UpdateProfile(ctx context.Context, user *model.User, update ProfileUpdate) (*model.User, error) {
	updates := map[string]interface{}{}
	if update.Email != nil {
		updates["email"] = strings.TrimSpace(*update.Email)
	}
	if update.FirstName != nil {
		updates["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		updates["last_name"] = *update.LastName
	}

	if err := s.users.UpdateFields(ctx, user, updates); err != nil {
		return nil, apperr.Internal(err)
	}

	fresh, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return fresh, nil
}

func (s *AuthService) issueToken(ctx context.Context, userID uint) (string, error) {
	session := &model.Session{
		Token:  uuid.NewString(),
		UserID: userID,
	}
	if s.tokenTTL > 0 {
		expires := s.now().Add(s.tokenTTL)
		session.ExpiresAt = &expires
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", apperr.Internal(err)
	}
	return session.Token, nil
}

// SweepExpiredSessions removes sessions past their expiry. With no TTL
// configured there is nothing to remove.
func (s *AuthService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}
