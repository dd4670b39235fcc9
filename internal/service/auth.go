package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/vitortoniolo/webapp-showme/internal/access"
	"github.com/vitortoniolo/webapp-showme/internal/apperror"
	"github.com/vitortoniolo/webapp-showme/internal/models"
	"github.com/vitortoniolo/webapp-showme/internal/repository"
	"github.com/vitortoniolo/webapp-showme/internal/security"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, session *models.SessionToken) error
	FindByToken(ctx context.Context, token string) (models.SessionToken, error)
	Touch(ctx context.Context, id int64) error
	DeleteByToken(ctx context.Context, token string) error
	ListByUser(ctx context.Context, userID int64) ([]models.SessionToken, error)
}

type AuthService struct {
	users    UserStore
	sessions SessionStore
	log      zerolog.Logger
}

func NewAuthService(users UserStore, sessions SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

type SignupInput struct {
	Email    string
	Password string
	Name     *string
}

type AuthResult struct {
	Token string
	User  models.User
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (AuthResult, error) {
	email := access.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return AuthResult{}, apperror.Validation(
			apperror.FieldError{Field: "email", Message: "email and password are required"},
		)
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         input.Name,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return AuthResult{}, apperror.Conflict("email already registered")
		}
		return AuthResult{}, err
	}

	return s.issueToken(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	// Unknown email and wrong password produce the same error so the two
	// cases cannot be told apart.
	user, err := s.users.FindByEmail(ctx, access.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, apperror.Unauthorized("invalid credentials")
		}
		return AuthResult{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, apperror.Unauthorized("invalid credentials")
	}

	// A fresh token per login; existing sessions stay valid.
	return s.issueToken(ctx, user)
}

func (s *AuthService) issueToken(ctx context.Context, user models.User) (AuthResult, error) {
	token, err := security.NewSessionToken()
	if err != nil {
		return AuthResult{}, err
	}

	session := models.SessionToken{
		Token:  token,
		UserID: user.ID,
	}
	if err := s.sessions.Create(ctx, &session); err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Token: token, User: user}, nil
}

// Authenticate resolves a token to its user and records the use.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, apperror.Unauthorized("missing credentials")
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return models.User{}, apperror.Unauthorized("invalid session token")
		}
		return models.User{}, err
	}

	if err := s.sessions.Touch(ctx, session.ID); err != nil {
		s.log.Warn().Err(err).Int64("session_id", session.ID).Msg("touch session failed")
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, apperror.Unauthorized("invalid session token")
		}
		return models.User{}, err
	}
	return user, nil
}

// Sessions lists the user's active sessions, most recently used first.
func (s *AuthService) Sessions(ctx context.Context, user models.User) ([]models.SessionToken, error) {
	return s.sessions.ListByUser(ctx, user.ID)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperror.Unauthorized("missing credentials")
	}
	return s.sessions.DeleteByToken(ctx, token)
}
