package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/colts18seth/jobly/internal/auth"
	"github.com/colts18seth/jobly/internal/domain"
	"github.com/colts18seth/jobly/internal/events"
	"github.com/colts18seth/jobly/internal/repository"
	apperrors "github.com/colts18seth/jobly/pkg/util/errorutil"
)

const invalidCredentialsMessage = "Invalid user/password"

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateToken(username string, isAdmin bool) (string, time.Time, error)
}

// LoginLimiter tracks failed logins per username.
type LoginLimiter interface {
	Allow(ctx context.Context, username string) bool
	RecordFailure(ctx context.Context, username string)
	Reset(ctx context.Context, username string)
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	PhotoURL  *string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	limiter    LoginLimiter
	bcryptCost int
	publisher
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     TokenIssuer
	Limiter    LoginLimiter
	BcryptCost int
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service. A nil Limiter disables throttling.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		limiter:    deps.Limiter,
		bcryptCost: deps.BcryptCost,
		publisher:  newPublisher(deps.Dispatcher, deps.Logger),
	}
}

// Register creates a non-admin account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return "", err
	}
	user, err := s.users.Create(ctx, domain.User{
		Username:  input.Username,
		Password:  hash,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		PhotoURL:  input.PhotoURL,
	})
	if err != nil {
		return "", resolveDuplicate(err,
			fmt.Sprintf("duplicate user: %s", input.Username),
			map[string]any{"username": input.Username})
	}

	token, _, err := s.tokens.GenerateToken(user.Username, user.IsAdmin)
	if err != nil {
		return "", err
	}
	s.publish(ctx, events.EventUserCreated, resourceUser, user.Username, nil)
	return token, nil
}

// Login verifies a username/password pair and issues a token. Unknown users
// and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if s.limiter != nil && !s.limiter.Allow(ctx, username) {
		return "", apperrors.NewUnauthorized("too many failed login attempts")
	}

	user, err := s.users.GetWithPassword(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return "", s.loginFailed(ctx, username)
		}
		return "", err
	}
	if err := auth.ComparePassword(user.Password, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", s.loginFailed(ctx, username)
		}
		return "", err
	}

	if s.limiter != nil {
		s.limiter.Reset(ctx, username)
	}
	token, _, err := s.tokens.GenerateToken(user.Username, user.IsAdmin)
	return token, err
}

func (s *AuthService) loginFailed(ctx context.Context, username string) error {
	if s.limiter != nil {
		s.limiter.RecordFailure(ctx, username)
	}
	return apperrors.NewValidationError(invalidCredentialsMessage, nil)
}
