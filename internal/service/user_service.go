package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/colts18seth/jobly/internal/auth"
	"github.com/colts18seth/jobly/internal/domain"
	"github.com/colts18seth/jobly/internal/events"
	"github.com/colts18seth/jobly/internal/querybuilder"
	"github.com/colts18seth/jobly/internal/repository"
	apperrors "github.com/colts18seth/jobly/pkg/util/errorutil"
)

const resourceUser = "user"

// UserService manages accounts after registration.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
	publisher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, publisher: newPublisher(dispatcher, logger)}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, resolveMissing(err, resourceUser, map[string]any{"username": username})
	}
	return user, nil
}

// Update applies a partial update. The field set is checked first, then a new
// password is hashed before the statement is built; the plaintext never
// reaches the database.
func (s *UserService) Update(ctx context.Context, username string, fields map[string]any) (*domain.User, error) {
	if err := querybuilder.CheckFields("username", repository.UserUpdatable, fields); err != nil {
		return nil, err
	}
	if raw, ok := fields["password"]; ok {
		plain, isString := raw.(string)
		if !isString || plain == "" {
			return nil, apperrors.NewValidationError("password must be a non-empty string",
				map[string]any{"field": "password"})
		}
		hashed, err := auth.HashPassword(plain, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		patched := make(map[string]any, len(fields))
		for k, v := range fields {
			patched[k] = v
		}
		patched["password"] = hashed
		fields = patched
	}

	updated, err := s.users.Update(ctx, username, fields)
	if err != nil {
		err = resolveMissing(err, resourceUser, map[string]any{"username": username})
		return nil, resolveDuplicate(err, "email already registered", nil)
	}
	s.publish(ctx, events.EventUserUpdated, resourceUser, username,
		events.UpdatedFieldsPayload{Fields: fieldNames(fields)})
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.users.Delete(ctx, username); err != nil {
		return resolveMissing(err, resourceUser, map[string]any{"username": username})
	}
	s.publish(ctx, events.EventUserDeleted, resourceUser, username, nil)
	return nil
}

// Promote grants or revokes admin rights.
func (s *UserService) Promote(ctx context.Context, username string, isAdmin bool) error {
	if err := s.users.SetAdmin(ctx, username, isAdmin); err != nil {
		return resolveMissing(err, resourceUser, map[string]any{"username": username})
	}
	s.publish(ctx, events.EventUserPromoted, resourceUser, username, map[string]any{"is_admin": isAdmin})
	return nil
}
