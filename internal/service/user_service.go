package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/user-notification-service/internal/auth"
	"github.com/spec-kit/user-notification-service/internal/config"
	"github.com/spec-kit/user-notification-service/internal/domain"
	"github.com/spec-kit/user-notification-service/internal/events"
	"github.com/spec-kit/user-notification-service/internal/repository"
	apperrors "github.com/spec-kit/user-notification-service/pkg/util"
)

// RegisterInput is the registration payload. Status is optional.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Status   string `json:"status" validate:"omitempty,user_status"`
}

// LoginInput is the credential payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the issued token.
type LoginResult struct {
	Token string
}

// UserService coordinates registration, login and user CRUD.
type UserService struct {
	users    repository.UserRepository
	hasher   *auth.PasswordHasher
	tokenMgr *auth.TokenManager
	validate *validator.Validate
	events   publisher
	now      func() time.Time
}

// UserDependencies encapsulates collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:    deps.UserRepo,
		hasher:   auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		validate: newValidator(),
		events:   publisher{dispatcher: deps.Dispatcher, logger: logger},
		now:      time.Now,
	}
}

// Register creates a new account with a hashed password and status "new" unless given.
func (s *UserService) Register(ctx context.Context, in RegisterInput) error {
	if err := s.validate.Struct(in); err != nil {
		return validationError(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return apperrors.NewValidationError("Password too long", map[string]any{"field": "password"})
		}
		return apperrors.NewRequestFailed(http.StatusBadRequest, "Error registering user", err)
	}

	status := domain.UserStatus(in.Status)
	if status == "" {
		status = domain.UserStatusNew
	}

	user := &domain.User{
		UserID:    uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  hash,
		Role:      in.Role,
		Status:    status,
		CreatedAt: s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return apperrors.NewConflict("User already exists", nil)
		}
		return apperrors.NewRequestFailed(http.StatusBadRequest, "Error registering user", err)
	}

	s.events.publish(ctx, events.EventUserRegistered, user.UserID, events.UserPayload{
		Email:  user.Email,
		Role:   user.Role,
		Status: string(user.Status),
	})
	return nil
}

// Login verifies credentials and account status, then issues a token carrying email and role.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User not found", nil)
		}
		return nil, apperrors.NewRequestFailed(http.StatusBadRequest, "Error logging in user", err)
	}

	if user.Status.BlocksLogin() {
		return nil, apperrors.NewUnauthorized("User account is not active")
	}

	// Any comparison failure, including a malformed stored hash, rejects the login.
	if err := s.hasher.Compare(user.Password, in.Password); err != nil {
		return nil, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, err := s.tokenMgr.GenerateToken(user.Email, user.Role)
	if err != nil {
		return nil, apperrors.NewRequestFailed(http.StatusBadRequest, "Error logging in user", err)
	}

	s.events.publish(ctx, events.EventUserLoggedIn, user.UserID, events.UserPayload{Email: user.Email, Role: user.Role})
	return &LoginResult{Token: token}, nil
}

// List returns every stored user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewRequestFailed(http.StatusNotFound, "No users found", err)
	}
	return users, nil
}

// Get returns one user by id.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User does not exist", nil)
		}
		return nil, apperrors.NewRequestFailed(http.StatusNotFound, "Error fetching user", err)
	}
	return user, nil
}

// Update applies the supplied fields in one atomic store call. A password in
// the patch is hashed before it reaches the store. A missing user is reported
// as a conflict even when the patch is also invalid.
func (s *UserService) Update(ctx context.Context, userID string, patch domain.UserPatch) (*domain.User, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, s.rejectPatch(ctx, userID, validationError(err))
	}

	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooLong) {
				return nil, s.rejectPatch(ctx, userID,
					apperrors.NewValidationError("Password too long", map[string]any{"field": "password"}))
			}
			return nil, apperrors.NewRequestFailed(http.StatusBadRequest, "Error updating user", err)
		}
		patch.Password = &hash
	}

	user, err := s.users.Update(ctx, userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewConflict("User does not exist", nil)
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, apperrors.NewConflict("User already exists", nil)
		}
		return nil, apperrors.NewRequestFailed(http.StatusBadRequest, "Error updating user", err)
	}

	s.events.publish(ctx, events.EventUserUpdated, userID, events.UserPayload{
		Status: string(user.Status),
		Fields: fieldNames(patch.Fields()),
	})
	return user, nil
}

// rejectPatch returns cause unless the user is absent.
func (s *UserService) rejectPatch(ctx context.Context, userID string, cause error) error {
	if _, err := s.users.GetByID(ctx, userID); errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewConflict("User does not exist", nil)
	}
	return cause
}

// Delete removes a user. A missing id is a conflict, not a not-found.
func (s *UserService) Delete(ctx context.Context, userID string) (*domain.DeleteResult, error) {
	deleted, err := s.users.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewConflict("User does not exist", nil)
		}
		return nil, apperrors.NewRequestFailed(http.StatusBadRequest, "Error deleting user", err)
	}

	s.events.publish(ctx, events.EventUserDeleted, userID, nil)
	return &domain.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *UserService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
