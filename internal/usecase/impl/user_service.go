// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		txManager: txManager,
		userRepo:  userRepo,
		hasher:    hasher,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns every stored user.
func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// GetUserByID returns the user with the given ID or ErrUserNotFound.
func (srv *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err, "failed to find user by id")
	}

	return user, nil
}

// FindUser returns the first user matching every set field of the filter.
func (srv *userService) FindUser(ctx context.Context, filter repository.UserFilter) (*entity.User, error) {
	user, err := srv.userRepo.FindOne(ctx, filter)
	if err != nil {
		return nil, mapLookupError(err, "failed to find user")
	}

	return user, nil
}

// CreateUser hashes the password and persists a new user.
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Creating user", slog.String("email", input.Email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, service.ErrPasswordTooLong) {
			return nil, passwordTooLongError()
		}
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			return nil, err
		}
		srv.log(ctx).Error("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.ErrUserCreationFailed.WrapMessage("failed to persist user")
	}
	if user.ID == uuid.Nil {
		return nil, domainerrors.ErrUserCreationFailed.WrapMessage("user was stored without an id")
	}

	srv.log(ctx).Info("User created", slog.String("userID", user.ID.String()))

	return user, nil
}

// UpdateUser applies a partial update and returns the merged user.
// An input without fields leaves the row untouched and returns the current user.
func (srv *userService) UpdateUser(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		current, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return mapLookupError(err, "failed to load user for update")
		}
		if input.IsEmpty() {
			updated = current

			return nil
		}

		changes, err := srv.buildChanges(input)
		if err != nil {
			return err
		}

		affected, err := userRepo.Update(ctx, id, changes)
		if err != nil {
			if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
				return err
			}
			srv.log(ctx).Error("Failed to update user", slog.String("userID", id.String()), slog.Any("error", err))

			return domainerrors.ErrUserUpdateFailed.WrapMessage("failed to update user")
		}
		if affected == 0 {
			return domainerrors.ErrUserUpdateFailed.WrapMessage("no rows were updated")
		}

		updated = applyChanges(current, changes)

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User updated", slog.String("userID", id.String()))

	return updated, nil
}

// DeleteUser removes the user and returns the last stored snapshot of it.
func (srv *userService) DeleteUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var deleted *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		current, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return mapLookupError(err, "failed to load user for deletion")
		}

		affected, err := userRepo.Delete(ctx, id)
		if err != nil {
			srv.log(ctx).Error("Failed to delete user", slog.String("userID", id.String()), slog.Any("error", err))

			return domainerrors.ErrUserDeletionFailed.WrapMessage("failed to delete user")
		}
		if affected == 0 {
			return domainerrors.ErrUserDeletionFailed.WrapMessage("no rows were deleted")
		}

		deleted = current

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User deleted", slog.String("userID", id.String()))

	return deleted, nil
}

func (srv *userService) buildChanges(input *usecase.UpdateUserInput) (repository.UserChanges, error) {
	changes := repository.UserChanges{
		Name:  input.Name,
		Email: input.Email,
	}
	if input.Password != nil {
		hash, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			if errors.Is(err, service.ErrPasswordTooLong) {
				return repository.UserChanges{}, passwordTooLongError()
			}

			return repository.UserChanges{}, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
		}
		changes.PasswordHash = &hash
	}

	return changes, nil
}

func applyChanges(user *entity.User, changes repository.UserChanges) *entity.User {
	merged := *user
	if changes.Name != nil {
		merged.Name = *changes.Name
	}
	if changes.Email != nil {
		merged.Email = *changes.Email
	}
	if changes.PasswordHash != nil {
		merged.PasswordHash = *changes.PasswordHash
	}

	return &merged
}

func mapLookupError(err error, message string) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}

	return errors.Wrap(err, message)
}

func passwordTooLongError() error {
	return domainerrors.NewValidationError(domainerrors.FieldError{
		Field:   "password",
		Message: fmt.Sprintf("Senha deve ter no máximo %d bytes", service.MaxPasswordBytes),
	})
}
