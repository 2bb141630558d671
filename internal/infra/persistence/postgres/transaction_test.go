package postgres

import (
	"context"
	"testing"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_Execute_Commits(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	txManager := NewTransactionManager(db)

	var created *entity.User
	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		created = &entity.User{Name: "Alice", Email: "alice@email.com", PasswordHash: "hash"}

		return factory.UserRepo().Create(ctx, created)
	})
	require.NoError(t, err)

	user, err := NewUserRepository(db).FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
}

func TestTransactionManager_Execute_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	txManager := NewTransactionManager(db)
	errBoom := errors.New("boom")

	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		user := &entity.User{Name: "Alice", Email: "alice@email.com", PasswordHash: "hash"}
		if err := factory.UserRepo().Create(ctx, user); err != nil {
			return err
		}

		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	users, err := NewUserRepository(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestTransactionManager_Execute_RollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	txManager := NewTransactionManager(db)

	assert.Panics(t, func() {
		_ = txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
			user := &entity.User{Name: "Alice", Email: "alice@email.com", PasswordHash: "hash"}
			if err := factory.UserRepo().Create(ctx, user); err != nil {
				return err
			}
			panic("unexpected")
		})
	})

	users, err := NewUserRepository(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestTransactionManager_Execute_BeginFailure(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	called := false
	err = NewTransactionManager(db).Execute(ctx, func(repository.RepositoryFactory) error {
		called = true

		return nil
	})

	assert.ErrorIs(t, err, domainerrors.ErrTransactionFailed)
	assert.False(t, called)
}
