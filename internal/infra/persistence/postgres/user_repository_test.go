package postgres

import (
	"context"
	"testing"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, repo repository.UserRepository, name, email string) *entity.User {
	user := &entity.User{Name: name, Email: email, PasswordHash: "hashed-" + name}
	require.NoError(t, repo.Create(context.Background(), user))

	return user
}

func TestUserRepository_Create(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	user := &entity.User{Name: "Test Valid", Email: "test_valid@email.com", PasswordHash: "hash"}
	err := repo.Create(context.Background(), user)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, uuid.Version(7), user.ID.Version())
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.IsZero())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	createTestUser(t, repo, "First", "dup@email.com")

	err := repo.Create(context.Background(), &entity.User{Name: "Second", Email: "dup@email.com", PasswordHash: "hash"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	created := createTestUser(t, repo, "Alice", "alice@email.com")

	t.Run("found", func(t *testing.T) {
		user, err := repo.FindByID(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "alice@email.com", user.Email)
		assert.Equal(t, "hashed-Alice", user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		user, err := repo.FindByID(ctx, uuid.New())

		assert.Nil(t, user)
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestUserRepository_FindOne(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	alice := createTestUser(t, repo, "Alice", "alice@email.com")
	bob := createTestUser(t, repo, "Bob", "bob@email.com")

	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name    string
		filter  repository.UserFilter
		wantID  uuid.UUID
		wantErr error
	}{
		{name: "by email", filter: repository.UserFilter{Email: strPtr("bob@email.com")}, wantID: bob.ID},
		{name: "by name", filter: repository.UserFilter{Name: strPtr("Alice")}, wantID: alice.ID},
		{name: "by id", filter: repository.UserFilter{ID: &bob.ID}, wantID: bob.ID},
		{
			name:   "all fields must match",
			filter: repository.UserFilter{Name: strPtr("Alice"), Email: strPtr("alice@email.com")},
			wantID: alice.ID,
		},
		{
			name:    "conflicting fields",
			filter:  repository.UserFilter{Name: strPtr("Alice"), Email: strPtr("bob@email.com")},
			wantErr: repository.ErrUserNotFound,
		},
		{name: "unknown email", filter: repository.UserFilter{Email: strPtr("nobody@email.com")}, wantErr: repository.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := repo.FindOne(ctx, tt.filter)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, user.ID)
		})
	}
}

func TestUserRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	createTestUser(t, repo, "Alice", "alice@email.com")
	time.Sleep(time.Millisecond)
	createTestUser(t, repo, "Bob", "bob@email.com")

	users, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	user := createTestUser(t, repo, "Alice", "alice@email.com")
	createTestUser(t, repo, "Bob", "bob@email.com")

	t.Run("partial update keeps other columns", func(t *testing.T) {
		name := "Alice Updated"
		affected, err := repo.Update(ctx, user.ID, repository.UserChanges{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		stored, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice Updated", stored.Name)
		assert.Equal(t, "alice@email.com", stored.Email)
		assert.Equal(t, "hashed-Alice", stored.PasswordHash)
	})

	t.Run("password hash column", func(t *testing.T) {
		hash := "new-hash"
		affected, err := repo.Update(ctx, user.ID, repository.UserChanges{PasswordHash: &hash})

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		stored, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "new-hash", stored.PasswordHash)
	})

	t.Run("empty changes touch nothing", func(t *testing.T) {
		affected, err := repo.Update(ctx, user.ID, repository.UserChanges{})

		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "Ghost"
		affected, err := repo.Update(ctx, uuid.New(), repository.UserChanges{Name: &name})

		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		email := "bob@email.com"
		_, err := repo.Update(ctx, user.ID, repository.UserChanges{Email: &email})

		assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	user := createTestUser(t, repo, "Alice", "alice@email.com")

	affected, err := repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	affected, err = repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}
