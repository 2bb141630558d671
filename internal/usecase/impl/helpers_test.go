package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"
	mockRepo "accounts/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUser() *entity.User {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	return &entity.User{
		ID:           uuid.New(),
		Name:         "Test Valid",
		Email:        "test_valid@email.com",
		PasswordHash: "hashed_password",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func strPtr(s string) *string {
	return &s
}

// expectTransaction makes txManager run the callback against a factory handing out txUserRepo.
func expectTransaction(t *testing.T, txManager *mockRepo.MockTransactionManager) *mockRepo.MockUserRepository {
	txUserRepo := mockRepo.NewMockUserRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().UserRepo().Return(txUserRepo)

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})

	return txUserRepo
}
