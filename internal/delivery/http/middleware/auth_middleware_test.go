package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	mockUC "accounts/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runAuthenticate passes a request through the middleware and returns the user the next handler saw.
func runAuthenticate(t *testing.T, m *AuthMiddleware, authHeader string) (*entity.User, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		seen  *entity.User
		found bool
	)
	err := m.Authenticate(func(c echo.Context) error {
		seen, found = deliverycontext.UserFromContext(c.Request().Context())

		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	return seen, found
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	authUC := mockUC.NewMockAuthUsecase(t)
	m := NewAuthMiddleware(authUC, newDiscardLogger())
	user := &entity.User{ID: uuid.New(), Name: "Test Valid"}

	authUC.EXPECT().Authenticate(mock.Anything, "good-token").Return(user, nil)

	seen, found := runAuthenticate(t, m, "Bearer good-token")

	assert.True(t, found)
	assert.Equal(t, user, seen)
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	authUC := mockUC.NewMockAuthUsecase(t)
	m := NewAuthMiddleware(authUC, newDiscardLogger())
	user := &entity.User{ID: uuid.New()}

	authUC.EXPECT().Authenticate(mock.Anything, "good-token").Return(user, nil)

	_, found := runAuthenticate(t, m, "bearer good-token")

	assert.True(t, found)
}

func TestAuthMiddleware_InvalidTokenContinuesAnonymously(t *testing.T) {
	authUC := mockUC.NewMockAuthUsecase(t)
	m := NewAuthMiddleware(authUC, newDiscardLogger())

	authUC.EXPECT().Authenticate(mock.Anything, "expired").Return(nil, domainerrors.ErrUnauthenticated)

	seen, found := runAuthenticate(t, m, "Bearer expired")

	assert.False(t, found)
	assert.Nil(t, seen)
}

func TestAuthMiddleware_IgnoresMissingOrForeignSchemes(t *testing.T) {
	for _, header := range []string{"", "Basic dXNlcjpwYXNz", "Bearer ", "Bearer"} {
		t.Run(header, func(t *testing.T) {
			// No expectations: the usecase must not be consulted.
			authUC := mockUC.NewMockAuthUsecase(t)
			m := NewAuthMiddleware(authUC, newDiscardLogger())

			_, found := runAuthenticate(t, m, header)

			assert.False(t, found)
		})
	}
}
