package impl

import (
	"context"
	"log/slog"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userUC       usecase.UserUsecase
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	userUC usecase.UserUsecase,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		userUC:       userUC,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ValidateUser looks the user up by e-mail, checks the password and signs a token.
// An unknown e-mail surfaces as ErrUserNotFound.
func (srv *authService) ValidateUser(ctx context.Context, input *usecase.LoginInput) (*entity.AuthSession, error) {
	email := input.Email
	user, err := srv.userUC.FindUser(ctx, repository.UserFilter{Email: &email})
	if err != nil {
		return nil, err
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login rejected", slog.String("userID", user.ID.String()))

		return nil, domainerrors.ErrInvalidPassword
	}

	token, err := srv.tokenService.IssueToken(user.ID, user.Name)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("userID", user.ID.String()), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("failed to sign token")
	}

	srv.log(ctx).Info("User logged in", slog.String("userID", user.ID.String()))

	return &entity.AuthSession{User: user, Token: token}, nil
}

// Authenticate validates a bearer token and loads the user it names.
// Every failure collapses into ErrUnauthenticated.
func (srv *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		srv.log(ctx).Debug("Token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthenticated
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	user, err := srv.userUC.GetUserByID(ctx, userID)
	if err != nil {
		srv.log(ctx).Debug("Token subject not found", slog.String("userID", userID.String()), slog.Any("error", err))

		return nil, domainerrors.ErrUnauthenticated
	}

	return user, nil
}
