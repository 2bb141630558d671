package graphql

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/delivery/http/validator"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	graphqlgo "github.com/graph-gophers/graphql-go"
)

// isoTimeLayout renders timestamps with millisecond precision in UTC.
const isoTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	userUC    usecase.UserUsecase
	authUC    usecase.AuthUsecase
	validator *validator.CustomValidator
	logger    *slog.Logger
}

// NewResolver is the constructor for the root resolver.
func NewResolver(
	userUC usecase.UserUsecase,
	authUC usecase.AuthUsecase,
	inputValidator *validator.CustomValidator,
	logger *slog.Logger,
) *Resolver {
	return &Resolver{
		userUC:    userUC,
		authUC:    authUC,
		validator: inputValidator,
		logger:    logger,
	}
}

func (r *Resolver) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, r.logger)
}

// requireUser rejects the operation unless the request carried a valid bearer token.
func (r *Resolver) requireUser(ctx context.Context) (*entity.User, error) {
	user, ok := deliverycontext.UserFromContext(ctx)
	if !ok {
		return nil, r.toGraphQLError(ctx, domainerrors.ErrUnauthenticated)
	}

	return user, nil
}

func (r *Resolver) validate(ctx context.Context, input any) error {
	if err := r.validator.Validate(input); err != nil {
		return r.toGraphQLError(ctx, err)
	}

	return nil
}

// parseID maps malformed ids to NotFound, since no stored user can carry them.
func parseID(id graphqlgo.ID) (uuid.UUID, error) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil, domainerrors.ErrUserNotFound
	}

	return parsed, nil
}

type userResolver struct {
	user *entity.User
}

func newUserResolvers(users []*entity.User) []*userResolver {
	resolvers := make([]*userResolver, 0, len(users))
	for _, user := range users {
		resolvers = append(resolvers, &userResolver{user: user})
	}

	return resolvers
}

func (u *userResolver) ID() graphqlgo.ID {
	return graphqlgo.ID(u.user.ID.String())
}

func (u *userResolver) Name() string {
	return u.user.Name
}

func (u *userResolver) Email() string {
	return u.user.Email
}

func (u *userResolver) CreatedAt() string {
	return formatTime(u.user.CreatedAt)
}

func (u *userResolver) UpdatedAt() string {
	return formatTime(u.user.UpdatedAt)
}

type authResolver struct {
	session *entity.AuthSession
}

func (a *authResolver) User() *userResolver {
	return &userResolver{user: a.session.User}
}

func (a *authResolver) Token() string {
	return a.session.Token
}

func formatTime(t time.Time) string {
	return t.UTC().Format(isoTimeLayout)
}
