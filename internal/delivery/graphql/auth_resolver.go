package graphql

import (
	"context"

	domainerrors "accounts/internal/domain/errors"

	"github.com/pkg/errors"
)

// Login exchanges credentials for a session token. It is the only public operation.
func (r *Resolver) Login(ctx context.Context, args loginArgs) (*authResolver, error) {
	if err := r.validate(ctx, &args); err != nil {
		return nil, err
	}

	session, err := r.authUC.ValidateUser(ctx, args.Data.toUsecase())
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			err = domainerrors.ErrUnknownEmail
		}

		return nil, r.toGraphQLError(ctx, err)
	}

	return &authResolver{session: session}, nil
}
