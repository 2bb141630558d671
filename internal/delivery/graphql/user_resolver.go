package graphql

import (
	"context"

	domainerrors "accounts/internal/domain/errors"
)

// Users resolves the list of every user.
func (r *Resolver) Users(ctx context.Context) ([]*userResolver, error) {
	if _, err := r.requireUser(ctx); err != nil {
		return nil, err
	}

	users, err := r.userUC.ListUsers(ctx)
	if err != nil {
		return nil, r.toGraphQLError(ctx, err)
	}

	return newUserResolvers(users), nil
}

// User resolves the first user matching every field of the query.
func (r *Resolver) User(ctx context.Context, args userQueryArgs) (*userResolver, error) {
	if _, err := r.requireUser(ctx); err != nil {
		return nil, err
	}
	if err := r.validate(ctx, &args); err != nil {
		return nil, err
	}
	if args.Query.isEmpty() {
		return nil, r.toGraphQLError(ctx, domainerrors.NewValidationError(domainerrors.FieldError{
			Field:   "query",
			Message: "Informe ao menos um campo para a busca",
		}))
	}

	filter, err := args.Query.toFilter()
	if err != nil {
		return nil, r.toGraphQLError(ctx, err)
	}

	user, err := r.userUC.FindUser(ctx, filter)
	if err != nil {
		return nil, r.toGraphQLError(ctx, err)
	}

	return &userResolver{user: user}, nil
}

// UserByID resolves a single user by id.
func (r *Resolver) UserByID(ctx context.Context, args idArgs) (*userResolver, error) {
	if _, err := r.requireUser(ctx); err != nil {
		return nil, err
	}
	if err := r.validate(ctx, &args); err != nil {
		return nil, err
	}

	id, err := parseID(args.ID)
	if err != nil {
		return nil, r.toGraphQLError(ctx, err)
	}

	user, err := r.userUC.GetUserByID(ctx, id)
	if err != nil {
		return nil, r.toGraphQLError(ctx, err)
	}

	return &userResolver{user: user}, nil
}

// Me resolves the caller identified by the bearer token.
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	user, err := r.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	return &userResolver{user: user}, nil
}

// CreateUser registers a new user.
func (r *Resolver) CreateUser(ctx context.Context, args createUserArgs) (*userResolver, error) {
	if _, err := r.requireUser(ctx); err != nil {
		return nil, err
	}
	if err := r.validate(ctx, &args); err != nil {
		return nil, err
	}

	user, err := r.userUC.CreateUser(ctx, args.Data.toUsecase())
	if err != nil {
		return nil, r.toGraphQLError(ctx, err)
	}

	return &userResolver{user: user}, nil
}

// UpdateUser applies a partial update to a user.
func (r *Resolver) UpdateUser(ctx context.Context, args updateUserArgs) (*userResolver, error) {
	if _, err := r.requireUser(ctx); err != nil {
		return nil, err
	}
	if err := r.validate(ctx, &args); err != nil {
		return nil, err
	}

	id, err := parseID(args.ID)
	if err != nil {
		return nil, r.toGraphQLError(ctx, err)
	}

	user, err := r.userUC.UpdateUser(ctx, id, args.Data.toUsecase())
	if err != nil {
		return nil, r.toGraphQLError(ctx, err)
	}

	return &userResolver{user: user}, nil
}

// DeleteUser removes a user and resolves its last state.
func (r *Resolver) DeleteUser(ctx context.Context, args idArgs) (*userResolver, error) {
	if _, err := r.requireUser(ctx); err != nil {
		return nil, err
	}
	if err := r.validate(ctx, &args); err != nil {
		return nil, err
	}

	id, err := parseID(args.ID)
	if err != nil {
		return nil, r.toGraphQLError(ctx, err)
	}

	user, err := r.userUC.DeleteUser(ctx, id)
	if err != nil {
		return nil, r.toGraphQLError(ctx, err)
	}

	return &userResolver{user: user}, nil
}
