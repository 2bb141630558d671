package graphql

import (
	"context"
	"log/slog"
	"net/http"

	domainerrors "accounts/internal/domain/errors"

	"github.com/pkg/errors"
)

// Values of extensions.code in GraphQL error responses.
const (
	codeBadUserInput        = "BAD_USER_INPUT"
	codeUnauthenticated     = "UNAUTHENTICATED"
	codeNotFound            = "NOT_FOUND"
	codeConflict            = "CONFLICT"
	codeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// resolverError is the error handed to graphql-go; its Extensions are copied into the response.
type resolverError struct {
	message    string
	extensions map[string]any
	cause      error
}

func (e *resolverError) Error() string {
	return e.message
}

func (e *resolverError) Extensions() map[string]any {
	return e.extensions
}

func (e *resolverError) Unwrap() error {
	return e.cause
}

// toGraphQLError translates usecase errors into client-facing GraphQL errors.
func (r *Resolver) toGraphQLError(ctx context.Context, err error) error {
	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		resErr := newResolverError(validationErr, err)
		resErr.extensions["fields"] = validationErr.Fields

		return resErr
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			r.log(ctx).Error("GraphQL operation failed", slog.String("reason", appErr.ErrorCode()), slog.Any("error", err))
		}

		return newResolverError(appErr, err)
	}

	r.log(ctx).Error("Unhandled GraphQL error", slog.Any("error", err))

	return newResolverError(domainerrors.ErrInternalError, err)
}

func newResolverError(appErr domainerrors.AppError, cause error) *resolverError {
	return &resolverError{
		message: appErr.Message(),
		extensions: map[string]any{
			"code":   extensionCode(appErr.HTTPCode()),
			"status": appErr.HTTPCode(),
			"reason": appErr.ErrorCode(),
		},
		cause: cause,
	}
}

func extensionCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return codeBadUserInput
	case http.StatusUnauthorized:
		return codeUnauthenticated
	case http.StatusNotFound:
		return codeNotFound
	case http.StatusConflict:
		return codeConflict
	default:
		return codeInternalServerError
	}
}
