package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logCapture struct {
	buf bytes.Buffer
}

func (lc *logCapture) logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&lc.buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (lc *logCapture) entries(t *testing.T) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(lc.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}

	return entries
}

// newTestEcho mounts the request-id and logger middlewares the way the HTTP server does.
// The route-level middleware stands in for the auth middleware.
func newTestEcho(logger *slog.Logger, debug bool, routeMiddleware echo.MiddlewareFunc, handler echo.HandlerFunc) *echo.Echo {
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)
	if routeMiddleware != nil {
		e.POST("/graphql", handler, routeMiddleware)
	} else {
		e.POST("/graphql", handler)
	}

	return e
}

func TestRequestIDMiddleware_KeepsClientID(t *testing.T) {
	var seen string
	e := newTestEcho(slog.New(slog.DiscardHandler), false, nil, func(c echo.Context) error {
		seen = deliverycontext.RequestID(c.Request().Context())

		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDMiddleware_ReplacesUnsafeID(t *testing.T) {
	e := newTestEcho(slog.New(slog.DiscardHandler), false, nil, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "bad id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	got := rec.Header().Get(deliverycontext.HeaderXRequestID)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}

func TestLoggerMiddleware_TagsCallerResolvedAfterIt(t *testing.T) {
	capture := &logCapture{}
	user := &entity.User{ID: uuid.New(), Name: "Test Valid"}
	asCaller := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.SetRequest(c.Request().WithContext(deliverycontext.WithUser(c.Request().Context(), user)))

			return next(c)
		}
	}

	e := newTestEcho(capture.logger(), true, asCaller, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "req-7")
	e.ServeHTTP(httptest.NewRecorder(), req)

	entries := capture.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "HTTP Request", entries[0]["msg"])
	assert.Equal(t, "req-7", entries[0]["request_id"])
	assert.Equal(t, user.ID.String(), entries[0]["user_id"])
	assert.Equal(t, float64(http.StatusOK), entries[0]["status"])
	assert.NotContains(t, entries[0], "anonymous")
}

func TestLoggerMiddleware_SkipsSuccessOutsideDebug(t *testing.T) {
	capture := &logCapture{}
	e := newTestEcho(capture.logger(), false, nil, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/graphql", nil))

	assert.Empty(t, capture.entries(t))
}

func TestLoggerMiddleware_LogsFailuresWithErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status float64
		level  string
		code   string
	}{
		{name: "app error", err: domainerrors.ErrUserNotFound, status: http.StatusNotFound, level: "WARN", code: "USER_NOT_FOUND"},
		{name: "validation error", err: domainerrors.NewValidationError(domainerrors.FieldError{Field: "email", Message: "x"}), status: http.StatusBadRequest, level: "WARN", code: "VALIDATION_FAILED"},
		{name: "echo error", err: echo.NewHTTPError(http.StatusRequestEntityTooLarge), status: http.StatusRequestEntityTooLarge, level: "WARN"},
		{name: "unknown error", err: assert.AnError, status: http.StatusInternalServerError, level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capture := &logCapture{}
			e := newTestEcho(capture.logger(), false, nil, func(echo.Context) error {
				return tt.err
			})

			e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/graphql", nil))

			entries := capture.entries(t)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.status, entries[0]["status"])
			assert.Equal(t, tt.level, entries[0]["level"])
			assert.Equal(t, true, entries[0]["anonymous"])
			assert.NotEmpty(t, entries[0]["request_id"])
			if tt.code != "" {
				assert.Equal(t, tt.code, entries[0]["error_code"])
			} else {
				assert.NotContains(t, entries[0], "error_code")
			}
		})
	}
}
