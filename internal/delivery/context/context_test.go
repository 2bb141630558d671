package context

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRequestID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "client id kept", header: "req-123", keep: true},
		{name: "empty", header: ""},
		{name: "too long", header: strings.Repeat("x", maxRequestIDLength+1)},
		{name: "newline", header: "req\nforged=1"},
		{name: "space", header: "req 1"},
		{name: "non ascii", header: "pedido-ç"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRequestID(tt.header)

			if tt.keep {
				assert.Equal(t, tt.header, got)

				return
			}
			id, err := uuid.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), id.Version())
		})
	}
}

func TestRequestID_OutsideRequest(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, "req-1", RequestID(WithRequestID(context.Background(), "req-1")))
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.New(slog.DiscardHandler)
	scoped := slog.New(slog.DiscardHandler)

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}

func TestWithUser_TagsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	user := &entity.User{ID: uuid.New(), Name: "Test Valid"}

	ctx = WithUser(ctx, user)
	GetLogger(ctx).Info("resolved")

	got, ok := UserFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, user, got)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, user.ID.String(), entry["user_id"])
}

func TestWithUser_WithoutLogger(t *testing.T) {
	ctx := WithUser(context.Background(), &entity.User{ID: uuid.New()})

	_, ok := UserFromContext(ctx)
	assert.True(t, ok)
	assert.Nil(t, GetLogger(ctx))
}

func TestUserFromContext_Anonymous(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	_, ok = UserFromContext(WithUser(context.Background(), nil))
	assert.False(t, ok)
}
