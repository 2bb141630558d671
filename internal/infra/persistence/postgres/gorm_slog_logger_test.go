package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	"accounts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupLoggedDB(t *testing.T, debug bool) (*gorm.DB, *bytes.Buffer, *slog.Logger) {
	t.Helper()

	buf := &bytes.Buffer{}
	base := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 newGormSlogLogger(base, cfg),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.UserModel{}))
	buf.Reset()

	return db, buf, base
}

func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}

	return entries
}

func requestContext(base *slog.Logger, requestID string) context.Context {
	ctx := deliverycontext.WithRequestID(context.Background(), requestID)

	return deliverycontext.WithLogger(ctx, base.With(slog.String("request_id", requestID)))
}

func TestGormSlogLogger_DuplicateEmailIsTaggedAndRedacted(t *testing.T) {
	db, buf, base := setupLoggedDB(t, false)
	repo := NewUserRepository(db)
	require.NoError(t, repo.Create(context.Background(), &entity.User{Name: "Alice", Email: "alice@email.com", PasswordHash: "secret-hash"}))
	buf.Reset()

	err := repo.Create(requestContext(base, "req-dup"), &entity.User{Name: "Copy", Email: "alice@email.com", PasswordHash: "secret-hash"})
	require.Error(t, err)

	entries := logEntries(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "GORM constraint violation", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "req-dup", entries[0]["request_id"])
	assert.NotContains(t, entries[0]["sql"], "alice@email.com")
	assert.NotContains(t, entries[0]["sql"], "secret-hash")
}

func TestGormSlogLogger_NotFoundIsSilent(t *testing.T) {
	db, buf, base := setupLoggedDB(t, false)

	_, err := NewUserRepository(db).FindByID(requestContext(base, "req-miss"), uuid.New())
	require.Error(t, err)

	assert.Empty(t, logEntries(t, buf))
}

func TestGormSlogLogger_DebugLogsQueriesWithParams(t *testing.T) {
	db, buf, base := setupLoggedDB(t, true)

	err := NewUserRepository(db).Create(requestContext(base, "req-new"), &entity.User{Name: "Alice", Email: "alice@email.com", PasswordHash: "hash"})
	require.NoError(t, err)

	entries := logEntries(t, buf)
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "GORM query", last["msg"])
	assert.Equal(t, "req-new", last["request_id"])
	assert.Contains(t, last["sql"], "alice@email.com")
}

func TestGormSlogLogger_FallsBackToBaseLogger(t *testing.T) {
	db, buf, _ := setupLoggedDB(t, false)

	require.Error(t, db.Exec("SELECT * FROM missing_table").Error)

	entries := logEntries(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "GORM query failed", entries[0]["msg"])
	assert.Equal(t, "ERROR", entries[0]["level"])
	assert.NotContains(t, entries[0], "request_id")
}

func TestGormSlogLogger_Silent(t *testing.T) {
	buf := &bytes.Buffer{}
	l := newGormSlogLogger(slog.New(slog.NewJSONHandler(buf, nil)), nil).LogMode(logger.Silent)
	l.Error(context.Background(), "boom %d", 1)

	assert.Empty(t, buf.String())
}
