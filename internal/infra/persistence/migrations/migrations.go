// Package migrations applies the versioned SQL schema embedded in the binary.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"

	"accounts/internal/errors"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedMigrations embed.FS

const migrationsDir = "sql"

// Dialects accepted by Up.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// Up applies every pending migration and returns the resulting schema version.
func Up(ctx context.Context, db *sql.DB, dialect string, logger *slog.Logger) (int64, error) {
	if err := prepare(dialect, logger); err != nil {
		return 0, err
	}

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return 0, errors.Wrap(err, "failed to run goose migrations")
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read schema version")
	}

	return version, nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, dialect string, logger *slog.Logger) error {
	if err := prepare(dialect, logger); err != nil {
		return err
	}

	return errors.Wrap(goose.DownContext(ctx, db, migrationsDir), "failed to roll back migration")
}

func prepare(dialect string, logger *slog.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(&gooseLogger{logger: logger})

	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrapf(err, "failed to set goose dialect %q", dialect)
	}

	return nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Info("goose", slog.String("message", fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	if l.logger != nil {
		l.logger.Error("goose", slog.String("message", fmt.Sprintf(format, v...)))
	}
	os.Exit(1)
}
