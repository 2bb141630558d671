package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"accounts/config"
	"accounts/internal/delivery/http/validator"
	"accounts/internal/infra/auth"
	logs "accounts/internal/infra/log"
	"accounts/internal/infra/persistence/migrations"
	"accounts/internal/infra/persistence/postgres"
	"accounts/internal/usecase"
	"accounts/internal/usecase/impl"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type newUserArgs struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}

// ctlEnv bundles what every subcommand needs.
type ctlEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
	sqlDB  *sql.DB
}

func openEnv() (*ctlEnv, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return nil, err
	}

	db, err := postgres.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return &ctlEnv{cfg: cfg, logger: logger, db: db, sqlDB: sqlDB}, nil
}

func (env *ctlEnv) close() {
	_ = env.sqlDB.Close()
}

func runMigrate(ctx context.Context, down bool) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.close()

	if down {
		return migrations.Down(ctx, env.sqlDB, migrations.DialectPostgres, env.logger)
	}

	version, err := migrations.Up(ctx, env.sqlDB, migrations.DialectPostgres, env.logger)
	if err != nil {
		return err
	}
	fmt.Printf("Schema is at version %d\n", version)

	return nil
}

func runCreateUser(ctx context.Context, args newUserArgs) error {
	if err := validator.New().Validate(&args); err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.close()

	if err := postgres.PrepareSchema(ctx, env.sqlDB, env.logger); err != nil {
		return err
	}

	userUC := impl.NewUserService(
		postgres.NewTransactionManager(env.db),
		postgres.NewUserRepository(env.db),
		auth.NewBcryptHasher(env.cfg),
		env.logger,
	)

	user, err := userUC.CreateUser(ctx, &usecase.CreateUserInput{
		Name:     args.Name,
		Email:    args.Email,
		Password: args.Password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created user %s (%s)\n", user.ID, user.Email)

	return nil
}
