package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - migrate:     Apply (or roll back) the database schema
// - create-user: Create an account from the command line

func main() {
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	createUserCmd := flag.NewFlagSet("create-user", flag.ExitOnError)

	// migrate parameters
	migrateDown := migrateCmd.Bool("down", false, "Roll back the most recent migration instead of applying pending ones")

	// create-user parameters
	createName := createUserCmd.String("name", "", "Display name of the new user")
	createEmail := createUserCmd.String("email", "", "E-mail (login) of the new user")
	createPassword := createUserCmd.String("password", "", "Password of the new user (at least 8 characters)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flags := ctlFlags{
		Migrate: migrateFlags{
			cmd:  migrateCmd,
			down: migrateDown,
		},
		CreateUser: createUserFlags{
			cmd:      createUserCmd,
			name:     createName,
			email:    createEmail,
			password: createPassword,
		},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type ctlFlags struct {
	Migrate    migrateFlags
	CreateUser createUserFlags
}

type migrateFlags struct {
	cmd  *flag.FlagSet
	down *bool
}

type createUserFlags struct {
	cmd      *flag.FlagSet
	name     *string
	email    *string
	password *string
}

func runSubcommand(ctx context.Context, flags *ctlFlags) error {
	switch os.Args[1] {
	case "migrate":
		return handleMigrate(ctx, flags)
	case "create-user":
		return handleCreateUser(ctx, flags)
	default:
		printUsage()

		return errors.New("unknown subcommand")
	}
}

func handleMigrate(ctx context.Context, flags *ctlFlags) error {
	if err := flags.Migrate.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse migrate flags")
	}

	return runMigrate(ctx, *flags.Migrate.down)
}

func handleCreateUser(ctx context.Context, flags *ctlFlags) error {
	if err := flags.CreateUser.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse create-user flags")
	}

	return runCreateUser(ctx, newUserArgs{
		Name:     *flags.CreateUser.name,
		Email:    *flags.CreateUser.email,
		Password: *flags.CreateUser.password,
	})
}

func printUsage() {
	fmt.Println("Usage: accountsctl <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  migrate       Apply pending database migrations (-down rolls back one)")
	fmt.Println("  create-user   Create an account, e.g. the first one used to obtain a token")
	fmt.Println("")
	fmt.Println("Use 'accountsctl <command> -h' for more information about a command.")
}
