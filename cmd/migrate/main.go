package main

import (
	"fmt"
	"os"
	"strconv"

	"todostore/internal/migration"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		printUsage()
		return 1
	}

	migrator, err := migration.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create migrator: %v\n", err)
		return 1
	}
	defer migrator.Close()

	if err := runCommand(migrator, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runCommand(migrator *migration.Migrator, command string, args []string) error {
	switch command {
	case "up":
		if err := migrator.Up(); err != nil {
			return err
		}
		fmt.Println("Migrations applied successfully")
		return nil

	case "down":
		if err := migrator.Down(); err != nil {
			return err
		}
		fmt.Println("Migration rolled back successfully")
		return nil

	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		if dirty {
			fmt.Printf("Current version: %d (dirty)\n", version)
			fmt.Println("Warning: database is in a dirty state, use 'force' to fix")
		} else {
			fmt.Printf("Current version: %d\n", version)
		}
		return nil

	case "steps":
		n, err := intArg(args, "'steps' command requires number of steps")
		if err != nil {
			return err
		}
		if err := migrator.Steps(n); err != nil {
			return err
		}
		fmt.Printf("Ran %d migration steps\n", n)
		return nil

	case "force":
		version, err := intArg(args, "'force' command requires version number")
		if err != nil {
			return err
		}
		if err := migrator.Force(version); err != nil {
			return err
		}
		fmt.Printf("Forced migration version to %d\n", version)
		fmt.Println("Warning: this does not run migrations, make sure the schema matches")
		return nil

	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func intArg(args []string, missing string) (int, error) {
	if len(args) < 1 {
		printUsage()
		return 0, fmt.Errorf("%s", missing)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", args[0], err)
	}
	return n, nil
}

func printUsage() {
	fmt.Print(`Database Migration Tool

Usage:
  migrate <command> [arguments]

Commands:
  up              Apply all pending migrations
  down            Rollback the last migration
  version         Show current migration version
  steps <n>       Run n migrations (positive = up, negative = down)
  force <version> Force set the migration version (use with caution)

Environment Variables:
  DB_HOST         Database host (default: localhost)
  DB_PORT         Database port (default: 5432)
  DB_USER         Database user (default: postgres)
  DB_PASSWORD     Database password (default: postgres)
  DB_NAME         Database name (default: todos)
  DB_SSL_MODE     SSL mode (default: disable)
`)
}
