package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/openbookings/appointment-backend/internal/auth"
	"github.com/openbookings/appointment-backend/internal/config"
	"github.com/openbookings/appointment-backend/internal/db"
	"github.com/openbookings/appointment-backend/internal/owner"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "bookctl",
		Usage: "Operational tasks for the appointment booking service.",
		Commands: []*cli.Command{
			migrateCommand(),
			createOwnerCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply the database schema and exit.",
		Action: func(c *cli.Context) error {
			dsn := os.Getenv("DB_DSN")
			if dsn == "" {
				return fmt.Errorf("DB_DSN is required")
			}

			pool, err := db.NewPool(c.Context, dsn)
			if err != nil {
				return fmt.Errorf("connect to db failed: %w", err)
			}
			defer pool.Close()

			if err := db.Migrate(c.Context, pool); err != nil {
				return err
			}

			slog.Info("schema applied")
			return nil
		},
	}
}

func createOwnerCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-owner",
		Usage: "Register an owner account without going through the API.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true, Usage: "Login email for the new owner."},
			&cli.StringFlag{Name: "password", Required: true, Usage: "Initial password (min 8 characters)."},
			&cli.StringFlag{Name: "name", Usage: "Display name shown on the booking page."},
		},
		Action: func(c *cli.Context) error {
			dsn := os.Getenv("DB_DSN")
			if dsn == "" {
				return fmt.Errorf("DB_DSN is required")
			}

			pool, err := db.NewPool(c.Context, dsn)
			if err != nil {
				return fmt.Errorf("connect to db failed: %w", err)
			}
			defer pool.Close()

			cost, err := config.BcryptCost()
			if err != nil {
				return err
			}

			repo := owner.NewPgxRepository(pool)
			service := owner.NewService(repo, auth.NewBcryptPasswordHasherWithCost(cost))

			o, err := service.Register(c.Context, c.String("email"), c.String("password"), c.String("name"))
			if err != nil {
				return fmt.Errorf("register owner failed: %w", err)
			}

			slog.Info("owner created", "id", o.ID, "email", o.Email)
			return nil
		},
	}
}
