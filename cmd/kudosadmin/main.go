package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/store"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.App{
		Name:  "kudosadmin",
		Usage: "provisioning tool for the kudos backend database",
		Before: func(cctx *cli.Context) error {
			_ = godotenv.Load()
			logging.Setup(cctx.String("log-level"))
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "migrate",
			Usage:  "create or update the database schema",
			Action: runMigrate,
		},
		{
			Name:      "create-user",
			Usage:     "add a directory user",
			ArgsUsage: "<username>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "password", EnvVars: []string{"KUDOS_USER_PASSWORD"}, Required: true},
				&cli.StringFlag{Name: "first-name"},
				&cli.StringFlag{Name: "last-name"},
				&cli.StringFlag{Name: "role", Value: string(models.RoleUser), Usage: "user or admin"},
				&cli.BoolFlag{Name: "inactive", Usage: "create the account deactivated"},
			},
			Action: runCreateUser,
		},
		{
			Name:      "set-active",
			Usage:     "activate or deactivate a user",
			ArgsUsage: "<username>",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "active", Value: true},
			},
			Action: runSetActive,
		},
	}
	app.RunAndExitOnError()
}

func openStore() (*store.GormStore, error) {
	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		return nil, err
	}
	return store.NewGormStore(database.DB), nil
}

func runMigrate(cctx *cli.Context) error {
	if _, err := openStore(); err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(database.DB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Println("schema up to date")
	return nil
}

func runCreateUser(cctx *cli.Context) error {
	username := cctx.Args().First()
	if username == "" {
		return errors.New("need to provide username as an argument")
	}

	role, err := models.ParseRole(cctx.String("role"))
	if err != nil {
		return err
	}
	hash, err := services.HashPassword(cctx.String("password"))
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	user := &models.User{
		Username:  username,
		Email:     cctx.String("email"),
		Password:  hash,
		FirstName: cctx.String("first-name"),
		LastName:  cctx.String("last-name"),
		Role:      role,
		IsActive:  !cctx.Bool("inactive"),
	}
	if err := st.CreateUser(cctx.Context, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user created", "user_id", user.ID, "username", user.Username, "role", user.Role)
	fmt.Printf("created user %s (id=%d, role=%s)\n", user.Username, user.ID, user.Role)
	return nil
}

func runSetActive(cctx *cli.Context) error {
	username := cctx.Args().First()
	if username == "" {
		return errors.New("need to provide username as an argument")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	user, err := st.FindUserByUsername(cctx.Context, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "no user named %q\n", username)
		}
		return err
	}

	active := cctx.Bool("active")
	if err := st.SetUserActive(cctx.Context, user.ID, active); err != nil {
		return err
	}
	fmt.Printf("user %s active=%t\n", user.Username, active)
	return nil
}
