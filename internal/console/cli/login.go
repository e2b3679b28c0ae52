// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joycdecor/joycdecor/internal/users/auth"
)

// # Session

func (app *App) loginCommand() *cobra.Command {
	var email, password string

	command := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Long: `Sign in with an email and password. The password is read from
--password, then DECOR_PASSWORD, then prompted.`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if email == "" {
				email = app.prompt("Email")
			}
			if password == "" {
				password = os.Getenv("DECOR_PASSWORD")
			}
			if password == "" {
				password = app.prompt("Password")
			}

			result, err := app.api().Login(command.Context(), email, password)
			if err != nil {
				return err
			}

			app.settings.Token = result.Token
			app.settings.Email = result.User.Email
			if err := app.settings.Save(app.settingsPath); err != nil {
				return err
			}

			if app.jsonOutput {
				return app.printJSON(result.User)
			}
			app.success("Logged in as %s (%s)", result.User.Email, result.User.Role)
			if !(auth.Identity{Role: result.User.Role}).IsAdmin() {
				app.warn("This account is not an admin; catalog commands will be refused.")
			}
			return nil
		},
	}

	command.Flags().StringVar(&email, "email", "", "Account email")
	command.Flags().StringVar(&password, "password", "", "Account password")
	return command
}

func (app *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			app.settings.Token = ""
			if err := app.settings.Save(app.settingsPath); err != nil {
				return err
			}
			app.success("Logged out")
			return nil
		},
	}
}

func (app *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Verify the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if app.settings.Token == "" {
				return errNotLoggedIn
			}

			identity, err := app.api().Verify(command.Context(), app.settings.Token)
			if err != nil {
				return err
			}

			if app.jsonOutput {
				return app.printJSON(identity)
			}
			fmt.Fprintf(app.Stdout, "%s  user=%s  role=%s\n", app.settings.Email, identity.UserID, identity.Role)
			return nil
		},
	}
}

// # Administration

func (app *App) usersCommand() *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts (admin only)",
	}

	var input auth.RegisterInput
	createAdmin := &cobra.Command{
		Use:   "create-admin",
		Short: "Register a new admin account",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if app.settings.Token == "" {
				return errNotLoggedIn
			}
			if input.Password == "" {
				input.Password = os.Getenv("DECOR_ADMIN_PASSWORD")
			}

			user, err := app.api().CreateAdmin(command.Context(), input)
			if err != nil {
				return err
			}

			if app.jsonOutput {
				return app.printJSON(user)
			}
			app.success("Created admin %s (%s)", user.Email, user.ID)
			return nil
		},
	}
	createAdmin.Flags().StringVar(&input.Name, "name", "", "Display name (default: email local part)")
	createAdmin.Flags().StringVar(&input.Email, "email", "", "Email address")
	createAdmin.Flags().StringVar(&input.Password, "password", "", "Initial password (or DECOR_ADMIN_PASSWORD)")
	_ = createAdmin.MarkFlagRequired("email")

	list := &cobra.Command{
		Use:   "list",
		Short: "List registered accounts",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if app.settings.Token == "" {
				return errNotLoggedIn
			}

			accounts, err := app.api().Users(command.Context())
			if err != nil {
				return err
			}
			if app.jsonOutput {
				return app.printJSON(accounts)
			}

			table := newTable(app.Stdout, "EMAIL", "NAME", "ROLE", "CREATED")
			for _, account := range accounts {
				table.row(account.Email, account.Name, string(account.Role), account.CreatedAt.Format("2006-01-02"))
			}
			return table.flush()
		},
	}

	users.AddCommand(createAdmin, list)
	return users
}
