// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements decorctl, the admin console for the JoycDecor catalog.

Every catalog write goes through a [lifecycle.Controller] backed by the REST
client, so the console follows the same rules as the admin pages: hosted
media only on create, optimistic rows, confirmation before delete and
background cleanup of orphaned media. The view and gallery commands drive
[rotation.Rotator] against a terminal "player".

The session (API URL and token) lives in a YAML file under the user config
directory; DECOR_API_URL and DECOR_TOKEN override it.
*/
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/joycdecor/joycdecor/internal/console/client"
	"github.com/joycdecor/joycdecor/internal/console/lifecycle"
	"github.com/joycdecor/joycdecor/internal/platform/constants"
)

// App carries the streams and session shared by every command.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// HTTPClient is used for API calls; nil means the client default.
	HTTPClient *http.Client

	settingsPath string
	apiURL       string
	jsonOutput   bool
	verbose      bool

	settings Settings
	logger   *slog.Logger
	input    *bufio.Reader
}

// NewApp returns an App bound to the process streams.
func NewApp() *App {
	return &App{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Execute runs decorctl and returns the process exit code.
func Execute() int {
	context, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp()
	if err := app.Command().ExecuteContext(context); err != nil {
		app.printError(err)
		return 1
	}
	return 0
}

// Command builds the root command tree.
func (app *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "decorctl [command] [flags]",
		Short: "Manage the JoycDecor decoration catalog",
		Long: `decorctl manages the JoycDecor catalog through its HTTP API.

Examples:
  # Sign in as an admin
  decorctl login --email owner@joycdecor.in

  # Publish an item, uploading local media first
  decorctl items add --title "Royal Mandap" --category Wedding --image ./mandap.jpg

  # Export, edit and replace an item
  decorctl items show 0190c3a4-... > mandap.yaml
  decorctl items edit 0190c3a4-... -f mandap.yaml

  # Watch an item's media rotate
  decorctl view royal-mandap-3f9a2c`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: app.preRun,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.settingsPath, "config", "", "Path to the session file (default: user config dir)")
	flags.StringVar(&app.apiURL, "api-url", "", "API base URL, e.g. https://api.joycdecor.in/api/v1")
	flags.BoolVarP(&app.jsonOutput, "json", "j", false, "Output in JSON format")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "Log requests and background cleanup")

	root.AddCommand(
		app.loginCommand(),
		app.logoutCommand(),
		app.whoamiCommand(),
		app.itemsCommand(),
		app.viewCommand(),
		app.galleryCommand(),
		app.usersCommand(),
		app.migrateCommand(),
		app.versionCommand(),
	)
	return root
}

// preRun loads .env, the session file and the logger before any command.
func (app *App) preRun(command *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cli: read .env: %w", err)
	}

	if app.settingsPath == "" {
		path, err := DefaultSettingsPath()
		if err != nil {
			return err
		}
		app.settingsPath = path
	}

	settings, err := LoadSettings(app.settingsPath)
	if err != nil {
		return err
	}
	if app.apiURL != "" {
		settings.APIURL = app.apiURL
	}
	app.settings = settings

	level := slog.LevelWarn
	if app.verbose {
		level = slog.LevelDebug
	}
	app.logger = slog.New(slog.NewTextHandler(app.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// # Collaborators

// api returns a REST client carrying the session token.
func (app *App) api() *client.Client {
	return client.New(app.settings.APIURL, app.HTTPClient, app.logger).WithToken(app.settings.Token)
}

// controller verifies the session as admin and builds a lifecycle controller.
// Callers must Close it so pending cleanup finishes before exit.
func (app *App) controller(context context.Context) (*lifecycle.Controller, *client.Client, error) {
	if app.settings.Token == "" {
		return nil, nil, errNotLoggedIn
	}

	api := app.api()
	locator, err := api.Locator(context)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch asset locator: %w", err)
	}

	controller, err := lifecycle.New(context, lifecycle.Dependencies{
		Repository:   api,
		Assets:       api,
		Verifier:     api,
		Token:        app.settings.Token,
		Locator:      locator,
		CleanupDelay: constants.AssetCleanupDelay,
		Logger:       app.logger,
	})
	if errors.Is(err, lifecycle.ErrNotAdmin) {
		return nil, nil, errors.New("this account is not an admin; catalog changes are refused")
	}
	if err != nil {
		return nil, nil, err
	}
	return controller, api, nil
}

var errNotLoggedIn = errors.New("not logged in; run \"decorctl login\" first")

func (app *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the decorctl version",
		RunE: func(command *cobra.Command, args []string) error {
			if app.jsonOutput {
				return app.printJSON(map[string]string{
					constants.FieldVersion: constants.AppVersion,
					"api_url":              app.settings.APIURL,
				})
			}
			fmt.Fprintf(app.Stdout, "decorctl %s\nAPI: %s\n", constants.AppVersion, app.settings.APIURL)
			return nil
		},
	}
}
