package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/asytuyf/genesis-vault/internal/cli"
	"github.com/asytuyf/genesis-vault/internal/cli/backups"
	"github.com/asytuyf/genesis-vault/internal/cli/system"
	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/errors"
	"github.com/asytuyf/genesis-vault/internal/github"
	"github.com/asytuyf/genesis-vault/internal/keyring"
	"github.com/asytuyf/genesis-vault/internal/ledger"
	"github.com/asytuyf/genesis-vault/internal/logger"
	"github.com/asytuyf/genesis-vault/internal/outbox"
	"github.com/asytuyf/genesis-vault/internal/storage"
	"github.com/asytuyf/genesis-vault/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path. A .db extension selects SQLite, anything else JSON." type:"path" default:"~/.config/genesis-vault/vault.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init   system.InitCmd   `cmd:"" help:"Initialize the vault store."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Serve  system.ServeCmd  `cmd:"" help:"Serve the admin update endpoints over HTTP."`

	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and day toggles."`
	Snippet  cli.SnippetCmd  `cmd:"" help:"Manage the snippet archive."`
	Goal     cli.GoalCmd     `cmd:"" help:"Manage the directive log."`
	Focus    cli.FocusCmd    `cmd:"" help:"Focus timer log and settings."`
	Repos    cli.ReposCmd    `cmd:"" help:"Show the repository showcase."`
	Publish  cli.PublishCmd  `cmd:"" help:"Publish shared documents to the remote repository."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage application settings."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`

	Keyring struct {
		SetToken system.KeyringSetTokenCmd `cmd:"" name:"set-token" help:"Store the GitHub API token."`
		SetAdmin system.KeyringSetAdminCmd `cmd:"" name:"set-admin" help:"Store the admin password."`
		Delete   system.KeyringDeleteCmd   `cmd:"" help:"Remove stored secrets."`
		Status   system.KeyringStatusCmd   `cmd:"" help:"Show which secrets are stored."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("vault"),
		kong.Description("Personal dashboard: habit streaks, snippet archive, directives, focus timer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	// Store format follows the file extension.
	var store storage.Provider
	if strings.EqualFold(filepath.Ext(CLI.Config), ".db") {
		store = storage.NewSQLiteStore(CLI.Config)
	} else {
		store = storage.NewJSONStore(CLI.Config)
	}

	var opts []github.Option
	if token, err := keyring.GetToken(); err == nil && token != "" {
		opts = append(opts, github.WithToken(token))
	}
	client := github.NewClient(opts...)

	appCtx := &cli.Context{
		Store:  store,
		Ledger: ledger.New(),
		Syncer: ledger.NewSyncer(client, store),
		Outbox: outbox.New(16),
		GitHub: client,
	}

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		// Day boundaries follow the configured timezone.
		if settings, err := store.GetSettings(); err == nil {
			appCtx.Ledger.SetClock(utils.ClockIn(settings.Timezone))
		}
	}

	err := ctx.Run(appCtx)
	appCtx.Outbox.Close()
	if err != nil {
		errors.Fatal(err)
	}
}
