package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/asytuyf/genesis-vault/internal/cli"
	"github.com/asytuyf/genesis-vault/internal/keyring"
)

// KeyringSetTokenCmd stores the API token in the OS keyring.
type KeyringSetTokenCmd struct {
	Token string `arg:"" optional:"" help:"API token (prompted when omitted)."`
}

func (cmd *KeyringSetTokenCmd) Run(ctx *cli.Context) error {
	token := cmd.Token
	if token == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("API token").
				EchoMode(huh.EchoModePassword).
				Value(&token),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("token prompt aborted: %w", err)
		}
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token must not be empty")
	}

	if err := keyring.SetToken(token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	fmt.Println("✓ API token stored in OS keyring")
	return nil
}

// KeyringSetAdminCmd stores the admin password used to gate publishes.
type KeyringSetAdminCmd struct{}

func (cmd *KeyringSetAdminCmd) Run(ctx *cli.Context) error {
	var password, confirm string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Admin password").
			EchoMode(huh.EchoModePassword).
			Value(&password),
		huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("password prompt aborted: %w", err)
	}
	if password == "" {
		return errors.New("password must not be empty")
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	if err := keyring.SetAdminPassword(password); err != nil {
		return fmt.Errorf("failed to store admin password in keyring: %w", err)
	}
	fmt.Println("✓ Admin password stored in OS keyring")
	return nil
}

// KeyringDeleteCmd removes stored secrets from the OS keyring.
type KeyringDeleteCmd struct {
	Token bool `help:"Delete the API token."`
	Admin bool `help:"Delete the admin password."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if !cmd.Token && !cmd.Admin {
		return errors.New("nothing to delete; pass --token and/or --admin")
	}
	if cmd.Token {
		if err := keyring.DeleteToken(); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				fmt.Println("No API token stored.")
			} else {
				return fmt.Errorf("failed to delete token: %w", err)
			}
		} else {
			fmt.Println("✓ API token deleted from OS keyring")
		}
	}
	if cmd.Admin {
		if err := keyring.DeleteAdminPassword(); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				fmt.Println("No admin password stored.")
			} else {
				return fmt.Errorf("failed to delete admin password: %w", err)
			}
		} else {
			fmt.Println("✓ Admin password deleted from OS keyring")
		}
	}
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return errors.New("OS keyring is not available on this system")
	}
	fmt.Println("✓ OS keyring is available")

	if _, err := keyring.GetToken(); err == nil {
		fmt.Println("  API token: stored")
	} else {
		fmt.Println("  API token: not stored")
	}
	if _, err := keyring.GetAdminPassword(); err == nil {
		fmt.Println("  Admin password: stored")
	} else {
		fmt.Println("  Admin password: not stored")
	}
	return nil
}
