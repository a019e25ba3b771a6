package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/asytuyf/genesis-vault/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is found in the keyring
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetToken retrieves the source-host API token from the OS keyring.
// Returns ErrNotFound if no token is stored. The token is only needed for
// publishing; event-feed and repo reads are unauthenticated.
func GetToken() (string, error) {
	return get(constants.DefaultKeyringToken)
}

// SetToken stores the source-host API token in the OS keyring.
func SetToken(token string) error {
	return set(constants.DefaultKeyringToken, token)
}

// DeleteToken removes the source-host API token from the OS keyring.
func DeleteToken() error {
	return del(constants.DefaultKeyringToken)
}

// GetAdminPassword retrieves the publish credential from the OS keyring.
func GetAdminPassword() (string, error) {
	return get(constants.DefaultKeyringAdmin)
}

// SetAdminPassword stores the publish credential in the OS keyring.
func SetAdminPassword(password string) error {
	return set(constants.DefaultKeyringAdmin, password)
}

// DeleteAdminPassword removes the publish credential from the OS keyring.
func DeleteAdminPassword() error {
	return del(constants.DefaultKeyringAdmin)
}

func get(user string) (string, error) {
	secret, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func set(user, secret string) error {
	if secret == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(constants.AppName, user, secret); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}
	return nil
}

func del(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
