package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/keyring"
	"github.com/asytuyf/genesis-vault/internal/publisher"
)

type PublishCmd struct {
	Goals    PublishGoalsCmd    `cmd:"" help:"Publish the directive log to the public site."`
	Snippets PublishSnippetsCmd `cmd:"" help:"Publish the snippet archive to the public site."`
}

// promptPassword collects the admin password, from the flag when given or
// an interactive prompt otherwise.
func promptPassword(flag string) (publisher.Credential, error) {
	if flag != "" {
		return publisher.NewCredential(flag), nil
	}
	var password string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Admin password").
			EchoMode(huh.EchoModePassword).
			Value(&password),
	))
	if err := form.Run(); err != nil {
		return publisher.Credential{}, fmt.Errorf("password prompt aborted: %w", err)
	}
	return publisher.NewCredential(password), nil
}

func newPublisher(ctx *Context) *publisher.Publisher {
	return publisher.New(ctx.GitHub, keyring.GetAdminPassword)
}

func reportPublishError(err error) error {
	if errors.Is(err, publisher.ErrUnauthorized) {
		return fmt.Errorf("wrong admin password")
	}
	if errors.Is(err, publisher.ErrNoPassword) {
		return fmt.Errorf("no admin password configured; set one with 'vault keyring set-admin'")
	}
	return err
}

type PublishGoalsCmd struct {
	Password string `help:"Admin password (prompted when omitted)." default:""`
}

func (c *PublishGoalsCmd) Run(ctx *Context) error {
	cred, err := promptPassword(c.Password)
	if err != nil {
		return err
	}

	goals, err := ctx.Store.GetGoals()
	if err != nil {
		return err
	}

	timeout, cancel := context.WithTimeout(context.Background(), constants.GitHubHTTPTimeout)
	defer cancel()

	if err := newPublisher(ctx).PublishGoals(timeout, cred, goals); err != nil {
		return reportPublishError(err)
	}
	fmt.Printf("Published %d directives to %s/%s\n", len(goals), constants.PublishRepoOwner, constants.PublishRepoName)
	return nil
}

type PublishSnippetsCmd struct {
	Password string `help:"Admin password (prompted when omitted)." default:""`
}

func (c *PublishSnippetsCmd) Run(ctx *Context) error {
	cred, err := promptPassword(c.Password)
	if err != nil {
		return err
	}

	snippets, err := ctx.Store.GetSnippets()
	if err != nil {
		return err
	}

	timeout, cancel := context.WithTimeout(context.Background(), constants.GitHubHTTPTimeout)
	defer cancel()

	if err := newPublisher(ctx).PublishSnippets(timeout, cred, snippets); err != nil {
		return reportPublishError(err)
	}
	fmt.Printf("Published %d snippets to %s/%s\n", len(snippets), constants.PublishRepoOwner, constants.PublishRepoName)
	return nil
}
