// Package publisher pushes the shared goal and snippet documents to the
// public repository through the contents API. Every publish is gated on an
// explicit admin credential; callers must prove they hold the password
// rather than relying on ambient state.
package publisher

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
)

var (
	// ErrUnauthorized is returned when the presented credential does not
	// match the stored admin password.
	ErrUnauthorized = errors.New("publisher: unauthorized")
	// ErrNoPassword is returned when no admin password has been configured.
	ErrNoPassword = errors.New("publisher: no admin password configured")
)

// Credential is a caller-supplied admin password. Holding a Credential value
// does not imply it is valid; Publisher checks it on every call.
type Credential struct {
	password string
}

// NewCredential wraps a raw password.
func NewCredential(password string) Credential {
	return Credential{password: password}
}

// ContentWriter is the remote document store. *github.Client satisfies it.
type ContentWriter interface {
	UpdateFile(ctx context.Context, owner, repo, path, message string, content []byte) error
}

// PasswordSource returns the stored admin password.
type PasswordSource func() (string, error)

// Publisher writes the shared documents after verifying the credential.
type Publisher struct {
	writer   ContentWriter
	password PasswordSource
	owner    string
	repo     string
}

// New returns a Publisher targeting the configured public repository.
func New(writer ContentWriter, password PasswordSource) *Publisher {
	return &Publisher{
		writer:   writer,
		password: password,
		owner:    constants.PublishRepoOwner,
		repo:     constants.PublishRepoName,
	}
}

// SetTarget overrides the destination repository.
func (p *Publisher) SetTarget(owner, repo string) {
	p.owner = owner
	p.repo = repo
}

// Verify checks the credential against the stored admin password.
func (p *Publisher) Verify(cred Credential) error {
	stored, err := p.password()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoPassword, err)
	}
	if stored == "" {
		return ErrNoPassword
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(cred.password)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// PublishGoals replaces the shared goal document wholesale.
func (p *Publisher) PublishGoals(ctx context.Context, cred Credential, goals []models.Goal) error {
	if goals == nil {
		goals = []models.Goal{}
	}
	return p.publish(ctx, cred, constants.GoalsDocumentPath, "admin: update goals via web panel", goals)
}

// PublishSnippets replaces the shared snippet document wholesale.
func (p *Publisher) PublishSnippets(ctx context.Context, cred Credential, snippets []models.Snippet) error {
	if snippets == nil {
		snippets = []models.Snippet{}
	}
	return p.publish(ctx, cred, constants.SnippetDocumentPath, "admin: update snippets via web panel", snippets)
}

func (p *Publisher) publish(ctx context.Context, cred Credential, path, message string, doc any) error {
	if err := p.Verify(cred); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document %s: %w", path, err)
	}
	if err := p.writer.UpdateFile(ctx, p.owner, p.repo, path, message, payload); err != nil {
		return fmt.Errorf("publish %s: %w", path, err)
	}
	return nil
}
