package cli

import (
	"context"
	"fmt"

	"github.com/asytuyf/genesis-vault/internal/constants"
)

type ReposCmd struct {
	List ReposListCmd `cmd:"" help:"Show the public repository showcase." default:"1"`
}

type ReposListCmd struct {
	User  string `help:"Account to list repositories for (default: configured user)." default:""`
	Limit int    `help:"Maximum repositories to show." default:"10"`
}

func (c *ReposListCmd) Run(ctx *Context) error {
	user := c.User
	if user == "" {
		user = ctx.Settings().GitHubUser
	}
	if user == "" {
		return fmt.Errorf("no account configured; set one with 'vault settings --github-user'")
	}

	timeout, cancel := context.WithTimeout(context.Background(), constants.GitHubHTTPTimeout)
	defer cancel()

	repos, err := ctx.GitHub.UserRepos(timeout, user)
	if err != nil {
		return fmt.Errorf("failed to fetch repositories: %w", err)
	}
	if len(repos) == 0 {
		fmt.Println("No public repositories found.")
		return nil
	}

	if c.Limit > 0 && len(repos) > c.Limit {
		repos = repos[:c.Limit]
	}
	for _, r := range repos {
		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Printf("★ %-4d %-24s %-12s %s\n", r.Stars, r.Name, lang, r.Description)
	}
	return nil
}
