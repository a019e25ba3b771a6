package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asytuyf/genesis-vault/internal/markdown"
	"github.com/asytuyf/genesis-vault/internal/models"
)

type SnippetCmd struct {
	Add    SnippetAddCmd    `cmd:"" help:"Add a snippet to the archive."`
	List   SnippetListCmd   `cmd:"" help:"List archived snippets."`
	Show   SnippetShowCmd   `cmd:"" help:"Render a snippet."`
	Edit   SnippetEditCmd   `cmd:"" help:"Replace a snippet's content."`
	Delete SnippetDeleteCmd `cmd:"" help:"Delete a snippet."`
}

func findSnippet(ctx *Context, ref string) (models.Snippet, error) {
	snippets, err := ctx.Store.GetSnippets()
	if err != nil {
		return models.Snippet{}, err
	}
	for _, sn := range snippets {
		if strings.EqualFold(sn.Title, ref) || strings.HasPrefix(sn.ID, ref) {
			return sn, nil
		}
	}
	return models.Snippet{}, fmt.Errorf("snippet %q not found", ref)
}

type SnippetAddCmd struct {
	Title    string `arg:"" help:"Snippet title."`
	Category string `help:"Category label." default:""`
	File     string `help:"Read content from a file instead of stdin." default:""`
}

func (c *SnippetAddCmd) Run(ctx *Context) error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("snippet title must not be empty")
	}

	var content []byte
	var err error
	if c.File != "" {
		content, err = os.ReadFile(c.File)
	} else {
		fmt.Println("Enter content, end with Ctrl-D:")
		content, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	now := time.Now().UTC()
	sn := models.Snippet{
		ID:        uuid.New().String(),
		Title:     c.Title,
		Category:  c.Category,
		Content:   string(content),
		Images:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ctx.Store.AddSnippet(sn); err != nil {
		return err
	}
	fmt.Printf("Archived snippet: %s\n", c.Title)
	return nil
}

type SnippetListCmd struct {
	Category   string `help:"Only show snippets in this category." default:""`
	Search     string `help:"Only show snippets matching this text in title, category or content." default:""`
	Categories bool   `help:"List the distinct categories instead of snippets."`
}

// matchSnippet reports whether the query appears in the snippet's title,
// category or content, case-insensitively.
func matchSnippet(sn models.Snippet, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(sn.Title), q) ||
		strings.Contains(strings.ToLower(sn.Category), q) ||
		strings.Contains(strings.ToLower(sn.Content), q)
}

func (c *SnippetListCmd) Run(ctx *Context) error {
	snippets, err := ctx.Store.GetSnippets()
	if err != nil {
		return err
	}

	if c.Categories {
		seen := map[string]bool{}
		for _, sn := range snippets {
			if sn.Category != "" && !seen[strings.ToLower(sn.Category)] {
				seen[strings.ToLower(sn.Category)] = true
				fmt.Println(sn.Category)
			}
		}
		if len(seen) == 0 {
			fmt.Println("No categories found.")
		}
		return nil
	}

	shown := 0
	for _, sn := range snippets {
		if c.Category != "" && !strings.EqualFold(sn.Category, c.Category) {
			continue
		}
		if c.Search != "" && !matchSnippet(sn, c.Search) {
			continue
		}
		label := sn.Title
		if sn.Category != "" {
			label = fmt.Sprintf("%s  (%s)", sn.Title, sn.Category)
		}
		fmt.Printf("%s  %s\n", sn.UpdatedAt.Format("2006-01-02"), label)
		shown++
	}
	if shown == 0 {
		fmt.Println("No snippets found.")
	}
	return nil
}

type SnippetShowCmd struct {
	Title string `arg:"" help:"Snippet title or id."`
	Raw   bool   `help:"Print raw content without styling."`
}

func (c *SnippetShowCmd) Run(ctx *Context) error {
	sn, err := findSnippet(ctx, c.Title)
	if err != nil {
		return err
	}
	if c.Raw {
		fmt.Println(sn.Content)
		return nil
	}
	fmt.Println(markdown.Render("# " + sn.Title + "\n" + sn.Content))
	return nil
}

type SnippetEditCmd struct {
	Title string `arg:"" help:"Snippet title or id."`
	File  string `help:"Read replacement content from a file instead of stdin." default:""`
}

func (c *SnippetEditCmd) Run(ctx *Context) error {
	sn, err := findSnippet(ctx, c.Title)
	if err != nil {
		return err
	}

	var content []byte
	if c.File != "" {
		content, err = os.ReadFile(c.File)
	} else {
		fmt.Println("Enter replacement content, end with Ctrl-D:")
		content, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	sn.Content = string(content)
	if err := ctx.Store.UpdateSnippet(sn); err != nil {
		return err
	}
	fmt.Printf("Updated snippet: %s\n", sn.Title)
	return nil
}

type SnippetDeleteCmd struct {
	Title string `arg:"" help:"Snippet title or id."`
}

func (c *SnippetDeleteCmd) Run(ctx *Context) error {
	sn, err := findSnippet(ctx, c.Title)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteSnippet(sn.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted snippet: %s\n", sn.Title)
	return nil
}

