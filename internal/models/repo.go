package models

import "time"

// Repo is a public repository summary from the source-host API, shown on
// the showcase page.
type Repo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Fork        bool      `json:"fork"`
	HTMLURL     string    `json:"html_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}
