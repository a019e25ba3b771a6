package models

import "time"

// Snippet is a command-snippet archive entry. Content is a markdown subset
// (headings, fenced code blocks, bullet lists, inline code).
type Snippet struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
