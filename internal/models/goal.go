package models

import "github.com/asytuyf/genesis-vault/internal/constants"

// Goal is a directive-log entry.
type Goal struct {
	ID       string             `json:"id"`
	Project  string             `json:"project"`
	Task     string             `json:"task"`
	Priority constants.Priority `json:"priority"`
	Date     string             `json:"date"` // YYYY-MM-DD
}
