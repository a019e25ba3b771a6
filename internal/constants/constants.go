package constants

import "time"

// SessionState represents the current page of the TUI application
type SessionState int

// Priority represents the urgency of a goal
type Priority string

// FocusMode represents the phase of a focus session
type FocusMode string

const (
	AppName               = "genesis-vault"
	Version               = "v0.3.0"
	DefaultConfigPath     = "~/.config/genesis-vault/vault.json"
	DefaultKeyringToken   = "github-token"
	DefaultKeyringAdmin   = "admin-password"

	// DateFormat is the standard calendar-day format used throughout the
	// application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ClockFormat is the countdown display format (MM:SS is rendered by
	// hand; this is for wall-clock labels)
	ClockFormat = "15:04"

	// Heatmap defaults
	DefaultHeatmapDays = 7
	HeatmapWeekLen     = 7
	MaxHeatmapDays     = 365

	// Habit palette
	DefaultHabitColor = "orange"

	// GitHub API
	GitHubAPIBase      = "https://api.github.com"
	EventFeedPageSize  = 100
	GitHubHTTPTimeout  = 10 * time.Second

	// Publish targets (remote JSON documents rewritten wholesale)
	PublishRepoOwner    = "asytuyf"
	PublishRepoName     = "nixos-config"
	GoalsDocumentPath   = "public/goals.json"
	SnippetDocumentPath = "public/snippets.json"

	// Focus defaults (minutes)
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "vault-"

	// Priorities
	PriorityHigh   Priority = "High"
	PriorityNormal Priority = "Normal"

	// Focus modes
	FocusWork  FocusMode = "work"
	FocusBreak FocusMode = "break"
)

// Session states
const (
	StateStreaks SessionState = iota
	StateLibrary
	StateGoals
	StateFocus
	StateRepos
	StateAddHabit
	StateAddSnippet
	StateAddGoal
	StateViewSnippet
	StateConfirmDelete
)

// HabitPalette is the fixed set of accent colors a habit may carry. The
// first entry is the default.
var HabitPalette = []string{"orange", "emerald", "purple", "red", "blue", "zinc"}

// ValidHabitColor reports whether color is part of the palette.
func ValidHabitColor(color string) bool {
	for _, c := range HabitPalette {
		if c == color {
			return true
		}
	}
	return false
}
