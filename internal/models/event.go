package models

import "time"

// ActivityEvent is a single record from the external per-user event feed.
// Events are read-only to the vault; they are bucketed by calendar day and
// overlaid on the habit heatmap.
type ActivityEvent struct {
	CreatedAt time.Time `json:"created_at"`
	Kind      string    `json:"kind"`
	Repo      string    `json:"repo"`
}

// Day returns the calendar day (YYYY-MM-DD) the event falls on.
func (e ActivityEvent) Day() string {
	return e.CreatedAt.Format("2006-01-02")
}

// EventCache holds the most recently synced feed along with the day-bucketed
// counts derived from it. A stale cache is acceptable; it is replaced
// wholesale on every sync.
type EventCache struct {
	Source   string          `json:"source"`
	SyncedAt time.Time       `json:"synced_at"`
	Events   []ActivityEvent `json:"events"`
	ByDay    map[string]int  `json:"by_day"`
}
