package models

// Habit is a named recurring practice with a set of completion days.
type Habit struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	History []string `json:"history"` // YYYY-MM-DD days, each at most once
}

// Completed reports whether the habit was marked done on the given day.
func (h Habit) Completed(day string) bool {
	for _, d := range h.History {
		if d == day {
			return true
		}
	}
	return false
}
