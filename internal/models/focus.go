package models

// FocusSettings are the pomodoro durations, in minutes.
type FocusSettings struct {
	WorkMinutes  int `json:"work_minutes"`
	BreakMinutes int `json:"break_minutes"`
}

// FocusLog records completed work sessions per calendar day.
type FocusLog struct {
	Sessions map[string]int `json:"sessions"` // day -> completed work sessions
}

// SessionsOn returns the number of completed work sessions on the given day.
func (l FocusLog) SessionsOn(day string) int {
	if l.Sessions == nil {
		return 0
	}
	return l.Sessions[day]
}
