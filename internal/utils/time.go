package utils

import (
	"fmt"
	"time"

	"github.com/asytuyf/genesis-vault/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ClockIn resolves a configured IANA timezone into a wall clock. "Today" is
// determined by the user's configured timezone, not the system timezone. An
// unloadable name falls back to local time so a stale setting never stops
// day resolution.
func ClockIn(timezone string) func() time.Time {
	loc, err := LoadLocation(timezone)
	if err != nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// ParseDay parses a calendar-day string (YYYY-MM-DD).
func ParseDay(day string) (time.Time, error) {
	return time.Parse(constants.DateFormat, day)
}

// ValidDay reports whether the string is a well-formed calendar day.
func ValidDay(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// FormatCountdown renders remaining seconds as MM:SS.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
