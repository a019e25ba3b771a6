// Package ledger owns the habit collection and answers streak and heatmap
// queries derived from habit history and the cached external event feed.
package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
)

// Result reports the outcome of a mutating operation. Mutations never
// return errors; a bad reference from stale UI state must not crash the
// session, but callers can still tell "already correct" from "invalid
// input".
type Result int

const (
	Ok Result = iota
	NotFound
	Rejected
)

// DayBucket is one calendar day of aggregated activity. Buckets are
// recomputed on every query and never persisted.
type DayBucket struct {
	Date     string
	Count    int
	HabitIDs []string
}

// Ledger holds the in-memory habit collection. It is not safe for
// concurrent use; the application drives it from a single event loop.
type Ledger struct {
	habits []models.Habit
	now    func() time.Time
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{now: time.Now}
}

// Load replaces the collection with habits read from storage. The input is
// deep-copied so later ledger mutations never write into slices the store
// still holds.
func (l *Ledger) Load(habits []models.Habit) {
	l.habits = cloneHabits(habits)
}

// SetClock overrides the wall clock, either with the timezone-aware clock
// from settings or a fixed clock in tests.
func (l *Ledger) SetClock(now func() time.Time) {
	l.now = now
}

// Habits returns a deep copy of the current collection. Callers may retain
// the snapshot across mutations (the persistence outbox marshals it on a
// worker goroutine) without observing later toggles.
func (l *Ledger) Habits() []models.Habit {
	return cloneHabits(l.habits)
}

func cloneHabits(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, len(habits))
	for i, h := range habits {
		out[i] = h
		out[i].History = make([]string, len(h.History))
		copy(out[i].History, h.History)
	}
	return out
}

// Habit returns the habit with the given id.
func (l *Ledger) Habit(id string) (models.Habit, bool) {
	for _, h := range l.habits {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// Today returns the current calendar day.
func (l *Ledger) Today() string {
	return l.now().Format(constants.DateFormat)
}

// AddHabit creates a habit with a fresh identifier and empty history. The
// name must be non-empty after trimming; otherwise the operation is
// rejected. Two habits may share a name.
func (l *Ledger) AddHabit(name, color string) (models.Habit, Result) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, Rejected
	}
	if !constants.ValidHabitColor(color) {
		color = constants.DefaultHabitColor
	}
	habit := models.Habit{
		ID:      uuid.New().String(),
		Name:    name,
		Color:   color,
		History: []string{},
	}
	l.habits = append(l.habits, habit)
	return habit, Ok
}

// RemoveHabit drops the habit with the given id. Removing an unknown id is
// a no-op, not an error.
func (l *Ledger) RemoveHabit(id string) Result {
	for i, h := range l.habits {
		if h.ID == id {
			l.habits = append(l.habits[:i], l.habits[i+1:]...)
			return Ok
		}
	}
	return NotFound
}

// RenameHabit updates the display label of a habit.
func (l *Ledger) RenameHabit(id, name string) Result {
	name = strings.TrimSpace(name)
	if name == "" {
		return Rejected
	}
	for i := range l.habits {
		if l.habits[i].ID == id {
			l.habits[i].Name = name
			return Ok
		}
	}
	return NotFound
}

// RecolorHabit updates the palette color of a habit.
func (l *Ledger) RecolorHabit(id, color string) Result {
	if !constants.ValidHabitColor(color) {
		return Rejected
	}
	for i := range l.habits {
		if l.habits[i].ID == id {
			l.habits[i].Color = color
			return Ok
		}
	}
	return NotFound
}

// ToggleCompletion flips the habit's membership for the given day: present
// days are removed, absent days added. The toggle is idempotent over pairs
// of calls.
func (l *Ledger) ToggleCompletion(habitID, day string) Result {
	if _, err := time.Parse(constants.DateFormat, day); err != nil {
		return Rejected
	}
	for i := range l.habits {
		if l.habits[i].ID != habitID {
			continue
		}
		h := &l.habits[i]
		for j, d := range h.History {
			if d == day {
				h.History = append(h.History[:j], h.History[j+1:]...)
				return Ok
			}
		}
		h.History = append(h.History, day)
		return Ok
	}
	return NotFound
}

// CurrentStreak counts consecutive completed days walking backward from
// today. If today is not in the history the streak is 0, even when
// yesterday was completed.
func (l *Ledger) CurrentStreak(habit models.Habit) int {
	return CurrentStreakAt(habit, l.now())
}

// CurrentStreakAt is CurrentStreak anchored at an explicit point in time.
func CurrentStreakAt(habit models.Habit, today time.Time) int {
	done := make(map[string]bool, len(habit.History))
	for _, d := range habit.History {
		done[d] = true
	}
	streak := 0
	day := today
	for done[day.Format(constants.DateFormat)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak returns the length of the longest run of consecutive days
// anywhere in the history. Empty history yields 0, a single entry 1. Ties
// between runs return only the maximum length.
func LongestStreak(habit models.Habit) int {
	if len(habit.History) == 0 {
		return 0
	}
	days := make([]string, 0, len(habit.History))
	seen := make(map[string]bool, len(habit.History))
	for _, d := range habit.History {
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Strings(days)

	longest, run := 1, 1
	prev, err := time.Parse(constants.DateFormat, days[0])
	if err != nil {
		return 0
	}
	for _, d := range days[1:] {
		cur, err := time.Parse(constants.DateFormat, d)
		if err != nil {
			continue
		}
		if cur.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = cur
	}
	return longest
}

// BuildHeatmap aggregates the habit collection and the day-bucketed event
// counts into a dense sequence covering the trailing windowDays-day window
// ending today, oldest first. Every day in the window appears exactly once
// even with zero activity.
func (l *Ledger) BuildHeatmap(events map[string]int, windowDays int) []DayBucket {
	return BuildHeatmapAt(l.habits, events, windowDays, l.now())
}

// BuildHeatmapAt is BuildHeatmap anchored at an explicit point in time. The
// window is taken as given; range limits are enforced where the value enters
// (flag parsing, settings validation).
func BuildHeatmapAt(habits []models.Habit, events map[string]int, windowDays int, today time.Time) []DayBucket {
	if windowDays < 1 {
		windowDays = 1
	}

	buckets := make([]DayBucket, 0, windowDays)
	start := today.AddDate(0, 0, -(windowDays - 1))
	for i := 0; i < windowDays; i++ {
		day := start.AddDate(0, 0, i)
		date := day.Format(constants.DateFormat)
		bucket := DayBucket{Date: date}
		for _, h := range habits {
			if h.Completed(date) {
				bucket.Count++
				bucket.HabitIDs = append(bucket.HabitIDs, h.ID)
			}
		}
		bucket.Count += events[date]
		buckets = append(buckets, bucket)
	}
	return buckets
}

// WeekRows groups a dense bucket sequence into rows of seven for
// calendar-style display. The first row is left-padded with zero-value
// placeholder buckets so the first real day lands on its weekday column.
func WeekRows(buckets []DayBucket) [][]DayBucket {
	if len(buckets) == 0 {
		return nil
	}
	first, err := time.Parse(constants.DateFormat, buckets[0].Date)
	if err != nil {
		return nil
	}

	pad := int(first.Weekday())
	padded := make([]DayBucket, 0, pad+len(buckets))
	for i := 0; i < pad; i++ {
		padded = append(padded, DayBucket{})
	}
	padded = append(padded, buckets...)

	var rows [][]DayBucket
	for len(padded) > 0 {
		n := constants.HeatmapWeekLen
		if len(padded) < n {
			n = len(padded)
		}
		rows = append(rows, padded[:n])
		padded = padded[n:]
	}
	return rows
}

// BucketEvents collapses raw feed events into per-day counts.
func BucketEvents(events []models.ActivityEvent) map[string]int {
	byDay := make(map[string]int, len(events))
	for _, e := range events {
		byDay[e.Day()]++
	}
	return byDay
}
