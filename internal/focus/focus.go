// Package focus implements the pomodoro work/break engine. The timer is
// driven by an injected clock so the TUI tick loop and tests can advance it
// deterministically.
package focus

import (
	"time"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
	"github.com/asytuyf/genesis-vault/internal/utils"
)

// Timer tracks a single alternating work/break countdown. Completed work
// sessions are tallied into a FocusLog keyed by calendar day.
type Timer struct {
	settings models.FocusSettings
	mode     constants.FocusMode
	running  bool
	deadline time.Time
	paused   time.Duration // remaining when paused
	log      models.FocusLog

	now func() time.Time
}

// NewTimer returns an idle work-mode timer. Zero or negative durations fall
// back to the defaults.
func NewTimer(settings models.FocusSettings, log models.FocusLog) *Timer {
	if settings.WorkMinutes <= 0 {
		settings.WorkMinutes = constants.DefaultWorkMinutes
	}
	if settings.BreakMinutes <= 0 {
		settings.BreakMinutes = constants.DefaultBreakMinutes
	}
	sessions := make(map[string]int, len(log.Sessions))
	for day, n := range log.Sessions {
		sessions[day] = n
	}
	t := &Timer{
		settings: settings,
		mode:     constants.FocusWork,
		log:      models.FocusLog{Sessions: sessions},
		now:      time.Now,
	}
	t.paused = t.duration(t.mode)
	return t
}

// SetClock overrides the wall clock.
func (t *Timer) SetClock(now func() time.Time) { t.now = now }

// Mode returns the current phase.
func (t *Timer) Mode() constants.FocusMode { return t.mode }

// Running reports whether the countdown is active.
func (t *Timer) Running() bool { return t.running }

// Log returns a copy of the accumulated session log. The copy is safe to
// marshal on another goroutine while the timer keeps recording.
func (t *Timer) Log() models.FocusLog {
	sessions := make(map[string]int, len(t.log.Sessions))
	for day, n := range t.log.Sessions {
		sessions[day] = n
	}
	return models.FocusLog{Sessions: sessions}
}

func (t *Timer) duration(mode constants.FocusMode) time.Duration {
	if mode == constants.FocusBreak {
		return time.Duration(t.settings.BreakMinutes) * time.Minute
	}
	return time.Duration(t.settings.WorkMinutes) * time.Minute
}

// Start begins or resumes the countdown.
func (t *Timer) Start() {
	if t.running {
		return
	}
	t.deadline = t.now().Add(t.paused)
	t.running = true
}

// Pause suspends the countdown, keeping the remaining time.
func (t *Timer) Pause() {
	if !t.running {
		return
	}
	t.paused = t.deadline.Sub(t.now())
	if t.paused < 0 {
		t.paused = 0
	}
	t.running = false
}

// Reset stops the countdown and restores the full duration of the current
// mode without switching modes.
func (t *Timer) Reset() {
	t.running = false
	t.paused = t.duration(t.mode)
}

// Skip abandons the current phase and moves to the next one, idle. Skipped
// work sessions are not counted.
func (t *Timer) Skip() {
	t.switchMode()
}

// Remaining returns the time left on the countdown, clamped at zero.
func (t *Timer) Remaining() time.Duration {
	var rem time.Duration
	if t.running {
		rem = t.deadline.Sub(t.now())
	} else {
		rem = t.paused
	}
	if rem < 0 {
		return 0
	}
	return rem
}

// Display renders the countdown as MM:SS.
func (t *Timer) Display() string {
	return utils.FormatCountdown(int(t.Remaining().Round(time.Second).Seconds()))
}

// Tick advances the engine. When a running countdown reaches zero the timer
// flips to the other mode and stops; a completed work phase is recorded in
// the log. Tick reports whether a phase just completed.
func (t *Timer) Tick() bool {
	if !t.running || t.Remaining() > 0 {
		return false
	}
	if t.mode == constants.FocusWork {
		t.record()
	}
	t.switchMode()
	return true
}

// SessionsToday returns the completed work sessions for the current day.
func (t *Timer) SessionsToday() int {
	return t.log.SessionsOn(t.now().Format(constants.DateFormat))
}

func (t *Timer) record() {
	if t.log.Sessions == nil {
		t.log.Sessions = make(map[string]int)
	}
	t.log.Sessions[t.now().Format(constants.DateFormat)]++
}

func (t *Timer) switchMode() {
	if t.mode == constants.FocusWork {
		t.mode = constants.FocusBreak
	} else {
		t.mode = constants.FocusWork
	}
	t.running = false
	t.paused = t.duration(t.mode)
}
