package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/asytuyf/genesis-vault/internal/backup"
	"github.com/asytuyf/genesis-vault/internal/cli"
	"github.com/asytuyf/genesis-vault/internal/keyring"
	"github.com/asytuyf/genesis-vault/internal/utils"
	"github.com/asytuyf/genesis-vault/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: store reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	// Check 2: habit data valid
	if storeReachable {
		if err := checkHabits(ctx); err != nil {
			fmt.Printf("❌ Habit data: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Habit data: OK\n")
		}
	} else {
		fmt.Printf("⊘ Habit data: SKIPPED (store not reachable)\n")
	}

	// Check 3: directive data valid
	if storeReachable {
		if err := checkGoals(ctx); err != nil {
			fmt.Printf("❌ Directive data: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Directive data: OK\n")
		}
	} else {
		fmt.Printf("⊘ Directive data: SKIPPED (store not reachable)\n")
	}

	// Check 4: settings valid
	if storeReachable {
		if err := checkSettings(ctx); err != nil {
			fmt.Printf("❌ Settings: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings: SKIPPED (store not reachable)\n")
	}

	// Check 5: backups present (warning only)
	if err := checkBackups(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 6: clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 7: keyring availability (warning only, publish needs it)
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Keyring unavailable; publish and token storage will not work\n")
	}

	// Check 8: concurrent vault processes (warning only, writes are
	// last-writer-wins so a second process can silently clobber data)
	if others, err := findOtherVaultProcesses(); err != nil {
		fmt.Printf("⊘ Concurrent processes: SKIPPED (%v)\n", err)
	} else if len(others) > 0 {
		fmt.Printf("⚠ Concurrent processes: WARNING\n")
		fmt.Printf("   %d other vault process(es) running (pids %v); concurrent writes are last-writer-wins\n", len(others), others)
	} else {
		fmt.Printf("✓ Concurrent processes: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkHabits(ctx *cli.Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}
	if result := validation.ValidateHabits(habits); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkGoals(ctx *cli.Context) error {
	goals, err := ctx.Store.GetGoals()
	if err != nil {
		return err
	}
	if result := validation.ValidateGoals(goals); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if result := validation.ValidateSettings(settings); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkBackups(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found; create one with 'vault backup create'")
	}
	newest := backups[0].Timestamp
	if time.Since(newest) > 7*24*time.Hour {
		return fmt.Errorf("newest backup is older than a week (%s)", newest.Format("2006-01-02"))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		// Fall back to checking the system clock only.
		settings.Timezone = ""
	}
	if settings.Timezone != "" && !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("configured timezone %q is not loadable", settings.Timezone)
	}
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}

// findOtherVaultProcesses scans the process table for other instances of
// this binary.
func findOtherVaultProcesses() ([]int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, err
	}
	self := os.Getpid()
	binary := filepath.Base(os.Args[0])
	var pids []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := p.Executable()
		if name == binary || strings.TrimSuffix(name, ".exe") == binary {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
