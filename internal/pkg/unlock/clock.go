package unlock

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCatalogEntry marks a catalog item with a non-positive day
// offset. It is raised when the catalog is loaded, never during feed
// computation.
var ErrInvalidCatalogEntry = errors.New("invalid catalog entry")

// ErrNoSubscription marks a feed request for a user without a recorded
// subscription start. The caller decides how to surface it; the scheduler
// never guesses a default window.
var ErrNoSubscription = errors.New("user has no subscription start")

// State is the unlock decision for one content item and one user.
type State struct {
	Locked             bool
	MinutesUntilUnlock int
}

// UnlockTime computes the instant a content item becomes visible for a
// subscription that started at start. DayOffset is 1-indexed, so day 1
// content unlocks unlockHour hours after the start itself. All math is
// done on UTC instants.
func UnlockTime(start time.Time, dayOffset, unlockHour int) time.Time {
	days := time.Duration(dayOffset-1) * 24 * time.Hour
	hours := time.Duration(unlockHour) * time.Hour
	return start.UTC().Add(days + hours)
}

// Evaluate computes the unlock state at the given instant. Minutes until
// unlock are rounded up and clamp to zero once unlocked.
func Evaluate(start time.Time, dayOffset, unlockHour int, now time.Time) State {
	at := UnlockTime(start, dayOffset, unlockHour)
	remaining := at.Sub(now.UTC())
	if remaining <= 0 {
		return State{Locked: false, MinutesUntilUnlock: 0}
	}

	minutes := int((remaining + time.Minute - 1) / time.Minute)
	return State{Locked: true, MinutesUntilUnlock: minutes}
}

// ValidateCatalogEntry rejects non-positive day offsets up front so the
// scheduler can assume a well-formed catalog.
func ValidateCatalogEntry(dayOffset, unlockHour int) error {
	if dayOffset < 1 {
		return fmt.Errorf("%w: day offset %d must be >= 1", ErrInvalidCatalogEntry, dayOffset)
	}
	if unlockHour < 0 {
		return fmt.Errorf("%w: unlock hour %d must be >= 0", ErrInvalidCatalogEntry, unlockHour)
	}
	return nil
}
