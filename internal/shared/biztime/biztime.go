// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. The business timezone is only used for
// computing date boundaries (which calendar day a decision falls on).
//
// Design principles:
// - All time storage is in UTC
// - Billing date boundaries are computed in the business timezone first,
//   then normalized back to UTC midnight for storage
// - Implicit Local timezone is prohibited
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Asia/Jakarta"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to Asia/Jakarta.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location, auto-initializing with the
// default timezone when Init was never called.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Today returns the current calendar date in the business timezone,
// normalized to UTC midnight.
func Today() time.Time {
	return DateOf(time.Now())
}

// DateOf truncates t to its calendar date in the business timezone and
// returns that date as UTC midnight. Billing period boundaries are stored in
// this form so date arithmetic stays free of DST and offset artifacts.
func DateOf(t time.Time) time.Time {
	local := t.In(Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by the given number of calendar days. d is
// expected to be a UTC-midnight date produced by DateOf.
func AddDays(d time.Time, days int) time.Time {
	return d.AddDate(0, 0, days)
}
