// Package biztime centralises clock access. Storage and transport use UTC;
// the campus timezone is only used for scheduling and human-facing formatting.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is the campus timezone used when none is configured.
const DefaultTimezone = "Asia/Kolkata"

var (
	mu       sync.RWMutex
	location *time.Location
	nowFunc  = time.Now
)

// Init loads the campus timezone. An empty tz selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", tz, err)
	}
	mu.Lock()
	location = loc
	mu.Unlock()
	return nil
}

// Location returns the campus timezone, initialising the default on first use.
func Location() *time.Location {
	mu.RLock()
	loc := location
	mu.RUnlock()
	if loc != nil {
		return loc
	}
	if err := Init(""); err != nil {
		return time.UTC
	}
	return Location()
}

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	mu.RLock()
	fn := nowFunc
	mu.RUnlock()
	return fn().UTC()
}

// Freeze pins NowUTC to t and returns a function restoring the real clock.
// Intended for tests.
func Freeze(t time.Time) (restore func()) {
	mu.Lock()
	prev := nowFunc
	nowFunc = func() time.Time { return t }
	mu.Unlock()
	return func() {
		mu.Lock()
		nowFunc = prev
		mu.Unlock()
	}
}

// FormatInBizTimezone formats t in the campus timezone.
func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
