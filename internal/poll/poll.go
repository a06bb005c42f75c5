// Package poll retries a check a fixed number of times with a fixed pause
// between attempts.
package poll

import (
	"errors"
	"fmt"
	"time"
)

// DefaultInterval is the pause between two attempts.
const DefaultInterval = time.Second

// ErrNoAttempts is returned when the attempt budget is not positive.
var ErrNoAttempts = errors.New("attempt budget must be positive")

// Sleeper pauses between attempts. browser.Page satisfies it.
type Sleeper interface {
	Wait(d time.Duration)
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(d time.Duration)

// Wait calls f(d).
func (f SleeperFunc) Wait(d time.Duration) { f(d) }

// Options controls Attempts.
type Options struct {
	// Attempts is the maximum number of checks.
	Attempts int
	// Interval is the pause after a failed check. Zero means DefaultInterval.
	Interval time.Duration
	Sleeper  Sleeper
	// Between runs after the pause and before the next check, e.g. a page
	// reload. Its error aborts the loop.
	Between func() error
}

// Attempts runs check up to opts.Attempts times. It returns nil on the first
// success, without pausing or calling Between again. After a failed check
// that is not the last one it pauses for the interval and calls Between.
// When every check fails the last check error is returned.
//
// The budget counts attempts, not wall-clock time: each pause is the full
// interval whatever the check took, so the elapsed time can exceed
// Attempts*Interval.
func Attempts(opts Options, check func(attempt int) error) error {
	if opts.Attempts < 1 {
		return fmt.Errorf("%w: got %d", ErrNoAttempts, opts.Attempts)
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	var err error
	for i := 0; i < opts.Attempts; i++ {
		if err = check(i); err == nil {
			return nil
		}
		if i == opts.Attempts-1 {
			break
		}
		if opts.Sleeper != nil {
			opts.Sleeper.Wait(interval)
		} else {
			time.Sleep(interval)
		}
		if opts.Between != nil {
			if berr := opts.Between(); berr != nil {
				return fmt.Errorf("between attempts %d and %d: %w", i+1, i+2, berr)
			}
		}
	}
	return err
}
