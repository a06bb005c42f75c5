package poll

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	waits []time.Duration
}

func (r *recorder) Wait(d time.Duration) { r.waits = append(r.waits, d) }

func TestAttempts(t *testing.T) {
	tests := []struct {
		name        string
		attempts    int
		succeedOn   int // -1 never
		wantChecks  int
		wantBetween int
		wantErr     bool
	}{
		{name: "first check passes", attempts: 5, succeedOn: 0, wantChecks: 1, wantBetween: 0},
		{name: "third check passes", attempts: 5, succeedOn: 2, wantChecks: 3, wantBetween: 2},
		{name: "last check passes", attempts: 3, succeedOn: 2, wantChecks: 3, wantBetween: 2},
		{name: "never passes", attempts: 4, succeedOn: -1, wantChecks: 4, wantBetween: 3, wantErr: true},
		{name: "single attempt fails", attempts: 1, succeedOn: -1, wantChecks: 1, wantBetween: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sleeper := &recorder{}
			checks, between := 0, 0
			err := Attempts(Options{
				Attempts: tt.attempts,
				Interval: 250 * time.Millisecond,
				Sleeper:  sleeper,
				Between:  func() error { between++; return nil },
			}, func(attempt int) error {
				assert.Equal(t, checks, attempt)
				checks++
				if attempt == tt.succeedOn {
					return nil
				}
				return fmt.Errorf("attempt %d failed", attempt)
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, fmt.Sprintf("attempt %d failed", tt.attempts-1), err.Error())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantChecks, checks)
			assert.Equal(t, tt.wantBetween, between)
			assert.Len(t, sleeper.waits, tt.wantBetween)
			for _, w := range sleeper.waits {
				assert.Equal(t, 250*time.Millisecond, w)
			}
		})
	}
}

func TestAttempts_DefaultInterval(t *testing.T) {
	sleeper := &recorder{}
	_ = Attempts(Options{Attempts: 2, Sleeper: sleeper}, func(int) error { return errors.New("no") })
	assert.Equal(t, []time.Duration{DefaultInterval}, sleeper.waits)
}

func TestAttempts_NoBudget(t *testing.T) {
	called := false
	err := Attempts(Options{Attempts: 0}, func(int) error { called = true; return nil })
	assert.ErrorIs(t, err, ErrNoAttempts)
	assert.False(t, called)
}

func TestAttempts_BetweenError(t *testing.T) {
	boom := errors.New("reload failed")
	err := Attempts(Options{
		Attempts: 3,
		Sleeper:  SleeperFunc(func(time.Duration) {}),
		Between:  func() error { return boom },
	}, func(int) error { return errors.New("not yet") })
	assert.ErrorIs(t, err, boom)
}
