package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockoutStates(t *testing.T) {
	now := time.Now()
	policy := DefaultLockoutPolicy()

	var l Lockout
	assert.Equal(t, StateOpen, l.State(now))

	remaining := l.Fail(now, policy)
	assert.Equal(t, 2, remaining)
	assert.Equal(t, StateCounting, l.State(now))

	remaining = l.Fail(now, policy)
	assert.Equal(t, 1, remaining)
	assert.Equal(t, StateCounting, l.State(now))

	remaining = l.Fail(now, policy)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, StateLocked, l.State(now))
	assert.Equal(t, 0, l.Attempts)
}

func TestLockoutExpiry(t *testing.T) {
	now := time.Now()
	policy := LockoutPolicy{AttemptLimit: 3, Duration: 5 * time.Minute}

	var l Lockout
	l.Fail(now, policy)
	l.Fail(now, policy)
	l.Fail(now, policy)

	assert.Equal(t, StateLocked, l.State(now))
	assert.False(t, l.Expire(now), "lockout should still be active")

	later := now.Add(5*time.Minute + time.Second)
	assert.Equal(t, StateOpen, l.State(later))
	assert.True(t, l.Expire(later))
	assert.Equal(t, StateOpen, l.State(now))
	assert.Zero(t, l.Attempts)
}

func TestLockoutReset(t *testing.T) {
	now := time.Now()
	policy := DefaultLockoutPolicy()

	var l Lockout
	l.Fail(now, policy)
	l.Fail(now, policy)

	l.Reset()
	assert.Equal(t, StateOpen, l.State(now))

	// a fresh sequence counts from zero again
	assert.Equal(t, 2, l.Fail(now, policy))
}

func TestLockoutRemaining(t *testing.T) {
	now := time.Now()
	policy := LockoutPolicy{AttemptLimit: 1, Duration: 5 * time.Minute}

	var l Lockout
	l.Fail(now, policy)

	assert.Equal(t, 5*time.Minute, l.Remaining(now))
	assert.Equal(t, time.Duration(0), l.Remaining(now.Add(6*time.Minute)))

	var open Lockout
	assert.Equal(t, time.Duration(0), open.Remaining(now))
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "4m 59s", FormatRemaining(4*time.Minute+59*time.Second))
	assert.Equal(t, "5m 0s", FormatRemaining(5*time.Minute))
	assert.Equal(t, "0m 30s", FormatRemaining(30*time.Second))
	assert.Equal(t, "0m 0s", FormatRemaining(-time.Second))
}

func TestStateEnum(t *testing.T) {
	assert.Equal(t, "locked", StateLocked.String())
	assert.Equal(t, "open", StateOpen.String())

	s, err := StateString("counting")
	assert.NoError(t, err)
	assert.Equal(t, StateCounting, s)

	_, err = StateString("bogus")
	assert.Error(t, err)

	assert.True(t, StateLocked.IsAState())
	assert.False(t, State(42).IsAState())
}
