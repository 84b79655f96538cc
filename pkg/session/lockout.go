package session

import (
	"fmt"
	"time"
)

const (
	// DefaultAttemptLimit is the number of consecutive failed logins
	// that locks a session.
	DefaultAttemptLimit = 3

	// DefaultLockoutDuration is how long a locked session rejects
	// login attempts.
	DefaultLockoutDuration = 5 * time.Minute
)

// LockoutPolicy configures the attempt limit and lockout window.
type LockoutPolicy struct {
	AttemptLimit int
	Duration     time.Duration
}

// DefaultLockoutPolicy returns the standard three-strikes policy.
func DefaultLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{
		AttemptLimit: DefaultAttemptLimit,
		Duration:     DefaultLockoutDuration,
	}
}

// Lockout tracks consecutive failed login attempts for one session.
//
// The counter lives in the session cookie, so it is scoped to one
// browser session. A client that discards its cookie gets a fresh
// counter; account-level throttling is a different mechanism.
type Lockout struct {
	// Attempts is the number of consecutive failed logins.
	Attempts int

	// Until is the instant the lockout expires. Zero when not locked.
	Until time.Time
}

// State reports the lockout state as of now.
func (l Lockout) State(now time.Time) State {
	switch {
	case !l.Until.IsZero() && now.Before(l.Until):
		return StateLocked
	case l.Attempts > 0:
		return StateCounting
	default:
		return StateOpen
	}
}

// Fail records a failed login attempt. When the attempt count reaches
// the policy's limit, the lockout window starts and the counter resets.
// It returns the number of attempts remaining before lockout; zero
// means this failure triggered the lockout.
func (l *Lockout) Fail(now time.Time, policy LockoutPolicy) int {
	l.Attempts++
	if l.Attempts >= policy.AttemptLimit {
		l.Until = now.Add(policy.Duration)
		l.Attempts = 0
		return 0
	}
	return policy.AttemptLimit - l.Attempts
}

// Reset clears the attempt counter and any active lockout.
func (l *Lockout) Reset() {
	l.Attempts = 0
	l.Until = time.Time{}
}

// Expire clears an elapsed lockout window. It reports whether a
// lockout was active and has now expired.
func (l *Lockout) Expire(now time.Time) bool {
	if l.Until.IsZero() || now.Before(l.Until) {
		return false
	}
	l.Until = time.Time{}
	l.Attempts = 0
	return true
}

// Remaining returns the time left on an active lockout, or zero.
func (l Lockout) Remaining(now time.Time) time.Duration {
	if l.Until.IsZero() || !now.Before(l.Until) {
		return 0
	}
	return l.Until.Sub(now)
}

// FormatRemaining renders a duration as "4m 59s" for flash messages.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
