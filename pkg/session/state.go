package session

//go:generate go run github.com/dmarkham/enumer -type State -trimprefix State -transform lower -output state.gen.go

// State describes where a session's lockout counter currently sits.
type State int

const (
	// StateOpen means no failed attempts are recorded.
	StateOpen State = iota
	// StateCounting means failures are recorded but the limit is not reached.
	StateCounting
	// StateLocked means login attempts are rejected until the window expires.
	StateLocked
)
