package types

import "time"

// TTLKind tells apart the three answers a TTL lookup can give.
type TTLKind int

const (
	// TTLAbsent means the key does not exist or has already expired.
	TTLAbsent TTLKind = iota

	// TTLInfinite means the key exists and has no expiry.
	TTLInfinite

	// TTLRemaining means the key exists and expires after Remaining.
	TTLRemaining
)

func (k TTLKind) String() string {
	switch k {
	case TTLInfinite:
		return "infinite"
	case TTLRemaining:
		return "remaining"
	default:
		return "absent"
	}
}

/*
TTL is the result of a TTL lookup.

RETURN VALUES:
--------------
- Kind == TTLRemaining : Remaining > 0 is the time left before expiry
- Kind == TTLInfinite  : key exists and never expires, Remaining is 0
- Kind == TTLAbsent    : key missing or expired, Remaining is 0

Callers that want a single number can use Millis, which follows the
Redis convention of -1 for "no TTL" and -2 for "absent".
*/
type TTL struct {
	Kind      TTLKind
	Remaining time.Duration
}

// Exists reports whether the key was live at lookup time.
func (t TTL) Exists() bool {
	return t.Kind != TTLAbsent
}

// Millis encodes the result as milliseconds: >0 remaining, -1 infinite, -2 absent.
func (t TTL) Millis() int64 {
	switch t.Kind {
	case TTLRemaining:
		ms := t.Remaining.Milliseconds()
		if ms < 1 {
			ms = 1
		}
		return ms
	case TTLInfinite:
		return -1
	default:
		return -2
	}
}
