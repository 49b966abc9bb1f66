package types

import "time"

// SetOptions collects the per-call arguments of Set.
type SetOptions struct {
	TTL    time.Duration
	HasTTL bool // TTL was given explicitly
	NoTTL  bool // store without expiry, ignoring the default
	Tags   []string
}

// SetOption configures one Set call.
type SetOption func(*SetOptions)
