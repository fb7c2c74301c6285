// Package cooldown limits how often a single client may relay an order.
//
// A Guard is consulted before the submission is validated. Check may reserve
// the client's slot; the slot is committed only after the message reached
// Telegram and released otherwise, so failed attempts never start a window.
package cooldown

import (
	"net/http"
	"time"
)

// DefaultWindow is how long a client must wait between accepted submissions
const DefaultWindow = 6 * time.Hour

// Decision is the outcome of a cooldown check
type Decision struct {
	Allowed bool
	// RetryAfter is the remaining window when known, zero otherwise
	RetryAfter time.Duration
}

// Guard checks and records per-client cooldown markers
type Guard interface {
	// Mode names the guard for logs and metrics
	Mode() string
	Check(r *http.Request) (Decision, error)
	Commit(w http.ResponseWriter, r *http.Request) error
	// Release drops a slot reserved by an allowing Check
	Release(r *http.Request) error
}

// KeyFunc identifies the client behind a request
type KeyFunc func(r *http.Request) string

// NoopGuard never limits
type NoopGuard struct{}

func (NoopGuard) Mode() string { return "none" }

func (NoopGuard) Check(*http.Request) (Decision, error) {
	return Decision{Allowed: true}, nil
}

func (NoopGuard) Commit(http.ResponseWriter, *http.Request) error { return nil }

func (NoopGuard) Release(*http.Request) error { return nil }
