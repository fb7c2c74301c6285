package cooldown

import (
	"net/http"
	"time"

	"github.com/osa911/glassesrelay/internal/api/constants"
)

// CookieGuard keeps the marker on the client. The browser drops the cookie
// when Max-Age runs out, so presence alone means the window is still open.
type CookieGuard struct {
	Name   string
	Window time.Duration
	Secure bool
}

// NewCookieGuard returns the guard for the messageSubmitted marker
func NewCookieGuard(window time.Duration, secure bool) *CookieGuard {
	if window <= 0 {
		window = DefaultWindow
	}
	return &CookieGuard{
		Name:   constants.CookieMessageSubmitted,
		Window: window,
		Secure: secure,
	}
}

func (g *CookieGuard) Mode() string { return "cookie" }

func (g *CookieGuard) Check(r *http.Request) (Decision, error) {
	if c, err := r.Cookie(g.Name); err == nil && c.Value != "" {
		return Decision{Allowed: false}, nil
	}
	return Decision{Allowed: true}, nil
}

func (g *CookieGuard) Commit(w http.ResponseWriter, _ *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     g.Name,
		Value:    constants.CookieMessageValue,
		Path:     constants.CookiePathRoot,
		MaxAge:   int(g.Window / time.Second),
		Secure:   g.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Release is a no-op: nothing is written before Commit
func (g *CookieGuard) Release(*http.Request) error { return nil }
