package sessions

import "time"

// TTL is how long a login session stays consumable after creation.
const TTL = time.Hour

// Session binds one login attempt to the CSRF state value sent to the
// identity provider. A session is single-use: consuming its CSRF token
// expires it, whether or not the comparison that follows succeeds.
type Session struct {
	ID        string    // High-entropy opaque identifier, carried in the SESSION cookie
	CSRFToken string    // State value issued at login initiation
	ExpiresAt time.Time // Hard expiry; forced to now when the session is consumed
}
