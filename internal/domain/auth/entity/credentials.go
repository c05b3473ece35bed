package entity

import "time"

// Credentials is a LinkedIn OAuth2 access token bound to a member
type Credentials struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	PersonURN   string    `json:"person_urn"`
}

// IsExpired returns true once now has reached the expiry time
func (c *Credentials) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Status describes the stored authentication state
type Status struct {
	Authenticated bool       `json:"authenticated"`
	PersonURN     string     `json:"person_urn,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// AuthResult is returned by the steps of the OAuth flow
type AuthResult struct {
	Status    string     `json:"status"`
	AuthURL   string     `json:"auth_url,omitempty"`
	PersonURN string     `json:"person_urn,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Flow states reported in AuthResult.Status
const (
	AuthStatusWaiting       = "waiting"
	AuthStatusAuthenticated = "authenticated"
	AuthStatusFailedPrefix  = "failed: "
)
