package entity

import "errors"

// Domain errors for LinkedIn authentication
var (
	ErrNotAuthenticated = errors.New("not authenticated, run linkedin_authenticate first")
	ErrTokenExpired     = errors.New("LinkedIn access token has expired, re-authenticate with linkedin_authenticate")
	ErrMissingClient    = errors.New("LINKEDIN_CLIENT_ID and LINKEDIN_CLIENT_SECRET must be set")
	ErrInvalidToken     = errors.New("token response is missing an access token or expiry")
)
