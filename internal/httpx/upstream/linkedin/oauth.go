package linkedin

import "golang.org/x/oauth2"

// Default OAuth endpoints and member scopes
const (
	DefaultAuthURL  = "https://www.linkedin.com/oauth/v2/authorization"
	DefaultTokenURL = "https://www.linkedin.com/oauth/v2/accessToken"
)

// DefaultScopes are needed to read the member id and post on their behalf
var DefaultScopes = []string{"openid", "profile", "w_member_social"}

// OAuthSettings configures the authorization code flow
type OAuthSettings struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	Scopes       []string
}

// OAuthConfig builds the oauth2 configuration for LinkedIn. LinkedIn expects
// the client credentials in the token request body.
func OAuthConfig(s OAuthSettings) *oauth2.Config {
	if s.AuthURL == "" {
		s.AuthURL = DefaultAuthURL
	}
	if s.TokenURL == "" {
		s.TokenURL = DefaultTokenURL
	}
	if len(s.Scopes) == 0 {
		s.Scopes = DefaultScopes
	}

	return &oauth2.Config{
		ClientID:     s.ClientID,
		ClientSecret: s.ClientSecret,
		RedirectURL:  s.RedirectURL,
		Scopes:       s.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   s.AuthURL,
			TokenURL:  s.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}
