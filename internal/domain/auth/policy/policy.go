package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/vadim/linkedin-mcp/internal/domain/auth/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/auth/service"
)

// DefaultWaitTimeout bounds CompleteAuth when the caller gives no timeout
const DefaultWaitTimeout = 120 * time.Second

// TokenExchanger builds the consent URL and trades authorization codes for tokens.
// *oauth2.Config satisfies it.
type TokenExchanger interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// CallbackListener receives the browser redirect carrying the authorization code
type CallbackListener interface {
	Start(state string) error
	Wait(ctx context.Context) (string, error)
}

// ProfileProvider resolves the member behind an access token
type ProfileProvider interface {
	PersonURN(ctx context.Context, accessToken string) (string, error)
}

// Policy orchestrates the three-legged OAuth flow
type Policy struct {
	svc      *service.Service
	oauth    TokenExchanger
	listener CallbackListener
	profile  ProfileProvider
}

// New creates a new auth policy. A nil exchanger means the LinkedIn app is not configured.
func New(svc *service.Service, oauth TokenExchanger, listener CallbackListener, profile ProfileProvider) *Policy {
	return &Policy{
		svc:      svc,
		oauth:    oauth,
		listener: listener,
		profile:  profile,
	}
}

// StartAuth starts the callback listener and returns the URL the user must open
func (p *Policy) StartAuth(ctx context.Context) (*entity.AuthResult, error) {
	if p.oauth == nil {
		return nil, entity.ErrMissingClient
	}

	state := uuid.NewString()
	if err := p.listener.Start(state); err != nil {
		return nil, fmt.Errorf("starting callback listener: %w", err)
	}

	return &entity.AuthResult{
		Status:  entity.AuthStatusWaiting,
		AuthURL: p.oauth.AuthCodeURL(state),
	}, nil
}

// CompleteAuth waits for the redirect, exchanges the code and stores the credentials.
// Listener failures (denial, timeout, not started) are reported in the result status.
func (p *Policy) CompleteAuth(ctx context.Context, timeout time.Duration) (*entity.AuthResult, error) {
	if p.oauth == nil {
		return nil, entity.ErrMissingClient
	}
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	code, err := p.listener.Wait(waitCtx)
	cancel()
	if err != nil {
		return &entity.AuthResult{Status: entity.AuthStatusFailedPrefix + err.Error()}, nil
	}

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	if token.AccessToken == "" || token.Expiry.IsZero() {
		return nil, entity.ErrInvalidToken
	}

	urn, err := p.profile.PersonURN(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}

	creds := &entity.Credentials{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.Expiry.UTC(),
		PersonURN:   urn,
	}
	if err := p.svc.Save(ctx, creds); err != nil {
		return nil, err
	}

	return &entity.AuthResult{
		Status:    entity.AuthStatusAuthenticated,
		PersonURN: urn,
		ExpiresAt: &creds.ExpiresAt,
	}, nil
}

// Status reports the stored authentication state
func (p *Policy) Status(ctx context.Context) (*entity.Status, error) {
	return p.svc.Status(ctx)
}

// Logout forgets the stored credentials
func (p *Policy) Logout(ctx context.Context) error {
	return p.svc.Logout(ctx)
}
