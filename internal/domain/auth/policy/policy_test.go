package policy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/vadim/linkedin-mcp/internal/domain/auth/dao"
	"github.com/vadim/linkedin-mcp/internal/domain/auth/entity"
	"github.com/vadim/linkedin-mcp/internal/domain/auth/service"
)

type fakeListener struct {
	state    string
	code     string
	err      error
	startErr error
}

func (f *fakeListener) Start(state string) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.state = state
	return nil
}

func (f *fakeListener) Wait(ctx context.Context) (string, error) {
	return f.code, f.err
}

type fakeProfile struct {
	token string
}

func (f *fakeProfile) PersonURN(ctx context.Context, accessToken string) (string, error) {
	f.token = accessToken
	return "urn:li:person:abc123", nil
}

func newTokenServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		assert.Equal(t, "the-code", r.Form.Get("code"))
		assert.Equal(t, "client", r.Form.Get("client_id"))
		assert.Equal(t, "secret", r.Form.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newOAuthConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8099/callback",
		Scopes:       []string{"openid", "profile", "w_member_social"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   "https://www.linkedin.com/oauth/v2/authorization",
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func TestPolicy_FullFlow(t *testing.T) {
	ctx := context.Background()
	srv := newTokenServer(t, `{"access_token":"tok-1","token_type":"Bearer","expires_in":5184000}`)

	svc := service.New(dao.NewCredentialsJSON(t.TempDir()))
	listener := &fakeListener{code: "the-code"}
	profile := &fakeProfile{}
	p := New(svc, newOAuthConfig(srv.URL), listener, profile)

	started, err := p.StartAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.AuthStatusWaiting, started.Status)
	require.NotEmpty(t, listener.state)

	u, err := url.Parse(started.AuthURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "www.linkedin.com", u.Host)
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client", q.Get("client_id"))
	assert.Equal(t, "http://localhost:8099/callback", q.Get("redirect_uri"))
	assert.Equal(t, "openid profile w_member_social", q.Get("scope"))
	assert.Equal(t, listener.state, q.Get("state"))

	done, err := p.CompleteAuth(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, entity.AuthStatusAuthenticated, done.Status)
	assert.Equal(t, "urn:li:person:abc123", done.PersonURN)
	require.NotNil(t, done.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(60*24*time.Hour), *done.ExpiresAt, time.Minute)
	assert.Equal(t, "tok-1", profile.token)

	status, err := p.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Authenticated)
	assert.Equal(t, "urn:li:person:abc123", status.PersonURN)

	require.NoError(t, p.Logout(ctx))
	status, err = p.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Authenticated)
}

func TestPolicy_CompleteAuth_ListenerFailure(t *testing.T) {
	svc := service.New(dao.NewCredentialsJSON(t.TempDir()))
	listener := &fakeListener{err: errors.New("LinkedIn authorization denied: user_cancelled_login")}
	p := New(svc, newOAuthConfig("http://127.0.0.1:0/unused"), listener, &fakeProfile{})

	res, err := p.CompleteAuth(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "failed: LinkedIn authorization denied: user_cancelled_login", res.Status)
	assert.Empty(t, res.PersonURN)
}

func TestPolicy_CompleteAuth_TokenWithoutExpiry(t *testing.T) {
	srv := newTokenServer(t, `{"access_token":"tok-1","token_type":"Bearer"}`)
	svc := service.New(dao.NewCredentialsJSON(t.TempDir()))
	p := New(svc, newOAuthConfig(srv.URL), &fakeListener{code: "the-code"}, &fakeProfile{})

	_, err := p.CompleteAuth(context.Background(), time.Second)
	require.ErrorIs(t, err, entity.ErrInvalidToken)

	_, err = svc.Credentials(context.Background())
	assert.ErrorIs(t, err, entity.ErrNotAuthenticated)
}

func TestPolicy_NotConfigured(t *testing.T) {
	svc := service.New(dao.NewCredentialsJSON(t.TempDir()))
	p := New(svc, nil, &fakeListener{}, &fakeProfile{})

	_, err := p.StartAuth(context.Background())
	require.ErrorIs(t, err, entity.ErrMissingClient)

	_, err = p.CompleteAuth(context.Background(), time.Second)
	require.ErrorIs(t, err, entity.ErrMissingClient)
}

func TestPolicy_StartAuth_ListenerBusy(t *testing.T) {
	svc := service.New(dao.NewCredentialsJSON(t.TempDir()))
	p := New(svc, newOAuthConfig("http://127.0.0.1:0/unused"), &fakeListener{startErr: errors.New("already waiting")}, &fakeProfile{})

	_, err := p.StartAuth(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already waiting")
}
