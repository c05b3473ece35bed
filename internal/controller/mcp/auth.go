package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AuthCallbackInput represents input for the linkedin_auth_callback tool
type AuthCallbackInput struct {
	Timeout int `json:"timeout,omitempty" jsonschema:"seconds to wait for the browser callback (default 120)"`
}

// LogoutOutput represents output from the linkedin_logout tool
type LogoutOutput struct {
	Authenticated bool `json:"authenticated"`
}

func (s *Server) registerAuthTools() {
	addTool(s, &sdkmcp.Tool{
		Name: "linkedin_authenticate",
		Description: "Start LinkedIn OAuth2 authentication. Returns an auth_url the user must open in a browser; " +
			"call linkedin_auth_callback afterwards to finish. Requires LINKEDIN_CLIENT_ID and LINKEDIN_CLIENT_SECRET.",
	}, func(ctx context.Context, _ noArgs) (any, error) {
		return s.auth.StartAuth(ctx)
	})

	addTool(s, &sdkmcp.Tool{
		Name: "linkedin_auth_callback",
		Description: "Complete LinkedIn authentication after the user has authorized the app: waits for the callback, " +
			"exchanges the code for a token and saves the credentials.",
	}, func(ctx context.Context, in AuthCallbackInput) (any, error) {
		return s.auth.CompleteAuth(ctx, time.Duration(in.Timeout)*time.Second)
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "linkedin_auth_status",
		Description: "Check whether LinkedIn credentials are stored and valid, with the person URN and token expiry.",
	}, func(ctx context.Context, _ noArgs) (any, error) {
		return s.auth.Status(ctx)
	})

	addTool(s, &sdkmcp.Tool{
		Name:        "linkedin_logout",
		Description: "Forget the stored LinkedIn credentials.",
	}, func(ctx context.Context, _ noArgs) (any, error) {
		if err := s.auth.Logout(ctx); err != nil {
			return nil, err
		}
		return LogoutOutput{Authenticated: false}, nil
	})
}
