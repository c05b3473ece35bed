package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL    = "https://api.linkedin.com"
	defaultAPIVersion = "202502"
	defaultTimeout    = 30 * time.Second

	restliProtocolVersion = "2.0.0"
)

// Client is a LinkedIn REST API client for member posting
type Client struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
}

// ClientOption is a function that configures the Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithAPIVersion sets the Linkedin-Version header (YYYYMM)
func WithAPIVersion(version string) ClientOption {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a new LinkedIn API client
func New(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiVersion: defaultAPIVersion,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a non-success response from the LinkedIn API
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("LinkedIn API error (%d): %s", e.StatusCode, e.Body)
}

// Visibility and distribution values accepted by the Posts API
const (
	VisibilityPublic        = "PUBLIC"
	FeedDistributionMain    = "MAIN_FEED"
	LifecycleStatePublished = "PUBLISHED"
)

// Distribution controls where a post is shown
type Distribution struct {
	FeedDistribution               string   `json:"feedDistribution"`
	TargetEntities                 []string `json:"targetEntities"`
	ThirdPartyDistributionChannels []string `json:"thirdPartyDistributionChannels"`
}

// CreatePostInput is the body of POST /rest/posts
type CreatePostInput struct {
	Author                    string       `json:"author"`
	Commentary                string       `json:"commentary"`
	Visibility                string       `json:"visibility"`
	Distribution              Distribution `json:"distribution"`
	LifecycleState            string       `json:"lifecycleState"`
	IsReshareDisabledByAuthor bool         `json:"isReshareDisabledByAuthor"`
}

// CreatePostOutput represents output from creating a post
type CreatePostOutput struct {
	// PostURN is taken from the x-restli-id response header
	PostURN string
}

// CreatePost creates a member post. LinkedIn answers 201 with an empty body.
func (c *Client) CreatePost(ctx context.Context, accessToken string, in CreatePostInput) (*CreatePostOutput, error) {
	endpoint := c.baseURL + "/rest/posts"

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encoding post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setRestHeaders(req, accessToken)
	req.Header.Set("Content-Type", "application/json")

	header, err := c.do(req, http.StatusCreated, nil)
	if err != nil {
		return nil, err
	}

	return &CreatePostOutput{PostURN: header.Get("x-restli-id")}, nil
}

// UserInfo is the OpenID Connect profile of the authenticated member
type UserInfo struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// GetUserInfo retrieves the OpenID profile of the token owner
func (c *Client) GetUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	endpoint := c.baseURL + "/v2/userinfo"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var out UserInfo
	if _, err := c.do(req, http.StatusOK, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// PersonURN resolves the member URN of the token owner
func (c *Client) PersonURN(ctx context.Context, accessToken string) (string, error) {
	info, err := c.GetUserInfo(ctx, accessToken)
	if err != nil {
		return "", err
	}
	if info.Sub == "" {
		return "", errors.New("userinfo response has no subject")
	}
	return "urn:li:person:" + info.Sub, nil
}

func (c *Client) setRestHeaders(req *http.Request, accessToken string) {
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", restliProtocolVersion)
	req.Header.Set("Linkedin-Version", c.apiVersion)
}

func (c *Client) do(req *http.Request, want int, out any) (http.Header, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != want {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
	}

	return resp.Header, nil
}
