package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terryfox-lims/limsclient/pkg/httpclient"
)

const (
	// DefaultTokenPath is the credential exchange endpoint.
	DefaultTokenPath = "/auth/token/"
	// DefaultProfilePath is the current-user endpoint.
	DefaultProfilePath = "/users/me/"
)

// Client calls the identity endpoints through the shared API client, so
// requests go through its hooks like any other call.
type Client struct {
	api         *httpclient.Client
	tokenPath   string
	profilePath string
}

// Option configures a Client.
type Option func(*Client)

// WithTokenPath overrides the credential exchange endpoint.
func WithTokenPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.tokenPath = path
		}
	}
}

// WithProfilePath overrides the current-user endpoint.
func WithProfilePath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.profilePath = path
		}
	}
}

// NewClient creates an identity client on top of api.
func NewClient(api *httpclient.Client, opts ...Option) *Client {
	c := &Client{
		api:         api,
		tokenPath:   DefaultTokenPath,
		profilePath: DefaultProfilePath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// ObtainToken exchanges username and password for an access token.
// The refresh token in the response is ignored.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", ErrMissingCredentials
	}

	var resp tokenResponse
	if err := c.api.Post(ctx, c.tokenPath, tokenRequest{Username: username, Password: password}, &resp); err != nil {
		return "", wrapError(err)
	}
	if resp.Access == "" {
		return "", ErrEmptyToken
	}
	return resp.Access, nil
}

// CurrentUser fetches the profile of the user owning token. With an empty
// token the request is sent without an explicit credential and relies on the
// client's request hooks.
func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.api.Get(ctx, c.profilePath, &user, httpclient.WithBearer(token)); err != nil {
		return nil, wrapError(err)
	}
	if user.Username == "" {
		return nil, errors.Join(ErrInvalidProfile, fmt.Errorf("profile %d has no username", user.ID))
	}
	return &user, nil
}
