// Package client is the Go counterpart of the web frontend's API layer:
// every request carries the stored access token, and a request answered
// with 401 is transparently retried once after a silent token refresh.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
)

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithSessionExpiredHook registers the redirect-to-login analog, invoked
// exactly once when a failed refresh tears the session down.
func WithSessionExpiredHook(hook func()) Option {
	return func(c *Client) {
		c.onSessionExpired = hook
	}
}

type Client struct {
	baseUrl          string
	httpClient       *http.Client
	session          *Session
	onSessionExpired func()

	// refreshMu serializes silent refreshes so a burst of 401s
	// triggers a single refresh call
	refreshMu sync.Mutex
}

func New(baseUrl string, options ...Option) *Client {
	client := &Client{
		baseUrl:    baseUrl,
		httpClient: http.DefaultClient,
		session:    &Session{},
	}

	for _, option := range options {
		option(client)
	}

	return client
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	response, err := c.send(ctx, http.MethodPost, "/auth/register", body, "")
	if err != nil {
		return nil, err
	}
	defer response.Body.Close() //nolint:errcheck

	if response.StatusCode != http.StatusCreated {
		return nil, decodeAPIError(response)
	}

	var authResponse AuthResponse
	err = json.NewDecoder(response.Body).Decode(&authResponse)
	if err != nil {
		return nil, err
	}

	c.session.Set(authResponse.Token, authResponse.RefreshToken, authResponse.User)
	return &authResponse, nil
}

func (c *Client) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	response, err := c.send(ctx, http.MethodPost, "/auth/login", body, "")
	if err != nil {
		return nil, err
	}
	defer response.Body.Close() //nolint:errcheck

	if response.StatusCode != http.StatusOK {
		return nil, decodeAPIError(response)
	}

	var authResponse AuthResponse
	err = json.NewDecoder(response.Body).Decode(&authResponse)
	if err != nil {
		return nil, err
	}

	c.session.Set(authResponse.Token, authResponse.RefreshToken, authResponse.User)
	return &authResponse, nil
}

func (c *Client) UpdateProfile(ctx context.Context, request *UpdateProfileRequest) (*User, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	response, err := c.Do(ctx, http.MethodPut, "/auth/profile", body)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close() //nolint:errcheck

	if response.StatusCode != http.StatusOK {
		return nil, decodeAPIError(response)
	}

	var profileResponse ProfileResponse
	err = json.NewDecoder(response.Body).Decode(&profileResponse)
	if err != nil {
		return nil, err
	}

	c.session.SetUser(profileResponse.User)
	return profileResponse.User, nil
}

// Do performs an authorized request against the API. A 401 answer triggers
// at most one silent refresh followed by a single replay of the original
// request; every other status is handed back unchanged. When the refresh
// itself fails the session is torn down and ErrSessionExpired returned.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	observedToken := c.session.AccessToken()

	response, err := c.send(ctx, method, path, body, observedToken)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusUnauthorized {
		return response, nil
	}
	_ = response.Body.Close()

	err = c.refreshAccessToken(ctx, observedToken)
	if err != nil {
		c.teardown()
		return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	return c.send(ctx, method, path, body, c.session.AccessToken())
}

func (c *Client) send(
	ctx context.Context,
	method, path string,
	body []byte,
	accessToken string,
) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		request.Header.Set("Authorization", "Bearer "+accessToken)
	}

	return c.httpClient.Do(request)
}

// refreshAccessToken exchanges the held refresh token for a new access
// token. Callers racing on the same expired token queue behind the first
// refresh and skip their own once it succeeded.
func (c *Client) refreshAccessToken(ctx context.Context, observedToken string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	currentToken := c.session.AccessToken()
	if currentToken != "" && currentToken != observedToken {
		return nil
	}

	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		return errors.New("no refresh token held")
	}

	body, err := json.Marshal(&refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	response, err := c.send(ctx, http.MethodPost, "/auth/refresh", body, "")
	if err != nil {
		return err
	}
	defer response.Body.Close() //nolint:errcheck

	if response.StatusCode != http.StatusOK {
		return decodeAPIError(response)
	}

	var tokenResponse AccessTokenResponse
	err = json.NewDecoder(response.Body).Decode(&tokenResponse)
	if err != nil {
		return err
	}

	c.session.SetAccessToken(tokenResponse.Token)
	return nil
}

func (c *Client) teardown() {
	if c.session.Clear() && c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

func decodeAPIError(response *http.Response) error {
	var payload errorResponse
	_ = json.NewDecoder(response.Body).Decode(&payload)

	return &APIError{
		StatusCode: response.StatusCode,
		Message:    payload.Message,
	}
}
