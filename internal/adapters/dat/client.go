package dat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Environment names accepted by NewClient.
const (
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Client implements the load-board ports against the DAT freight API.
//
// It coordinates:
//   - Two-step authentication (organization token, then user token)
//   - Query submission and match/count retrieval
//   - API-call accounting
//
// Concurrent fetches read the session token without mutating it; token
// refresh happens before fan-out via EnsureSession. The client is safe for
// concurrent use.
type Client struct {
	session     *http.Client
	username    string
	password    string
	user        string
	environment string
	authURL     string
	freightURL  string

	mu             sync.RWMutex
	orgToken       string
	accessToken    string
	tokenExpiresAt time.Time

	apiCalls atomic.Int64
}

// Token lifetime fallback when the identity service omits expiresIn.
const defaultTokenTTL = 900 * time.Second

func NewClient(username, password, user, environment string) (*Client, error) {
	if username == "" || password == "" || user == "" {
		return nil, errors.New("dat client: username, password, and user are required")
	}

	if environment != EnvProduction {
		environment = EnvStaging
	}

	c := &Client{
		session:     &http.Client{Timeout: 15 * time.Second},
		username:    username,
		password:    password,
		user:        user,
		environment: environment,
	}

	if environment == EnvProduction {
		c.authURL = "https://identity.api.dat.com/access/v1/token"
		c.freightURL = "https://freight.api.prod.dat.com"
	} else {
		c.authURL = "https://identity.api.staging.dat.com/access/v1/token"
		c.freightURL = "https://freight.api.staging.dat.com"
	}

	return c, nil
}

// Environment returns the environment this client targets.
func (c *Client) Environment() string { return c.environment }

// APICalls returns the number of API calls issued since construction.
func (c *Client) APICalls() int64 { return c.apiCalls.Load() }

// Authenticated reports whether the client holds an unexpired user token.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken != "" && time.Now().Before(c.tokenExpiresAt)
}

type orgTokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userTokenRequest struct {
	Username string `json:"username"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

// Authenticate performs the two-step token exchange: an organization token
// from the operator credentials, then a user token scoped to the acting
// user. An unexpired user token is reused without any network call.
func (c *Client) Authenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.accessToken != "" && now.Before(c.tokenExpiresAt) {
		return nil
	}

	log.Printf("authenticating env=%s", c.environment)

	if c.orgToken == "" {
		org, err := c.fetchToken(ctx, c.authURL+"/organization", orgTokenRequest{
			Username: c.username,
			Password: c.password,
		}, "")
		if err != nil {
			return fmt.Errorf("dat authenticate: organization token: %w", err)
		}
		c.orgToken = org.AccessToken
	}

	user, err := c.fetchToken(ctx, c.authURL+"/user", userTokenRequest{Username: c.user}, c.orgToken)
	if err != nil {
		return fmt.Errorf("dat authenticate: user token: %w", err)
	}

	ttl := defaultTokenTTL
	if user.ExpiresIn > 0 {
		ttl = time.Duration(user.ExpiresIn) * time.Second
	}

	c.accessToken = user.AccessToken
	c.tokenExpiresAt = now.Add(ttl)
	log.Printf("authenticated env=%s token_ttl=%s", c.environment, ttl)
	return nil
}

// Reset drops all cached tokens, forcing a full re-authentication.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orgToken = ""
	c.accessToken = ""
	c.tokenExpiresAt = time.Time{}
}

// EnsureSession authenticates if needed. After a failed attempt it resets
// the token state and retries exactly once; no further retry policy exists.
func (c *Client) EnsureSession(ctx context.Context) error {
	if err := c.Authenticate(ctx); err != nil {
		log.Printf("authentication failed, retrying once env=%s err=%v", c.environment, err)
		c.Reset()
		if err := c.Authenticate(ctx); err != nil {
			return fmt.Errorf("dat ensure session: %w", err)
		}
	}
	return nil
}

func (c *Client) fetchToken(ctx context.Context, url string, payload any, bearer string) (tokenResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return tokenResponse{}, fmt.Errorf("marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return tokenResponse{}, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	c.apiCalls.Add(1)

	resp, err := c.session.Do(req)
	if err != nil {
		return tokenResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return tokenResponse{}, statusError(resp)
	}

	var decoded tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return tokenResponse{}, fmt.Errorf("decode token response: %w", err)
	}
	if decoded.AccessToken == "" {
		return tokenResponse{}, errors.New("token response missing accessToken")
	}

	return decoded, nil
}

// token returns the current user token for request signing.
func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}
