// Package api is the typed REST client the dashboard talks to the backend
// through. It owns the bearer header, a fixed request timeout, and the
// distinction between transport failures and HTTP error responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/adpilot/admanager/internal/client/session"
	"github.com/adpilot/admanager/internal/domain/ad"
	"github.com/adpilot/admanager/internal/domain/campaign"
	"github.com/adpilot/admanager/internal/domain/user"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    json.RawMessage
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// NetworkError means no usable HTTP response arrived at all (refused
// connection, timeout, DNS failure). The UI surfaces these differently
// from server-side errors.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type Client struct {
	base    string
	http    *http.Client
	session *session.Store
}

type Option func(*Client)

// WithHTTPClient overrides the underlying client; tests use it to control
// the timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(baseURL string, sess *session.Store, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		session: sess,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do runs one request. Any 401 forces a client-side sign-out before the
// error is returned.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			c.session.ForceSignOut()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Error struct {
			Code    string          `json:"code"`
			Message string          `json:"message"`
			Details json.RawMessage `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Details = envelope.Error.Details
	}
	return apiErr
}

// --- auth ---

type authResponse struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

// SignUp registers a new account and stores the issued credential in the
// session.
func (c *Client) SignUp(ctx context.Context, req user.SignUpRequest) (user.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, &resp); err != nil {
		return user.User{}, err
	}
	c.session.SignIn(resp.Token, resp.User)
	return resp.User, nil
}

func (c *Client) SignIn(ctx context.Context, req user.SignInRequest) (user.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", req, &resp); err != nil {
		return user.User{}, err
	}
	c.session.SignIn(resp.Token, resp.User)
	return resp.User, nil
}

func (c *Client) Me(ctx context.Context) (user.User, error) {
	var resp struct {
		User user.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return user.User{}, err
	}
	return resp.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.User, error) {
	var resp struct {
		User user.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/auth/update-profile", req, &resp); err != nil {
		return user.User{}, err
	}
	c.session.SetUser(resp.User)
	return resp.User, nil
}

// --- campaigns ---

func (c *Client) CreateCampaign(ctx context.Context, req campaign.CreateCampaignRequest) (campaign.Campaign, error) {
	var resp struct {
		Campaign campaign.Campaign `json:"campaign"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/campaigns", req, &resp); err != nil {
		return campaign.Campaign{}, err
	}
	return resp.Campaign, nil
}

func (c *Client) ListCampaigns(ctx context.Context) ([]campaign.Campaign, error) {
	var resp struct {
		Campaigns []campaign.Campaign `json:"campaigns"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/campaigns", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Campaigns, nil
}

func (c *Client) GetCampaign(ctx context.Context, id string) (campaign.Campaign, error) {
	var resp struct {
		Campaign campaign.Campaign `json:"campaign"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/campaigns/"+id, nil, &resp); err != nil {
		return campaign.Campaign{}, err
	}
	return resp.Campaign, nil
}

func (c *Client) UpdateCampaign(ctx context.Context, id string, req campaign.UpdateCampaignRequest) (campaign.Campaign, error) {
	var resp struct {
		Campaign campaign.Campaign `json:"campaign"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/campaigns/"+id, req, &resp); err != nil {
		return campaign.Campaign{}, err
	}
	return resp.Campaign, nil
}

func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/campaigns/"+id, nil, nil)
}

// --- ads ---

func (c *Client) CreateAd(ctx context.Context, req ad.CreateAdRequest) (ad.Ad, error) {
	var resp struct {
		Ad ad.Ad `json:"ad"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/ads", req, &resp); err != nil {
		return ad.Ad{}, err
	}
	return resp.Ad, nil
}

func (c *Client) ListAdsByCampaign(ctx context.Context, campaignID string) ([]ad.Ad, error) {
	var resp struct {
		Ads []ad.Ad `json:"ads"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/ads/campaign/"+campaignID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Ads, nil
}

func (c *Client) GetAd(ctx context.Context, id string) (ad.Ad, error) {
	var resp struct {
		Ad ad.Ad `json:"ad"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/ads/"+id, nil, &resp); err != nil {
		return ad.Ad{}, err
	}
	return resp.Ad, nil
}

func (c *Client) UpdateAd(ctx context.Context, id string, req ad.UpdateAdRequest) (ad.Ad, error) {
	var resp struct {
		Ad ad.Ad `json:"ad"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/ads/"+id, req, &resp); err != nil {
		return ad.Ad{}, err
	}
	return resp.Ad, nil
}

func (c *Client) DeleteAd(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/ads/"+id, nil, nil)
}
