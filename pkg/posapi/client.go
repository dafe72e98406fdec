package posapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Client is a minimal HTTP client for the posgate API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer session token used on authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Bootstrap(ctx context.Context, req BootstrapRequest) (BootstrapResponse, error) {
	var out BootstrapResponse
	err := c.do(ctx, http.MethodPost, "/v1/bootstrap", req, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/login", req, &out)
	return out, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/logout", nil, nil)
}

func (c *Client) Schedule(ctx context.Context) (ScheduleResponse, error) {
	var out ScheduleResponse
	err := c.do(ctx, http.MethodGet, "/v1/schedule", nil, &out)
	return out, err
}

func (c *Client) MintToken(ctx context.Context) (SuperToken, error) {
	var out SuperToken
	err := c.do(ctx, http.MethodPost, "/v1/tokens/mint", nil, &out)
	return out, err
}

func (c *Client) RedeemToken(ctx context.Context, code string) (SuperToken, error) {
	var out SuperToken
	err := c.do(ctx, http.MethodPost, "/v1/tokens/redeem", RedeemTokenRequest{Code: code}, &out)
	return out, err
}

func (c *Client) TokenHistory(ctx context.Context, limit int) (TokenHistoryResponse, error) {
	var out TokenHistoryResponse
	path := "/v1/tokens"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) SessionLogs(ctx context.Context, limit int) (SessionLogsResponse, error) {
	var out SessionLogsResponse
	path := "/v1/sessionlogs"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (CreateUserResponse, error) {
	var out CreateUserResponse
	err := c.do(ctx, http.MethodPost, "/v1/users", req, &out)
	return out, err
}

func (c *Client) SetUserStatus(ctx context.Context, userID string, disabled bool) error {
	return c.do(ctx, http.MethodPatch, "/v1/users/"+userID+"/status", UserStatusRequest{Disabled: disabled}, nil)
}

func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
			return &APIError{Status: resp.StatusCode, Code: "unexpected_status",
				Description: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
		}
		return &APIError{Status: resp.StatusCode, Code: payload.Error, Description: payload.ErrorDescription}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
