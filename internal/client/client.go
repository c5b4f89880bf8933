// Package client implements the HTTP client for the game server's
// registration endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// The wire uses "registeration_token" (sic) in both directions. The
// misspelling is part of the server contract and must not be corrected.
type preRegisterRequest struct {
	Name string `json:"name"`
}

type preRegisterResponse struct {
	RegisterationToken string `json:"registeration_token"`
}

type registerRequest struct {
	RegisterationToken string `json:"registeration_token"`
}

// Client talks to a game server's registration endpoints.
type Client struct {
	httpClient *http.Client
}

// New creates a registration client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// PreRegister requests a registration token for the given display name.
func (c *Client) PreRegister(ctx context.Context, host string, port int, name string) (string, error) {
	url := fmt.Sprintf("http://%s:%d/users/pre-register", host, port)

	body, err := c.post(ctx, url, preRegisterRequest{Name: name})
	if err != nil {
		return "", err
	}

	var resp preRegisterResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return resp.RegisterationToken, nil
}

// Register redeems a registration token. The response body is a raw string,
// returned verbatim.
func (c *Client) Register(ctx context.Context, host string, port int, token string) (string, error) {
	url := fmt.Sprintf("http://%s:%d/users/register", host, port)

	body, err := c.post(ctx, url, registerRequest{RegisterationToken: token})
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// post sends a JSON POST and returns the response body. Any non-2xx status
// becomes an error carrying the status and body text.
func (c *Client) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create http request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, fmt.Errorf("http error %d: %s", httpResp.StatusCode, string(respBody))
	}

	return respBody, nil
}
