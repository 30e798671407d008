// Package chapa talks to the Chapa hosted-payment API.
package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.chapa.co/v1"

type Client struct {
	BaseURL   string
	SecretKey string
	HTTP      *http.Client
}

func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		SecretKey: secretKey,
		HTTP:      &http.Client{Timeout: timeout},
	}
}

type InitializeRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	TxRef       string `json:"tx_ref"`
	CallbackURL string `json:"callback_url"`
	ReturnURL   string `json:"return_url"`
}

// APIError is a non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chapa: %d %s", e.StatusCode, e.Message)
}

// Initialize creates a hosted checkout. The decoded body is returned as is;
// it normally carries data.checkout_url.
func (c *Client) Initialize(ctx context.Context, in InitializeRequest) (map[string]any, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		msg := http.StatusText(status)
		if m, ok := body["message"].(string); ok && m != "" {
			msg = m
		}
		return nil, &APIError{StatusCode: status, Message: msg}
	}
	return body, nil
}

// Verify looks up a transaction by reference. Any HTTP status is accepted;
// the caller decides from the decoded status fields.
func (c *Client) Verify(ctx context.Context, txRef string) (map[string]any, error) {
	endpoint := c.BaseURL + "/transaction/verify/" + url.PathEscape(txRef)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	_, body, err := c.do(req)
	return body, err
}

func (c *Client) do(req *http.Request) (int, map[string]any, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("chapa: reach provider: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("chapa: read response: %w", err)
	}
	body := map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			return res.StatusCode, nil, fmt.Errorf("chapa: decode response (%d): %w", res.StatusCode, err)
		}
	}
	return res.StatusCode, body, nil
}

// IsSuccess accepts "success" either at the top level or in data.status;
// the provider is not consistent about which one it fills.
func IsSuccess(body map[string]any) bool {
	if s, _ := body["status"].(string); s == "success" {
		return true
	}
	if data, ok := body["data"].(map[string]any); ok {
		if s, _ := data["status"].(string); s == "success" {
			return true
		}
	}
	return false
}
