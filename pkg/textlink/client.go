package textlink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ravetagbd/ravetag-backend/pkg/config"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
)

const (
	defaultBaseURL              = "https://textlinksms.com/api"
	responseBodyReadLimit int64 = 1024
)

var (
	errAPIKeyRequired = errors.New("textlink api key is required")
)

// Client wraps the TextLink verification endpoints used for phone OTP.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	serviceName   string
	sourceCountry string
	codeExpiry    time.Duration
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured TextLink base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the TextLink client from the provider configuration.
func NewClient(cfg config.TextlinkConfig, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(cfg.APIKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:        trimmedKey,
		baseURL:       defaultBaseURL,
		serviceName:   cfg.ServiceName,
		sourceCountry: cfg.SourceCountry,
		codeExpiry:    cfg.CodeExpiry,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
	}
	if cfg.BaseURL != "" {
		client.baseURL = cfg.BaseURL
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.codeExpiry <= 0 {
		client.codeExpiry = 10 * time.Minute
	}

	return client, nil
}

// SendVerification asks the provider to text a one-time code to the phone.
func (c *Client) SendVerification(ctx context.Context, phone string) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "textlink client not configured")
	}
	if strings.TrimSpace(phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	payload := map[string]any{
		"phone_number":    phone,
		"service_name":    c.serviceName,
		"source_country":  c.sourceCountry,
		"expiration_time": c.codeExpiry.Milliseconds(),
	}

	var apiResp struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	if err := c.post(ctx, "send-verification-sms", payload, &apiResp); err != nil {
		return err
	}
	if !apiResp.OK {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("provider rejected verification send: %s", apiResp.Message))
	}
	return nil
}

// VerifyCode checks the submitted code against the provider. A wrong code is
// a normal false result, not an error.
func (c *Client) VerifyCode(ctx context.Context, phone, code string) (bool, error) {
	if c == nil {
		return false, pkgerrors.New(pkgerrors.CodeDependency, "textlink client not configured")
	}
	if strings.TrimSpace(phone) == "" || strings.TrimSpace(code) == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "phone and code are required")
	}

	payload := map[string]any{
		"phone_number": phone,
		"code":         code,
	}

	var apiResp struct {
		OK    bool   `json:"ok"`
		Valid bool   `json:"valid"`
		Msg   string `json:"message"`
	}
	if err := c.post(ctx, "verify-code", payload, &apiResp); err != nil {
		return false, err
	}
	if !apiResp.OK {
		return false, nil
	}
	return apiResp.Valid, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal textlink request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path), bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build textlink request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute textlink request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "textlink request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode textlink response")
	}
	return nil
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}
