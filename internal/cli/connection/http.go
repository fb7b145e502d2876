package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/hublink-go/internal/core/domain"
	"github.com/yndnr/hublink-go/internal/infra/buildinfo"
	"github.com/yndnr/hublink-go/internal/server/httpserver/handler"
)

const (
	defaultTimeout = 30 * time.Second
	userAgentName  = "hublink-cli"
)

// APIError is a failed request as reported by the server envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTLSConfig sets the TLS configuration used for https servers.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *HTTPClient) {
		if cfg == nil {
			return
		}
		c.client.Transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: cfg,
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.client.Timeout = d }
}

// HTTPClient talks to a hublink server.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	apiKey  string
}

// NewHTTPClient creates a client for server. A bare host:port gets an
// http:// scheme.
func NewHTTPClient(server, apiKey string, opts ...Option) *HTTPClient {
	baseURL := strings.TrimRight(server, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	c := &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.addHeaders(req)
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body. A nil body sends no
// Content-Type.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.addHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.client.Do(req)
}

func (c *HTTPClient) addHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent(userAgentName))
}

// ParseResponse decodes the response envelope and unmarshals its data
// field into target, which may be nil. Non-2xx responses become *APIError.
func ParseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	var env struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Code = env.Code
			apiErr.Message = env.Message
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("parse response: %w", decodeErr)
	}
	if target == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("parse response data: %w", err)
	}
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, target any) error {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return ParseResponse(resp, target)
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, body, target any) error {
	resp, err := c.Post(ctx, path, body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return ParseResponse(resp, target)
}

// Health calls GET /health.
func (c *HTTPClient) Health(ctx context.Context) (map[string]string, error) {
	var out map[string]string
	if err := c.getJSON(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// IssueLinkToken requests a link token for a chat user.
func (c *HTTPClient) IssueLinkToken(ctx context.Context, chatUserID int64) (*handler.IssueLinkTokenResponse, error) {
	var out handler.IssueLinkTokenResponse
	req := handler.IssueLinkTokenRequest{ChatUserID: chatUserID}
	if err := c.postJSON(ctx, "/api/v1/link-tokens", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConsumeLinkToken redeems a token without recording a link.
func (c *HTTPClient) ConsumeLinkToken(ctx context.Context, value string) (int64, error) {
	var out handler.ConsumeLinkTokenResponse
	req := handler.ConsumeLinkTokenRequest{Token: value}
	if err := c.postJSON(ctx, "/api/v1/link-tokens/consume", req, &out); err != nil {
		return 0, err
	}
	return out.ChatUserID, nil
}

// CreateLink redeems a token and links its owner to hubUserID.
func (c *HTTPClient) CreateLink(ctx context.Context, value, hubUserID string) (*handler.LinkResponse, error) {
	var out handler.LinkResponse
	req := handler.CreateLinkRequest{Token: value, HubUserID: hubUserID}
	if err := c.postJSON(ctx, "/api/v1/links", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLink looks up the hub account linked to a chat user.
func (c *HTTPClient) GetLink(ctx context.Context, chatUserID int64) (*handler.LinkResponse, error) {
	var out handler.LinkResponse
	path := "/api/v1/links/" + url.PathEscape(strconv.FormatInt(chatUserID, 10))
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLinkByHubUser calls GET /api/v1/hub-users/{hub_user_id}/link.
func (c *HTTPClient) GetLinkByHubUser(ctx context.Context, hubUserID string) (*handler.LinkResponse, error) {
	var out handler.LinkResponse
	path := "/api/v1/hub-users/" + url.PathEscape(hubUserID) + "/link"
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status calls GET /admin/v1/status/summary.
func (c *HTTPClient) Status(ctx context.Context) (*handler.StatusSummaryResponse, error) {
	var out handler.StatusSummaryResponse
	if err := c.getJSON(ctx, "/admin/v1/status/summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TriggerGC runs an immediate sweep on the server.
func (c *HTTPClient) TriggerGC(ctx context.Context) (*handler.GCResponse, error) {
	var out handler.GCResponse
	if err := c.postJSON(ctx, "/admin/v1/gc/trigger", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestLinkURL issues a token for user and returns its link URL. It lets
// a chat bot running outside the server process drive the link command.
func (c *HTTPClient) RequestLinkURL(ctx context.Context, user domain.ChatUserID) (string, error) {
	resp, err := c.IssueLinkToken(ctx, int64(user))
	if err != nil {
		return "", err
	}
	return resp.LinkURL, nil
}
