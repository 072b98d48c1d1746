package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/config"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 4 << 20

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() string
}

type AuthAPI interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (*models.AdminLoginResponse, error)
	Register(ctx context.Context, req *models.RegisterRequest) error
}

type ProductAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, draft *models.ProductDraft) (*models.Product, error)
	UpdateProduct(ctx context.Context, id models.ID, draft *models.ProductDraft) (*models.Product, error)
	DeleteProduct(ctx context.Context, id models.ID) error
}

type CartAPI interface {
	GetCart(ctx context.Context) ([]models.RemoteCartLine, error)
	AddCartItem(ctx context.Context, req *models.AddCartItemRequest) error
	UpdateCartItem(ctx context.Context, productID models.ID, req *models.UpdateCartItemRequest) error
	RemoveCartItem(ctx context.Context, productID models.ID) error
}

type UploadAPI interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*models.UploadResponse, error)
	ImageURL(filename string) string
}

// Backend is the full REST surface of the storefront.
type Backend interface {
	AuthAPI
	ProductAPI
	CartAPI
	UploadAPI
}

type Client struct {
	baseURL    *url.URL
	uploadsURL string
	httpClient *http.Client
	tokens     TokenSource
}

type Option func(*Client)

// WithTransport replaces the base transport underneath the logging, metrics
// and tracing layers.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = instrument(rt)
	}
}

func instrument(rt http.RoundTripper) http.RoundTripper {
	return otelhttp.NewTransport(metrics.InstrumentTransport(middleware.Logging(rt)))
}

func New(cfg *config.API, tokens TokenSource, opts ...Option) (*Client, error) {

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base url %q: %w", cfg.BaseURL, err)
	}

	c := &Client{
		baseURL:    base,
		uploadsURL: strings.TrimRight(cfg.UploadsURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: instrument(http.DefaultTransport),
		},
		tokens: tokens,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}

	return c.baseURL.JoinPath(escaped...).String()
}

// itemEndpoint addresses one record under collection. Dot segments would be
// resolved away by JoinPath and hit a different resource, so they are refused.
func (c *Client) itemEndpoint(collection string, id models.ID) (string, error) {
	switch id {
	case "", ".", "..":
		return "", errors.AddValidationError("id", fmt.Sprintf("%q is not a valid identifier", id.String()))
	}

	return c.endpoint(collection, id.String()), nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body any, authenticated bool, out any) error {

	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.InternalError("Failed to encode request").WithError(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.InternalError("Failed to build request").WithError(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, authenticated, out)
}

func (c *Client) send(req *http.Request, authenticated bool, out any) error {

	req.Header.Set("Accept", "application/json")

	if authenticated && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NetworkError("Failed to reach the store").WithError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.NetworkError("Failed to read the store response").WithError(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.FromStatus(resp.StatusCode, errorMessage(data))
	}

	if out == nil {
		return nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return errors.ThirdPartyError("Empty response from the store").WithStatus(resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.ThirdPartyError("Malformed response from the store").WithStatus(resp.StatusCode).WithError(err)
	}

	return nil
}

// errorMessage pulls the human-readable part out of an error body; the backend
// uses both {"error": ...} and {"message": ...}.
func errorMessage(data []byte) string {

	var body models.MessageResponse
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}

	text := strings.TrimSpace(string(data))
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}

	return text
}
