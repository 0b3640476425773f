// Package cosmos is a client for the Azure Cosmos DB SQL REST API.
//
// It covers the surface Orbit needs: container lifecycle, item CRUD, and
// paginated document queries. Service failures are translated into the
// sentinel errors in errors.go; credential material never appears in error
// messages or log output.
package cosmos

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/orbit-cli/orbit/internal/config"
	"github.com/orbit-cli/orbit/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RateLimit caps outbound requests per second. The emulator and
	// low-throughput accounts throttle aggressively at 429 otherwise.
	RateLimit = 20.0
)

// Client is a rate-limited HTTP client for a single Cosmos DB database.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	endpoint   string
	key        []byte
	database   string
	log        *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request and operation logging.
func WithLogger(l *logger.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a client for the database named in settings.
func NewClient(settings *config.Settings, opts ...ClientOption) (*Client, error) {
	key, err := decodeAccountKey(settings.Key)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport
	if config.IsEmulator(settings.Endpoint) {
		// The emulator serves a self-signed certificate on localhost.
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout, Transport: transport},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		endpoint:   strings.TrimSuffix(settings.Endpoint, "/"),
		key:        key,
		database:   settings.Database,
		log:        logger.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Database returns the database name this client operates on.
func (c *Client) Database() string {
	return c.database
}

// do issues one signed request and returns the raw response. Transport-level
// failures and deadline expiry are translated here; status codes are left to
// the caller, which knows the operation context.
func (c *Client) do(ctx context.Context, verb, path, resourceType, resourceLink string, headers map[string]string, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, verb, c.endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	date := strings.ToLower(time.Now().UTC().Format(http.TimeFormat))
	req.Header.Set("x-ms-date", date)
	req.Header.Set("x-ms-version", apiVersion)
	req.Header.Set("x-ms-activity-id", uuid.NewString())
	req.Header.Set("Authorization", signRequest(c.key, verb, resourceType, resourceLink, date))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.log.Debug("%s %s", verb, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeoutErr(err) {
			return nil, fmt.Errorf("%w: %s %s", ErrQueryTimeout, verb, path)
		}
		// The wrapped transport error carries the endpoint host but never
		// the account key.
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	return resp, nil
}

// isTimeoutErr reports whether a transport error was a deadline expiry.
func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// drainAndClose releases a response body so the connection can be reused.
func drainAndClose(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
