package googleime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/japanizer/internal/logging"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/tidwall/gjson"
)

const (
	// DefaultEndpoint is the public transliteration CGI.
	DefaultEndpoint = "https://www.google.com/transliterate"

	// DefaultTimeout bounds a single conversion request.
	DefaultTimeout = 5 * time.Second

	langPair = "ja-Hira|ja"

	// maxBodySize caps the response we are willing to read.
	maxBodySize = 1 << 20
)

// ErrMalformedResponse is returned when the body is not a list of [segment, [candidates...]] pairs.
var ErrMalformedResponse = errors.New("malformed transliteration response")

// Client implements ports.KanjiConverter against the Google IME transliteration service.
// Every failure is logged once and the input is returned unchanged.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	hooks      domain.Hooks
}

type Option func(*Client)

// WithEndpoint overrides the service URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithTimeout sets the per-request timeout. It applies to a copy of the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for absorbed failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithHooks registers a callback fired after every request.
func WithHooks(h domain.Hooks) Option {
	return func(c *Client) {
		c.hooks = h
	}
}

// New creates a client with the default endpoint and timeout.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Convert returns the first candidate of every segment, concatenated in order.
// On any error it returns hiragana unchanged.
func (c *Client) Convert(ctx context.Context, hiragana string) string {
	start := time.Now()
	out, err := c.convert(ctx, hiragana)

	c.hooks.Kanji(ctx, &domain.KanjiEvent{
		Timestamp: start,
		Input:     hiragana,
		Duration:  time.Since(start),
		Err:       err,
	})

	if err != nil {
		c.logger.Warn("kana to kanji conversion failed", "text", hiragana, "error", err)
		return hiragana
	}
	return out
}

func (c *Client) convert(ctx context.Context, text string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(text), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}

	return ParseResponse(body)
}

func (c *Client) requestURL(text string) string {
	q := url.Values{}
	q.Set("langpair", langPair)
	q.Set("text", text)

	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	return c.endpoint + sep + q.Encode()
}

// ParseResponse concatenates candidate 0 of every segment in body.
func ParseResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", ErrMalformedResponse
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return "", ErrMalformedResponse
	}

	var b strings.Builder
	for i, segment := range root.Array() {
		candidate := segment.Get("1.0")
		if !segment.IsArray() || candidate.Type != gjson.String {
			return "", fmt.Errorf("%w: segment %d", ErrMalformedResponse, i)
		}
		b.WriteString(candidate.String())
	}
	return b.String(), nil
}
