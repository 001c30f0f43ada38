package qbt

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/lucperkins/rek"

	"github.com/autobrr/qbtc/pkg/httputils"
)

// Response is the raw outcome of one HTTP call.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// Transport executes exactly one GET or POST call per invocation.
// A returned error means no usable response was received.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (*Response, error)
	Post(ctx context.Context, url string, headers map[string]string, body any) (*Response, error)
	Close()
}

type httpTransport struct {
	http *http.Client
	pool *http.Transport
}

// NewHTTPTransport builds the default transport: a cookie keeping client with
// retries disabled, optional TLS verification bypass and request pacing.
func NewHTTPTransport(opts httputils.ClientOptions) (Transport, error) {
	pool := httputils.NewTransport(opts.InsecureTLS)

	c, err := httputils.NewRetryableHttpClient(opts, httputils.NewLimiter(opts.RateLimit), pool)
	if err != nil {
		return nil, err
	}

	return &httpTransport{http: c, pool: pool}, nil
}

func (t *httpTransport) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	resp, err := rek.Get(url,
		rek.Client(t.http),
		rek.Headers(headers),
		rek.Context(ctx),
	)

	return readResponse(resp, err)
}

func (t *httpTransport) Post(ctx context.Context, url string, headers map[string]string, body any) (*Response, error) {
	if body == nil {
		resp, err := rek.Post(url,
			rek.Client(t.http),
			rek.Headers(headers),
			rek.Context(ctx),
		)
		return readResponse(resp, err)
	}

	resp, err := rek.Post(url,
		rek.Client(t.http),
		rek.Headers(headers),
		rek.Json(body),
		rek.Context(ctx),
	)
	return readResponse(resp, err)
}

func (t *httpTransport) Close() {
	t.pool.CloseIdleConnections()
}

func readResponse(resp *rek.Response, err error) (*Response, error) {
	if err != nil {
		if resp != nil && resp.Body() != nil {
			resp.Body().Close()
		}
		return nil, err
	}
	defer resp.Body().Close()

	b, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       b,
	}, nil
}
