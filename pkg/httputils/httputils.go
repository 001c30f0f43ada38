package httputils

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/autobrr/autobrr/pkg/sharedhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/ratelimit"
	"golang.org/x/net/publicsuffix"

	"github.com/autobrr/qbtc/pkg/runtime"
)

type ClientOptions struct {
	Timeout     time.Duration
	InsecureTLS bool
	// RateLimit is the maximum number of requests per second, 0 disables pacing.
	RateLimit int
}

// NewLimiter returns a pacing limiter for the given requests per second.
func NewLimiter(perSecond int) ratelimit.Limiter {
	if perSecond <= 0 {
		return ratelimit.NewUnlimited()
	}

	return ratelimit.New(perSecond, ratelimit.WithoutSlack)
}

// NewTransport returns a private copy of the shared transport, so that the
// caller owns its connection pool.
func NewTransport(insecureTLS bool) *http.Transport {
	if insecureTLS {
		return sharedhttp.TransportTLSInsecure.Clone()
	}

	return sharedhttp.Transport.Clone()
}

// NewRetryableHttpClient builds the http client used against a torrent client on top of tr.
// Failed calls are never retried, the caller owns retry policy.
func NewRetryableHttpClient(opts ClientOptions, rl ratelimit.Limiter, tr *http.Transport) (*http.Client, error) {
	if tr == nil {
		return nil, fmt.Errorf("nil transport")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.RequestLogHook = func(l retryablehttp.Logger, request *http.Request, i int) {
		// set user-agent
		if request != nil {
			request.Header.Set("User-Agent", runtime.UserAgent())
		}

		// rate limit
		if rl != nil {
			rl.Take()
		}
	}
	retryClient.HTTPClient.Timeout = opts.Timeout
	retryClient.HTTPClient.Transport = tr
	retryClient.Logger = nil

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := retryClient.StandardClient()
	c.Jar = jar
	return c, nil
}

func noRetry(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, err
}

func URLWithQuery(base string, q url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("url parse: %w", err)
	}

	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
