package qbt

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/autobrr/qbtc/pkg/qbt/decode"
)

// Client exposes one method per supported Web API capability.
// Every method performs a single round trip on the underlying Session.
type Client struct {
	session *Session
	log     *logrus.Entry
}

func New(s *Session) *Client {
	return &Client{session: s, log: s.log}
}

// Connect opens a Session with opts and wraps it in a Client.
func Connect(ctx context.Context, opts Options) (*Client, error) {
	s, err := Open(ctx, opts)
	if err != nil {
		return nil, err
	}

	return New(s), nil
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) Close(ctx context.Context) {
	c.session.Close(ctx)
}

func (c *Client) getText(ctx context.Context, endpoint string) (string, error) {
	b, err := c.session.Get(ctx, endpoint, nil)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func getObject[T any](ctx context.Context, c *Client, endpoint string, query url.Values, table []decode.Field[T]) (T, map[string]any, error) {
	var zero T

	v, err := c.session.GetJSON(ctx, endpoint, query)
	if err != nil {
		return zero, nil, err
	}

	obj, err := decode.AsObject(v)
	if err != nil {
		return zero, nil, decodeError("decode", endpoint, err)
	}

	c.traceUnknown(endpoint, decode.UnknownKeys(obj, table))

	rec, err := decode.Object(obj, table)
	if err != nil {
		return zero, nil, decodeError("decode", endpoint, err)
	}

	return rec, obj, nil
}

func getArray[T any](ctx context.Context, c *Client, endpoint string, query url.Values, table []decode.Field[T]) ([]T, error) {
	v, err := c.session.GetJSON(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}

	if arr, ok := v.([]any); ok && len(arr) > 0 {
		if first, ok := arr[0].(map[string]any); ok {
			c.traceUnknown(endpoint, decode.UnknownKeys(first, table))
		}
	}

	recs, err := decode.Array(v, table)
	if err != nil {
		return nil, decodeError("decode", endpoint, err)
	}

	return recs, nil
}

func (c *Client) traceUnknown(endpoint string, keys []string) {
	if len(keys) == 0 || !c.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		return
	}

	c.log.Tracef("Ignoring unknown keys from %s: %v", endpoint, keys)
}

func scalarError(endpoint string, err error) error {
	return decodeError("parse", endpoint, decode.Malformed(err))
}
