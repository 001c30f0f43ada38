package qbt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/autobrr/qbtc/pkg/httputils"
	"github.com/autobrr/qbtc/pkg/logger"
	"github.com/autobrr/qbtc/pkg/qbt/decode"
)

const (
	apiPrefix    = "/api/v2/"
	loginOK      = "Ok."
	loginFailure = "Fails."
)

type SessionState int

const (
	SessionUnauthenticated SessionState = iota
	SessionAuthenticating
	SessionAuthenticated
	SessionLoggedOut
)

func (s SessionState) String() string {
	switch s {
	case SessionUnauthenticated:
		return "unauthenticated"
	case SessionAuthenticating:
		return "authenticating"
	case SessionAuthenticated:
		return "authenticated"
	case SessionLoggedOut:
		return "logged out"
	default:
		return "unknown"
	}
}

// Options configures a Session.
// Username/Password and Token are mutually exclusive.
type Options struct {
	BaseURL     string
	Username    string
	Password    string
	Token       string
	InsecureTLS bool
	Timeout     time.Duration
	RateLimit   int

	// Transport overrides the default HTTP transport.
	Transport Transport
	Logger    *logrus.Entry
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is an authenticated handle on one Web API instance.
// It is not safe for concurrent use.
type Session struct {
	baseURL   string
	creds     credentials
	headers   map[string]string
	transport Transport
	state     SessionState
	logoutErr error
	log       *logrus.Entry
}

// Open validates opts, builds the transport and logs in. The session is only
// returned when the login response body is exactly "Ok.".
func Open(ctx context.Context, opts Options) (*Session, error) {
	base, err := normalizeBaseURL(opts.BaseURL)
	if err != nil {
		return nil, configError(err)
	}

	if opts.Token != "" && (opts.Username != "" || opts.Password != "") {
		return nil, configError(errors.New("credentials and token are mutually exclusive"))
	}

	if opts.Timeout < 0 {
		return nil, configError(fmt.Errorf("negative timeout: %v", opts.Timeout))
	}

	s := &Session{
		baseURL: base,
		creds:   credentials{Username: opts.Username, Password: opts.Password},
		headers: map[string]string{"Referer": base},
		state:   SessionUnauthenticated,
		log:     opts.Logger,
	}
	if s.log == nil {
		s.log = logger.GetLogger("qbt")
	}
	if opts.Token != "" {
		s.headers["Authorization"] = "Bearer " + opts.Token
	}

	s.transport = opts.Transport
	if s.transport == nil {
		s.transport, err = NewHTTPTransport(httputils.ClientOptions{
			Timeout:     opts.Timeout,
			InsecureTLS: opts.InsecureTLS,
			RateLimit:   opts.RateLimit,
		})
		if err != nil {
			return nil, configError(err)
		}
	}

	if err := s.login(ctx); err != nil {
		s.transport.Close()
		return nil, err
	}

	return s, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("base url is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base url %q: unsupported scheme %q", raw, u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("base url %q: missing host", raw)
	}

	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("base url %q: must not carry a query or fragment", raw)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (s *Session) login(ctx context.Context) error {
	const op = "login"
	endpoint := "auth/login"

	s.state = SessionAuthenticating

	resp, err := s.send(ctx, op, endpoint, s.creds)
	if err != nil {
		s.state = SessionUnauthenticated
		return err
	}

	switch {
	case resp.StatusCode == http.StatusForbidden:
		s.state = SessionUnauthenticated
		return &Error{Kind: KindAuth, Op: op, Endpoint: endpoint, StatusCode: resp.StatusCode, Err: ErrIPBanned}
	case resp.StatusCode == http.StatusUnauthorized:
		s.state = SessionUnauthenticated
		return &Error{Kind: KindAuth, Op: op, Endpoint: endpoint, StatusCode: resp.StatusCode, Err: ErrBadCredentials}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		s.state = SessionUnauthenticated
		return statusError(op, endpoint, resp.StatusCode)
	}

	body := string(resp.Body)
	switch body {
	case loginOK:
		s.state = SessionAuthenticated
		s.log.Debugf("Authenticated against %s", s.baseURL)
		return nil
	case loginFailure:
		s.state = SessionUnauthenticated
		return authError(op, endpoint, ErrBadCredentials)
	default:
		s.state = SessionUnauthenticated
		return authError(op, endpoint, fmt.Errorf("unexpected login response %q", body))
	}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// BaseURL returns the normalised base URL without a trailing slash.
func (s *Session) BaseURL() string {
	return s.baseURL
}

// BuildURL returns <base>/api/v2/<endpoint>.
func (s *Session) BuildURL(endpoint string) string {
	return s.baseURL + apiPrefix + strings.TrimLeft(endpoint, "/")
}

func (s *Session) ready(op, endpoint string) error {
	switch s.state {
	case SessionAuthenticated:
		return nil
	case SessionLoggedOut:
		return authError(op, endpoint, ErrSessionClosed)
	default:
		return authError(op, endpoint, ErrNotAuthenticated)
	}
}

// Get issues a GET against endpoint with optional query parameters and returns the raw body.
func (s *Session) Get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	const op = "get"

	if err := s.ready(op, endpoint); err != nil {
		return nil, err
	}

	u, err := httputils.URLWithQuery(s.BuildURL(endpoint), query)
	if err != nil {
		return nil, transportError(op, endpoint, err)
	}

	s.log.Tracef("GET %s", u)
	resp, err := s.transport.Get(ctx, u, s.headers)
	if err != nil {
		return nil, transportError(op, endpoint, pkgerrors.WithStack(err))
	}

	if err := s.checkStatus(op, endpoint, resp); err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// Post issues a POST with an optional JSON body and returns the raw response body.
func (s *Session) Post(ctx context.Context, endpoint string, body any) ([]byte, error) {
	return s.post(ctx, "post", endpoint, body)
}

func (s *Session) post(ctx context.Context, op, endpoint string, body any) ([]byte, error) {
	if err := s.ready(op, endpoint); err != nil {
		return nil, err
	}

	resp, err := s.send(ctx, op, endpoint, body)
	if err != nil {
		return nil, err
	}

	if err := s.checkStatus(op, endpoint, resp); err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// send performs the POST without any session state or status checks.
func (s *Session) send(ctx context.Context, op, endpoint string, body any) (*Response, error) {
	s.log.Tracef("POST %s", s.BuildURL(endpoint))

	resp, err := s.transport.Post(ctx, s.BuildURL(endpoint), s.headers, body)
	if err != nil {
		return nil, transportError(op, endpoint, pkgerrors.WithStack(err))
	}

	return resp, nil
}

func (s *Session) checkStatus(op, endpoint string, resp *Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return &Error{Kind: KindAuth, Op: op, Endpoint: endpoint, StatusCode: resp.StatusCode, Err: ErrForbidden}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return statusError(op, endpoint, resp.StatusCode)
	}

	return nil
}

// GetJSON issues a GET and parses the body as a single JSON value.
// Numbers are kept as json.Number so integers survive untouched.
func (s *Session) GetJSON(ctx context.Context, endpoint string, query url.Values) (any, error) {
	body, err := s.Get(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}

	v, err := parseJSON(body)
	if err != nil {
		return nil, decodeError("get json", endpoint, err)
	}

	return v, nil
}

func parseJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, decode.Malformed(fmt.Errorf("parse json: %w", err))
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, decode.Malformed(errors.New("parse json: trailing data after value"))
	}

	return v, nil
}

// Close logs out and releases the transport. A failed logout is logged and
// kept in LogoutErr, the session is closed regardless.
func (s *Session) Close(ctx context.Context) {
	if s.state == SessionLoggedOut {
		return
	}

	if s.state == SessionAuthenticated {
		if _, err := s.post(ctx, "logout", "auth/logout", nil); err != nil {
			s.logoutErr = err
			s.log.WithError(err).Warnf("Failed logging out of %s: %s", s.baseURL, Describe(err))
		}
	}

	s.state = SessionLoggedOut
	s.transport.Close()
}

// LogoutErr returns the error recorded by Close, if any.
func (s *Session) LogoutErr() error {
	return s.logoutErr
}
