package qbt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/qbtc/pkg/qbt/decode"
	"github.com/autobrr/qbtc/pkg/runtime"
)

func TestOpenLogin(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    Kind
		wantErr error
	}{
		{name: "ok", body: "Ok."},
		{name: "fails", body: "Fails.", kind: KindAuth, wantErr: ErrBadCredentials},
		{name: "missing_period", body: "Ok", kind: KindAuth},
		{name: "trailing_newline", body: "Ok.\n", kind: KindAuth},
		{name: "lowercase", body: "ok.", kind: KindAuth},
		{name: "empty", body: "", kind: KindAuth},
		{name: "banned", status: http.StatusForbidden, kind: KindAuth, wantErr: ErrIPBanned},
		{name: "unauthorized", status: http.StatusUnauthorized, kind: KindAuth, wantErr: ErrBadCredentials},
		{name: "server_error", status: http.StatusInternalServerError, kind: KindTransport, wantErr: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeWebAPI(t)
			api.setLogin(tt.status, tt.body)

			s, err := Open(context.Background(), api.options())
			if tt.kind == 0 {
				require.NoError(t, err)
				assert.Equal(t, SessionAuthenticated, s.State())
				assert.Equal(t, credentials{Username: "admin", Password: "adminadmin"}, api.loginCreds())
				return
			}

			require.Error(t, err)
			assert.Nil(t, s)
			assert.True(t, IsKind(err, tt.kind), "kind: %v", err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestOpenTransportFailure(t *testing.T) {
	api := newFakeWebAPI(t)
	opts := api.options()
	api.Close()

	_, err := Open(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransport))
	assert.NotEmpty(t, Describe(err))
}

func TestOpenInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "empty_url", opts: Options{}},
		{name: "no_scheme", opts: Options{BaseURL: "localhost:8080"}},
		{name: "ftp_scheme", opts: Options{BaseURL: "ftp://localhost"}},
		{name: "missing_host", opts: Options{BaseURL: "http://"}},
		{name: "query", opts: Options{BaseURL: "http://localhost:8080/?a=b"}},
		{name: "unparsable", opts: Options{BaseURL: "http://[::1"}},
		{name: "credentials_and_token", opts: Options{BaseURL: "http://localhost:8080", Username: "admin", Token: "abc"}},
		{name: "password_and_token", opts: Options{BaseURL: "http://localhost:8080", Password: "x", Token: "abc"}},
		{name: "negative_timeout", opts: Options{BaseURL: "http://localhost:8080", Timeout: -time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.opts)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindInvalidConfiguration), "kind: %v", err)
		})
	}
}

func TestSessionHeaders(t *testing.T) {
	api := newFakeWebAPI(t)
	api.text("app/version", "v4.6.5")

	opts := api.options()
	opts.Username, opts.Password, opts.Token = "", "", "app-password"

	s, err := Open(context.Background(), opts)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "app/version", nil)
	require.NoError(t, err)

	for _, endpoint := range []string{"auth/login", "app/version"} {
		h := api.header(endpoint)
		assert.Equal(t, "Bearer app-password", h.Get("Authorization"), endpoint)
		assert.Equal(t, api.URL, h.Get("Referer"), endpoint)
		assert.Equal(t, runtime.UserAgent(), h.Get("User-Agent"), endpoint)
	}
}

func TestSessionWithoutToken(t *testing.T) {
	api := newFakeWebAPI(t)
	api.text("app/version", "v4.6.5")

	s, err := Open(context.Background(), api.options())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "app/version", nil)
	require.NoError(t, err)
	assert.Empty(t, api.header("app/version").Get("Authorization"))
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		endpoint string
		expected string
	}{
		{"http://localhost:8080", "app/version", "http://localhost:8080/api/v2/app/version"},
		{"http://localhost:8080/", "app/version", "http://localhost:8080/api/v2/app/version"},
		{"https://seedbox.example.com/qbittorrent/", "/torrents/info", "https://seedbox.example.com/qbittorrent/api/v2/torrents/info"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			base, err := normalizeBaseURL(tt.base)
			require.NoError(t, err)

			s := &Session{baseURL: base}
			assert.Equal(t, tt.expected, s.BuildURL(tt.endpoint))
		})
	}
}

func TestGetJSON(t *testing.T) {
	api := newFakeWebAPI(t)
	api.text("good", `{"a":1}`)
	api.text("garbage", `{"a":`)
	api.text("trailing", `{"a":1} {"b":2}`)
	api.text("empty", ``)
	api.handle("broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	s, err := Open(context.Background(), api.options())
	require.NoError(t, err)

	v, err := s.GetJSON(context.Background(), "good", nil)
	require.NoError(t, err)
	obj, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), obj["a"])

	for _, endpoint := range []string{"garbage", "trailing", "empty"} {
		_, err := s.GetJSON(context.Background(), endpoint, nil)
		assert.True(t, IsKind(err, KindDecode), endpoint)
		assert.True(t, decode.IsReason(err, decode.MalformedPayload), endpoint)
	}

	_, err = s.GetJSON(context.Background(), "broken", nil)
	assert.True(t, IsKind(err, KindTransport))
	assert.False(t, IsKind(err, KindDecode))

	var qe *Error
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, http.StatusInternalServerError, qe.StatusCode)
	assert.Equal(t, "broken", qe.Endpoint)
}

func TestSessionPost(t *testing.T) {
	api := newFakeWebAPI(t)
	api.handle("torrents/reannounce", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	})

	s, err := Open(context.Background(), api.options())
	require.NoError(t, err)
	assert.Equal(t, api.URL, s.BaseURL())

	got, err := s.Post(context.Background(), "torrents/reannounce", map[string]string{"hashes": "all"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hashes":"all"}`, string(got))
	assert.Equal(t, runtime.UserAgent(), api.header("torrents/reannounce").Get("User-Agent"))

	_, err = s.Post(context.Background(), "missing", nil)
	assert.True(t, IsKind(err, KindTransport))

	s.Close(context.Background())
	_, err = s.Post(context.Background(), "torrents/reannounce", nil)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Equal(t, 1, api.count("torrents/reannounce"))
}

func TestExpiredSession(t *testing.T) {
	api := newFakeWebAPI(t)
	api.handle("app/version", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	s, err := Open(context.Background(), api.options())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "app/version", nil)
	assert.True(t, IsKind(err, KindAuth))
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 1, api.count("auth/login"), "must not re-authenticate")
}

func TestContextCancellation(t *testing.T) {
	api := newFakeWebAPI(t)
	api.handle("slow", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	s, err := Open(context.Background(), api.options())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = s.Get(ctx, "slow", nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransport))
	assert.Equal(t, 1, api.count("slow"), "must not retry")
}

func TestClose(t *testing.T) {
	api := newFakeWebAPI(t)
	api.text("app/version", "v4.6.5")

	s, err := Open(context.Background(), api.options())
	require.NoError(t, err)

	s.Close(context.Background())
	assert.Equal(t, SessionLoggedOut, s.State())
	assert.NoError(t, s.LogoutErr())
	assert.Equal(t, 1, api.count("auth/logout"))

	// idempotent
	s.Close(context.Background())
	assert.Equal(t, 1, api.count("auth/logout"))

	_, err = s.Get(context.Background(), "app/version", nil)
	assert.True(t, IsKind(err, KindAuth))
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Equal(t, 0, api.count("app/version"))
}

func TestCloseReleasesConnections(t *testing.T) {
	api := newFakeWebAPI(t)
	api.text("app/version", "v4.6.5")

	s, err := Open(context.Background(), api.options())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "app/version", nil)
	require.NoError(t, err)

	opened, closed := api.conns()
	require.Positive(t, opened)
	assert.Zero(t, closed, "keep-alive connection expected while open")

	s.Close(context.Background())

	assert.Eventually(t, func() bool {
		opened, closed := api.conns()
		return opened == closed
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSessionsDoNotShareConnections(t *testing.T) {
	api := newFakeWebAPI(t)
	api.text("app/version", "v4.6.5")

	a, err := Open(context.Background(), api.options())
	require.NoError(t, err)
	b, err := Open(context.Background(), api.options())
	require.NoError(t, err)
	defer b.Close(context.Background())

	a.Close(context.Background())
	_, err = b.Get(context.Background(), "app/version", nil)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		opened, closed := api.conns()
		return closed >= 1 && opened-closed == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCloseLogoutFailure(t *testing.T) {
	api := newFakeWebAPI(t)
	api.handle("auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	s, err := Open(context.Background(), api.options())
	require.NoError(t, err)

	s.Close(context.Background())
	assert.Equal(t, SessionLoggedOut, s.State())
	require.Error(t, s.LogoutErr())
	assert.True(t, IsKind(s.LogoutErr(), KindTransport))
}

func TestCloseLogoutUnreachable(t *testing.T) {
	api := newFakeWebAPI(t)

	s, err := Open(context.Background(), api.options())
	require.NoError(t, err)

	api.Close()
	s.Close(context.Background())
	assert.Equal(t, SessionLoggedOut, s.State())
	assert.True(t, IsKind(s.LogoutErr(), KindTransport))
}

func TestNotAuthenticated(t *testing.T) {
	s := &Session{state: SessionUnauthenticated, log: testLogger()}

	_, err := s.Get(context.Background(), "app/version", nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.True(t, IsKind(err, KindAuth))
}

func TestErrorString(t *testing.T) {
	err := statusError("get", "torrents/info", http.StatusBadGateway)
	assert.Equal(t, "transport error during get (torrents/info) [502]: unexpected status code: 502 Bad Gateway", err.Error())
	assert.Equal(t, "bad gateway", Describe(err))

	err = authError("login", "auth/login", ErrBadCredentials)
	assert.Equal(t, "auth error during login (auth/login): bad credentials", err.Error())
}
