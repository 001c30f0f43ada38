package qbt

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testSID = "cf3dd5a4f2a1"

// fakeWebAPI is a minimal in-process stand in for the qBittorrent Web API.
type fakeWebAPI struct {
	*httptest.Server

	mu          sync.Mutex
	calls       map[string]int
	headers     map[string]http.Header
	loginBody   string
	loginStatus int
	login       credentials
	routes      map[string]http.HandlerFunc
	opened      int
	closed      int
}

func newFakeWebAPI(t *testing.T) *fakeWebAPI {
	t.Helper()

	f := &fakeWebAPI{
		calls:     map[string]int{},
		headers:   map[string]http.Header{},
		loginBody: loginOK,
		routes:    map[string]http.HandlerFunc{},
	}

	f.routes["auth/logout"] = func(w http.ResponseWriter, r *http.Request) {}

	f.Server = httptest.NewUnstartedServer(http.HandlerFunc(f.serve))
	f.Server.Config.ConnState = f.trackConn
	f.Server.Start()
	t.Cleanup(f.Close)
	return f
}

func (f *fakeWebAPI) trackConn(_ net.Conn, state http.ConnState) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch state {
	case http.StateNew:
		f.opened++
	case http.StateClosed, http.StateHijacked:
		f.closed++
	}
}

// conns returns the number of client connections opened and closed so far.
func (f *fakeWebAPI) conns() (opened, closed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened, f.closed
}

func (f *fakeWebAPI) serve(w http.ResponseWriter, r *http.Request) {
	endpoint := strings.TrimPrefix(r.URL.Path, apiPrefix)

	f.mu.Lock()
	f.calls[endpoint]++
	f.headers[endpoint] = r.Header.Clone()
	route := f.routes[endpoint]
	loginStatus, loginBody := f.loginStatus, f.loginBody
	f.mu.Unlock()

	if endpoint == "auth/login" {
		var creds credentials
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &creds)

		f.mu.Lock()
		f.login = creds
		f.mu.Unlock()

		if loginStatus != 0 {
			w.WriteHeader(loginStatus)
			return
		}
		if loginBody == loginOK {
			http.SetCookie(w, &http.Cookie{Name: "SID", Value: testSID, Path: "/"})
		}
		_, _ = io.WriteString(w, loginBody)
		return
	}

	if route == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if sid, err := r.Cookie("SID"); err != nil || sid.Value != testSID {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	route(w, r)
}

func (f *fakeWebAPI) handle(endpoint string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[endpoint] = h
}

func (f *fakeWebAPI) text(endpoint, body string) {
	f.handle(endpoint, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	})
}

func (f *fakeWebAPI) fixture(t *testing.T, endpoint, file string) {
	t.Helper()

	b, err := os.ReadFile(filepath.Join("testdata", file))
	require.NoError(t, err)

	f.handle(endpoint, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
	})
}

func (f *fakeWebAPI) setLogin(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginStatus = status
	f.loginBody = body
}

func (f *fakeWebAPI) loginCreds() credentials {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.login
}

func (f *fakeWebAPI) count(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

func (f *fakeWebAPI) header(endpoint string) http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headers[endpoint]
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.Out = io.Discard
	l.SetLevel(logrus.TraceLevel)
	return logrus.NewEntry(l)
}

func (f *fakeWebAPI) options() Options {
	return Options{
		BaseURL:  f.URL,
		Username: "admin",
		Password: "adminadmin",
		Logger:   testLogger(),
	}
}
