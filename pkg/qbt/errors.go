package qbt

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/autobrr/qbtc/pkg/qbt/decode"
)

// Kind classifies every error returned by this package.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindAuth
	KindDecode
	KindInvalidConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindDecode:
		return "decode"
	case KindInvalidConfiguration:
		return "invalid configuration"
	default:
		return "unknown"
	}
}

var (
	ErrBadCredentials   = errors.New("bad credentials")
	ErrIPBanned         = errors.New("ip banned after too many failed logins")
	ErrSessionClosed    = errors.New("session closed")
	ErrNotAuthenticated = errors.New("session not authenticated")
	ErrForbidden        = errors.New("forbidden, session expired or lacks permission")
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

type Error struct {
	Kind       Kind
	Op         string
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.Op != "" {
		b.WriteString(" during ")
		b.WriteString(e.Op)
	}
	if e.Endpoint != "" {
		b.WriteString(" (")
		b.WriteString(e.Endpoint)
		b.WriteString(")")
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " [%d]", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind == kind
	}

	return false
}

// DecodeReason returns the decode failure reason carried by err, if any.
func DecodeReason(err error) (decode.Reason, bool) {
	var de *decode.Error
	if errors.As(err, &de) {
		return de.Reason, true
	}

	return 0, false
}

// LogFields summarises err for structured log output.
func LogFields(err error) logrus.Fields {
	fields := logrus.Fields{}

	var qe *Error
	if !errors.As(err, &qe) {
		return fields
	}

	fields["kind"] = qe.Kind.String()
	if qe.Endpoint != "" {
		fields["endpoint"] = qe.Endpoint
	}

	switch qe.Kind {
	case KindTransport:
		fields["reason"] = Describe(err)
	case KindAuth:
		if qe.StatusCode != 0 {
			fields["reason"] = describeStatus(qe.StatusCode)
		} else if qe.Err != nil {
			fields["reason"] = qe.Err.Error()
		}
	case KindDecode:
		if reason, ok := DecodeReason(err); ok {
			fields["reason"] = reason.String()
		}

		var de *decode.Error
		if errors.As(err, &de) {
			if de.Field != "" {
				fields["field"] = de.Field
			}
			if de.Index >= 0 {
				fields["index"] = de.Index
			}
		}
	}

	return fields
}

func transportError(op, endpoint string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Endpoint: endpoint, Err: err}
}

func statusError(op, endpoint string, code int) *Error {
	return &Error{
		Kind:       KindTransport,
		Op:         op,
		Endpoint:   endpoint,
		StatusCode: code,
		Err:        fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, code, http.StatusText(code)),
	}
}

func authError(op, endpoint string, err error) *Error {
	return &Error{Kind: KindAuth, Op: op, Endpoint: endpoint, Err: err}
}

func decodeError(op, endpoint string, err error) *Error {
	return &Error{Kind: KindDecode, Op: op, Endpoint: endpoint, Err: err}
}

func configError(err error) *Error {
	return &Error{Kind: KindInvalidConfiguration, Op: "open", Err: err}
}

// Describe gives a short human readable cause for a transport failure,
// suitable for log output.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var qe *Error
	if errors.As(err, &qe) && qe.StatusCode != 0 {
		return describeStatus(qe.StatusCode)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Sprintf("failed to resolve hostname %s", dnsErr.Name)
	}

	var certErr *tls.CertificateVerificationError
	var unknownAuth x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &unknownAuth) || errors.As(err, &hostErr) {
		return "tls certificate verification failed"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		msg := opErr.Error()
		switch {
		case strings.Contains(msg, "connection refused"):
			return "connection refused"
		case strings.Contains(msg, "no route to host"), strings.Contains(msg, "network is unreachable"):
			return "network unreachable"
		case opErr.Timeout():
			return "connection timed out"
		}
		return "network operation failed"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "request timed out"
	}

	return err.Error()
}

func describeStatus(code int) string {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "access denied"
	case http.StatusNotFound:
		return "endpoint or torrent not found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusBadGateway:
		return "bad gateway"
	case http.StatusServiceUnavailable:
		return "service unavailable"
	default:
		return fmt.Sprintf("unexpected status %d", code)
	}
}
