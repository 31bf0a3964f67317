package connection

import (
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrNotConnected is returned when a request is attempted before any cluster URL is set.
var ErrNotConnected = errors.New("no connection configured: add a context with 'connect <name>' or switch with 'context use <name>'")

// ConnectionErrorType categorizes the type of connection error.
type ConnectionErrorType int

const (
	// ConnectionErrorUnknown indicates an unclassified connection error.
	ConnectionErrorUnknown ConnectionErrorType = iota
	// ConnectionErrorTLS indicates a TLS/certificate verification error.
	ConnectionErrorTLS
	// ConnectionErrorNetwork indicates a network connectivity error (e.g., refused, unreachable).
	ConnectionErrorNetwork
	// ConnectionErrorTimeout indicates a connection timeout.
	ConnectionErrorTimeout
	// ConnectionErrorDNS indicates a DNS resolution failure.
	ConnectionErrorDNS
	// ConnectionErrorStatus indicates the cluster root answered with something other than 200.
	ConnectionErrorStatus
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorTLS:
		return "TLS certificate error"
	case ConnectionErrorNetwork:
		return "Network error"
	case ConnectionErrorTimeout:
		return "Connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	case ConnectionErrorStatus:
		return "Unexpected response"
	default:
		return "Connection error"
	}
}

// ConnectionError indicates the cluster could not be reached or did not pass
// the connectivity check.
type ConnectionError struct {
	// URL is the address that could not be reached.
	URL string
	// Type categorizes the connection error.
	Type ConnectionErrorType
	// Reason is the underlying error.
	Reason error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s connecting to %s: %v", e.Type, e.URL, e.Reason)
}

func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// StatusError is returned when the cluster answers with a status other than 200 or 201.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	// Body is the raw response text.
	Body string
}

func (e *StatusError) Error() string {
	if reason := e.Reason(); reason != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, reason)
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, body)
}

// Reason extracts the error type and reason from an Elasticsearch error body,
// e.g. "index_not_found_exception: no such index [logs]". It returns an empty
// string when the body is not a structured error.
func (e *StatusError) Reason() string {
	var payload struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err != nil || len(payload.Error) == 0 {
		return ""
	}

	var detail struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(payload.Error, &detail); err != nil {
		// Some endpoints return "error" as a plain string
		var s string
		if json.Unmarshal(payload.Error, &s) == nil {
			return s
		}
		return ""
	}
	switch {
	case detail.Type != "" && detail.Reason != "":
		return detail.Type + ": " + detail.Reason
	case detail.Reason != "":
		return detail.Reason
	default:
		return detail.Type
	}
}

// DecodeError is returned when a successful response body is not valid JSON
// or does not match the expected shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RequestError is returned when a request cannot be built, before anything is sent.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return "invalid request: " + e.Reason
}

// Kind classifies a request outcome so callers can react without parsing messages.
type Kind int

const (
	// KindNone means no error.
	KindNone Kind = iota
	// KindNotConnected means no cluster URL is configured.
	KindNotConnected
	// KindTransport means the cluster was unreachable or failed the connectivity check.
	KindTransport
	// KindStatus means the cluster rejected the request with a non-success status.
	KindStatus
	// KindDecode means the response could not be decoded.
	KindDecode
	// KindRequest means the request was invalid and never sent.
	KindRequest
	// KindOther covers errors from outside this package.
	KindOther
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotConnected:
		return "not connected"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindRequest:
		return "request"
	default:
		return "other"
	}
}

// KindOf returns the Kind of err.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var connErr *ConnectionError
	var statusErr *StatusError
	var decodeErr *DecodeError
	var reqErr *RequestError

	switch {
	case errors.Is(err, ErrNotConnected):
		return KindNotConnected
	case errors.As(err, &connErr):
		return KindTransport
	case errors.As(err, &statusErr):
		return KindStatus
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &reqErr):
		return KindRequest
	default:
		return KindOther
	}
}

// IsNotFound reports whether err is a 404 response from the cluster.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == 404
}

// ClassifyConnectionError analyzes a transport error and returns a ConnectionError
// with the appropriate type. If the error is nil, returns nil.
func ClassifyConnectionError(err error, endpoint string) *ConnectionError {
	if err == nil {
		return nil
	}

	connErr := &ConnectionError{URL: endpoint, Type: ConnectionErrorUnknown, Reason: err}

	var dnsErr *net.DNSError
	switch {
	case isTLSError(err):
		connErr.Type = ConnectionErrorTLS
	case errors.As(err, &dnsErr):
		connErr.Type = ConnectionErrorDNS
	case isTimeoutError(err):
		connErr.Type = ConnectionErrorTimeout
	case isNetworkError(err.Error()):
		connErr.Type = ConnectionErrorNetwork
	}

	return connErr
}

// isTLSError checks if the error is related to TLS/certificate issues.
func isTLSError(err error) bool {
	var certErr *x509.CertificateInvalidError
	var hostErr *x509.HostnameError
	var unknownAuthErr x509.UnknownAuthorityError
	var systemRootsErr x509.SystemRootsError

	if errors.As(err, &certErr) || errors.As(err, &hostErr) ||
		errors.As(err, &unknownAuthErr) || errors.As(err, &systemRootsErr) {
		return true
	}

	errStr := err.Error()
	for _, keyword := range []string{"x509:", "certificate", "tls:", "TLS handshake"} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// isTimeoutError checks if the error is a timeout.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isNetworkError checks if the error string indicates a network connectivity issue.
func isNetworkError(errStr string) bool {
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"dial tcp",
		"connect:",
		"EOF",
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}
