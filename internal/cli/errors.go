package cli

import (
	"errors"
	"net/http"

	"escli/internal/connection"
	escontext "escli/internal/context"
)

// Hinter is implemented by errors that carry their own suggestion.
type Hinter interface {
	Hint() string
}

// Hint returns a short suggestion for how to recover from err, or an empty
// string when there is nothing useful to add to the error message itself.
func Hint(err error) string {
	var h Hinter
	if errors.As(err, &h) {
		return h.Hint()
	}

	var connErr *connection.ConnectionError
	if errors.As(err, &connErr) {
		switch connErr.Type {
		case connection.ConnectionErrorTLS:
			return "The cluster certificate was rejected. Check the URL scheme and the certificate chain."
		case connection.ConnectionErrorDNS:
			return "The host name could not be resolved. Check the context URL with 'context show <name>'."
		case connection.ConnectionErrorTimeout:
			return "The cluster did not answer in time. Raise --check-timeout or check the network."
		case connection.ConnectionErrorStatus:
			if statusOf(connErr.Reason) == http.StatusUnauthorized {
				return "The cluster rejected the credentials. Re-add the context with 'connect <name>'."
			}
			return "The URL answered but does not look like a healthy Elasticsearch node."
		default:
			return "Is the cluster running? Check the URL with 'context show <name>'."
		}
	}

	var notFound *escontext.ContextNotFoundError
	if errors.As(err, &notFound) {
		return "Run 'context list' to see the configured contexts."
	}

	switch connection.KindOf(err) {
	case connection.KindStatus:
		switch statusOf(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "The current user is not allowed to do this. Check the credentials with 'context show <name>'."
		case http.StatusNotFound:
			return "The resource does not exist. Check the name and try again."
		}
	case connection.KindDecode:
		return "The response was not valid JSON. Is the context URL pointing at Elasticsearch?"
	}
	return ""
}

func statusOf(err error) int {
	var statusErr *connection.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
