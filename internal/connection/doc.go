// Package connection owns the HTTP session to the active Elasticsearch cluster.
//
// A Manager holds at most one endpoint and one optional basic-auth pair. It is
// either disconnected (no URL) or pointed at a cluster; pointing it somewhere
// is a pure assignment and never touches the network.
//
// Every request made through Do is preceded by a connectivity check (GET / must
// answer 200 within the check timeout). Outcomes are reported through typed
// errors rather than printed messages:
//
//	res, err := mgr.Do(ctx, http.MethodGet, "/_cluster/health", nil)
//	switch connection.KindOf(err) {
//	case connection.KindNone:          // res holds the JSON payload, or res.Empty()
//	case connection.KindNotConnected:  // no context selected
//	case connection.KindTransport:     // unreachable, TLS, DNS, timeout or failed check
//	case connection.KindStatus:        // cluster returned a non-success status
//	case connection.KindDecode:        // payload was not JSON
//	}
//
// The HTTP client is go-resty with JSON headers, a per-request X-Opaque-Id for
// tracing in the cluster task list, and debug hooks routed through pkg/logging.
// Nothing is retried.
package connection
