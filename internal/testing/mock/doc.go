// Package mock provides an in-process fake Elasticsearch cluster for tests.
//
// The fake answers the connectivity check on GET / and serves canned replies
// registered per method and path. Every request is recorded so tests can
// assert on the exact method, path, query, body and credentials sent:
//
//	es := mock.NewElasticsearch()
//	defer es.Close()
//	es.Handle(http.MethodGet, "/_cluster/health", 200, `{"status":"green"}`)
//
// Routes can be given a delay to exercise timeouts, the root status can be
// changed to simulate a failing check, and RequireAuth enforces basic auth.
package mock
