// Package cluster maps the Elasticsearch REST endpoints used by escli onto typed
// Go methods.
//
// Every method builds its path, sends it through a Requester (normally the
// session, which checks connectivity first) and decodes the JSON into the
// schemas in types.go. Payloads whose shape is defined by the user, such as
// settings, mappings and lifecycle policies, are returned as generic maps.
//
// Path parameters are escaped, so index names containing reserved characters
// are sent verbatim to the cluster.
package cluster
