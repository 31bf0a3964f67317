// Package context manages the named Elasticsearch connection contexts that
// escli persists between runs.
//
// A context bundles a cluster URL with optional basic-auth credentials. Users
// define contexts once and then switch between clusters by name instead of
// typing URLs and passwords for every session.
//
// # Configuration File
//
// Contexts are stored in ~/.elastic-cli/config.yml with the following schema:
//
//	current_context: production
//	contexts:
//	  local:
//	    url: http://localhost:9200
//	  production:
//	    url: https://es.example.com:9200
//	    username: admin
//	    password: secret
//
// The file is written with 0600 permissions because passwords are stored in
// plaintext. Every save rewrites the whole document.
//
// # Loading
//
// Load fails soft: a missing file is an empty configuration, and a file that
// cannot be parsed is reported through a *ParseError alongside an empty,
// usable configuration. A current_context that names a context which no longer
// exists is dropped on load.
//
// # Concurrency
//
// Storage operations are serialized within a process with a read-write mutex.
// Concurrent escli processes editing the same file are not coordinated.
package context
