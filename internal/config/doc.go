// Package config resolves the process settings of escli.
//
// Settings come from four layers, later ones winning:
//
//  1. built-in defaults (Defaults)
//  2. a .env file in the working directory, if present
//  3. environment variables
//  4. command-line flags, applied by the cmd package
//
// # Environment Variables
//
//	ESCLI_CONFIG           path of the contexts file (default ~/.elastic-cli/config.yml)
//	ESCLI_CONTEXT          context to switch to at startup
//	ESCLI_HISTORY          path of the shell history file
//	ESCLI_CHECK_TIMEOUT    connectivity check timeout, e.g. 5s
//	ESCLI_REQUEST_TIMEOUT  timeout of every other request, e.g. 30s
//	ESCLI_LOG_LEVEL        debug, info, warn or error
//	NO_COLOR               disables colored output when set to any value
//
// Timeouts accept Go durations ("1m30s") or whole seconds ("90").
//
// Values set in the real environment are never overridden by the .env file.
package config
