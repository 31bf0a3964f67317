package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"escli/internal/connection"
	escontext "escli/internal/context"
	"escli/pkg/logging"
)

const subsystem = "Session"

// Store loads and saves the whole context configuration.
type Store interface {
	Load() (*escontext.ContextConfig, error)
	Save(config *escontext.ContextConfig) error
	Path() string
}

// Connector is the connection state the session drives.
type Connector interface {
	SetConnection(url, username, password string)
	ClearConnection()
	CheckConnection(ctx context.Context) error
	Do(ctx context.Context, method, path string, body interface{}) (*connection.Result, error)
	URL() string
	Credentials() *connection.Credentials
}

// SwitchError is returned when a context fails its connectivity check.
type SwitchError struct {
	Name string
	Err  error
}

func (e *SwitchError) Error() string {
	return fmt.Sprintf("failed to connect to context %q: %v", e.Name, e.Err)
}

func (e *SwitchError) Unwrap() error {
	return e.Err
}

// PersistError is returned when an operation succeeded in memory but the
// configuration file could not be written.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to save configuration to %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// IsPersistError reports whether err only signals a failed save.
func IsPersistError(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}

// Session ties the persisted contexts to the live connection.
//
// The current context only ever becomes non-empty through Switch, and only
// after the cluster answered the connectivity check. A failed switch leaves
// the session disconnected with no current context. Every mutation is saved
// immediately; the in-memory state stays authoritative if the save fails.
type Session struct {
	mu       sync.Mutex
	store    Store
	conn     Connector
	config   *escontext.ContextConfig
	onChange func(name string)
}

// New creates a session with an empty configuration. Call Load to read the store.
func New(store Store, conn Connector) *Session {
	return &Session{
		store:  store,
		conn:   conn,
		config: escontext.NewContextConfig(),
	}
}

// SetOnContextChange registers fn to be called with the new current context
// name (empty when disconnected) whenever it changes.
func (s *Session) SetOnContextChange(fn func(name string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Load reads the configuration from the store. On failure the session keeps an
// empty configuration and the error is returned for reporting.
func (s *Session) Load() error {
	config, err := s.store.Load()

	s.mu.Lock()
	defer s.mu.Unlock()

	if config == nil {
		config = escontext.NewContextConfig()
	}
	s.config = config
	s.conn.ClearConnection()

	if err != nil {
		logging.Warn(subsystem, "Continuing without saved contexts: %v", err)
		return err
	}
	logging.Debug(subsystem, "Loaded %d contexts from %s", len(config.Contexts), s.store.Path())
	return nil
}

// Restore switches to name, or to the saved current context when name is empty.
// It does nothing when neither is set.
//
// An unknown name falls back to the saved current context so the session never
// reports a current context it is not connected to. The not-found error is
// still returned for reporting.
func (s *Session) Restore(ctx context.Context, name string) error {
	saved := s.Current()
	if name == "" {
		name = saved
	}
	if name == "" {
		return nil
	}

	err := s.Switch(ctx, name)
	var notFound *escontext.ContextNotFoundError
	if !errors.As(err, &notFound) || saved == "" || saved == name {
		return err
	}

	logging.Warn(subsystem, "Startup context %s not found, restoring %s", name, saved)
	if fallbackErr := s.Switch(ctx, saved); fallbackErr != nil {
		return errors.Join(err, fallbackErr)
	}
	return err
}

// Current returns the current context name, or an empty string.
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.CurrentContext
}

// Context returns the named context.
func (s *Session) Context(name string) (escontext.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.config.Contexts[name]
	return c, ok
}

// HasContext reports whether name is defined.
func (s *Session) HasContext(name string) bool {
	_, ok := s.Context(name)
	return ok
}

// ContextNames returns all context names, sorted.
func (s *Session) ContextNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.ContextNames()
}

// Config returns a copy of the configuration.
func (s *Session) Config() *escontext.ContextConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Clone()
}

// ConfigPath returns where the configuration is stored.
func (s *Session) ConfigPath() string {
	return s.store.Path()
}

// Manager returns the connection the session drives.
func (s *Session) Manager() Connector {
	return s.conn
}

// URL returns the active cluster URL, or an empty string when disconnected.
func (s *Session) URL() string {
	return s.conn.URL()
}

// Switch makes name the current context if its cluster is reachable.
//
// An unknown name returns *escontext.ContextNotFoundError and changes nothing.
// A failed connectivity check clears the connection and the current context,
// saves, and returns *SwitchError.
func (s *Session) Switch(ctx context.Context, name string) error {
	s.mu.Lock()
	target, ok := s.config.Contexts[name]
	s.mu.Unlock()

	if !ok {
		return &escontext.ContextNotFoundError{Name: name}
	}

	s.conn.SetConnection(target.URL, target.Username, target.Password)
	checkErr := s.conn.CheckConnection(ctx)

	s.mu.Lock()
	if checkErr != nil {
		s.conn.ClearConnection()
		s.config.CurrentContext = ""
	} else {
		s.config.CurrentContext = name
	}
	current := s.config.CurrentContext
	persistErr := s.persistLocked()
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(current)
	}

	if checkErr != nil {
		logging.Info(subsystem, "Switch to context %s failed: %v", name, checkErr)
		return &SwitchError{Name: name, Err: checkErr}
	}

	logging.Info(subsystem, "Switched to context %s (%s)", name, target.URL)
	return persistErr
}

// Add stores a new context and switches to it, but only if its cluster answers
// the connectivity check. An existing name is replaced only when overwrite is set.
//
// When the check fails nothing is stored, the previous connection is restored
// and *SwitchError is returned.
func (s *Session) Add(ctx context.Context, name string, c escontext.Context, overwrite bool) error {
	if err := escontext.ValidateContextName(name); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	exists := s.config.HasContext(name)
	s.mu.Unlock()

	if exists && !overwrite {
		return &escontext.ContextExistsError{Name: name}
	}

	prevURL := s.conn.URL()
	prevCreds := s.conn.Credentials()

	s.conn.SetConnection(c.URL, c.Username, c.Password)
	if err := s.conn.CheckConnection(ctx); err != nil {
		s.restoreConnection(prevURL, prevCreds)
		logging.Info(subsystem, "Context %s not saved: %v", name, err)
		return &SwitchError{Name: name, Err: err}
	}

	s.mu.Lock()
	s.config.SetContext(name, c)
	persistErr := s.persistLocked()
	s.mu.Unlock()

	if persistErr != nil {
		logging.Warn(subsystem, "Context %s kept in memory only: %v", name, persistErr)
	}

	return s.Switch(ctx, name)
}

func (s *Session) restoreConnection(url string, creds *connection.Credentials) {
	if url == "" {
		s.conn.ClearConnection()
		return
	}
	if creds == nil {
		s.conn.SetConnection(url, "", "")
		return
	}
	s.conn.SetConnection(url, creds.Username, creds.Password)
}

// Remove deletes a context. Removing the current context also disconnects.
func (s *Session) Remove(name string) error {
	s.mu.Lock()
	wasCurrent := s.config.CurrentContext == name
	if !s.config.RemoveContext(name) {
		s.mu.Unlock()
		return &escontext.ContextNotFoundError{Name: name}
	}
	if wasCurrent {
		s.conn.ClearConnection()
	}
	persistErr := s.persistLocked()
	onChange := s.onChange
	s.mu.Unlock()

	if wasCurrent && onChange != nil {
		onChange("")
	}

	logging.Info(subsystem, "Removed context %s", name)
	return persistErr
}

// Do sends a request to the active cluster.
func (s *Session) Do(ctx context.Context, method, path string, body interface{}) (*connection.Result, error) {
	return s.conn.Do(ctx, method, path, body)
}

// persistLocked saves the configuration. The caller holds s.mu.
func (s *Session) persistLocked() error {
	if err := s.store.Save(s.config.Clone()); err != nil {
		logging.Error(subsystem, err, "Failed to save configuration")
		return &PersistError{Path: s.store.Path(), Err: err}
	}
	return nil
}
