package context

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/go-playground/validator/v10"
)

// ContextEnvVar is the environment variable name for overriding the startup context.
const ContextEnvVar = "ESCLI_CONTEXT"

// maxContextNameLength is the maximum allowed length for context names.
const maxContextNameLength = 63

// contextNamePattern defines valid context name characters.
// Names start with a letter or digit and may contain dots, underscores and hyphens.
var contextNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Context is a named Elasticsearch connection profile.
// The name is the key under which it is stored in ContextConfig.Contexts.
type Context struct {
	// URL is the cluster base address, e.g. http://localhost:9200
	URL string `yaml:"url" json:"url" validate:"required,http_url"`
	// Username is optional; empty means anonymous access
	Username string `yaml:"username,omitempty" json:"username,omitempty"`
	// Password is stored in plaintext next to the username
	Password string `yaml:"password,omitempty" json:"-" validate:"excluded_without=Username"`
}

// HasCredentials reports whether requests made with this context carry basic auth.
// Both username and password must be set.
func (c Context) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// DisplayUser returns the username, or "N/A" for anonymous contexts.
func (c Context) DisplayUser() string {
	if c.Username == "" {
		return "N/A"
	}
	return c.Username
}

// Validate checks the context fields.
func (c Context) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "URL":
				if c.URL == "" {
					return fmt.Errorf("context URL cannot be empty")
				}
				return fmt.Errorf("invalid context URL %q: must be an absolute http or https URL", c.URL)
			case "Password":
				return fmt.Errorf("a password requires a username")
			}
		}
		return fmt.Errorf("invalid context: %w", err)
	}
	return nil
}

// ContextConfig represents the complete configuration file.
// This is the root structure stored in ~/.elastic-cli/config.yml.
type ContextConfig struct {
	// CurrentContext is the name of the currently active context, empty for none
	CurrentContext string `yaml:"current_context,omitempty"`
	// Contexts maps context names to their connection profiles
	Contexts map[string]Context `yaml:"contexts"`
}

// NewContextConfig returns an empty configuration.
func NewContextConfig() *ContextConfig {
	return &ContextConfig{Contexts: make(map[string]Context)}
}

// ValidateContextName validates a context name according to the naming rules.
// Context names must:
//   - Be between 1 and 63 characters
//   - Start with a letter or digit
//   - Contain only letters, digits, dots, underscores and hyphens
func ValidateContextName(name string) error {
	if name == "" {
		return fmt.Errorf("context name cannot be empty")
	}

	if len(name) > maxContextNameLength {
		return fmt.Errorf("context name cannot exceed %d characters", maxContextNameLength)
	}

	if !contextNamePattern.MatchString(name) {
		return fmt.Errorf("context name %q must start with a letter or digit and contain only letters, digits, '.', '_' and '-'", name)
	}

	return nil
}

// HasContext returns true if a context with the given name exists.
func (c *ContextConfig) HasContext(name string) bool {
	_, ok := c.Contexts[name]
	return ok
}

// SetContext adds a new context or replaces an existing one.
func (c *ContextConfig) SetContext(name string, ctx Context) {
	if c.Contexts == nil {
		c.Contexts = make(map[string]Context)
	}
	c.Contexts[name] = ctx
}

// RemoveContext removes the context with the given name.
// Returns true if the context was found and removed, false otherwise.
// If the removed context was the current context, CurrentContext is cleared.
func (c *ContextConfig) RemoveContext(name string) bool {
	if _, ok := c.Contexts[name]; !ok {
		return false
	}
	delete(c.Contexts, name)
	if c.CurrentContext == name {
		c.CurrentContext = ""
	}
	return true
}

// ContextNames returns all context names in sorted order.
func (c *ContextConfig) ContextNames() []string {
	names := make([]string, 0, len(c.Contexts))
	for name := range c.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// normalize repairs invariants after decoding: a nil map becomes empty and a
// current context that names a missing entry is cleared.
//
// Entries whose names fail ValidateContextName are dropped and their names
// returned.
func (c *ContextConfig) normalize() []string {
	if c.Contexts == nil {
		c.Contexts = make(map[string]Context)
	}

	var dropped []string
	for name := range c.Contexts {
		if ValidateContextName(name) != nil {
			delete(c.Contexts, name)
			dropped = append(dropped, name)
		}
	}
	sort.Strings(dropped)

	if c.CurrentContext != "" && !c.HasContext(c.CurrentContext) {
		c.CurrentContext = ""
	}
	return dropped
}

// Clone returns a deep copy of the configuration.
func (c *ContextConfig) Clone() *ContextConfig {
	out := &ContextConfig{
		CurrentContext: c.CurrentContext,
		Contexts:       make(map[string]Context, len(c.Contexts)),
	}
	for name, ctx := range c.Contexts {
		out.Contexts[name] = ctx
	}
	return out
}
