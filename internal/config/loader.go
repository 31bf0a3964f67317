package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"escli/internal/connection"
	escontext "escli/internal/context"
	"escli/pkg/logging"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvConfigFile     = "ESCLI_CONFIG"
	EnvContext        = escontext.ContextEnvVar
	EnvHistoryFile    = "ESCLI_HISTORY"
	EnvCheckTimeout   = "ESCLI_CHECK_TIMEOUT"
	EnvRequestTimeout = "ESCLI_REQUEST_TIMEOUT"
	EnvLogLevel       = "ESCLI_LOG_LEVEL"
	EnvNoColor        = "NO_COLOR"
)

// DefaultEnvFile is the .env file read from the working directory.
const DefaultEnvFile = ".env"

const historyFileName = "history"

// lookupEnv is replaced in tests.
var lookupEnv = os.LookupEnv

var validate = validator.New(validator.WithRequiredStructEnabled())

// Settings holds the resolved process configuration.
type Settings struct {
	// ConfigFile is the contexts file. Empty means ~/.elastic-cli/config.yml.
	ConfigFile string
	// HistoryFile stores the shell history. Empty disables history.
	HistoryFile string
	// Context is switched to at startup instead of the saved current context.
	Context string `validate:"omitempty,max=63"`

	CheckTimeout   time.Duration `validate:"min=1ms"`
	RequestTimeout time.Duration `validate:"min=1ms"`
	LogLevel       string        `validate:"oneof=debug info warn warning error"`
	NoColor        bool
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	s := Settings{
		CheckTimeout:   connection.DefaultCheckTimeout,
		RequestTimeout: connection.DefaultRequestTimeout,
		LogLevel:       "warn",
	}
	if dir, err := escontext.DefaultConfigDir(); err == nil {
		s.HistoryFile = filepath.Join(dir, historyFileName)
	}
	return s
}

// Load returns the defaults overlaid with envFile and the environment.
// A missing envFile is ignored; an empty envFile skips it.
func Load(envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	s := Defaults()
	if err := s.applyEnv(); err != nil {
		return Settings{}, err
	}
	logging.Debug("Config", "Resolved settings: log level %s, check timeout %s, request timeout %s",
		s.LogLevel, s.CheckTimeout, s.RequestTimeout)
	return s, nil
}

func (s *Settings) applyEnv() error {
	if v, ok := lookupEnv(EnvConfigFile); ok && v != "" {
		s.ConfigFile = v
	}
	if v, ok := lookupEnv(EnvContext); ok && v != "" {
		s.Context = v
	}
	if v, ok := lookupEnv(EnvHistoryFile); ok {
		s.HistoryFile = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		s.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookupEnv(EnvNoColor); ok && v != "" {
		s.NoColor = true
	}

	var err error
	if v, ok := lookupEnv(EnvCheckTimeout); ok && v != "" {
		if s.CheckTimeout, err = ParseTimeout(v); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvCheckTimeout, err)
		}
	}
	if v, ok := lookupEnv(EnvRequestTimeout); ok && v != "" {
		if s.RequestTimeout, err = ParseTimeout(v); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRequestTimeout, err)
		}
	}
	return nil
}

// ParseTimeout accepts a Go duration or a number of seconds.
func ParseTimeout(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%q is not a duration", v)
	}
	return d, nil
}

// Validate checks the settings after all layers are applied.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid setting %s: %v does not satisfy %s", fe.Field(), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("invalid settings: %w", err)
	}
	if s.Context != "" {
		if err := escontext.ValidateContextName(s.Context); err != nil {
			return fmt.Errorf("invalid startup context: %w", err)
		}
	}
	return nil
}

// Level returns the parsed log level.
func (s Settings) Level() logging.LogLevel {
	level, _ := logging.ParseLevel(s.LogLevel)
	return level
}
