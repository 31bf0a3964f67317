package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"escli/internal/config"
	escontext "escli/internal/context"
	"escli/internal/testing/mock"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cmdEnv struct {
	es         *mock.Elasticsearch
	configFile string
}

func newCmdEnv(t *testing.T) *cmdEnv {
	t.Helper()
	for _, key := range []string{
		config.EnvConfigFile, config.EnvContext, config.EnvHistoryFile,
		config.EnvCheckTimeout, config.EnvRequestTimeout, config.EnvLogLevel,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	es := mock.NewElasticsearch()
	t.Cleanup(es.Close)
	return &cmdEnv{es: es, configFile: filepath.Join(t.TempDir(), "config.yml")}
}

// exec runs escli with args against the env's config file.
func (e *cmdEnv) exec(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"--config", e.configFile, "--no-color"}, args...)
	err := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), err
}

func (e *cmdEnv) add(t *testing.T, name string, extra ...string) {
	t.Helper()
	args := append([]string{"context", "add", name, "--url", e.es.URL()}, extra...)
	_, _, err := e.exec(t, "", args...)
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	original := GetVersion()
	t.Cleanup(func() { SetVersion(original) })
	SetVersion("1.2.3-test")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"version"}, nil, &out, &out))
	assert.Equal(t, "escli version 1.2.3-test\n", out.String())

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"--version"}, nil, &out, &out))
	assert.Equal(t, "escli version 1.2.3-test\n", out.String())
}

func TestRootCommand(t *testing.T) {
	rootCmd := newRootCmd()

	assert.Equal(t, "escli", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"version", "context"}, names)

	for _, flag := range []string{"config", "context", "check-timeout", "timeout", "log-level", "verbose", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestResolveSettings_FlagsWinOverEnvironment(t *testing.T) {
	newCmdEnv(t)
	t.Setenv(config.EnvCheckTimeout, "2s")
	t.Setenv(config.EnvRequestTimeout, "40s")

	cmd := &cobra.Command{Use: "test"}
	opts := &rootOptions{}
	bindRootFlags(cmd, opts)
	require.NoError(t, cmd.ParseFlags([]string{"--check-timeout", "3s", "--verbose"}))

	settings, err := resolveSettings(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, settings.CheckTimeout)
	assert.Equal(t, 40*time.Second, settings.RequestTimeout)
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestResolveSettings_Invalid(t *testing.T) {
	newCmdEnv(t)

	cmd := &cobra.Command{Use: "test"}
	opts := &rootOptions{}
	bindRootFlags(cmd, opts)
	require.NoError(t, cmd.ParseFlags([]string{"--timeout", "0s"}))

	_, err := resolveSettings(cmd, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RequestTimeout")
}

func TestContextList_Empty(t *testing.T) {
	env := newCmdEnv(t)

	out, _, err := env.exec(t, "", "context")
	require.NoError(t, err)
	assert.Contains(t, out, "No contexts configured yet.")
	assert.Contains(t, out, "escli context add local --url http://localhost:9200")
}

func TestContextList_UnreadableConfigFallsBackToEmpty(t *testing.T) {
	env := newCmdEnv(t)
	require.NoError(t, os.Mkdir(env.configFile, 0700))

	out, errOut, err := env.exec(t, "", "context", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No contexts configured yet.")
	assert.Contains(t, errOut, "Warning: failed to read config file")
	assert.Contains(t, errOut, "Continuing with an empty configuration.")
}

func TestContextList_UnparsableConfigFallsBackToEmpty(t *testing.T) {
	env := newCmdEnv(t)
	require.NoError(t, os.WriteFile(env.configFile, []byte("contexts: ["), 0600))

	out, errOut, err := env.exec(t, "", "context", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No contexts configured yet.")
	assert.Contains(t, errOut, "Continuing with an empty configuration.")
}

func TestContextAdd(t *testing.T) {
	env := newCmdEnv(t)

	out, _, err := env.exec(t, "", "context", "add", "local", "--url", env.es.URL())
	require.NoError(t, err)
	assert.Contains(t, out, `Context "local" added and set as current.`)

	cfg, err := escontext.NewStorageWithFile(env.configFile).Load()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.CurrentContext)
	assert.Equal(t, env.es.URL(), cfg.Contexts["local"].URL)

	out, _, err = env.exec(t, "", "context", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "CURRENT")
	assert.Regexp(t, `\*\s+local\s+`+env.es.URL()+`\s+N/A`, out)

	out, _, err = env.exec(t, "", "context", "current")
	require.NoError(t, err)
	assert.Equal(t, "local\n", out)
}

func TestContextList_NoHeaders(t *testing.T) {
	env := newCmdEnv(t)
	env.add(t, "local")

	out, _, err := env.exec(t, "", "context", "list", "--no-headers")
	require.NoError(t, err)
	assert.NotContains(t, out, "CURRENT")
	assert.Regexp(t, `^\*\s+local\s+`+env.es.URL()+`\s+N/A\n$`, out)
}

func TestContextAdd_UnreachableClusterIsNotSaved(t *testing.T) {
	env := newCmdEnv(t)
	env.es.SetRootStatus(503)

	_, errOut, err := env.exec(t, "", "context", "add", "local", "--url", env.es.URL())
	require.Error(t, err)
	assert.Contains(t, errOut, "Error: ")

	cfg, err := escontext.NewStorageWithFile(env.configFile).Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Contexts)
	assert.Empty(t, cfg.CurrentContext)
}

func TestContextAdd_ValidatesBeforeConnecting(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad name", []string{"context", "add", "-bad", "--url", "http://localhost:9200"}},
		{"bad url", []string{"context", "add", "local", "--url", "not a url"}},
		{"password without user", []string{"context", "add", "local", "--url", "http://localhost:9200", "--password", "x"}},
		{"missing url", []string{"context", "add", "local"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCmdEnv(t)
			_, _, err := env.exec(t, "", tt.args...)
			require.Error(t, err)
			assert.Empty(t, env.es.Requests())
		})
	}
}

func TestContextAdd_ExistingNeedsForce(t *testing.T) {
	env := newCmdEnv(t)
	env.add(t, "local")

	_, _, err := env.exec(t, "", "context", "add", "local", "--url", env.es.URL())
	var exists *escontext.ContextExistsError
	require.ErrorAs(t, err, &exists)

	env.add(t, "local", "--force", "--username", "elastic", "--password", "changeme")
	cfg, err := escontext.NewStorageWithFile(env.configFile).Load()
	require.NoError(t, err)
	assert.Equal(t, "elastic", cfg.Contexts["local"].Username)
}

func TestContextShow(t *testing.T) {
	env := newCmdEnv(t)
	env.add(t, "secure", "--username", "elastic", "--password", "changeme")

	out, _, err := env.exec(t, "", "context", "show", "secure")
	require.NoError(t, err)
	assert.Contains(t, out, "elastic")
	assert.Contains(t, out, "(set)")
	assert.NotContains(t, out, "changeme")

	out, _, err = env.exec(t, "", "context", "show", "secure", "-o", "json")
	require.NoError(t, err)
	assert.NotContains(t, out, "changeme")

	var details contextDetails
	require.NoError(t, json.Unmarshal([]byte(out), &details))
	assert.Equal(t, contextDetails{
		Name:        "secure",
		URL:         env.es.URL(),
		Username:    "elastic",
		PasswordSet: true,
		Current:     true,
	}, details)

	out, _, err = env.exec(t, "", "context", "show", "secure", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "password_set: true")

	_, _, err = env.exec(t, "", "context", "show", "secure", "-o", "xml")
	assert.Error(t, err)
}

func TestContextUse(t *testing.T) {
	env := newCmdEnv(t)
	env.add(t, "one")
	env.add(t, "two")

	out, _, err := env.exec(t, "", "context", "use", "one")
	require.NoError(t, err)
	assert.Contains(t, out, `Switched to context "one"`)

	out, _, err = env.exec(t, "", "context", "current")
	require.NoError(t, err)
	assert.Equal(t, "one\n", out)
}

func TestContextUse_UnknownPrintsHint(t *testing.T) {
	env := newCmdEnv(t)

	_, errOut, err := env.exec(t, "", "context", "use", "missing")
	var notFound *escontext.ContextNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, errOut, "Hint: Run 'context list'")
}

func TestContextUse_UnreachableClearsCurrent(t *testing.T) {
	env := newCmdEnv(t)
	env.add(t, "local")
	env.es.SetRootStatus(503)

	_, _, err := env.exec(t, "", "context", "use", "local")
	require.Error(t, err)

	out, _, err := env.exec(t, "", "context", "current")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestContextDelete(t *testing.T) {
	env := newCmdEnv(t)
	env.add(t, "local")

	out, _, err := env.exec(t, "n\n", "context", "delete", "local")
	require.NoError(t, err)
	assert.Contains(t, out, `Delete context "local" (current context)? [y/N]`)
	assert.Contains(t, out, "Aborted.")

	out, _, err = env.exec(t, "y\n", "context", "delete", "local")
	require.NoError(t, err)
	assert.Contains(t, out, `Context "local" deleted.`)
	assert.Contains(t, out, "Current context is now unset.")

	cfg, err := escontext.NewStorageWithFile(env.configFile).Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Contexts)
	assert.Empty(t, cfg.CurrentContext)
}

func TestContextDelete_Force(t *testing.T) {
	env := newCmdEnv(t)
	env.add(t, "local")
	env.add(t, "other")

	out, _, err := env.exec(t, "", "context", "rm", "local", "--force")
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.NotContains(t, out, "Current context is now unset.")

	_, _, err = env.exec(t, "", "context", "delete", "local", "--force")
	var notFound *escontext.ContextNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestConfirmAction(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirmAction(strings.NewReader("YES\n"), &out, "Sure?"))
	assert.True(t, confirmAction(strings.NewReader("y"), &out, "Sure?"))
	assert.False(t, confirmAction(strings.NewReader("\n"), &out, "Sure?"))
	assert.False(t, confirmAction(strings.NewReader(""), &out, "Sure?"))
	assert.Contains(t, out.String(), "Sure? [y/N] ")
}
