package commands

import (
	"context"
	"errors"
	"net/http"
	"testing"

	escontext "escli/internal/context"
	"escli/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectCommand_Anonymous(t *testing.T) {
	env := newTestEnv(t)
	env.prompter.answers = []string{env.es.URL(), ""}
	cmd := NewConnectCommand(env.deps())

	require.NoError(t, cmd.Execute(context.Background(), []string{"local"}))

	assert.Equal(t, "local", env.session.Current())
	assert.Equal(t, []string{"Elasticsearch URL", "Username (leave empty for none)"}, env.prompter.asked)
	require.Len(t, env.out.success, 1)
	assert.Contains(t, env.out.success[0], "local")

	config, err := env.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "local", config.CurrentContext)
	assert.Equal(t, env.es.URL(), config.Contexts["local"].URL)
}

func TestConnectCommand_WithCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.es.RequireAuth("elastic", "changeme")
	env.prompter.answers = []string{env.es.URL(), "elastic"}
	env.prompter.secrets = []string{"changeme"}
	cmd := NewConnectCommand(env.deps())

	require.NoError(t, cmd.Execute(context.Background(), []string{"secure"}))

	stored, ok := env.session.Context("secure")
	require.True(t, ok)
	assert.Equal(t, "elastic", stored.Username)
	assert.Equal(t, "changeme", stored.Password)

	last := env.es.LastRequest()
	require.NotNil(t, last)
	assert.Equal(t, "elastic", last.Username)
}

func TestConnectCommand_FailedCheckStoresNothing(t *testing.T) {
	env := newTestEnv(t)
	env.es.SetRootStatus(http.StatusInternalServerError)
	env.prompter.answers = []string{env.es.URL(), ""}
	cmd := NewConnectCommand(env.deps())

	err := cmd.Execute(context.Background(), []string{"broken"})
	require.Error(t, err)

	var switchErr *session.SwitchError
	assert.True(t, errors.As(err, &switchErr))
	assert.False(t, env.session.HasContext("broken"))
	assert.Empty(t, env.session.Current())
	assert.Empty(t, env.out.success)
}

func TestConnectCommand_FailedCheckWithProgress(t *testing.T) {
	env := newTestEnv(t)
	env.es.SetRootStatus(http.StatusInternalServerError)
	env.prompter.answers = []string{env.es.URL(), ""}
	deps := env.deps()
	deps.ShowProgress = true
	cmd := NewConnectCommand(deps)

	err := cmd.Execute(context.Background(), []string{"broken"})
	require.Error(t, err)
	assert.False(t, env.session.HasContext("broken"))
	assert.NotContains(t, env.out.String(), "Connected to")
}

func TestConnectCommand_InvalidNameAsksNothing(t *testing.T) {
	env := newTestEnv(t)
	cmd := NewConnectCommand(env.deps())

	require.Error(t, cmd.Execute(context.Background(), []string{"-bad name"}))
	assert.Empty(t, env.prompter.asked)
	assert.Empty(t, env.es.Requests())
}

func TestConnectCommand_InvalidURL(t *testing.T) {
	env := newTestEnv(t)
	env.prompter.answers = []string{"not a url", ""}
	cmd := NewConnectCommand(env.deps())

	err := cmd.Execute(context.Background(), []string{"local"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid context URL")
	assert.Empty(t, env.es.Requests())
}

func TestConnectCommand_OverwriteDeclined(t *testing.T) {
	env := connected(t)
	env.prompter.confirms = []bool{false}
	cmd := NewConnectCommand(env.deps())

	require.NoError(t, cmd.Execute(context.Background(), []string{"test"}))
	assert.Contains(t, env.out.String(), "Cancelled")
	assert.Len(t, env.prompter.asked, 1)
	assert.Empty(t, env.es.Requests())
}

func TestConnectCommand_OverwriteConfirmed(t *testing.T) {
	env := connected(t)
	env.prompter.confirms = []bool{true}
	env.prompter.answers = []string{env.es.URL(), "admin"}
	env.prompter.secrets = []string{"s3cret"}
	cmd := NewConnectCommand(env.deps())

	require.NoError(t, cmd.Execute(context.Background(), []string{"test"}))

	stored, ok := env.session.Context("test")
	require.True(t, ok)
	assert.Equal(t, escontext.Context{URL: env.es.URL(), Username: "admin", Password: "s3cret"}, stored)
}

func TestConnectCommand_MissingName(t *testing.T) {
	env := newTestEnv(t)
	err := NewConnectCommand(env.deps()).Execute(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, "usage: connect <name>", err.Error())
}
