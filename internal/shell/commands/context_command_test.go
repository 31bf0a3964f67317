package commands

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"escli/internal/cli"
	escontext "escli/internal/context"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextCommand_ShowCurrent_NoContext(t *testing.T) {
	env := newTestEnv(t)
	cmd := NewContextCommand(env.deps())

	require.NoError(t, cmd.Execute(context.Background(), nil))
	assert.Contains(t, env.out.String(), "No context set")
}

func TestContextCommand_ShowCurrent(t *testing.T) {
	env := connected(t)
	cmd := NewContextCommand(env.deps())

	require.NoError(t, cmd.Execute(context.Background(), []string{"current"}))
	assert.Contains(t, env.out.String(), "Current context: test")
	assert.Contains(t, env.out.String(), env.es.URL())
}

func TestContextCommand_ListEmpty(t *testing.T) {
	env := newTestEnv(t)
	cmd := NewContextCommand(env.deps())

	require.NoError(t, cmd.Execute(context.Background(), []string{"list"}))
	assert.Contains(t, env.out.String(), "No contexts configured")
	assert.Contains(t, env.out.String(), "connect <name>")
}

func TestContextCommand_List(t *testing.T) {
	env := connected(t)
	ctx := context.Background()
	require.NoError(t, env.session.Add(ctx, "secure", escontext.Context{URL: env.es.URL(), Username: "elastic", Password: "hunter2"}, false))
	require.NoError(t, env.session.Switch(ctx, "test"))

	cmd := NewContextCommand(env.deps())
	require.NoError(t, cmd.Execute(ctx, []string{"ls"}))

	out := env.out.String()
	assert.Contains(t, out, "ACTIVE")
	assert.Contains(t, out, "USER")
	assert.Regexp(t, `\*\s+test\s+`, out)
	assert.Contains(t, out, "elastic")
	assert.Contains(t, out, "N/A")
	assert.NotContains(t, out, "hunter2")
}

func TestContextCommand_ShowNeverPrintsPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.session.Add(ctx, "secure", escontext.Context{URL: env.es.URL(), Username: "elastic", Password: "hunter2"}, false))

	cmd := NewContextCommand(env.deps())
	require.NoError(t, cmd.Execute(ctx, []string{"show", "secure"}))

	out := env.out.String()
	assert.Contains(t, out, env.es.URL())
	assert.Contains(t, out, "elastic")
	assert.Contains(t, out, "(set)")
	assert.NotContains(t, out, "hunter2")
}

func TestContextCommand_Use(t *testing.T) {
	env := connected(t)
	ctx := context.Background()
	require.NoError(t, env.session.Add(ctx, "other", escontext.Context{URL: env.es.URL()}, false))

	cmd := NewContextCommand(env.deps())
	require.NoError(t, cmd.Execute(ctx, []string{"use", "test"}))

	assert.Equal(t, "test", env.session.Current())
	assert.Len(t, env.out.success, 1)
	assert.Contains(t, env.out.success[0], "Switched to test")

	config, err := env.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "test", config.CurrentContext)
}

func TestContextCommand_BareNameSwitches(t *testing.T) {
	env := connected(t)
	ctx := context.Background()
	require.NoError(t, env.session.Add(ctx, "list-prod", escontext.Context{URL: env.es.URL()}, false))
	require.NoError(t, env.session.Switch(ctx, "test"))

	cmd := NewContextCommand(env.deps())
	require.NoError(t, cmd.Execute(ctx, []string{"list-prod"}))
	assert.Equal(t, "list-prod", env.session.Current())
}

func TestContextCommand_UseUnknown(t *testing.T) {
	env := connected(t)
	cmd := NewContextCommand(env.deps())

	err := cmd.Execute(context.Background(), []string{"use", "missing"})
	require.Error(t, err)

	var notFound *escontext.ContextNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing", notFound.Name)
	assert.Contains(t, cli.Hint(err), "Available: test")
	assert.Equal(t, "test", env.session.Current())
}

func TestContextCommand_UseFailedCheckDisconnects(t *testing.T) {
	env := connected(t)
	ctx := context.Background()
	require.NoError(t, env.session.Add(ctx, "other", escontext.Context{URL: env.es.URL()}, false))
	env.es.SetRootStatus(http.StatusServiceUnavailable)

	cmd := NewContextCommand(env.deps())
	err := cmd.Execute(ctx, []string{"use", "test"})
	require.Error(t, err)
	assert.Empty(t, env.session.Current())
	assert.Empty(t, env.out.success)
}

func TestContextCommand_TypoDetection(t *testing.T) {
	env := newTestEnv(t)
	cmd := NewContextCommand(env.deps())

	err := cmd.Execute(context.Background(), []string{"lsit"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "list"`)
	assert.Empty(t, env.es.APIRequests())
}

func TestContextCommand_MissingArguments(t *testing.T) {
	env := newTestEnv(t)
	cmd := NewContextCommand(env.deps())

	for _, sub := range []string{"use", "switch", "show", "delete", "rm"} {
		err := cmd.Execute(context.Background(), []string{sub})
		require.Error(t, err, sub)
		assert.Contains(t, err.Error(), "usage:", sub)
	}
}

func TestContextCommand_Delete(t *testing.T) {
	env := connected(t)
	env.prompter.confirms = []bool{true}
	cmd := NewContextCommand(env.deps())

	require.NoError(t, cmd.Execute(context.Background(), []string{"delete", "test"}))

	assert.False(t, env.session.HasContext("test"))
	assert.Empty(t, env.session.Current())
	require.Len(t, env.prompter.asked, 1)
	assert.Contains(t, env.prompter.asked[0], "current context")

	config, err := env.store.Load()
	require.NoError(t, err)
	assert.Empty(t, config.Contexts)
}

func TestContextCommand_DeleteDeclined(t *testing.T) {
	env := connected(t)
	env.prompter.confirms = []bool{false}
	cmd := NewContextCommand(env.deps())

	require.NoError(t, cmd.Execute(context.Background(), []string{"rm", "test"}))
	assert.True(t, env.session.HasContext("test"))
	assert.Contains(t, env.out.String(), "Cancelled")
}

func TestContextCommand_DeleteUnknownDoesNotPrompt(t *testing.T) {
	env := connected(t)
	cmd := NewContextCommand(env.deps())

	err := cmd.Execute(context.Background(), []string{"delete", "missing"})
	require.Error(t, err)
	assert.Empty(t, env.prompter.asked)
}

func TestContextCommand_Completions(t *testing.T) {
	env := connected(t)
	cmd := NewContextCommand(env.deps())

	assert.Contains(t, cmd.Completions(""), "list")
	assert.Contains(t, cmd.Completions(""), "test")
	assert.Equal(t, []string{"test"}, cmd.Completions("use "))
	assert.Equal(t, []string{"test"}, cmd.Completions("delete te"))
	assert.Nil(t, cmd.Completions("list "))
}

func TestContextCommand_Aliases(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, []string{"ctx"}, NewContextCommand(env.deps()).Aliases())
}
