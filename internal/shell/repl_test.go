package shell

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"escli/internal/cli"
	"escli/internal/connection"
	escontext "escli/internal/context"
	"escli/internal/session"
	"escli/internal/shell/commands"
	"escli/internal/testing/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testShell struct {
	repl    *REPL
	es      *mock.Elasticsearch
	session *session.Session
	out     *bytes.Buffer
	errOut  *bytes.Buffer
}

func newTestShell(t *testing.T) *testShell {
	t.Helper()
	cli.SetColorEnabled(false)
	t.Cleanup(func() { cli.SetColorEnabled(true) })

	es := mock.NewElasticsearch()
	t.Cleanup(es.Close)

	sess := session.New(escontext.NewStorageWithPath(t.TempDir()), connection.NewManager(connection.Options{}))
	require.NoError(t, sess.Load())

	var out, errOut bytes.Buffer
	logger := NewLoggerWithWriters(false, &out, &errOut)
	return &testShell{
		repl:    NewREPL(sess, logger, Options{}),
		es:      es,
		session: sess,
		out:     &out,
		errOut:  &errOut,
	}
}

func TestNewREPL_RegistersCommands(t *testing.T) {
	ts := newTestShell(t)

	expected := []string{
		"connect", "context", "exit", "health", "help", "ilm", "indices",
		"nodes", "settings", "shards", "snapshots", "tasks", "templates",
	}
	assert.Equal(t, expected, ts.repl.commandRegistry.List())

	for _, alias := range []string{"?", "ctx", "quit", "q"} {
		_, ok := ts.repl.commandRegistry.Get(alias)
		assert.True(t, ok, alias)
	}
}

func TestExecuteCommand_Unknown(t *testing.T) {
	ts := newTestShell(t)

	err := ts.repl.executeCommand(context.Background(), "frobnicate now")
	require.Error(t, err)
	assert.Equal(t, "unknown command: frobnicate. Type 'help' for available commands", err.Error())
}

func TestExecuteCommand_EmptyInput(t *testing.T) {
	ts := newTestShell(t)
	assert.NoError(t, ts.repl.executeCommand(context.Background(), "   "))
}

func TestExecuteCommand_CaseInsensitiveName(t *testing.T) {
	ts := newTestShell(t)
	assert.ErrorIs(t, ts.repl.executeCommand(context.Background(), "QUIT"), commands.ErrExit)
}

func TestExecuteCommand_HelpArgument(t *testing.T) {
	ts := newTestShell(t)

	for _, line := range []string{"indices help", "indices -h", "ctx --help"} {
		ts.out.Reset()
		require.NoError(t, ts.repl.executeCommand(context.Background(), line), line)
		assert.Contains(t, ts.out.String(), "Usage:", line)
	}
	assert.Empty(t, ts.es.Requests())
}

func TestExecuteCommand_RunsAgainstCluster(t *testing.T) {
	ts := newTestShell(t)
	ctx := context.Background()
	require.NoError(t, ts.session.Add(ctx, "local", escontext.Context{URL: ts.es.URL()}, false))
	ts.es.Handle(http.MethodGet, "/_cluster/health", 200, `{"cluster_name": "docker-cluster", "status": "green"}`)

	require.NoError(t, ts.repl.executeCommand(ctx, "health"))
	assert.Contains(t, ts.out.String(), "docker-cluster")
}

func TestReportError_PrintsHint(t *testing.T) {
	ts := newTestShell(t)

	err := ts.repl.executeCommand(context.Background(), "context use missing")
	require.Error(t, err)
	ts.repl.reportError(err)

	assert.Contains(t, ts.errOut.String(), `Error: context "missing" not found`)
	assert.Contains(t, ts.out.String(), "Hint: ")
}

func TestBuildPrompt_FollowsSession(t *testing.T) {
	ts := newTestShell(t)
	ctx := context.Background()
	assert.Equal(t, "(no context) escli> ", ts.repl.buildPrompt())

	require.NoError(t, ts.session.Add(ctx, "staging", escontext.Context{URL: ts.es.URL()}, false))
	assert.Equal(t, "(staging) escli> ", ts.repl.buildPrompt())

	require.NoError(t, ts.session.Remove("staging"))
	assert.Equal(t, "(no context) escli> ", ts.repl.buildPrompt())
}

func TestTruncateContextName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"short", "prod", "prod"},
		{"exact", strings.Repeat("a", maxContextNameLength), strings.Repeat("a", maxContextNameLength)},
		{"long", "production-us-east-1-cluster-01", "production-us-e...cluster-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateContextName(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, len([]rune(got)), maxContextNameLength)
		})
	}
}

func TestPrintWelcome(t *testing.T) {
	ts := newTestShell(t)
	ts.repl.printWelcome()
	assert.Contains(t, ts.out.String(), "Not connected")
}

func TestFilterInput(t *testing.T) {
	_, ok := filterInput('a')
	assert.True(t, ok)
	_, ok = filterInput(26)
	assert.False(t, ok)
}
