package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"testing"

	"escli/internal/cli"
	"escli/internal/connection"
	escontext "escli/internal/context"
	"escli/internal/session"
	"escli/internal/testing/mock"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cli.SetColorEnabled(false)
	os.Exit(m.Run())
}

// mockOutput captures everything a command prints.
type mockOutput struct {
	buf      bytes.Buffer
	errors   []string
	warnings []string
	success  []string
}

func (m *mockOutput) Output(format string, args ...interface{}) {
	fmt.Fprintf(&m.buf, format, args...)
}

func (m *mockOutput) OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(&m.buf, format+"\n", args...)
}

func (m *mockOutput) Info(format string, args ...interface{}) {
	m.OutputLine(format, args...)
}

func (m *mockOutput) Debug(format string, args ...interface{}) {}

func (m *mockOutput) Warn(format string, args ...interface{}) {
	m.warnings = append(m.warnings, fmt.Sprintf(format, args...))
	m.OutputLine(format, args...)
}

func (m *mockOutput) Error(format string, args ...interface{}) {
	m.errors = append(m.errors, fmt.Sprintf(format, args...))
	m.OutputLine(format, args...)
}

func (m *mockOutput) Success(format string, args ...interface{}) {
	m.success = append(m.success, fmt.Sprintf(format, args...))
	m.OutputLine(format, args...)
}

func (m *mockOutput) Writer() io.Writer { return &m.buf }

func (m *mockOutput) String() string { return m.buf.String() }

// mockPrompter answers prompts from scripted queues and records the questions.
type mockPrompter struct {
	answers  []string
	secrets  []string
	confirms []bool
	asked    []string
}

func (p *mockPrompter) Ask(prompt, def string) (string, error) {
	p.asked = append(p.asked, prompt)
	if len(p.answers) == 0 {
		return "", fmt.Errorf("unexpected prompt %q", prompt)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (p *mockPrompter) AskSecret(prompt string) (string, error) {
	p.asked = append(p.asked, prompt)
	if len(p.secrets) == 0 {
		return "", fmt.Errorf("unexpected secret prompt %q", prompt)
	}
	secret := p.secrets[0]
	p.secrets = p.secrets[1:]
	return secret, nil
}

func (p *mockPrompter) Confirm(prompt string) (bool, error) {
	p.asked = append(p.asked, prompt)
	if len(p.confirms) == 0 {
		return false, fmt.Errorf("unexpected confirmation %q", prompt)
	}
	ok := p.confirms[0]
	p.confirms = p.confirms[1:]
	return ok, nil
}

// testEnv is a session on temporary storage next to a mock cluster.
type testEnv struct {
	es       *mock.Elasticsearch
	session  *session.Session
	store    *escontext.Storage
	out      *mockOutput
	prompter *mockPrompter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	es := mock.NewElasticsearch()
	t.Cleanup(es.Close)

	store := escontext.NewStorageWithPath(t.TempDir())
	sess := session.New(store, connection.NewManager(connection.Options{}))
	require.NoError(t, sess.Load())

	return &testEnv{
		es:       es,
		session:  sess,
		store:    store,
		out:      &mockOutput{},
		prompter: &mockPrompter{},
	}
}

// connected returns an env already switched to a context named "test".
func connected(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	require.NoError(t, env.session.Add(context.Background(), "test", escontext.Context{URL: env.es.URL()}, false))
	env.es.Reset()
	return env
}

func (e *testEnv) deps() Deps {
	return Deps{Session: e.session, Output: e.out, Prompter: e.prompter}
}
