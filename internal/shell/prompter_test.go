package shell

import (
	"errors"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader replays scripted lines and records prompt changes.
type fakeReader struct {
	lines          []string
	errs           []error
	password       string
	prompts        []string
	historyEnabled bool
}

func (f *fakeReader) Readline() (string, error) {
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return "", err
		}
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeReader) ReadPassword(prompt string) ([]byte, error) {
	f.prompts = append(f.prompts, prompt)
	return []byte(f.password), nil
}

func (f *fakeReader) SetPrompt(prompt string) { f.prompts = append(f.prompts, prompt) }
func (f *fakeReader) HistoryDisable()         { f.historyEnabled = false }
func (f *fakeReader) HistoryEnable()          { f.historyEnabled = true }

func newFakePrompter(lines ...string) (*Prompter, *fakeReader) {
	rl := &fakeReader{lines: lines, historyEnabled: true}
	return NewPrompter(rl, func() string { return "(no context) escli> " }), rl
}

func TestPrompter_AskDefault(t *testing.T) {
	p, rl := newFakePrompter("  ")

	answer, err := p.Ask("Elasticsearch URL", "http://localhost:9200")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9200", answer)
	assert.Equal(t, []string{"Elasticsearch URL [http://localhost:9200]: ", "(no context) escli> "}, rl.prompts)
	assert.True(t, rl.historyEnabled)
}

func TestPrompter_AskTrimsAnswer(t *testing.T) {
	p, rl := newFakePrompter("  elastic ")

	answer, err := p.Ask("Username", "")
	require.NoError(t, err)
	assert.Equal(t, "elastic", answer)
	assert.Equal(t, "Username: ", rl.prompts[0])
}

func TestPrompter_AskInterrupted(t *testing.T) {
	p, rl := newFakePrompter()
	rl.errs = []error{readline.ErrInterrupt}

	_, err := p.Ask("Username", "")
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, "(no context) escli> ", rl.prompts[len(rl.prompts)-1])
}

func TestPrompter_AskReadError(t *testing.T) {
	p, rl := newFakePrompter()
	rl.errs = []error{errors.New("terminal gone")}

	_, err := p.Ask("Username", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCancelled)
}

func TestPrompter_AskSecret(t *testing.T) {
	p, rl := newFakePrompter()
	rl.password = "hunter2"

	secret, err := p.AskSecret("Password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", secret)
	assert.Equal(t, []string{"Password: "}, rl.prompts)
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"YES", true},
		{"n", false},
		{"", false},
		{"maybe", false},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			p, rl := newFakePrompter(tt.answer)
			ok, err := p.Confirm("Delete index 'logs'?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, "Delete index 'logs'? [y/N]: ", rl.prompts[0])
		})
	}
}

func TestPrompter_WithoutTerminal(t *testing.T) {
	p := NewPrompter(nil, func() string { return "" })

	_, err := p.Ask("URL", "")
	assert.Error(t, err)
	_, err = p.AskSecret("Password")
	assert.Error(t, err)
	_, err = p.Confirm("Sure?")
	assert.Error(t, err)
}
