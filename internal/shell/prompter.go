package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrCancelled is returned when the user interrupts a prompt.
var ErrCancelled = errors.New("cancelled")

// lineReader is the part of *readline.Instance the prompter needs.
type lineReader interface {
	Readline() (string, error)
	ReadPassword(prompt string) ([]byte, error)
	SetPrompt(prompt string)
	HistoryDisable()
	HistoryEnable()
}

// Prompter asks questions on the shell's readline instance. Answers are kept
// out of the command history, and the shell prompt is restored afterwards.
type Prompter struct {
	rl     lineReader
	prompt func() string
}

// NewPrompter creates a prompter on rl. prompt returns the shell prompt to
// restore after each question.
func NewPrompter(rl lineReader, prompt func() string) *Prompter {
	return &Prompter{rl: rl, prompt: prompt}
}

func (p *Prompter) readLine(prompt string) (string, error) {
	if p.rl == nil {
		return "", errors.New("no interactive terminal")
	}
	p.rl.HistoryDisable()
	p.rl.SetPrompt(prompt)
	defer func() {
		p.rl.SetPrompt(p.prompt())
		p.rl.HistoryEnable()
	}()

	line, err := p.rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt), errors.Is(err, io.EOF):
		return "", ErrCancelled
	case err != nil:
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Ask reads a line. An empty answer yields def.
func (p *Prompter) Ask(prompt, def string) (string, error) {
	label := prompt + ": "
	if def != "" {
		label = fmt.Sprintf("%s [%s]: ", prompt, def)
	}
	answer, err := p.readLine(label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// AskSecret reads a line without echoing it.
func (p *Prompter) AskSecret(prompt string) (string, error) {
	if p.rl == nil {
		return "", errors.New("no interactive terminal")
	}
	b, err := p.rl.ReadPassword(prompt + ": ")
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

// Confirm asks a yes/no question. Only y and yes confirm.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	answer, err := p.readLine(prompt + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
