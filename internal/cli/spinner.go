package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Progress shows a spinner while a blocking call runs. A disabled Progress
// does nothing, which keeps non-interactive output clean.
type Progress struct {
	s *spinner.Spinner
}

// NewProgress creates a spinner writing to out with suffix after the glyph.
func NewProgress(out io.Writer, suffix string, enabled bool) *Progress {
	if !enabled {
		return &Progress{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " " + suffix
	return &Progress{s: s}
}

// Start begins spinning.
func (p *Progress) Start() {
	if p.s != nil {
		p.s.Start()
	}
}

// Stop clears the spinner.
func (p *Progress) Stop() {
	if p.s != nil {
		p.s.Stop()
	}
}

// Fail stops the spinner and leaves msg in red in its place.
func (p *Progress) Fail(msg string) {
	if p.s == nil {
		return
	}
	p.s.FinalMSG = text.FgRed.Sprint(msg) + "\n"
	p.s.Stop()
}

// Run starts the spinner, calls fn and stops the spinner.
func (p *Progress) Run(fn func() error) error {
	p.Start()
	defer p.Stop()
	return fn()
}
