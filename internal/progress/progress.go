// Package progress provides CLI progress indicators for long catalogue
// operations (import, export, vacuum). Output goes to stderr to keep stdout
// clean for piping, and is suppressed entirely when stderr is not a
// terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the minimum number of items before showing progress.
const minItems = 5

// Progress tracks and displays a counted operation.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	width   int // widest line written, for clearing
	isTTY   bool
}

// New creates a progress reporter that writes to stderr.
// If total is less than minItems, progress updates are suppressed.
func New(label string, total int) *Progress {
	return &Progress{
		w:     os.Stderr,
		label: label,
		total: total,
		isTTY: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Increment advances the progress counter by one.
func (p *Progress) Increment() {
	p.current++
}

// Current returns the number of items counted so far.
func (p *Progress) Current() int {
	return p.current
}

// Print redraws the progress line in place.
func (p *Progress) Print() {
	if !p.isTTY || p.total < minItems {
		return
	}
	line := fmt.Sprintf("%s... %d/%d (%d%%)", p.label, p.current, p.total, p.current*100/p.total)
	p.width = max(p.width, len(line))
	fmt.Fprintf(p.w, "\r%s", line)
}

// Done clears the progress line to make way for final output.
func (p *Progress) Done() {
	if !p.isTTY || p.total < minItems || p.width == 0 {
		return
	}
	clearLine(p.w, p.width)
}

// Spinner shows that an operation of unknown length is running.
type Spinner struct {
	w       io.Writer
	label   string
	frame   int
	isTTY   bool
	running bool
}

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		w:     os.Stderr,
		label: label,
		isTTY: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Start displays the spinner.
func (s *Spinner) Start() {
	if !s.isTTY {
		return
	}
	s.running = true
	fmt.Fprintf(s.w, "%s %s...", frames[0], s.label)
}

// Tick advances the spinner animation by one frame.
func (s *Spinner) Tick() {
	if !s.running {
		return
	}
	s.frame = (s.frame + 1) % len(frames)
	fmt.Fprintf(s.w, "\r%s %s...", frames[s.frame], s.label)
}

// Stop clears the spinner line.
func (s *Spinner) Stop() {
	if !s.running {
		return
	}
	s.running = false
	clearLine(s.w, len(s.label)+5)
}

func clearLine(w io.Writer, width int) {
	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", width))
}
