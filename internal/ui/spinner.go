package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner shows that a single dataset is being generated. Plain output
// prints the label once and the result on the same line.
type Spinner struct {
	ui    *UI
	label string

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewSpinner creates a stopped spinner.
func (u *UI) NewSpinner(label string) *Spinner {
	return &Spinner{ui: u, label: label, done: make(chan struct{})}
}

// Start begins the animation. Calling it again has no effect.
func (s *Spinner) Start() {
	s.startOnce.Do(func() {
		s.started = true
		if !s.ui.shouldStyle() {
			fmt.Fprintf(s.ui.Out, "%s...", s.label)
			return
		}
		s.wg.Add(1)
		go s.animate()
	})
}

func (s *Spinner) animate() {
	defer s.wg.Done()
	style := lipgloss.NewStyle().Foreground(ColorPrimary)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame = (frame + 1) % len(spinnerFrames) {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			fmt.Fprintf(s.ui.Out, "\r%s %s...", style.Render(spinnerFrames[frame]), s.label)
		}
	}
}

// Success stops the spinner and reports msg.
func (s *Spinner) Success(msg string) {
	s.stop(StyleSuccess.Render(SymbolSuccess), msg, lipgloss.NewStyle())
}

// Error stops the spinner and reports msg in red.
func (s *Spinner) Error(msg string) {
	s.stop(StyleError.Render(SymbolError), msg, StyleError)
}

// stop ends the animation and prints the final line once. A spinner that
// never started prints nothing and cannot be started afterwards.
func (s *Spinner) stop(symbol, msg string, style lipgloss.Style) {
	s.startOnce.Do(func() {})
	s.stopOnce.Do(func() {
		if !s.started {
			return
		}
		close(s.done)
		s.wg.Wait()
		if !s.ui.shouldStyle() {
			fmt.Fprintf(s.ui.Out, " %s\n", msg)
			return
		}
		fmt.Fprintf(s.ui.Out, "\r\033[K%s %s... %s\n", symbol, s.label, style.Render(msg))
	})
}
