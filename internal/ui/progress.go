package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar provides an animated progress bar for determinate operations.
type ProgressBar struct {
	ui       *UI
	bar      progress.Model
	label    string
	total    int64
	current  int64
	start    time.Time
	mu       sync.Mutex
	rendered bool
}

// NewProgressBar creates a new progress bar.
func (u *UI) NewProgressBar(label string, total int64) *ProgressBar {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return &ProgressBar{
		ui:    u,
		bar:   bar,
		label: label,
		total: total,
		start: time.Now(),
	}
}

// Update sets the current progress value. Safe for concurrent use.
func (p *ProgressBar) Update(current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if current > p.current {
		p.current = current
	}
	p.render()
}

// render draws the progress bar. Callers hold p.mu.
func (p *ProgressBar) render() {
	if !p.ui.shouldStyle() {
		// Non-TTY: print the label once, Complete prints the count
		if !p.rendered {
			fmt.Fprintf(p.ui.Out, "%s: ", p.label)
			p.rendered = true
		}
		return
	}

	pct := 1.0
	if p.total > 0 {
		pct = float64(p.current) / float64(p.total)
	}
	if pct > 1 {
		pct = 1
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	countStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s",
		labelStyle.Render(p.label),
		p.bar.ViewAs(pct),
		countStyle.Render(fmt.Sprintf("%d/%d", p.current, p.total)),
	)
}

// Complete finishes the progress bar with a success indicator.
func (p *ProgressBar) Complete() {
	p.mu.Lock()
	current := p.current
	total := p.total
	p.mu.Unlock()

	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.Out, "%d/%d done\n", current, total)
		return
	}

	labelStyle := lipgloss.NewStyle().Width(18)

	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s\n",
		StyleSuccess.Render(SymbolSuccess),
		labelStyle.Render(p.label),
		StyleSuccess.Render(fmt.Sprintf("%d/%d complete", total, total)),
	)
}

// Fail finishes the progress bar with an error indicator.
func (p *ProgressBar) Fail(err error) {
	if !p.ui.shouldStyle() {
		fmt.Fprintf(p.ui.Out, "FAILED: %v\n", err)
		return
	}

	labelStyle := lipgloss.NewStyle().Width(18)

	fmt.Fprintf(p.ui.Out, "\r\033[K  %s %s %s\n",
		StyleError.Render(SymbolError),
		labelStyle.Render(p.label),
		StyleError.Render(err.Error()),
	)
}

// Elapsed returns the time since the bar was created.
func (p *ProgressBar) Elapsed() time.Duration {
	return time.Since(p.start)
}
