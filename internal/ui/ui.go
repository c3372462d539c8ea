// Package ui provides styled terminal output for the finfixture CLI.
// It uses the Charm.sh ecosystem for TUI styling with automatic fallback
// to plain text for non-TTY environments.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
)

// UI holds the terminal state and provides styled output methods.
type UI struct {
	IsTTY   bool
	NoColor bool

	// Out receives spinner, progress and Print output
	Out io.Writer
}

// KV represents a key-value pair for summary displays.
type KV struct {
	Key   string
	Value string
}

// New creates a UI on stdout, styled only when stdout is a terminal and
// NO_COLOR is unset.
func New() *UI {
	return &UI{
		IsTTY:   term.IsTerminal(int(os.Stdout.Fd())),
		NoColor: os.Getenv("NO_COLOR") != "",
		Out:     os.Stdout,
	}
}

// NewWithWriter creates a plain-text UI that writes to w.
func NewWithWriter(w io.Writer) *UI {
	return &UI{NoColor: true, Out: w}
}

// Println writes the given lines to Out.
func (u *UI) Println(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(u.Out, l)
	}
}

// SetNoColor disables colors and animations.
func (u *UI) SetNoColor(noColor bool) {
	u.NoColor = noColor
}

func (u *UI) shouldStyle() bool {
	return u.IsTTY && !u.NoColor
}

// Header renders a bordered header box.
func (u *UI) Header(title string) string {
	if !u.shouldStyle() {
		return fmt.Sprintf("=== %s ===", title)
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 2).
		Render(title)
}

// KeyValue renders one line of the generation plan.
func (u *UI) KeyValue(key, value string) string {
	if !u.shouldStyle() {
		return fmt.Sprintf("%-10s %s", key+":", value)
	}
	return "  " + StyleMuted.Width(12).Render(key) + " " + StyleBold.Render(value)
}

// Success renders msg after a check mark.
func (u *UI) Success(msg string) string {
	if !u.shouldStyle() {
		return "[OK] " + msg
	}
	return StyleSuccess.Render(SymbolSuccess+" ") + msg
}

// Error renders msg in red after a cross.
func (u *UI) Error(msg string) string {
	if !u.shouldStyle() {
		return "[FAILED] " + msg
	}
	return StyleError.Render(SymbolError + " " + msg)
}

// Warning renders msg in amber.
func (u *UI) Warning(msg string) string {
	if !u.shouldStyle() {
		return "[WARN] " + msg
	}
	return StyleWarning.Render(SymbolWarning + " " + msg)
}

// Muted renders dim secondary text.
func (u *UI) Muted(msg string) string {
	if !u.shouldStyle() {
		return msg
	}
	return StyleMuted.Render(msg)
}

// Bold renders msg in bold.
func (u *UI) Bold(msg string) string {
	if !u.shouldStyle() {
		return msg
	}
	return StyleBold.Render(msg)
}

// SummaryBox renders a titled box of key-value lines. A "Status" value
// containing "success" or "fail" is colored accordingly.
func (u *UI) SummaryBox(title string, items []KV) string {
	var sb strings.Builder
	if !u.shouldStyle() {
		fmt.Fprintf(&sb, "\n=== %s ===\n", title)
		for _, item := range items {
			fmt.Fprintf(&sb, "%-14s %s\n", item.Key+":", item.Value)
		}
		return sb.String()
	}

	keyWidth := 0
	for _, item := range items {
		keyWidth = max(keyWidth, len(item.Key))
	}
	keyStyle := StyleMuted.Width(keyWidth + 2)

	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("  " + keyStyle.Render(item.Key) + " " + styleSummaryValue(item))
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorSuccess).
		Padding(0, 1)
	return "\n" + StyleBold.Foreground(ColorSuccess).Render("  "+title) + "\n" + box.Render(sb.String())
}

func styleSummaryValue(item KV) string {
	if item.Key == "Status" {
		lower := strings.ToLower(item.Value)
		switch {
		case strings.Contains(lower, "success"):
			return StyleSuccess.Render(SymbolSuccess + " " + item.Value)
		case strings.Contains(lower, "fail"):
			return StyleError.Render(SymbolError + " " + item.Value)
		}
	}
	return StyleBold.Render(item.Value)
}

// Status is the outcome shown by TableRow.
type Status int

const (
	StatusSuccess Status = iota
	StatusWarning
	StatusError
)

// TableRow renders one file or dataset line with its status.
func (u *UI) TableRow(name string, value string, status Status) string {
	if !u.shouldStyle() {
		var prefix string
		switch status {
		case StatusWarning:
			prefix = "WARNING: "
		case StatusError:
			prefix = "FAILED: "
		}
		return fmt.Sprintf("  %-15s %s%s", name+":", prefix, value)
	}

	symbol, valueStyled := StyleSuccess.Render(SymbolSuccess), value
	switch status {
	case StatusWarning:
		symbol, valueStyled = StyleWarning.Render(SymbolWarning), StyleWarning.Render(value)
	case StatusError:
		symbol, valueStyled = StyleError.Render(SymbolError), StyleError.Render(value)
	}
	return fmt.Sprintf("  %s %s %s", symbol, lipgloss.NewStyle().Width(15).Render(name), valueStyled)
}

// Table renders rows under headers. Numeric columns listed in rightAlign
// are right-aligned in styled output.
func (u *UI) Table(headers []string, rows [][]string, rightAlign ...int) string {
	if !u.shouldStyle() {
		return plainTable(headers, rows)
	}

	right := make(map[int]bool, len(rightAlign))
	for _, c := range rightAlign {
		right[c] = true
	}
	headerStyle := StyleBold.Foreground(ColorPrimary).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleMuted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if right[col] {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})
	return t.Render()
}

// plainTable pads every column but the last to its widest cell
func plainTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for _, row := range append([][]string{headers}, rows...) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], len(cell))
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	for _, row := range append([][]string{headers}, rows...) {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i < len(row)-1 && i < len(widths) {
				cell = fmt.Sprintf("%-*s", widths[i], cell)
			}
			cells[i] = cell
		}
		lines = append(lines, strings.Join(cells, "  "))
	}
	return strings.Join(lines, "\n")
}
