package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit   = "  " // 2 spaces per indent level
	sectionWidth = 50   // total character width for Section separators
)

// TerminalUI is the production UI implementation. It writes coloured output
// to os.Stdout. Each indent level adds two spaces.
type TerminalUI struct {
	indentLevel int
	out         io.Writer
	au          aurora.Aurora
	interactive bool
}

// NewTerminalUI creates a TerminalUI on os.Stdout. Colours and the spinner
// are enabled only when stdout is a real terminal and noColor is false.
func NewTerminalUI(noColor bool) *TerminalUI {
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	return NewTerminalUIWithWriter(os.Stdout, interactive && !noColor, interactive)
}

// NewTerminalUIWithWriter writes to out. interactive enables the animated
// spinner.
func NewTerminalUIWithWriter(out io.Writer, colors, interactive bool) *TerminalUI {
	return &TerminalUI{
		out:         out,
		au:          aurora.NewAurora(colors),
		interactive: interactive,
	}
}

func (u *TerminalUI) prefix() string {
	return strings.Repeat(indentUnit, u.indentLevel)
}

// writeLine writes line at the current indentation.
func (u *TerminalUI) writeLine(line string) {
	fmt.Fprintf(u.out, "%s%s\n", u.prefix(), line)
}

func (u *TerminalUI) Style(t StyledText) string {
	switch t.Severity {
	case SeveritySuccess:
		return u.au.Green(t.Text).String()
	case SeverityWarn:
		return u.au.Yellow(t.Text).String()
	case SeverityError:
		return u.au.Red(t.Text).String()
	case SeverityCritical:
		return u.au.Bold(t.Text).String()
	default: // SeverityInfo
		return t.Text
	}
}

// say formats a message and writes it with the colour of sev.
func (u *TerminalUI) say(sev Severity, format string, args []any) {
	u.writeLine(u.Style(StyledText{Text: fmt.Sprintf(format, args...), Severity: sev}))
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.say(SeverityInfo, format, args)
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.say(SeveritySuccess, format, args)
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.say(SeverityWarn, format, args)
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.say(SeverityError, format, args)
}

func (u *TerminalUI) Critical(format string, args ...any) {
	u.say(SeverityCritical, format, args)
}

// Section writes title between runs of '=' padded to sectionWidth, with a
// blank line before and after.
func (u *TerminalUI) Section(title string) {
	label := " " + title + " "
	fill := sectionWidth - visibleWidth(label)
	if fill < 6 {
		fill = 6
	}
	line := strings.Repeat("=", fill/2) + label + strings.Repeat("=", fill-fill/2)
	fmt.Fprintf(u.out, "\n%s%s\n\n", u.prefix(), line)
}

// KeyValue renders label/value rows with the values in one column. Labels
// may carry colour codes.
func (u *TerminalUI) KeyValue(rows [][2]string) {
	width := 0
	for _, row := range rows {
		if w := visibleWidth(row[0]); w > width {
			width = w
		}
	}
	for _, row := range rows {
		u.writeLine(padRight(row[0], width) + "  " + row[1])
	}
}

// visibleWidth is the display width of s once ANSI colour codes are removed.
func visibleWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

func padRight(s string, w int) string {
	if visible := visibleWidth(s); visible < w {
		return s + strings.Repeat(" ", w-visible)
	}
	return s
}

// Table renders a bordered table where each row is a slice of cells.
// Column widths are measured without ANSI codes so cells coloured with
// u.Style still align. When headers is empty no header row is rendered.
func (u *TerminalUI) Table(headers []string, rows [][]string) {
	if len(headers) == 0 && len(rows) == 0 {
		return
	}
	ncols := len(headers)
	for _, r := range rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}
	widths := make([]int, ncols)
	for _, r := range append([][]string{headers}, rows...) {
		for i, cell := range r {
			if w := visibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	border := func(s string) string { return borderStyle.Render(s) }
	rule := func(left, mid, right string) string {
		dashes := make([]string, ncols)
		for i, w := range widths {
			dashes[i] = strings.Repeat("─", w+2)
		}
		return border(left + strings.Join(dashes, mid) + right)
	}
	renderRow := func(cells []string) string {
		parts := make([]string, ncols)
		for i := range parts {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			parts[i] = " " + padRight(val, widths[i]) + " "
		}
		return border("│") + strings.Join(parts, border("│")) + border("│")
	}

	u.writeLine(rule("┌", "┬", "┐"))
	if len(headers) > 0 {
		u.writeLine(renderRow(headers))
		u.writeLine(rule("├", "┼", "┤"))
	}
	for _, row := range rows {
		u.writeLine(renderRow(row))
	}
	u.writeLine(rule("└", "┴", "┘"))
}

// Spinner starts an animated spinner with msg and returns a stop function
// that clears it. On non-terminal outputs only the message is printed.
func (u *TerminalUI) Spinner(msg string) func() {
	if !u.interactive {
		fmt.Fprintf(u.out, "%s%s\n", u.prefix(), msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		// Stop leaves the cursor at the start of the cleared line
		fmt.Fprintln(u.out)
	}
}

// Indent returns a child UI one level deeper.
// The child shares the writer of the parent so output ordering is kept.
func (u *TerminalUI) Indent() UI {
	return &TerminalUI{
		indentLevel: u.indentLevel + 1,
		out:         u.out,
		au:          u.au,
		interactive: u.interactive,
	}
}

// Writer returns an io.Writer that prepends the current indentation to every
// line written to it.
func (u *TerminalUI) Writer() io.Writer {
	if u.indentLevel == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.prefix())
}
