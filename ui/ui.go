package ui

import (
	"encoding/json"
	"io"
)

// Severity classifies the visual weight of a piece of inline text. The
// terminal maps each value to a colour; JSON and tests see plain text.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green, known / positive
	SeverityWarn                     // yellow, uncertain
	SeverityError                    // red, unknown / negative
	SeverityCritical                 // bold, review before acting
)

// StyledText pairs a plain string with a Severity annotation.
//
// It marshals to JSON as just the Text string. Pass it to [UI.Style] to get
// the coloured form for terminal output:
//
//	u.Info("Token: %s", u.Style(p.Status))
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI is all terminal output of the CLI.
//
// Production code uses TerminalUI (os.Stdout). Tests use RecordingUI, which
// captures every call so assertions don't depend on colours or layout.
type UI interface {
	// Style returns t coloured according to its Severity, or plain when
	// colours are disabled.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)

	// Error writes a failure in red. It does not exit.
	Error(format string, args ...any)

	// Critical writes what the user must read before granting anything,
	// rendered bold.
	Critical(format string, args ...any)

	// Section writes a separator centred around title:
	//
	//	========= Approve permission =========
	Section(title string)

	// KeyValue renders label/value rows with values aligned.
	KeyValue(rows [][2]string)

	// Table renders a bordered table. A nil header omits the header row.
	Table(headers []string, rows [][]string)

	// Spinner animates msg until the returned stop function is called.
	// Outside a terminal msg is printed once.
	Spinner(msg string) func()

	// Indent returns a child UI one level deeper sharing the same output.
	Indent() UI

	// Writer returns an io.Writer that indents every line it receives.
	Writer() io.Writer
}
