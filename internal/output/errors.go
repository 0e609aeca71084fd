package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// CLIError is a user-facing error with remediation context.
type CLIError struct {
	Message string // what failed
	Cause   string // why (optional)
	Hint    string // fastest way to fix it (optional)
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// NewCLIError creates a CLI error with just a message.
func NewCLIError(msg string) *CLIError {
	return &CLIError{Message: msg}
}

// WithCause adds a cause.
func (e *CLIError) WithCause(cause string) *CLIError {
	e.Cause = cause
	return e
}

// WithHint adds a remediation hint.
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

func isStderrTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// FormatCLIError renders an error for stderr, colored when stderr is a
// terminal and NO_COLOR is unset.
func FormatCLIError(e *CLIError) string {
	useColor := isStderrTerminal() && os.Getenv("NO_COLOR") == ""

	var sb strings.Builder
	if useColor {
		sb.WriteString(errStyle.Render("Error: "))
	} else {
		sb.WriteString("Error: ")
	}
	sb.WriteString(e.Message)
	sb.WriteString("\n")

	if e.Cause != "" {
		if useColor {
			sb.WriteString(dimStyle.Render("  Cause: "))
		} else {
			sb.WriteString("  Cause: ")
		}
		sb.WriteString(e.Cause)
		sb.WriteString("\n")
	}
	if e.Hint != "" {
		if useColor {
			sb.WriteString(hintStyle.Render("  Hint: "))
		} else {
			sb.WriteString("  Hint: ")
		}
		sb.WriteString(e.Hint)
		sb.WriteString("\n")
	}
	return sb.String()
}

// PrintCLIError prints a CLIError to stderr.
func PrintCLIError(e *CLIError) {
	fmt.Fprint(os.Stderr, FormatCLIError(e))
}
