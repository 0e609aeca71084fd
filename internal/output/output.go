// Package output provides unified output formatting for text and JSON.
// All commands go through this package so --json behaves the same
// everywhere.
package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Formatter handles output formatting for commands.
type Formatter struct {
	json   bool
	writer io.Writer
}

// New creates a Formatter writing to stdout.
func New(jsonMode bool) *Formatter {
	return &Formatter{json: jsonMode, writer: os.Stdout}
}

// NewWithWriter creates a Formatter with an explicit writer (tests).
func NewWithWriter(jsonMode bool, w io.Writer) *Formatter {
	return &Formatter{json: jsonMode, writer: w}
}

// IsJSON returns true when machine output was requested.
func (f *Formatter) IsJSON() bool {
	return f.json
}

// Writer returns the underlying writer.
func (f *Formatter) Writer() io.Writer {
	return f.writer
}

// JSON writes v as indented JSON.
func (f *Formatter) JSON(v any) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Output writes jsonData in JSON mode, otherwise runs the text function.
func (f *Formatter) Output(jsonData any, textFn func(w io.Writer) error) error {
	if f.json {
		return f.JSON(jsonData)
	}
	return textFn(f.writer)
}

// StdoutIsTerminal reports whether stdout is a live terminal.
func StdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
