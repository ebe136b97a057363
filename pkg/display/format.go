package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the output stream
	FormatAuto Format = iota
	// FormatTerminal renders colored, styled output
	FormatTerminal
	// FormatText renders plain text output without any styling
	FormatText
	// FormatJSON renders machine-readable JSON output
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value. "text" means human
// output and is resolved against the terminal like "auto".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "", "text":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s", s)
	}
}

// DetectFormat determines the human format for output
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
