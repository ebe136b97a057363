// Package display renders run results for humans and machines.
//
// Three formats are supported: styled terminal output (lipgloss), plain
// text for pipes and NO_COLOR, and indented JSON. FormatAuto picks between
// the first two from the output stream.
package display
