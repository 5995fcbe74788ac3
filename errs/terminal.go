package errs

import (
	"fmt"
	"strings"
)

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGray  = "\x1b[90m"
	colorBold  = "\x1b[1m"
)

// FormatForTerminal renders the diagnostic the way a terminal front end
// (package cmd/tomlcore's `parse`/`validate` subcommands) prints it:
// a bold-red header, a numbered source line, and a caret run under the
// offending span. Mirrors CompilerError.FormatForTerminal in
// compiler/errors/terminal.go, trimmed to the single-error, no-severity
// shape a TOML diagnostic has.
func (e *Error) FormatForTerminal() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%serror[%s]%s: %s\n", colorBold, colorRed, e.Kind, colorReset, e.Message)
	fmt.Fprintf(&b, "  %s-->%s line %d, column %d\n", colorGray, colorReset, e.Location.Line, e.Location.Column)
	if e.Context != nil {
		fmt.Fprintf(&b, "   %s|%s\n", colorGray, colorReset)
		fmt.Fprintf(&b, "%3d%s|%s %s\n", e.Location.Line, colorGray, colorReset, e.Context.SourceLine)
		caret := strings.Repeat(" ", e.Context.CaretStart) + strings.Repeat("^", max(1, e.Context.CaretLen))
		fmt.Fprintf(&b, "   %s|%s %s%s%s\n", colorGray, colorReset, colorRed, caret, colorReset)
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, "   %shint:%s %s\n", colorBold, colorReset, e.Hint)
	}
	return b.String()
}

// StripColors removes ANSI escape sequences, used by tests that assert
// on the textual content of FormatForTerminal without depending on
// whether the test runner's stdout is a TTY.
func StripColors(s string) string {
	var b strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inEscape {
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
				inEscape = false
			}
			continue
		}
		if c == 0x1b {
			inEscape = true
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
