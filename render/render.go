// Package render turns a dymex error into a human-readable message
// with the offending source line and a caret under the byte offset
// that produced it, optionally colorized for a terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"dymex/eval"
	"dymex/lexer"
	"dymex/parser"
)

// offsetOf recovers the byte offset an error carries, if any.
func offsetOf(err error) (int, bool) {
	switch e := err.(type) {
	case *lexer.Error:
		return e.Offset, true
	case *parser.Error:
		return e.Offset, true
	case *eval.Error:
		return e.Offset, true
	default:
		return 0, false
	}
}

// UserMessage renders err against source: the error's message, the
// source line it occurred on, and a caret under the byte offset.
// Output is colorized when termenv detects a color-capable terminal.
func UserMessage(err error, source string) string {
	profile := termenv.ColorProfile()
	styleMsg := func(s string) string {
		return termenv.String(s).Foreground(profile.Color("1")).Bold().String()
	}
	styleCaret := func(s string) string {
		return termenv.String(s).Foreground(profile.Color("3")).String()
	}

	offset, ok := offsetOf(err)
	if !ok {
		return styleMsg(err.Error())
	}

	line, column := lineAndColumn(source, offset)
	lineText := sourceLine(source, offset)

	var b strings.Builder
	b.WriteString(styleMsg(fmt.Sprintf("%s (line %d, column %d)", err.Error(), line, column)))
	b.WriteByte('\n')
	b.WriteString(lineText)
	b.WriteByte('\n')
	b.WriteString(styleCaret(strings.Repeat(" ", column-1) + "^"))
	return b.String()
}

// lineAndColumn converts a byte offset into 1-based line/column.
func lineAndColumn(source string, offset int) (line, column int) {
	line, column = 1, 1
	for i, r := range source {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// sourceLine returns the full line of source containing offset.
func sourceLine(source string, offset int) string {
	start := strings.LastIndexByte(source[:min(offset, len(source))], '\n') + 1
	end := strings.IndexByte(source[min(offset, len(source)):], '\n')
	if end == -1 {
		return source[start:]
	}
	return source[start : offset+end]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
