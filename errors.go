package binconf

import (
	"fmt"
	"strings"
)

// ErrKind identifies the grammatical expectation a parse failure
// violated.
type ErrKind int

const (
	UnterminatedComment ErrKind = iota
	ExpectedName
	ExpectedBinaryNumber
	MissingBinaryDigits
	InvalidBinaryDigits
	BinaryNumberTooLarge
	ExpectedValue
	ExpectedOpenBracket
	ExpectedCommaOrClose
	ExpectedEquals
	ExpectedDotParen
	ExpectedCloseParen
	ExpectedTrailingDot
	UndefinedConstant
	ExpectedArrow
	ExpectedEndOfInput
)

var errKindNames = map[ErrKind]string{
	UnterminatedComment:  "UnterminatedComment",
	ExpectedName:         "ExpectedName",
	ExpectedBinaryNumber: "ExpectedBinaryNumber",
	MissingBinaryDigits:  "MissingBinaryDigits",
	InvalidBinaryDigits:  "InvalidBinaryDigits",
	BinaryNumberTooLarge: "BinaryNumberTooLarge",
	ExpectedValue:        "ExpectedValue",
	ExpectedOpenBracket:  "ExpectedOpenBracket",
	ExpectedCommaOrClose: "ExpectedCommaOrClose",
	ExpectedEquals:       "ExpectedEquals",
	ExpectedDotParen:     "ExpectedDotParen",
	ExpectedCloseParen:   "ExpectedCloseParen",
	ExpectedTrailingDot:  "ExpectedTrailingDot",
	UndefinedConstant:    "UndefinedConstant",
	ExpectedArrow:        "ExpectedArrow",
	ExpectedEndOfInput:   "ExpectedEndOfInput",
}

func (k ErrKind) String() string {
	if name, ok := errKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

// ParseError is a parse failure located in the source text.
// Line and Col are 1-based.
type ParseError struct {
	Kind ErrKind
	Msg  string
	Line int
	Col  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

// FormatErrorWithSource renders err as a numbered source snippet with a
// caret under the failing column, showing up to one line of context on
// either side. Errors other than *ParseError render as err.Error().
// Coordinates are clamped to the source bounds so a position at end of
// input still produces a usable snippet.
func FormatErrorWithSource(err error, src string) string {
	e, ok := err.(*ParseError)
	if !ok {
		return err.Error()
	}

	lines := strings.Split(src, "\n")
	line, col := e.Line, e.Col
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", e.Error())
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
