package binconf

import (
	"errors"
	"strings"
	"testing"
)

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Kind: ExpectedValue, Msg: "expected a value", Line: 3, Col: 7}
	if got := err.Error(); got != "line 3, column 7: expected a value" {
		t.Errorf("Unexpected Error() output: %q", got)
	}
}

func TestErrKindString(t *testing.T) {
	if got := UnterminatedComment.String(); got != "UnterminatedComment" {
		t.Errorf("Expected UnterminatedComment, got %q", got)
	}
	if got := ErrKind(999).String(); !strings.Contains(got, "999") {
		t.Errorf("Expected fallback name for unknown kind, got %q", got)
	}
}

func TestFormatErrorWithSource(t *testing.T) {
	src := "table([\n  A 0b1\n])"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("Expected a parse error")
	}

	out := FormatErrorWithSource(err, src)
	expected := "line 2, column 5: expected '=' after entry name \"A\"\n" +
		"\n" +
		"   1 | table([\n" +
		"   2 |   A 0b1\n" +
		"     |     ^\n" +
		"   3 | ])\n"
	if out != expected {
		t.Errorf("Unexpected snippet:\nexpected:\n%s\ngot:\n%s", expected, out)
	}
}

func TestFormatErrorWithSource_FirstAndLastLine(t *testing.T) {
	out := FormatErrorWithSource(&ParseError{Kind: ExpectedValue, Msg: "expected a value", Line: 1, Col: 1}, "xyz")
	if !strings.Contains(out, "   1 | xyz") || !strings.Contains(out, "| ^") {
		t.Errorf("Unexpected snippet for single-line source:\n%s", out)
	}

	// Position past the end of source is clamped, not a panic.
	out = FormatErrorWithSource(&ParseError{Kind: UnterminatedComment, Msg: "unterminated comment", Line: 99, Col: 99}, "|#")
	if !strings.Contains(out, "unterminated comment") {
		t.Errorf("Expected clamped rendering, got:\n%s", out)
	}
}

func TestFormatErrorWithSource_Passthrough(t *testing.T) {
	plain := errors.New("some other error")
	if got := FormatErrorWithSource(plain, "src"); got != "some other error" {
		t.Errorf("Expected passthrough for non-parse errors, got %q", got)
	}
}
