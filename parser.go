// Package binconf provides parsing capabilities for binconf documents.
package binconf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Parser reads a binconf document into a Value in a single pass,
// tokenizing, parsing and evaluating as it goes. A Parser holds
// mutable scan state (cursor position, constant table) for the
// duration of one Parse call; it resets that state at the start of
// every call, so sequential reuse is fine, but a single Parser must
// not be shared between goroutines.
type Parser struct {
	src  string
	pos  int // byte offset into src
	line int
	col  int

	consts        *Table
	allowTrailing bool
}

// NewParser creates a new Parser with default configuration.
func NewParser() *Parser {
	return &Parser{line: 1, col: 1}
}

// WithTrailingContent configures whether content after a top-level
// table is tolerated. By default anything following the closing ')'
// other than whitespace and comments fails the parse.
func (p *Parser) WithTrailingContent(allow bool) *Parser {
	p.allowTrailing = allow
	return p
}

// Parse is a convenience wrapper around NewParser().Parse.
func Parse(src string) (Value, error) {
	return NewParser().Parse(src)
}

// Parse reads one document. A document is either a single table or a
// sequence of constant declarations; in the latter case the result is
// the accumulated constant table, one entry per declared name in
// first-declaration order.
func (p *Parser) Parse(src string) (Value, error) {
	p.src = src
	p.pos = 0
	p.line = 1
	p.col = 1
	p.consts = NewTable()

	if err := p.skipSpaceAndComments(); err != nil {
		return nil, err
	}

	if p.peek(5) == "table" {
		tbl, err := p.parseTable()
		if err != nil {
			return nil, err
		}
		if !p.allowTrailing {
			if err := p.skipSpaceAndComments(); err != nil {
				return nil, err
			}
			if p.pos < len(p.src) {
				return nil, p.errorf(ExpectedEndOfInput, "unexpected content after top-level table")
			}
		}
		return tbl, nil
	}

	for p.pos < len(p.src) {
		if err := p.skipSpaceAndComments(); err != nil {
			return nil, err
		}
		if p.pos >= len(p.src) {
			break
		}
		if err := p.parseConstDecl(); err != nil {
			return nil, err
		}
	}
	return p.consts, nil
}

// errorf builds a ParseError at the current cursor position.
func (p *Parser) errorf(kind ErrKind, format string, args ...any) *ParseError {
	return &ParseError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Line: p.line,
		Col:  p.col,
	}
}

// peek returns up to n characters of upcoming text without advancing.
// Near end of input it returns whatever is left.
func (p *Parser) peek(n int) string {
	end := p.pos
	for i := 0; i < n && end < len(p.src); i++ {
		_, size := utf8.DecodeRuneInString(p.src[end:])
		end += size
	}
	return p.src[p.pos:end]
}

// consume advances the cursor by n characters, updating line and
// column. A line feed resets the column to 1; every other character
// advances it by one.
func (p *Parser) consume(n int) {
	for i := 0; i < n && p.pos < len(p.src); i++ {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if r == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
		p.pos += size
	}
}

// match consumes lit iff the upcoming text equals it exactly.
func (p *Parser) match(lit string) bool {
	if strings.HasPrefix(p.src[p.pos:], lit) {
		p.consume(utf8.RuneCountInString(lit))
		return true
	}
	return false
}

// skipSpaceAndComments consumes runs of whitespace and |# ... #|
// comments until the next character starts a real token. Comments do
// not nest; the first #| closes the comment.
func (p *Parser) skipSpaceAndComments() error {
	for p.pos < len(p.src) {
		switch {
		case p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\r' || p.src[p.pos] == '\n':
			p.consume(1)
		case p.peek(2) == "|#":
			p.consume(2)
			for {
				if p.pos >= len(p.src) {
					return p.errorf(UnterminatedComment, "unterminated comment")
				}
				if p.peek(2) == "#|" {
					p.consume(2)
					break
				}
				p.consume(1)
			}
		default:
			return nil
		}
	}
	return nil
}

// parseName reads the maximal run of uppercase ASCII letters.
func (p *Parser) parseName() (string, error) {
	if err := p.skipSpaceAndComments(); err != nil {
		return "", err
	}
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= 'A' && p.src[p.pos] <= 'Z' {
		p.consume(1)
	}
	if p.pos == start {
		return "", p.errorf(ExpectedName, "expected a name of uppercase letters (A-Z)")
	}
	return p.src[start:p.pos], nil
}

// parseBinaryNumber reads 0b or 0B followed by a run of binary digits.
func (p *Parser) parseBinaryNumber() (Integer, error) {
	if err := p.skipSpaceAndComments(); err != nil {
		return 0, err
	}
	if m := p.peek(2); m != "0b" && m != "0B" {
		return 0, p.errorf(ExpectedBinaryNumber, "expected a binary number starting with 0b or 0B")
	}
	p.consume(2)

	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] == '0' || p.src[p.pos] == '1') {
		p.consume(1)
	}
	if p.pos == start {
		return 0, p.errorf(MissingBinaryDigits, "missing binary digits after 0b")
	}

	digits := p.src[start:p.pos]
	n, err := strconv.ParseInt(digits, 2, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, p.errorf(BinaryNumberTooLarge, "binary number 0b%s does not fit in 64 bits", digits)
		}
		return 0, p.errorf(InvalidBinaryDigits, "invalid binary number 0b%s", digits)
	}
	return Integer(n), nil
}

// parseValue dispatches on the next few characters: a constant
// reference, a binary number or a table. The grammar needs no
// backtracking at this granularity.
func (p *Parser) parseValue() (Value, error) {
	if err := p.skipSpaceAndComments(); err != nil {
		return nil, err
	}
	switch {
	case p.peek(2) == ".(":
		return p.parseConstRef()
	case strings.EqualFold(p.peek(2), "0b"):
		return p.parseBinaryNumber()
	case p.peek(5) == "table":
		return p.parseTable()
	default:
		return nil, p.errorf(ExpectedValue, "expected a value (number, table or constant reference)")
	}
}

// parseTable reads table([ NAME = value, ... ]). The closing bracket
// is checked again after every comma, so a trailing comma before ']'
// is accepted.
func (p *Parser) parseTable() (*Table, error) {
	if !p.match("table") {
		return nil, p.errorf(ExpectedValue, "expected 'table'")
	}
	if err := p.skipSpaceAndComments(); err != nil {
		return nil, err
	}
	if !p.match("(") {
		return nil, p.errorf(ExpectedOpenBracket, "expected '(' after 'table'")
	}
	if err := p.skipSpaceAndComments(); err != nil {
		return nil, err
	}
	if !p.match("[") {
		return nil, p.errorf(ExpectedOpenBracket, "expected '[' after 'table('")
	}

	tbl := NewTable()
	first := true
	for {
		if err := p.skipSpaceAndComments(); err != nil {
			return nil, err
		}
		if p.peek(1) == "]" {
			break
		}

		if !first {
			if !p.match(",") {
				return nil, p.errorf(ExpectedCommaOrClose, "expected ',' or ']' between table entries")
			}
			if err := p.skipSpaceAndComments(); err != nil {
				return nil, err
			}
			if p.peek(1) == "]" {
				break
			}
		}

		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if err := p.skipSpaceAndComments(); err != nil {
			return nil, err
		}
		if !p.match("=") {
			return nil, p.errorf(ExpectedEquals, "expected '=' after entry name %q", name)
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		tbl.Set(name, value)
		first = false
	}

	p.consume(1) // ']'
	if err := p.skipSpaceAndComments(); err != nil {
		return nil, err
	}
	if !p.match(")") {
		return nil, p.errorf(ExpectedCloseParen, "expected ')' after ']'")
	}
	return tbl, nil
}

// parseConstRef reads .(NAME). and resolves NAME against the constant
// table. The stored value is returned as-is, never copied.
func (p *Parser) parseConstRef() (Value, error) {
	if !p.match(".") {
		return nil, p.errorf(ExpectedDotParen, "expected '.' introducing a constant reference")
	}
	if err := p.skipSpaceAndComments(); err != nil {
		return nil, err
	}
	if !p.match("(") {
		return nil, p.errorf(ExpectedDotParen, "expected '(' after '.'")
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if err := p.skipSpaceAndComments(); err != nil {
		return nil, err
	}
	if !p.match(")") {
		return nil, p.errorf(ExpectedCloseParen, "expected ')' after constant name")
	}
	if err := p.skipSpaceAndComments(); err != nil {
		return nil, err
	}
	if !p.match(".") {
		return nil, p.errorf(ExpectedTrailingDot, "expected '.' after ')'")
	}

	v, ok := p.consts.Get(name)
	if !ok {
		return nil, p.errorf(UndefinedConstant, "undefined constant: %s", name)
	}
	return v, nil
}

// parseConstDecl reads value -> NAME with an optional trailing ';'
// and registers the binding, overwriting any previous one.
func (p *Parser) parseConstDecl() error {
	value, err := p.parseValue()
	if err != nil {
		return err
	}
	if err := p.skipSpaceAndComments(); err != nil {
		return err
	}
	if !p.match("-") {
		return p.errorf(ExpectedArrow, "expected '->' after constant value")
	}
	if !p.match(">") {
		return p.errorf(ExpectedArrow, "expected '>' after '-'")
	}
	name, err := p.parseName()
	if err != nil {
		return err
	}
	if err := p.skipSpaceAndComments(); err != nil {
		return err
	}
	if p.peek(1) == ";" {
		p.consume(1)
	}
	p.consts.Set(name, value)
	return nil
}
