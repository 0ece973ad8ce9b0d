// Package parse parses relaxed-dialect text into IR nodes.
//
// The dialect is a permissive superset of JSON: line and block comments,
// single or double quoted strings, hex and signed numeric literals, and
// a handful of extra whitespace characters. Trailing commas and unquoted
// object keys remain errors.
package parse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/neki-mods/neki-lang/ir"
)

// Parse converts relaxed-dialect text into a single *ir.Node. The input
// must contain exactly one value followed only by whitespace and
// comments to end of input.
func Parse(d []byte) (*ir.Node, error) {
	p := newParser(string(d))
	res, err := p.value()
	if err != nil {
		return nil, err
	}
	if err := p.white(); err != nil {
		return nil, err
	}
	if !p.eof {
		return nil, p.errorf("Syntax error")
	}
	return res, nil
}

// parser is an explicit cursor over the decoded character sequence with
// one character of lookahead. line and col are 1-based and track the
// current character for diagnostics.
type parser struct {
	at   int // index of the next character
	line int
	col  int
	ch   rune
	eof  bool
	text []rune
}

func newParser(text string) *parser {
	return &parser{
		line: 1,
		col:  1,
		ch:   ' ',
		text: []rune(text),
	}
}

func (p *parser) errorf(format string, args ...any) *Error {
	start := max(p.at-1, 0)
	end := min(p.at+19, len(p.text))
	start = min(start, end)
	return &Error{
		Msg:     fmt.Sprintf(format, args...),
		Line:    p.line,
		Col:     p.col,
		Snippet: string(p.text[start:end]),
	}
}

// next advances the cursor by one character.
func (p *parser) next() {
	if p.at < len(p.text) {
		p.ch = p.text[p.at]
		p.eof = false
	} else {
		p.ch = 0
		p.eof = true
	}
	p.at++
	p.col++
	if !p.eof && (p.ch == '\n' || (p.ch == '\r' && p.peek() != '\n')) {
		p.line++
		p.col = 0
	}
}

// peek returns the character after the current one without consuming it.
func (p *parser) peek() rune {
	if p.at < len(p.text) {
		return p.text[p.at]
	}
	return 0
}

// expect checks that the current character is c, then advances.
func (p *parser) expect(c rune) error {
	if p.eof || p.ch != c {
		return p.errorf("Expected %s instead of %s",
			renderChar(c, false), renderChar(p.ch, p.eof))
	}
	p.next()
	return nil
}

// white skips whitespace and comments.
func (p *parser) white() error {
	for {
		switch {
		case !p.eof && p.ch == '/':
			if err := p.comment(); err != nil {
				return err
			}
		case !p.eof && isWhite(p.ch):
			p.next()
		default:
			return nil
		}
	}
}

func isWhite(c rune) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f', '\u00A0', '\uFEFF':
		return true
	default:
		return false
	}
}

func (p *parser) comment() error {
	if p.eof || p.ch != '/' {
		return p.errorf("Not a comment")
	}
	if err := p.expect('/'); err != nil {
		return err
	}
	switch {
	case !p.eof && p.ch == '/':
		return p.inlineComment()
	case !p.eof && p.ch == '*':
		return p.blockComment()
	default:
		return p.errorf("Unrecognized comment")
	}
}

// inlineComment skips a // comment; end of input also ends it.
func (p *parser) inlineComment() error {
	if p.eof || p.ch != '/' {
		return p.errorf("Not an inline comment")
	}
	for {
		p.next()
		if p.eof {
			return nil
		}
		if p.ch == '\n' || p.ch == '\r' {
			p.next()
			return nil
		}
	}
}

func (p *parser) blockComment() error {
	if p.eof || p.ch != '*' {
		return p.errorf("Not a block comment")
	}
	for {
		p.next()
		for !p.eof && p.ch == '*' {
			if err := p.expect('*'); err != nil {
				return err
			}
			if !p.eof && p.ch == '/' {
				return p.expect('/')
			}
		}
		if p.eof {
			return p.errorf("Unterminated block comment")
		}
	}
}

// word recognizes keyword literals by exact character match. Bare
// Infinity and NaN yield the literal strings, not numbers; only the
// sign-prefixed forms inside number are numeric.
func (p *parser) word() (*ir.Node, error) {
	if !p.eof {
		switch p.ch {
		case 't':
			if err := p.keyword("true"); err != nil {
				return nil, err
			}
			return ir.FromBool(true), nil
		case 'f':
			if err := p.keyword("false"); err != nil {
				return nil, err
			}
			return ir.FromBool(false), nil
		case 'n':
			if err := p.keyword("null"); err != nil {
				return nil, err
			}
			return ir.Null(), nil
		case 'I':
			if err := p.keyword("Infinity"); err != nil {
				return nil, err
			}
			return ir.FromString("Infinity"), nil
		case 'N':
			if err := p.keyword("NaN"); err != nil {
				return nil, err
			}
			return ir.FromString("NaN"), nil
		}
	}
	return nil, p.errorf("Unexpected %s", renderChar(p.ch, p.eof))
}

func (p *parser) keyword(s string) error {
	for _, c := range s {
		if err := p.expect(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) number() (*ir.Node, error) {
	sign := 1.0
	base := 10
	isFloat := false
	var lex strings.Builder

	if !p.eof && (p.ch == '-' || p.ch == '+') {
		if p.ch == '-' {
			sign = -1.0
		}
		if err := p.expect(p.ch); err != nil {
			return nil, err
		}
	}

	// only reachable with the sign already consumed
	if !p.eof && p.ch == 'I' {
		w, err := p.word()
		if err != nil {
			return nil, err
		}
		if w.Type == ir.StringType && w.String == "Infinity" {
			return ir.FromFloat(sign * math.Inf(1)), nil
		}
		return nil, p.errorf("Unexpected word for number")
	}
	if !p.eof && p.ch == 'N' {
		w, err := p.word()
		if err != nil {
			return nil, err
		}
		if w.Type == ir.StringType && w.String == "NaN" {
			return ir.FromFloat(math.NaN()), nil
		}
		return nil, p.errorf("expected word to be NaN")
	}

	if !p.eof && p.ch == '0' {
		lex.WriteByte('0')
		p.next()
		if !p.eof {
			switch {
			case p.ch == 'x' || p.ch == 'X':
				lex.WriteRune(p.ch)
				p.next()
				base = 16
			case isDigit(p.ch):
				return nil, p.errorf("Octal literal")
			}
		}
	}

	switch base {
	case 10:
		for !p.eof && isDigit(p.ch) {
			lex.WriteRune(p.ch)
			p.next()
		}
		if !p.eof && p.ch == '.' {
			isFloat = true
			lex.WriteByte('.')
			p.next()
			for !p.eof && isDigit(p.ch) {
				lex.WriteRune(p.ch)
				p.next()
			}
		}
		if !p.eof && (p.ch == 'e' || p.ch == 'E') {
			isFloat = true
			lex.WriteRune(p.ch)
			p.next()
			if !p.eof && (p.ch == '-' || p.ch == '+') {
				lex.WriteRune(p.ch)
				p.next()
			}
			for !p.eof && isDigit(p.ch) {
				lex.WriteRune(p.ch)
				p.next()
			}
		}
	case 16:
		for !p.eof && isHexDigit(p.ch) {
			lex.WriteRune(p.ch)
			p.next()
		}
	}

	var number float64
	if base == 16 {
		digits := strings.TrimPrefix(strings.TrimPrefix(lex.String(), "0x"), "0X")
		u, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return nil, p.errorf("Bad hex number")
		}
		number = float64(u) * sign
	} else {
		f, err := strconv.ParseFloat(lex.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, p.errorf("Bad number")
		}
		number = f * sign
	}

	if math.IsInf(number, 0) || math.IsNaN(number) {
		return nil, p.errorf("Bad number")
	}
	return classify(number, isFloat), nil
}

const (
	minInt64  = -9223372036854775808.0 // -2^63, exact in float64
	maxInt64  = 9223372036854775808.0  // 2^63
	maxUint64 = 18446744073709551616.0 // 2^64
)

// classify picks the stored representation for an evaluated number. A
// zero-fraction value in signed 64-bit range is an exact integer; a
// non-negative integer magnitude beyond that but inside unsigned 64-bit
// range is an exact unsigned integer (integer-lexeme path only);
// everything else stays floating point.
func classify(number float64, isFloat bool) *ir.Node {
	if isFloat {
		if math.Trunc(number) == number && number >= minInt64 && number < maxInt64 {
			return ir.FromInt(int64(number))
		}
		return ir.FromFloat(number)
	}
	if number >= minInt64 && number < maxInt64 {
		return ir.FromInt(int64(number))
	}
	if number >= 0 && number < maxUint64 {
		return ir.FromUint(uint64(number))
	}
	return ir.FromFloat(number)
}

func (p *parser) stringValue() (*ir.Node, error) {
	if p.eof || (p.ch != '"' && p.ch != '\'') {
		return nil, p.errorf("Bad string: expected starting quote")
	}
	delim := p.ch
	var b strings.Builder
	for {
		p.next()
		if p.eof {
			break
		}
		switch {
		case p.ch == delim:
			p.next()
			return ir.FromString(b.String()), nil
		case p.ch == '\\':
			p.next()
			if p.eof {
				return nil, p.errorf("Unexpected end of input in string escape")
			}
			switch p.ch {
			case 'u':
				var uffff uint32
				for range 4 {
					p.next()
					h, ok := hexVal(p.ch, p.eof)
					if !ok {
						return nil, p.errorf("Invalid Unicode escape in string")
					}
					uffff = uffff*16 + h
				}
				r := rune(uffff)
				if !utf8.ValidRune(r) {
					return nil, p.errorf("Invalid Unicode codepoint in string")
				}
				b.WriteRune(r)
			case '\r':
				// escaped CR is a line continuation; fold a following LF
				if p.peek() == '\n' {
					p.next()
				}
			default:
				esc, ok := escapee(p.ch)
				if !ok {
					return nil, p.errorf("Invalid escape character: %c", p.ch)
				}
				b.WriteString(esc)
			}
		case p.ch == '\r':
			// bare CR in the body is dropped
		default:
			b.WriteRune(p.ch)
		}
	}
	return nil, p.errorf("Bad string")
}

func escapee(c rune) (string, bool) {
	switch c {
	case '\'':
		return "'", true
	case '"':
		return "\"", true
	case '\\':
		return "\\", true
	case '/':
		return "/", true
	case '\n':
		// escaped newline contributes nothing (line continuation)
		return "", true
	case 'b':
		return "\b", true
	case 'f':
		return "\f", true
	case 'n':
		return "\n", true
	case 'r':
		return "\r", true
	case 't':
		return "\t", true
	default:
		return "", false
	}
}

func (p *parser) array() (*ir.Node, error) {
	if p.eof || p.ch != '[' {
		return nil, p.errorf("Bad array")
	}
	var vals []*ir.Node
	hadComma := false
	if err := p.expect('['); err != nil {
		return nil, err
	}
	if err := p.white(); err != nil {
		return nil, err
	}
	for !p.eof {
		switch p.ch {
		case ']':
			if hadComma {
				return nil, p.errorf("Superfluous trailing comma")
			}
			if err := p.expect(']'); err != nil {
				return nil, err
			}
			return ir.FromSlice(vals), nil
		case ',':
			return nil, p.errorf("Missing array element")
		default:
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		if err := p.white(); err != nil {
			return nil, err
		}
		if p.eof || p.ch != ',' {
			if err := p.expect(']'); err != nil {
				return nil, err
			}
			return ir.FromSlice(vals), nil
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		hadComma = true
		if err := p.white(); err != nil {
			return nil, err
		}
	}
	return nil, p.errorf("Bad array")
}

func (p *parser) object() (*ir.Node, error) {
	if p.eof || p.ch != '{' {
		return nil, p.errorf("Bad object")
	}
	obj := &ir.Node{Type: ir.ObjectType}
	hadComma := false
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	if err := p.white(); err != nil {
		return nil, err
	}
	for !p.eof {
		switch p.ch {
		case '}':
			if hadComma {
				return nil, p.errorf("Superfluous trailing comma")
			}
			if err := p.expect('}'); err != nil {
				return nil, err
			}
			return obj, nil
		case '"', '\'':
			key, err := p.stringValue()
			if err != nil {
				return nil, err
			}
			if err := p.white(); err != nil {
				return nil, err
			}
			if err := p.expect(':'); err != nil {
				return nil, err
			}
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			obj.Set(key.String, v)
		case ',':
			return nil, p.errorf("Expected key")
		default:
			return nil, p.errorf("Unquoted key")
		}
		if err := p.white(); err != nil {
			return nil, err
		}
		if p.eof || p.ch != ',' {
			if err := p.expect('}'); err != nil {
				return nil, err
			}
			return obj, nil
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		hadComma = true
		if err := p.white(); err != nil {
			return nil, err
		}
	}
	return nil, p.errorf("Bad object")
}

func (p *parser) value() (*ir.Node, error) {
	if err := p.white(); err != nil {
		return nil, err
	}
	if p.eof {
		return p.word()
	}
	switch {
	case p.ch == '{':
		return p.object()
	case p.ch == '[':
		return p.array()
	case p.ch == '"' || p.ch == '\'':
		return p.stringValue()
	case p.ch == '-' || p.ch == '+' || p.ch == '.':
		return p.number()
	case isDigit(p.ch):
		return p.number()
	default:
		return p.word()
	}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c rune, eof bool) (uint32, bool) {
	if eof {
		return 0, false
	}
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10, true
	default:
		return 0, false
	}
}

func renderChar(c rune, eof bool) string {
	if eof || c == 0 {
		return "EOF"
	}
	return fmt.Sprintf("'%c'", c)
}
