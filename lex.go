package little

import (
	"bufio"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/nukata/goarith"
)

type lexer struct {
	r *bufio.Reader
}

var identifierInitial = []*unicode.RangeTable{
	unicode.Lu,
	unicode.Ll,
	unicode.Lt,
	unicode.Lm,
	unicode.Lo,
	unicode.Mn,
	unicode.Nl,
	unicode.No,
	unicode.Pd,
	unicode.Pc,
	unicode.Po,
	unicode.Sc,
	unicode.Sm,
	unicode.Sk,
	unicode.So,
	unicode.Co,
}

// read returns 0 at end of input.
func (l *lexer) read() (rune, error) {
	c, _, err := l.r.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, err
	}
	return c, nil
}

func (l *lexer) peek() rune {
	c, _ := l.read()
	if c != 0 {
		l.r.UnreadRune()
	}
	return c
}

// next returns the next token: one of the runes '(', ')', '\'' or '#', a
// Number, String or Symbol, or a Boolean. It returns io.EOF at end of input.
func (l *lexer) next() (interface{}, error) {
	for {
		c, err := l.read()
		if err != nil {
			return nil, err
		}

		switch c {
		case 0:
			return nil, io.EOF
		case '(', ')', '\'':
			return c, nil
		case '"':
			return l.string()
		case ';':
			if err := l.lineComment(); err != nil {
				return nil, err
			}
		case '#':
			k, err := l.read()
			if err != nil {
				return nil, err
			}
			switch k {
			case 't':
				return Boolean(true), l.expectDelimiter("#t")
			case 'f':
				return Boolean(false), l.expectDelimiter("#f")
			case ';':
				return '#', nil
			case '|':
				if err := l.blockComment(); err != nil {
					return nil, err
				}
			default:
				return nil, syntaxErrorf("invalid token '#%c'", k)
			}
		case '-', '+', '.':
			return l.num(c, true)
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return l.num(c, false)
		case '!', '$', '%', '&', '*', '/', ':', '<', '=', '>', '?', '^', '_', '~':
			return l.identifier(c)
		default:
			if beginsIdentifier(c) {
				return l.identifier(c)
			}
			if !isSpace(c) {
				return nil, syntaxErrorf("invalid character '%c'", c)
			}
		}
	}
}

func (l *lexer) expectDelimiter(token string) error {
	if c := l.peek(); continuesIdentifier(c) {
		return syntaxErrorf("invalid token '%s%c'", token, c)
	}
	return nil
}

func (l *lexer) lineComment() error {
	for {
		c, err := l.read()
		if err != nil {
			return err
		}
		if c == '\n' || c == 0 {
			return nil
		}
	}
}

func (l *lexer) blockComment() error {
	nest := 1
	for nest > 0 {
		c, err := l.read()
		if err != nil {
			return err
		}
		switch c {
		case 0:
			return incompletef("unterminated block comment")
		case '#':
			if l.peek() == '|' {
				l.read()
				nest++
			}
		case '|':
			if l.peek() == '#' {
				l.read()
				nest--
			}
		}
	}
	return nil
}

func (l *lexer) num(c rune, maybeIdentifier bool) (interface{}, error) {
	var text strings.Builder
	for {
		text.WriteRune(c)

		var err error
		if c, err = l.read(); err != nil {
			return nil, err
		}
		if !continuesIdentifier(c) {
			if c != 0 {
				l.r.UnreadRune()
			}
			break
		}
	}

	s := text.String()
	if n, ok := readNumber(s); ok {
		return n, nil
	}
	if !maybeIdentifier {
		return nil, syntaxErrorf("invalid number literal '%s'", s)
	}
	return Symbol(s), nil
}

// readNumber reads s as an integer of any size or as a decimal float. Spellings
// such as "-inf" and "+nan" are not numbers.
func readNumber(s string) (Number, bool) {
	z := new(big.Int)
	if _, ok := z.SetString(s, 10); ok {
		return Number{goarith.AsNumber(z)}, true
	}
	if strings.Trim(s, "0123456789.eE+-") != "" {
		return Number{}, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number{goarith.AsNumber(f)}, true
	}
	return Number{}, false
}

func (l *lexer) string() (interface{}, error) {
	var s strings.Builder
	for {
		c, err := l.read()
		if err != nil {
			return nil, err
		}
		switch c {
		case 0:
			return nil, incompletef("unterminated string")
		case '"':
			return String(s.String()), nil
		case '\\':
			k, err := l.read()
			if err != nil {
				return nil, err
			}
			switch k {
			case '\\', '"':
				c = k
			case 'a':
				c = '\a'
			case 'b':
				c = '\b'
			case 't':
				c = '\t'
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 'x':
				c = 0
				for {
					if k, err = l.read(); err != nil {
						return nil, err
					}
					if k == ';' {
						break
					}
					d, ok := hexDigit(k)
					if !ok {
						return nil, syntaxErrorf("invalid hex digit '%c'", k)
					}
					if c = c*16 + d; c > unicode.MaxRune {
						return nil, syntaxErrorf("hex escape out of range")
					}
				}
			default:
				return nil, syntaxErrorf("invalid escape sequence '\\%c'", k)
			}
		}
		s.WriteRune(c)
	}
}

func (l *lexer) identifier(first rune) (interface{}, error) {
	var id strings.Builder
	id.WriteRune(first)

	for {
		c, err := l.read()
		if err != nil {
			return nil, err
		}
		if !continuesIdentifier(c) {
			if c != 0 {
				l.r.UnreadRune()
			}
			return Symbol(id.String()), nil
		}
		id.WriteRune(c)
	}
}

func beginsIdentifier(c rune) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || unicode.IsOneOf(identifierInitial, c)
}

func continuesIdentifier(c rune) bool {
	if c == 0 || c == '(' || c == ')' || c == '"' || c == ';' || c == '\'' {
		return false
	}
	return c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.' || c == '@' || c == '!' ||
		c == '$' || c == '%' || c == '&' || c == '*' || c == '/' || c == ':' || c == '<' ||
		c == '=' || c == '>' || c == '?' || c == '^' || c == '_' || c == '~' || beginsIdentifier(c)
}

func hexDigit(c rune) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	default:
		return 0, false
	}
}

func isSpace(c rune) bool {
	return unicode.IsSpace(c)
}
