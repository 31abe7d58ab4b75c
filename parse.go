package little

import (
	"bufio"
	"io"
	"strings"
)

// ParseString parses a single expression from s.
func ParseString(s string) (Expression, error) {
	return Parse(strings.NewReader(s))
}

// Parse parses a single expression from r.
func Parse(r io.Reader) (Expression, error) {
	p := NewParser(r)
	x, err := p.Next()
	if err == io.EOF {
		return nil, incompletef("unexpected end of input")
	}
	return x, err
}

// ParseAll parses every expression in r.
func ParseAll(r io.Reader) ([]Expression, error) {
	p := NewParser(r)

	var exprs []Expression
	for {
		x, err := p.Next()
		if err != nil {
			if err == io.EOF {
				return exprs, nil
			}
			return nil, err
		}
		exprs = append(exprs, x)
	}
}

// A Parser reads successive top-level expressions from a reader.
type Parser struct {
	l *lexer
	t interface{}
}

func NewParser(r io.Reader) *Parser {
	return &Parser{l: &lexer{r: bufio.NewReader(r)}}
}

// Next returns the next expression. It returns io.EOF when the input holds no
// more expressions.
func (p *Parser) Next() (Expression, error) {
	return p.parseExpression(true)
}

func (p *Parser) peek() (interface{}, error) {
	if p.t == nil {
		t, err := p.l.next()
		if err != nil {
			return nil, err
		}
		p.t = t
	}
	return p.t, nil
}

func (p *Parser) next() (interface{}, error) {
	if p.t != nil {
		v := p.t
		p.t = nil
		return v, nil
	}
	return p.l.next()
}

// parseExpression parses one datum. End of input is io.EOF only at top level;
// anywhere else it is a syntax error.
func (p *Parser) parseExpression(top bool) (Expression, error) {
	tok, err := p.next()
	if err != nil {
		if err == io.EOF && !top {
			return nil, incompletef("unexpected end of input")
		}
		return nil, err
	}

	switch tok := tok.(type) {
	case Expression:
		return tok, nil
	case Boolean:
		return Quote(tok), nil
	case rune:
		switch tok {
		case '(':
			list := List{}
			for {
				t, err := p.peek()
				if err != nil {
					if err == io.EOF {
						return nil, incompletef("unbalanced parentheses")
					}
					return nil, err
				}
				if t == ')' {
					p.next()
					return list, nil
				}

				x, err := p.parseExpression(false)
				if err != nil {
					return nil, err
				}
				list = append(list, x)
			}
		case ')':
			return nil, syntaxErrorf("unexpected ')'")
		case '\'':
			x, err := p.parseExpression(false)
			if err != nil {
				return nil, err
			}
			return Quote(Datum(x)), nil
		case '#':
			if _, err := p.parseExpression(false); err != nil {
				return nil, err
			}
			return p.parseExpression(top)
		default:
			return nil, syntaxErrorf("unexpected token %c", tok)
		}
	default:
		return nil, syntaxErrorf("unexpected token %v", tok)
	}
}
