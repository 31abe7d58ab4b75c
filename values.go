package little

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/nukata/goarith"
)

// SExpression is anything with a written form.
type SExpression interface {
	write(w io.Writer) error
}

// Value is the result of evaluation.
type Value interface {
	SExpression

	value()
}

// Expression is a parsed, unevaluated program fragment. The variants are
// Number, String, Symbol, *Quoted and List.
type Expression interface {
	SExpression

	expression()
}

// Encode writes a textual representation of x to w. A nil x is the empty
// list.
func Encode(w io.Writer, x SExpression) error {
	if x == nil {
		_, err := w.Write([]byte("()"))
		return err
	}
	return x.write(w)
}

// EncodeToString returns the textual representation of x.
func EncodeToString(x SExpression) string {
	var b strings.Builder
	Encode(&b, x)
	return b.String()
}

// Number
type Number struct {
	n goarith.Number
}

func (Number) value()      {}
func (Number) expression() {}

func (n Number) write(w io.Writer) error {
	_, err := fmt.Fprint(w, n.n)
	return err
}

func (n Number) String() string {
	return fmt.Sprint(n.n)
}

func NewInt(x int64) Number {
	return Number{goarith.AsNumber(big.NewInt(x))}
}

func NewFloat(x float64) Number {
	return Number{goarith.AsNumber(x)}
}

// Boolean
type Boolean bool

func (Boolean) value() {}

func (b Boolean) write(w io.Writer) error {
	text := "#t"
	if !b {
		text = "#f"
	}
	_, err := w.Write([]byte(text))
	return err
}

// Truthy returns the truth value of v. False, zero, the empty string and the
// empty list are false; everything else, NaN included, is true.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case *Pair:
		return v != nil
	case Boolean:
		return bool(v)
	case Number:
		return !isZero(v.n)
	case String:
		return v != ""
	default:
		return true
	}
}

// Pair
type Pair struct {
	car Value
	cdr Value
}

func Cons(car, cdr Value) *Pair {
	return &Pair{car: car, cdr: cdr}
}

func (*Pair) value() {}

func (p *Pair) write(w io.Writer) error {
	if _, err := w.Write([]byte("(")); err != nil {
		return err
	}
	first := true
	for p != nil {
		if !first {
			if _, err := w.Write([]byte(" ")); err != nil {
				return err
			}
		}
		first = false

		if err := Encode(w, p.car); err != nil {
			return err
		}
		if p.cdr == nil {
			break
		}
		tail, ok := p.cdr.(*Pair)
		if !ok {
			if _, err := w.Write([]byte(" . ")); err != nil {
				return err
			}
			if err := Encode(w, p.cdr); err != nil {
				return err
			}
			break
		}
		p = tail
	}
	_, err := w.Write([]byte(")"))
	return err
}

// Car returns the car field of the pair.
func (p *Pair) Car() Value {
	return p.car
}

// Cdr returns the cdr field of the pair.
func (p *Pair) Cdr() Value {
	return p.cdr
}

// ToVector converts the list to a vector.
func (p *Pair) ToVector() Vector {
	var vec Vector
	for p != nil {
		vec = append(vec, p.car)
		if p.cdr == nil {
			return vec
		}
		tail, ok := p.cdr.(*Pair)
		if !ok {
			vec = append(vec, p.cdr)
			return vec
		}
		p = tail
	}
	return vec
}

// Symbol
type Symbol string

func (Symbol) value()      {}
func (Symbol) expression() {}

func (s Symbol) write(w io.Writer) error {
	_, err := w.Write([]byte(s))
	return err
}

// String
type String string

func (String) value()      {}
func (String) expression() {}

func (s String) write(w io.Writer) error {
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	_, err := w.Write([]byte(b.String()))
	return err
}

// Vector is an argument list.
type Vector []Value

// ToList converts the vector to a list.
func (v Vector) ToList() Value {
	var head Value
	for i := len(v) - 1; i >= 0; i-- {
		head = &Pair{car: v[i], cdr: head}
	}
	return head
}

// Quoted wraps a literal datum. It evaluates to the datum without evaluating
// any part of it.
type Quoted struct {
	Datum Value
}

func Quote(datum Value) *Quoted {
	return &Quoted{Datum: datum}
}

func (*Quoted) expression() {}

func (q *Quoted) write(w io.Writer) error {
	if b, ok := q.Datum.(Boolean); ok {
		return b.write(w)
	}
	if _, err := w.Write([]byte("'")); err != nil {
		return err
	}
	return Encode(w, q.Datum)
}

// List is a compound expression. The empty list evaluates to itself.
type List []Expression

func (List) expression() {}

func (l List) write(w io.Writer) error {
	if _, err := w.Write([]byte("(")); err != nil {
		return err
	}
	for i, e := range l {
		if i > 0 {
			if _, err := w.Write([]byte(" ")); err != nil {
				return err
			}
		}
		if err := Encode(w, e); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte(")"))
	return err
}

// Datum converts an expression into the data it denotes when quoted. Lists
// become proper lists of pairs and nested quotes become (quote datum).
func Datum(e Expression) Value {
	switch e := e.(type) {
	case Number:
		return e
	case String:
		return e
	case Symbol:
		return e
	case *Quoted:
		if b, ok := e.Datum.(Boolean); ok {
			return b
		}
		return Vector{Symbol("quote"), e.Datum}.ToList()
	case List:
		vec := make(Vector, len(e))
		for i, x := range e {
			vec[i] = Datum(x)
		}
		return vec.ToList()
	default:
		return nil
	}
}
