package little

import (
	"fmt"
	"io"
)

// Primitive is a procedure implemented by the host.
type Primitive struct {
	Name Symbol
	Fn   func(args Vector) (Value, error)
}

func (*Primitive) value() {}

func (p *Primitive) write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "#<primitive %v>", string(p.Name))
	return err
}

// Apply calls the primitive. A panic raised by the host operation is returned
// as an *ArithmeticError.
func (p *Primitive) Apply(args Vector) (result Value, err error) {
	defer func() {
		if x := recover(); x != nil {
			result, err = nil, arithmeticErrorf(p.Name, "%v", x)
		}
	}()
	return p.Fn(args)
}

// Closure is a procedure created by lambda. env is the environment in effect
// when the lambda was evaluated; it is never reassigned.
type Closure struct {
	env    *Env
	params []Symbol
	body   Expression
}

func (*Closure) value() {}

func (c *Closure) write(w io.Writer) error {
	_, err := w.Write([]byte("#<lambda>"))
	return err
}

// Params returns the closure's parameter names.
func (c *Closure) Params() []Symbol {
	return c.params
}

// Body returns the closure's body as a single begin form.
func (c *Closure) Body() Expression {
	return c.body
}

func makeParams(form List, declaration Expression) ([]Symbol, error) {
	list, ok := declaration.(List)
	if !ok {
		return nil, &InvalidExpressionError{Form: form}
	}

	params := make([]Symbol, len(list))
	for i, x := range list {
		sym, ok := x.(Symbol)
		if !ok {
			return nil, &InvalidExpressionError{Form: form}
		}
		params[i] = sym
	}
	return params, nil
}
