package little

import "fmt"

// UnboundVariableError is returned when a variable reference has no binding.
type UnboundVariableError struct {
	Name Symbol
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable: %v", string(e.Name))
}

// InvalidExpressionError is returned when a form does not have a recognized
// shape.
type InvalidExpressionError struct {
	Form Expression
}

func (e *InvalidExpressionError) Error() string {
	return fmt.Sprintf("invalid expression: %v", EncodeToString(e.Form))
}

// NotAProcedureError is returned when the head of an application is not
// callable.
type NotAProcedureError struct {
	Value Value
}

func (e *NotAProcedureError) Error() string {
	return fmt.Sprintf("not a procedure: %v", EncodeToString(e.Value))
}

// ArithmeticError is returned by a primitive whose host operation failed.
type ArithmeticError struct {
	Op  Symbol
	Msg string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("%v: %v", string(e.Op), e.Msg)
}

func arithmeticErrorf(op Symbol, format string, args ...interface{}) error {
	return &ArithmeticError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// RecursionDepthError is returned when nested evaluation exceeds the
// evaluator's depth limit.
type RecursionDepthError struct {
	Depth int
}

func (e *RecursionDepthError) Error() string {
	return fmt.Sprintf("maximum recursion depth %d exceeded", e.Depth)
}

// SyntaxError is returned by the reader for malformed text. Incomplete is set
// when the text is a valid prefix that ended too early.
type SyntaxError struct {
	Msg        string
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return "syntax error: " + e.Msg
}

func syntaxErrorf(format string, args ...interface{}) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

func incompletef(format string, args ...interface{}) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Incomplete: true}
}
