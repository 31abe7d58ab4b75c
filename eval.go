package little

// DefaultMaxDepth is the nesting limit used when Evaluator.MaxDepth is zero.
const DefaultMaxDepth = 10000

// Evaluator evaluates expressions. The zero value is ready to use.
//
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	// Recursive disables the trampoline. Expressions in tail position are
	// evaluated by a nested call, so tail recursion consumes depth.
	Recursive bool

	// MaxDepth bounds the number of nested evaluations. If MaxDepth is zero,
	// DefaultMaxDepth is used.
	MaxDepth int

	depth int
}

// Eval evaluates expression in env using the trampolined evaluator.
func Eval(expression Expression, env *Env) (Value, error) {
	var e Evaluator
	return e.Eval(expression, env)
}

// Eval evaluates expression in env.
func (ev *Evaluator) Eval(expression Expression, env *Env) (Value, error) {
	return ev.eval(expression, env)
}

// form is a special form keyword.
type form int

const (
	formBegin form = iota
	formSet
	formDefine
	formIf
	formLambda
)

var forms = map[Symbol]form{
	"begin":  formBegin,
	"set!":   formSet,
	"define": formDefine,
	"if":     formIf,
	"lambda": formLambda,
}

type resultKind int

const (
	resultValue resultKind = iota
	resultTail
)

// result is the outcome of a single dispatch step: either a final value, or
// the expression and environment to continue with in tail position.
type result struct {
	kind  resultKind
	value Value
	expr  Expression
	env   *Env
}

func valueResult(v Value) result {
	return result{kind: resultValue, value: v}
}

func tailResult(expr Expression, env *Env) result {
	return result{kind: resultTail, expr: expr, env: env}
}

// eval is the trampoline. Every call is one level of host recursion; tail
// continuations returned by step are taken by the loop without another call.
func (ev *Evaluator) eval(expression Expression, env *Env) (Value, error) {
	max := ev.MaxDepth
	if max <= 0 {
		max = DefaultMaxDepth
	}
	if ev.depth >= max {
		return nil, &RecursionDepthError{Depth: max}
	}
	ev.depth++
	defer func() { ev.depth-- }()

	for {
		r, err := ev.step(expression, env)
		if err != nil {
			return nil, err
		}

		switch r.kind {
		case resultValue:
			return r.value, nil
		case resultTail:
			if ev.Recursive {
				return ev.eval(r.expr, r.env)
			}
			expression, env = r.expr, r.env
		}
	}
}

func (ev *Evaluator) step(expression Expression, env *Env) (result, error) {
	switch e := expression.(type) {
	case Number:
		return valueResult(e), nil
	case String:
		return valueResult(e), nil
	case *Quoted:
		return evalQuote(e), nil
	case Symbol:
		return evalVariable(e, env)
	case List:
		if len(e) == 0 {
			return valueResult(nil), nil
		}

		if sym, ok := e[0].(Symbol); ok {
			if f, ok := forms[sym]; ok {
				switch f {
				case formBegin:
					return ev.evalBegin(e, env)
				case formSet:
					return ev.evalSet(e, env)
				case formDefine:
					return evalDefine(e, env)
				case formIf:
					return ev.evalIf(e, env)
				case formLambda:
					return evalLambda(e, env)
				}
			}
		}

		return ev.evalApplication(e, env)
	default:
		return result{}, &InvalidExpressionError{Form: expression}
	}
}

// ⟨variable⟩
//
// The value of a variable reference is the value bound to the variable in the
// current environment. It is an error to reference an unbound variable.
func evalVariable(e Symbol, env *Env) (result, error) {
	v, err := env.Lookup(e)
	if err != nil {
		return result{}, err
	}
	return valueResult(v), nil
}

// ’⟨datum⟩
//
// Evaluates to ⟨datum⟩. Nothing inside the datum is evaluated.
func evalQuote(e *Quoted) result {
	return valueResult(e.Datum)
}

// (begin ⟨expression1⟩ ⟨expression2⟩ ...)
//
// The expressions are evaluated sequentially from left to right. The last
// expression is in tail position and its value is the value of the begin.
func (ev *Evaluator) evalBegin(e List, env *Env) (result, error) {
	if len(e) < 2 {
		return result{}, &InvalidExpressionError{Form: e}
	}

	body := e[1:]
	for _, x := range body[:len(body)-1] {
		if _, err := ev.eval(x, env); err != nil {
			return result{}, err
		}
	}
	return tailResult(body[len(body)-1], env), nil
}

// (set! ⟨variable⟩ ⟨expression⟩)
//
// ⟨Expression⟩ is evaluated and the result is bound to ⟨variable⟩ in the
// current environment. Inside a procedure call the current environment is the
// call's own copy, so the binding is not visible to the caller. An unbound
// ⟨variable⟩ is created. The result of set! is the empty list.
func (ev *Evaluator) evalSet(e List, env *Env) (result, error) {
	if len(e) != 3 {
		return result{}, &InvalidExpressionError{Form: e}
	}
	sym, ok := e[1].(Symbol)
	if !ok {
		return result{}, &InvalidExpressionError{Form: e}
	}

	v, err := ev.eval(e[2], env)
	if err != nil {
		return result{}, err
	}
	env.Bind(sym, v)
	return valueResult(nil), nil
}

// (define ⟨variable⟩ ⟨expression⟩)
// (define (⟨variable⟩ ⟨formal⟩ ...) ⟨body⟩)
//
// The first form is equivalent to
//
//     (begin (set! ⟨variable⟩ ⟨expression⟩) '⟨variable⟩)
//
// and so evaluates to the defined symbol. The second form is equivalent to
//
//     (define ⟨variable⟩ (lambda (⟨formal⟩ ...) ⟨body⟩))
//
// Both rewrites are continued in tail position.
func evalDefine(e List, env *Env) (result, error) {
	if len(e) < 3 {
		return result{}, &InvalidExpressionError{Form: e}
	}

	switch target := e[1].(type) {
	case Symbol:
		if len(e) != 3 {
			return result{}, &InvalidExpressionError{Form: e}
		}
		return tailResult(List{
			Symbol("begin"),
			List{Symbol("set!"), target, e[2]},
			Quote(target),
		}, env), nil
	case List:
		if len(target) == 0 {
			return result{}, &InvalidExpressionError{Form: e}
		}
		name, ok := target[0].(Symbol)
		if !ok {
			return result{}, &InvalidExpressionError{Form: e}
		}

		lambda := append(List{Symbol("lambda"), target[1:]}, e[2:]...)
		return tailResult(List{Symbol("define"), name, lambda}, env), nil
	default:
		return result{}, &InvalidExpressionError{Form: e}
	}
}

// (if ⟨test⟩ ⟨consequent⟩ ⟨alternate⟩)
// (if ⟨test⟩ ⟨consequent⟩)
//
// ⟨Test⟩ is evaluated first. If it yields a true value, ⟨consequent⟩ is
// evaluated in tail position. Otherwise ⟨alternate⟩ is, or the empty list if
// there is no ⟨alternate⟩.
func (ev *Evaluator) evalIf(e List, env *Env) (result, error) {
	if len(e) < 3 || len(e) > 4 {
		return result{}, &InvalidExpressionError{Form: e}
	}

	test, err := ev.eval(e[1], env)
	if err != nil {
		return result{}, err
	}
	if Truthy(test) {
		return tailResult(e[2], env), nil
	}
	if len(e) == 3 {
		return tailResult(List{}, env), nil
	}
	return tailResult(e[3], env), nil
}

// (lambda (⟨variable⟩ ...) ⟨body⟩)
//
// A lambda expression evaluates to a procedure that remembers the environment
// in effect when the lambda was evaluated. The environment is not copied
// here: bindings added to it later are seen by the procedure. When the
// procedure is called, that environment is copied and extended with the
// arguments, and ⟨body⟩ is evaluated as a begin in the copy.
func evalLambda(e List, env *Env) (result, error) {
	if len(e) < 2 {
		return result{}, &InvalidExpressionError{Form: e}
	}
	params, err := makeParams(e, e[1])
	if err != nil {
		return result{}, err
	}
	return valueResult(&Closure{
		env:    env,
		params: params,
		body:   append(List{Symbol("begin")}, e[2:]...),
	}), nil
}

// (⟨operator⟩ ⟨operand1⟩ ...)
//
// The operator and then the operands are evaluated from left to right in the
// current environment. The operator must yield a procedure; this is checked
// only after every operand has been evaluated. A primitive is called
// directly; a closure's body continues in tail position.
func (ev *Evaluator) evalApplication(e List, env *Env) (result, error) {
	head, err := ev.eval(e[0], env)
	if err != nil {
		return result{}, err
	}

	args := make(Vector, len(e)-1)
	for i, x := range e[1:] {
		if args[i], err = ev.eval(x, env); err != nil {
			return result{}, err
		}
	}

	switch p := head.(type) {
	case *Primitive:
		v, err := p.Apply(args)
		if err != nil {
			return result{}, err
		}
		return valueResult(v), nil
	case *Closure:
		return tailResult(p.body, p.env.Extend(p.params, args)), nil
	default:
		return result{}, &NotAProcedureError{Value: head}
	}
}
