package little

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, s string) Expression {
	x, err := ParseString(s)
	require.NoError(t, err)
	return x
}

func eval(t *testing.T, env *Env, s string) Value {
	v, err := Eval(parse(t, s), env)
	require.NoError(t, err)
	return v
}

// testExpr evaluates expr and expectedExpr in a fresh global environment and
// checks that the results are equal. Each string in prelude is evaluated
// first.
func testExpr(t *testing.T, expr, expectedExpr string, prelude ...string) {
	env := NewGlobalEnv()
	for _, s := range prelude {
		eval(t, env, s)
	}

	actual := eval(t, env, expr)
	expected := eval(t, env, expectedExpr)
	if !assert.True(t, equal(actual, expected)) {
		assert.Equal(t, EncodeToString(expected), EncodeToString(actual))
	}
}

func TestSmoke(t *testing.T) {
	cases := []struct{ name, expr, expected string }{
		{
			"number",
			"42",
			"42",
		},
		{
			"string",
			`"hello"`,
			`"hello"`,
		},
		{
			"quoted-list",
			"'(1 (a b) \"c\")",
			"'(1 (a b) \"c\")",
		},
		{
			"empty-list",
			"()",
			"'()",
		},
		{
			"identity",
			"((lambda (x) x) 42)",
			"42",
		},
		{
			"identity-2",
			"((lambda () ((lambda (x) x) 42)))",
			"42",
		},
		{
			"if-true",
			"(if (> 3 2) 1 2)",
			"1",
		},
		{
			"if-false",
			"(if (> 2 3) 1 2)",
			"2",
		},
		{
			"if-no-else",
			"(if (> 2 3) 1)",
			"()",
		},
		{
			"begin",
			"(begin 1 2 3)",
			"3",
		},
		{
			"define-x",
			"((lambda () (define x 42) x))",
			"42",
		},
		{
			"define-returns-symbol",
			"(define x 10)",
			"'x",
		},
		{
			"factorial",
			`((lambda (n)
				(define (factorial-loop n acc)
					(if (= n 0) acc
						(factorial-loop (- n 1) (* n acc))))
				(factorial-loop n 1))
			4)`,
			"24",
		},
		{
			"fib",
			`(begin
				(define (fib n)
					(if (< n 2) n (+ (fib (- n 1)) (fib (- n 2)))))
				(fib 15))`,
			"610",
		},
		{
			"counter",
			`(begin
				(define (make-adder n) (lambda (x) (+ x n)))
				(define add5 (make-adder 5))
				(add5 10))`,
			"15",
		},
		{
			"higher-order",
			`((lambda (f) (f (f 2))) (lambda (x) (* x x)))`,
			"16",
		},
		{
			"primitive-as-value",
			`((lambda (op) (op 1 2 3)) +)`,
			"6",
		},
		{
			"bignum",
			`(* 99999999999 99999999999 99999999999)`,
			"999999999970000000000299999999999",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			testExpr(t, c.expr, c.expected)
		})
	}
}

func TestSelfEvaluating(t *testing.T) {
	env := NewGlobalEnv()
	for _, x := range []Expression{NewInt(7), NewFloat(2.5), String("text"), String("")} {
		v, err := Eval(x, env)
		require.NoError(t, err)
		assert.Equal(t, x, v)
	}

	v, err := Eval(List{}, env)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestQuotedIsNotEvaluated(t *testing.T) {
	env := NewGlobalEnv()

	v := eval(t, env, "'(undefined-var (1 2) (lambda (x) x))")
	assert.Equal(t, "(undefined-var (1 2) (lambda (x) x))", EncodeToString(v))

	v = eval(t, env, "'undefined-var")
	assert.Equal(t, Symbol("undefined-var"), v)

	v = eval(t, env, "''a")
	assert.Equal(t, "(quote a)", EncodeToString(v))

	datum := Vector{Symbol("x"), NewInt(1)}.ToList()
	v, err := Eval(Quote(datum), env)
	require.NoError(t, err)
	assert.True(t, v == datum)
}

func TestDefine(t *testing.T) {
	env := NewGlobalEnv()

	assert.Equal(t, Symbol("x"), eval(t, env, "(define x 10)"))
	assert.Equal(t, "10", EncodeToString(eval(t, env, "x")))

	assert.Equal(t, Symbol("square"), eval(t, env, "(define (square n) (* n n))"))
	_, ok := eval(t, env, "square").(*Closure)
	assert.True(t, ok)
	assert.Equal(t, "81", EncodeToString(eval(t, env, "(square 9)")))

	// Redefinition overwrites.
	eval(t, env, "(define x 11)")
	assert.Equal(t, "11", EncodeToString(eval(t, env, "x")))
}

func TestDeepTailRecursion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep recursion in short mode")
	}

	env := NewGlobalEnv()
	eval(t, env, "(define (loop n) (if (= n 0) 'done (loop (- n 1))))")
	assert.Equal(t, Symbol("done"), eval(t, env, "(loop 1000000)"))
}

func TestTailPositions(t *testing.T) {
	env := NewGlobalEnv()
	ev := &Evaluator{MaxDepth: 50}

	prelude := []string{
		// if branch and closure body
		"(define (count-if n) (if (= n 0) 'if (count-if (- n 1))))",
		// last form of begin
		"(define (count-begin n) (begin 1 (if (= n 0) 'begin (count-begin (- n 1)))))",
		// define rewritten in tail position inside the body
		"(define (count-define n) (if (= n 0) (define done 'define) (count-define (- n 1))))",
	}
	for _, s := range prelude {
		_, err := ev.Eval(parse(t, s), env)
		require.NoError(t, err)
	}

	for _, c := range []struct{ expr, expected string }{
		{"(count-if 1000)", "if"},
		{"(count-begin 1000)", "begin"},
		{"(count-define 1000)", "done"},
	} {
		v, err := ev.Eval(parse(t, c.expr), env)
		if assert.NoError(t, err, c.expr) {
			assert.Equal(t, Symbol(c.expected), v, c.expr)
		}
	}
}

func TestRecursiveVariant(t *testing.T) {
	env := NewGlobalEnv()
	eval(t, env, "(define (loop n) (if (= n 0) 'done (loop (- n 1))))")

	ev := &Evaluator{Recursive: true, MaxDepth: 1000}
	v, err := ev.Eval(parse(t, "(loop 100)"), env)
	require.NoError(t, err)
	assert.Equal(t, Symbol("done"), v)

	_, err = ev.Eval(parse(t, "(loop 100000)"), env)
	var derr *RecursionDepthError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 1000, derr.Depth)

	// The evaluator is usable after an error.
	v, err = ev.Eval(parse(t, "(loop 10)"), env)
	require.NoError(t, err)
	assert.Equal(t, Symbol("done"), v)

	ev = &Evaluator{MaxDepth: 1000}
	v, err = ev.Eval(parse(t, "(loop 100000)"), env)
	require.NoError(t, err)
	assert.Equal(t, Symbol("done"), v)
}

func TestNonTailRecursionIsBounded(t *testing.T) {
	env := NewGlobalEnv()
	eval(t, env, "(define (sum n) (if (= n 0) 0 (+ n (sum (- n 1)))))")

	assert.Equal(t, "5050", EncodeToString(eval(t, env, "(sum 100)")))

	_, err := Eval(parse(t, "(sum 100000)"), env)
	var derr *RecursionDepthError
	assert.ErrorAs(t, err, &derr)
}

func TestErrors(t *testing.T) {
	env := NewGlobalEnv()

	_, err := Eval(parse(t, "(undefined-var)"), env)
	var uerr *UnboundVariableError
	if assert.ErrorAs(t, err, &uerr) {
		assert.Equal(t, Symbol("undefined-var"), uerr.Name)
		assert.Equal(t, "unbound variable: undefined-var", err.Error())
	}

	_, err = Eval(parse(t, "(1 2 3)"), env)
	var perr *NotAProcedureError
	if assert.ErrorAs(t, err, &perr) {
		assert.Equal(t, "1", EncodeToString(perr.Value))
	}

	_, err = Eval(parse(t, `("f")`), env)
	assert.ErrorAs(t, err, &perr)

	_, err = Eval(parse(t, "(/ 1 0)"), env)
	var aerr *ArithmeticError
	if assert.ErrorAs(t, err, &aerr) {
		assert.Equal(t, Symbol("/"), aerr.Op)
	}

	_, err = Eval(parse(t, `(+ 1 "a")`), env)
	assert.ErrorAs(t, err, &aerr)

	_, err = Eval(parse(t, `(< 1 "a")`), env)
	assert.ErrorAs(t, err, &aerr)

	_, err = Eval(nil, env)
	var ierr *InvalidExpressionError
	assert.ErrorAs(t, err, &ierr)
}

func TestInvalidExpressions(t *testing.T) {
	cases := []string{
		"(begin)",
		"(set!)",
		"(set! x)",
		"(set! x 1 2)",
		"(set! 1 2)",
		"(define)",
		"(define x)",
		"(define x 1 2)",
		"(define 1 2)",
		"(define () 1)",
		"(define (1 x) 1)",
		"(if)",
		"(if 1)",
		"(if 1 2 3 4)",
		"(lambda)",
		"(lambda x x)",
		"(lambda (1) 1)",
		"((lambda (x)) 1)",
	}
	for _, c := range cases {
		t.Run(c, func(t *testing.T) {
			_, err := Eval(parse(t, c), NewGlobalEnv())
			var ierr *InvalidExpressionError
			assert.ErrorAs(t, err, &ierr)
		})
	}

	_, err := Eval(parse(t, "(if 1 2 3 4)"), NewGlobalEnv())
	assert.EqualError(t, err, "invalid expression: (if 1 2 3 4)")
}

func TestMutationScope(t *testing.T) {
	env := NewGlobalEnv()
	eval(t, env, "(define x 1)")

	// The set! inside the call rebinds x in the call's own copy of the
	// environment...
	assert.Equal(t, "2", EncodeToString(eval(t, env, "((lambda () (set! x 2) x))")))
	// ...and the global binding is untouched.
	assert.Equal(t, "1", EncodeToString(eval(t, env, "x")))

	// Two closures over the same scope do not see each other's set!.
	eval(t, env, `(define (make-pair n)
		(begin
			(define (get) n)
			(define (bump) (set! n (+ n 1)) n)
			(lambda (which) (if (= which 'get) (get) (bump)))))`)
	eval(t, env, "(define p (make-pair 10))")
	assert.Equal(t, "11", EncodeToString(eval(t, env, "(p 'bump)")))
	assert.Equal(t, "11", EncodeToString(eval(t, env, "(p 'bump)")))
	assert.Equal(t, "10", EncodeToString(eval(t, env, "(p 'get)")))

	// Top-level set! mutates the global environment in place.
	eval(t, env, "(set! x 3)")
	assert.Equal(t, "3", EncodeToString(eval(t, env, "x")))
}

func TestSetCreatesUnboundName(t *testing.T) {
	env := NewGlobalEnv()
	assert.False(t, env.Bound("fresh"))

	v := eval(t, env, "(set! fresh 5)")
	assert.Nil(t, v)
	assert.Equal(t, "5", EncodeToString(eval(t, env, "fresh")))
}

func TestClosureCapturesEnvironmentByReference(t *testing.T) {
	env := NewGlobalEnv()

	// Later global bindings are visible to an existing closure.
	eval(t, env, "(define y 1)")
	eval(t, env, "(define (get-y) y)")
	eval(t, env, "(define y 2)")
	assert.Equal(t, "2", EncodeToString(eval(t, env, "(get-y)")))

	// Bindings made in a call frame after a lambda is created are visible to
	// that lambda.
	v := eval(t, env, `((lambda ()
		(define (g) z)
		(set! z 5)
		(g)))`)
	assert.Equal(t, "5", EncodeToString(v))
}

func TestPartialSideEffectsAreKept(t *testing.T) {
	env := NewGlobalEnv()

	_, err := Eval(parse(t, "(begin (define a 1) (undefined-var) (define b 2))"), env)
	require.Error(t, err)

	assert.True(t, env.Bound("a"))
	assert.False(t, env.Bound("b"))
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		test     string
		expected string
	}{
		{"#t", "yes"},
		{"#f", "no"},
		{"0", "no"},
		{"0.0", "no"},
		{"1", "yes"},
		{`""`, "no"},
		{`"a"`, "yes"},
		{"'()", "no"},
		{"'(1)", "yes"},
		{"'a", "yes"},
		{"+", "yes"},
		{"(lambda () 1)", "yes"},
	}
	for _, c := range cases {
		t.Run(c.test, func(t *testing.T) {
			testExpr(t, "(if "+c.test+" 'yes 'no)", "'"+c.expected)
		})
	}
}

func TestArgumentEvaluationOrder(t *testing.T) {
	env := NewGlobalEnv()
	eval(t, env, "(define trace 0)")
	eval(t, env, "(define (note n) (set! trace n) n)")

	// note runs in its own copy of the environment, so trace is unchanged.
	assert.Equal(t, "3", EncodeToString(eval(t, env, "(+ (note 1) (note 2))")))
	assert.Equal(t, "0", EncodeToString(eval(t, env, "trace")))

	// Arguments are evaluated left to right in the caller's environment.
	v := eval(t, env, "(- (begin (set! trace 10) trace) (begin (set! trace 4) trace))")
	assert.Equal(t, "6", EncodeToString(v))
	assert.Equal(t, "4", EncodeToString(eval(t, env, "trace")))
}

func TestOperatorCheckedAfterArguments(t *testing.T) {
	env := NewGlobalEnv()
	eval(t, env, "(define n 0)")

	_, err := Eval(parse(t, "(1 (set! n 5))"), env)
	var perr *NotAProcedureError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, "5", EncodeToString(eval(t, env, "n")))

	_, err = Eval(parse(t, "(1 (undefined))"), env)
	var uerr *UnboundVariableError
	if assert.ErrorAs(t, err, &uerr) {
		assert.Equal(t, Symbol("undefined"), uerr.Name)
	}
}

func TestArityMismatch(t *testing.T) {
	testExpr(t, "((lambda (x y) x) 1)", "1")
	testExpr(t, "((lambda (x) x) 1 2)", "1")

	// A parameter left without an argument stays unbound.
	_, err := Eval(parse(t, "((lambda (x y) y) 1)"), NewGlobalEnv())
	var uerr *UnboundVariableError
	if assert.ErrorAs(t, err, &uerr) {
		assert.Equal(t, Symbol("y"), uerr.Name)
	}
}

func TestEnvEval(t *testing.T) {
	env := NewGlobalEnv()
	v, err := env.Eval(parse(t, "(+ 1 2)"))
	require.NoError(t, err)
	assert.Equal(t, "3", EncodeToString(v))
}
