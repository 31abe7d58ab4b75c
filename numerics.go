package little

import (
	"math"
	"math/big"

	"github.com/nukata/goarith"
)

var zero = goarith.AsNumber(big.NewInt(0))
var one = goarith.AsNumber(big.NewInt(1))

// isNaN reports whether n is a float NaN. goarith compares NaN as equal to
// everything, so callers check this before Cmp.
func isNaN(n goarith.Number) bool {
	f, ok := n.(goarith.Float64)
	return ok && math.IsNaN(float64(f))
}

func isZero(n goarith.Number) bool {
	return !isNaN(n) && n.Cmp(zero) == 0
}

// bigInt returns n as a big.Int if n is an integer.
func bigInt(n goarith.Number) (*big.Int, bool) {
	switch n := n.(type) {
	case goarith.Int32:
		return big.NewInt(int64(n)), true
	case goarith.Int64:
		return big.NewInt(int64(n)), true
	case *goarith.BigInt:
		return (*big.Int)(n), true
	default:
		return nil, false
	}
}

func typeName(v Value) string {
	switch v.(type) {
	case nil, *Pair:
		return "list"
	case Number:
		return "number"
	case String:
		return "string"
	case Symbol:
		return "symbol"
	case Boolean:
		return "boolean"
	case *Primitive, *Closure:
		return "procedure"
	default:
		return "unknown"
	}
}

func numbers(op Symbol, min int, args Vector) ([]goarith.Number, error) {
	if len(args) < min {
		return nil, arithmeticErrorf(op, "expects at least %d arguments, got %d", min, len(args))
	}
	ns := make([]goarith.Number, len(args))
	for i, v := range args {
		n, ok := v.(Number)
		if !ok {
			return nil, arithmeticErrorf(op, "unsupported operand type %v", typeName(v))
		}
		ns[i] = n.n
	}
	return ns, nil
}

func fold(op Symbol, args Vector, f func(x, y goarith.Number) goarith.Number) (Value, error) {
	ns, err := numbers(op, 2, args)
	if err != nil {
		return nil, err
	}
	acc := ns[0]
	for _, n := range ns[1:] {
		acc = f(acc, n)
	}
	return Number{acc}, nil
}

func NumberAdd(args Vector) (Value, error) {
	if len(args) > 0 {
		if _, ok := args[0].(String); ok {
			return StringAppend(args)
		}
	}
	return fold("+", args, func(x, y goarith.Number) goarith.Number { return x.Add(y) })
}

// StringAppend concatenates two or more strings.
func StringAppend(args Vector) (Value, error) {
	if len(args) < 2 {
		return nil, arithmeticErrorf("+", "expects at least 2 arguments, got %d", len(args))
	}
	var s String
	for _, v := range args {
		x, ok := v.(String)
		if !ok {
			return nil, arithmeticErrorf("+", "can only concatenate string (not %v) to string", typeName(v))
		}
		s += x
	}
	return s, nil
}

func NumberSub(args Vector) (Value, error) {
	return fold("-", args, func(x, y goarith.Number) goarith.Number { return x.Sub(y) })
}

func NumberMul(args Vector) (Value, error) {
	return fold("*", args, func(x, y goarith.Number) goarith.Number { return x.Mul(y) })
}

// NumberDiv is true division: the quotient of two integers may be a float.
func NumberDiv(args Vector) (Value, error) {
	ns, err := numbers("/", 2, args)
	if err != nil {
		return nil, err
	}
	var quo goarith.Number = ns[0]
	for _, n := range ns[1:] {
		if isZero(n) {
			return nil, arithmeticErrorf("/", "division by zero")
		}
		quo = quo.RQuo(n)
	}
	return Number{quo}, nil
}

// floorQuoRem returns the quotient rounded toward negative infinity and the
// remainder with the sign of the divisor.
func floorQuoRem(op Symbol, args Vector) (goarith.Number, goarith.Number, error) {
	ns, err := numbers(op, 2, args)
	if err != nil {
		return nil, nil, err
	}
	if len(ns) != 2 {
		return nil, nil, arithmeticErrorf(op, "expects 2 arguments, got %d", len(ns))
	}

	x, y := ns[0], ns[1]
	if isZero(y) {
		return nil, nil, arithmeticErrorf(op, "division by zero")
	}

	// Integers divide as big.Int: fixed-width division wraps at MinInt / -1.
	if bx, ok := bigInt(x); ok {
		if by, ok := bigInt(y); ok {
			q, r := new(big.Int).QuoRem(bx, by, new(big.Int))
			if r.Sign() != 0 && (r.Sign() < 0) != (by.Sign() < 0) {
				q.Sub(q, big.NewInt(1))
				r.Add(r, by)
			}
			return goarith.AsNumber(q), goarith.AsNumber(r), nil
		}
	}

	q, r := x.QuoRem(y)
	if r.Cmp(zero) != 0 && (r.Cmp(zero) < 0) != (y.Cmp(zero) < 0) {
		q, r = q.Sub(one), r.Add(y)
	}
	return q, r, nil
}

func NumberFloor(args Vector) (Value, error) {
	q, _, err := floorQuoRem("floor", args)
	if err != nil {
		return nil, err
	}
	return Number{q}, nil
}

func NumberMod(args Vector) (Value, error) {
	_, r, err := floorQuoRem("mod", args)
	if err != nil {
		return nil, err
	}
	return Number{r}, nil
}

// compare applies test to each adjacent pair of arguments. Arguments must be
// all numbers or all strings.
func compare(op Symbol, args Vector, test func(c int) bool) (Value, error) {
	if len(args) < 2 {
		return nil, arithmeticErrorf(op, "expects at least 2 arguments, got %d", len(args))
	}

	for i := 0; i+1 < len(args); i++ {
		c, err := order(op, args[i], args[i+1])
		if err != nil {
			return nil, err
		}
		if unordered(args[i], args[i+1]) || !test(c) {
			return Boolean(false), nil
		}
	}
	return Boolean(true), nil
}

func order(op Symbol, a, b Value) (int, error) {
	switch a := a.(type) {
	case Number:
		if b, ok := b.(Number); ok {
			return a.n.Cmp(b.n), nil
		}
	case String:
		if b, ok := b.(String); ok {
			switch {
			case a < b:
				return -1, nil
			case a > b:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return 0, arithmeticErrorf(op, "not supported between instances of %v and %v", typeName(a), typeName(b))
}

// unordered reports whether a or b is NaN. Every comparison with NaN is false.
func unordered(a, b Value) bool {
	for _, v := range []Value{a, b} {
		if n, ok := v.(Number); ok && isNaN(n.n) {
			return true
		}
	}
	return false
}

func NumberLt(args Vector) (Value, error) {
	return compare("<", args, func(c int) bool { return c < 0 })
}

func NumberLte(args Vector) (Value, error) {
	return compare("<=", args, func(c int) bool { return c <= 0 })
}

func NumberGt(args Vector) (Value, error) {
	return compare(">", args, func(c int) bool { return c > 0 })
}

func NumberGte(args Vector) (Value, error) {
	return compare(">=", args, func(c int) bool { return c >= 0 })
}
