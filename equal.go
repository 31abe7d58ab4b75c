package little

func isEmpty(v Value) bool {
	if v == nil {
		return true
	}
	p, ok := v.(*Pair)
	return ok && p == nil
}

func equal(obj1, obj2 Value) bool {
	if isEmpty(obj1) || isEmpty(obj2) {
		return isEmpty(obj1) && isEmpty(obj2)
	}

	switch obj1 := obj1.(type) {
	case Number:
		obj2, ok := obj2.(Number)
		return ok && !isNaN(obj1.n) && !isNaN(obj2.n) && obj1.n.Cmp(obj2.n) == 0
	case *Pair:
		obj2, ok := obj2.(*Pair)
		return ok && equal(obj1.car, obj2.car) && equal(obj1.cdr, obj2.cdr)
	default:
		return obj1 == obj2
	}
}

// Equal returns #t if its arguments are structurally equal. Numbers compare
// by value regardless of representation, and NaN equals nothing.
func Equal(args Vector) (Value, error) {
	if len(args) < 2 {
		return nil, arithmeticErrorf("=", "expects at least 2 arguments, got %d", len(args))
	}
	for _, v := range args[1:] {
		if !equal(args[0], v) {
			return Boolean(false), nil
		}
	}
	return Boolean(true), nil
}

func NotEqual(args Vector) (Value, error) {
	if len(args) != 2 {
		return nil, arithmeticErrorf("!=", "expects 2 arguments, got %d", len(args))
	}
	return Boolean(!equal(args[0], args[1])), nil
}
