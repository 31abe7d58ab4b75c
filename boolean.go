package little

func booleans(op Symbol, args Vector) ([]Boolean, error) {
	if len(args) < 2 {
		return nil, arithmeticErrorf(op, "expects at least 2 arguments, got %d", len(args))
	}
	bs := make([]Boolean, len(args))
	for i, v := range args {
		b, ok := v.(Boolean)
		if !ok {
			return nil, arithmeticErrorf(op, "unsupported operand type %v", typeName(v))
		}
		bs[i] = b
	}
	return bs, nil
}

func BooleanAnd(args Vector) (Value, error) {
	bs, err := booleans("and", args)
	if err != nil {
		return nil, err
	}
	for _, b := range bs {
		if !b {
			return Boolean(false), nil
		}
	}
	return Boolean(true), nil
}

func BooleanOr(args Vector) (Value, error) {
	bs, err := booleans("or", args)
	if err != nil {
		return nil, err
	}
	for _, b := range bs {
		if b {
			return Boolean(true), nil
		}
	}
	return Boolean(false), nil
}

// BooleanNot negates the truth value of its argument, which may be of any
// type.
func BooleanNot(args Vector) (Value, error) {
	if len(args) != 1 {
		return nil, arithmeticErrorf("not", "expects 1 argument, got %d", len(args))
	}
	return Boolean(!Truthy(args[0])), nil
}
