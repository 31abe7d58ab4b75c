package little

var primitives = []*Primitive{
	// arithmetic
	{"+", NumberAdd},
	{"-", NumberSub},
	{"*", NumberMul},
	{"/", NumberDiv},
	{"floor", NumberFloor},
	{"mod", NumberMod},

	// booleans
	{"and", BooleanAnd},
	{"or", BooleanOr},
	{"not", BooleanNot},

	// comparison
	{"=", Equal},
	{"!=", NotEqual},
	{"<", NumberLt},
	{"<=", NumberLte},
	{">", NumberGt},
	{">=", NumberGte},
}
