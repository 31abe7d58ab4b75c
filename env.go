package little

import "sort"

// Env maps variable names to values.
//
// Environments are flat tables, not chains of scopes. Extend copies every
// binding of the receiver into a fresh table before binding parameters, so a
// procedure call runs in a snapshot of the environment its closure captured.
// A set! inside that call rebinds the name in the snapshot only: the captured
// environment, and every other closure over it, keeps the old value. The
// global environment is the one table that is never copied, so top-level
// set! and define mutate it in place.
type Env struct {
	table map[Symbol]Value
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{table: map[Symbol]Value{}}
}

// NewGlobalEnv returns a fresh environment holding the primitive procedures.
func NewGlobalEnv() *Env {
	env := NewEnv()
	for _, p := range primitives {
		env.Bind(p.Name, p)
	}
	return env
}

// Lookup returns the value bound to name.
func (e *Env) Lookup(name Symbol) (Value, error) {
	v, ok := e.table[name]
	if !ok {
		return nil, &UnboundVariableError{Name: name}
	}
	return v, nil
}

// Bound returns true if name has a binding in e.
func (e *Env) Bound(name Symbol) bool {
	_, ok := e.table[name]
	return ok
}

// Bind binds name to v in e, replacing any existing binding.
func (e *Env) Bind(name Symbol, v Value) {
	e.table[name] = v
}

// Extend returns a copy of e with names bound to the corresponding values.
// Names or values beyond the shorter of the two are ignored.
func (e *Env) Extend(names []Symbol, values Vector) *Env {
	table := make(map[Symbol]Value, len(e.table)+len(names))
	for k, v := range e.table {
		table[k] = v
	}
	ext := &Env{table: table}

	n := len(names)
	if len(values) < n {
		n = len(values)
	}
	for i := 0; i < n; i++ {
		ext.Bind(names[i], values[i])
	}
	return ext
}

// Names returns the names bound in e in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.table))
	for k := range e.table {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// Eval evaluates expression in e.
func (e *Env) Eval(expression Expression) (Value, error) {
	return Eval(expression, e)
}
