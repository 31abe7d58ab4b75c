package main

import (
	"io"

	"github.com/pgavlin/little"
)

// run evaluates each top-level expression in r against env, stopping at the
// first error.
func run(ev *little.Evaluator, env *little.Env, r io.Reader) error {
	p := little.NewParser(r)
	for {
		x, err := p.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if _, err := ev.Eval(x, env); err != nil {
			return err
		}
	}
}
