package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/pgavlin/little"
)

const (
	prompt         = "little scheme > "
	continuePrompt = "              . "
)

var keywords = []string{"begin", "define", "if", "lambda", "set!"}

// completer completes the symbol under the cursor from the special form
// keywords and the names bound in env.
func completer(env *little.Env) liner.Completer {
	return func(line string) []string {
		start := strings.LastIndexAny(line, "() '\t\n") + 1
		prefix, word := line[:start], line[start:]
		if word == "" {
			return nil
		}

		var candidates []string
		for _, names := range [][]string{keywords, env.Names()} {
			for _, name := range names {
				if strings.HasPrefix(name, word) {
					candidates = append(candidates, prefix+name)
				}
			}
		}
		return candidates
	}
}

// evalLine parses and evaluates every expression in text, writing each result
// to stdout and any error to stderr. It reports whether text was incomplete.
func evalLine(ev *little.Evaluator, env *little.Env, text string, stdout, stderr io.Writer) (incomplete bool) {
	exprs, err := little.ParseAll(strings.NewReader(text))
	if err != nil {
		var serr *little.SyntaxError
		if errors.As(err, &serr) && serr.Incomplete {
			return true
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return false
	}

	for _, x := range exprs {
		v, err := ev.Eval(x, env)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return false
		}
		fmt.Fprintln(stdout, little.EncodeToString(v))
	}
	return false
}

func repl(ev *little.Evaluator, env *little.Env, historyPath string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completer(env))

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	var pending strings.Builder
	for {
		p := prompt
		if pending.Len() > 0 {
			p = continuePrompt
		}

		text, err := line.Prompt(p)
		switch {
		case err == liner.ErrPromptAborted:
			pending.Reset()
			continue
		case err == io.EOF:
			fmt.Println("Bye bye.")
			return saveHistory(line, historyPath)
		case err != nil:
			return err
		}

		if pending.Len() == 0 && strings.TrimSpace(text) == "" {
			continue
		}
		pending.WriteString(text)
		pending.WriteByte('\n')

		if evalLine(ev, env, pending.String(), os.Stdout, os.Stderr) {
			continue
		}
		line.AppendHistory(strings.TrimSpace(pending.String()))
		pending.Reset()
	}
}

func saveHistory(line *liner.State, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	defer f.Close()

	if _, err := line.WriteHistory(f); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}
