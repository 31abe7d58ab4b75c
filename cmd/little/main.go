package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pgavlin/little"
)

func defaultHistoryPath() string {
	if path := os.Getenv("LITTLE_HISTORY"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".little_history")
}

func newEvaluator(variant string, maxDepth int) (*little.Evaluator, error) {
	switch variant {
	case "tco":
		return &little.Evaluator{MaxDepth: maxDepth}, nil
	case "basic":
		return &little.Evaluator{Recursive: true, MaxDepth: maxDepth}, nil
	default:
		return nil, fmt.Errorf("unknown variant %q (want basic or tco)", variant)
	}
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	return err == nil && stat.Mode()&os.ModeCharDevice != 0
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("little: ")

	variant := flag.String("variant", "tco", "evaluator variant: basic or tco")
	maxDepth := flag.Int("max-depth", little.DefaultMaxDepth, "maximum nested evaluation depth")
	history := flag.String("history", defaultHistoryPath(), "REPL history file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [path to file ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ev, err := newEvaluator(*variant, *maxDepth)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	env := little.NewGlobalEnv()

	if flag.NArg() > 0 {
		for _, path := range flag.Args() {
			f, err := os.Open(path)
			if err != nil {
				log.Fatal(err)
			}
			err = run(ev, env, f)
			f.Close()
			if err != nil {
				log.Fatalf("%v: %v", path, err)
			}
		}
		return
	}

	if !isTerminal(os.Stdin) {
		if err := run(ev, env, os.Stdin); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := repl(ev, env, *history); err != nil {
		log.Fatal(err)
	}
}
