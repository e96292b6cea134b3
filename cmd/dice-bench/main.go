package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sansecio/dicego/ast"
	"github.com/sansecio/dicego/eval"
	"github.com/sansecio/dicego/format"
	"github.com/sansecio/dicego/grammar"
	"github.com/sansecio/dicego/parser"
	"github.com/sansecio/dicego/roll"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file (covers all three stages)")
	iterations = flag.Int("n", 100000, "iterations per stage")
	maxDice    = flag.Int("max-dice", 1000, "maximum dice per resolve (must be positive)")
)

var defaultExpressions = []string{
	"4d6kh3",
	"{1d20+5,1d20+5}kh",
	"(1+3)*2+((7-3)/2)",
	"{2d20+1d10}>7",
	"10d10!>8r1kh5",
	"6d6mt",
	"floor(3d6/2)+abs(1d4-5)",
}

func main() {
	flag.Parse()
	if *iterations < 1 || *maxDice < 1 {
		fmt.Fprintf(os.Stderr, "usage: dice-bench [-n iterations] [-max-dice n] [-cpuprofile file] [expression...]\n")
		os.Exit(1)
	}
	exprs := flag.Args()
	if len(exprs) == 0 {
		exprs = defaultExpressions
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating profile: %v\n", err)
			os.Exit(1)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	b := newBench(*iterations, *maxDice)

	fmt.Printf("%-28s %12s %12s %12s\n", "expression", "carve", "process", "resolve")
	for _, expr := range exprs {
		t, err := b.run(expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error benchmarking %q: %v\n", expr, err)
			continue
		}
		fmt.Printf("%-28s %12v %12v %12v\n", t.text, t.carve, t.process, t.resolve)
	}
}

type bench struct {
	processor  *grammar.Processor
	ctx        *eval.Context
	iterations int
	maxDice    int
}

// stageTimes holds the mean duration of each stage for one expression.
type stageTimes struct {
	text                    string
	carve, process, resolve time.Duration
}

func newBench(iterations, maxDice int) *bench {
	return &bench{
		processor:  grammar.New(),
		ctx:        &eval.Context{Formatter: format.Markdown{}, Source: roll.NewSeeded(1)},
		iterations: iterations,
		maxDice:    maxDice,
	}
}

// run times each stage of expr. Every resolve gets a fresh tracker capped
// at maxDice, so endless explosions such as 1d1! fail instead of hanging.
func (b *bench) run(expr string) (stageTimes, error) {
	t := stageTimes{text: parser.Standardize(expr)}

	var (
		carved ast.Node
		err    error
	)
	t.carve, err = b.time(func() error {
		var err error
		carved, err = parser.Carve(t.text)
		return err
	})
	if err != nil {
		return t, fmt.Errorf("carve: %w", err)
	}

	var node eval.Node
	t.process, err = b.time(func() error {
		var err error
		node, err = b.processor.Process(carved)
		return err
	})
	if err != nil {
		return t, fmt.Errorf("process: %w", err)
	}

	t.resolve, err = b.time(func() error {
		b.ctx.Tracker = eval.NewCountTracker(b.maxDice)
		_, err := eval.Resolve(node, b.ctx)
		return err
	})
	if err != nil {
		return t, fmt.Errorf("resolve: %w", err)
	}
	return t, nil
}

// time runs fn b.iterations times and returns the mean duration.
func (b *bench) time(fn func() error) (time.Duration, error) {
	start := time.Now()
	for range b.iterations {
		if err := fn(); err != nil {
			return 0, err
		}
	}
	return time.Since(start) / time.Duration(b.iterations), nil
}
