package main

import (
	"context"
	"flag"
	"fmt"
	"sync"
	"time"

	"github.com/google/subcommands"

	"dymex/eval"
	"dymex/render"
)

// benchCmd repeat-evaluates a compiled Program, exercising the
// concurrent-evaluation story from spec.md §5: Program.Evaluate clones
// its per-call values table, so the same compiled Program may be
// evaluated from many goroutines at once while its ops/aliases tables
// are only ever read.
type benchCmd struct {
	n           int
	concurrency int
}

func (*benchCmd) Name() string     { return "bench" }
func (*benchCmd) Synopsis() string { return "Repeat-evaluate a compiled expression" }
func (*benchCmd) Usage() string {
	return `bench [-n count] [-concurrency workers] "<expression>" [name=value ...]:
  Compile once, then evaluate n times, optionally spread across workers
  goroutines, and report throughput.
`
}

func (b *benchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&b.n, "n", 10000, "number of evaluations")
	f.IntVar(&b.concurrency, "concurrency", 1, "number of concurrent goroutines")
}

func (b *benchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		return fail("💥 expression not provided")
	}
	expression := args[0]

	names, inputs, err := parseInputs(args[1:])
	if err != nil {
		return fail("💥 %v", err)
	}

	program, err := eval.Compile(expression, names)
	if err != nil {
		fmt.Println(render.UserMessage(err, expression))
		return subcommands.ExitFailure
	}

	workers := b.concurrency
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	perWorker := b.n / workers
	extra := b.n % workers

	for w := 0; w < workers; w++ {
		count := perWorker
		if w < extra {
			count++
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < count; i++ {
				if _, err := program.Evaluate(inputs); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	if firstErr != nil {
		fmt.Println(render.UserMessage(firstErr, expression))
		return subcommands.ExitFailure
	}

	total := b.n
	fmt.Printf("%d evaluations across %d goroutines in %s (%.0f eval/s)\n",
		total, workers, elapsed, float64(total)/elapsed.Seconds())
	return subcommands.ExitSuccess
}
