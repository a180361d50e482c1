package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"dymex/eval"
	"dymex/render"
)

// evalCmd compiles and evaluates a single dymex expression given on
// the command line, the way nilan's runCmd executes a source file.
type evalCmd struct{}

func (*evalCmd) Name() string     { return "eval" }
func (*evalCmd) Synopsis() string { return "Compile and evaluate a dymex expression" }
func (*evalCmd) Usage() string {
	return `eval "<expression>" [name=value|name=[v,v,...] ...]:
  Compile the expression against the given input names and evaluate it
  once with the given values.
`
}
func (e *evalCmd) SetFlags(f *flag.FlagSet) {}

func (e *evalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	result, err := program.Evaluate(inputs)
	if err != nil {
		fmt.Println(render.UserMessage(err, expression))
		return subcommands.ExitFailure
	}

	fmt.Println(result)
	return subcommands.ExitSuccess
}
