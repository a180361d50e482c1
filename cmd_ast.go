package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"dymex/diagram"
	"dymex/eval"
	"dymex/render"
)

// astCmd prints a compiled expression's structure, mirroring nilan's
// parser.PrintASTJSON verb but over dymex's flattened Program instead
// of a statement list.
type astCmd struct {
	format string
}

func (*astCmd) Name() string     { return "ast" }
func (*astCmd) Synopsis() string { return "Print the parsed/flattened form of an expression" }
func (*astCmd) Usage() string {
	return `ast [-format=rpn|mermaid] "<expression>" [name ...]:
  Compile the expression and print its structure.
`
}

func (a *astCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&a.format, "format", "rpn", "output format: rpn or mermaid")
}

func (a *astCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		return fail("💥 expression not provided")
	}
	expression := args[0]
	names := args[1:]

	program, err := eval.Compile(expression, names)
	if err != nil {
		fmt.Println(render.UserMessage(err, expression))
		return subcommands.ExitFailure
	}

	switch a.format {
	case "rpn":
		fmt.Println(program.RPN())
	case "mermaid":
		fmt.Println(diagram.Mermaid(program.Flat()))
	default:
		return fail("💥 unknown format %q", a.format)
	}
	return subcommands.ExitSuccess
}
