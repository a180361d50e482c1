package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"dymex/eval"
	"dymex/render"
	"dymex/value"
)

// replCmd implements the interactive evaluation loop, upgraded from
// nilan's raw bufio.Scanner to github.com/chzyer/readline for history
// and line editing.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive dymex session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive session. Type an expression to evaluate it.
  ':set name value' binds an input, ':inputs' lists them, 'exit' quits.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.New("dymex> ")
	if err != nil {
		return fail("💥 failed to start readline: %v", err)
	}
	defer rl.Close()

	fmt.Println("dymex interactive session. Type 'exit' to quit.")
	inputs := make(map[string]value.Value)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			return fail("💥 %v", err)
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return subcommands.ExitSuccess
		case strings.HasPrefix(line, ":set "):
			handleSet(inputs, strings.TrimPrefix(line, ":set "))
			continue
		case line == ":inputs":
			printInputs(inputs)
			continue
		}

		names := make([]string, 0, len(inputs))
		for name := range inputs {
			names = append(names, name)
		}
		program, err := eval.Compile(line, names)
		if err != nil {
			fmt.Println(render.UserMessage(err, line))
			continue
		}
		result, err := program.Evaluate(inputs)
		if err != nil {
			fmt.Println(render.UserMessage(err, line))
			continue
		}
		fmt.Println(result)
	}
}

func handleSet(inputs map[string]value.Value, rest string) {
	name, raw, ok := strings.Cut(rest, " ")
	if !ok {
		fmt.Println("usage: :set name value")
		return
	}
	v, err := parseValueLiteral(raw)
	if err != nil {
		fmt.Printf("invalid value: %v\n", err)
		return
	}
	inputs[name] = v
}

func printInputs(inputs map[string]value.Value) {
	if len(inputs) == 0 {
		fmt.Println("(no inputs set)")
		return
	}
	for name, v := range inputs {
		fmt.Printf("%s = %v\n", name, v)
	}
}
