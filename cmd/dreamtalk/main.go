package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
}

var CLI struct {
	Config  string `help:"Configuration file path" default:"dreamtalk.yaml"`
	Verbose bool   `help:"Enable verbose output" short:"v"`
	Quiet   bool   `help:"Suppress output" short:"q"`

	Compile CompileCmd `cmd:"" help:"Compile a demo holon and print its generator procedure"`
	Inspect InspectCmd `cmd:"" help:"Show a demo holon's parameters, parts and bindings"`
	Eval    EvalCmd    `cmd:"" help:"Evaluate a demo holon's bindings against live parameter values"`
	Formula FormulaCmd `cmd:"" help:"Parse a formula and show its dependencies and Python form"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("DreamTalk v0.1.0")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI)

	appCtx := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
