// Command graphz simulates an equities market and a paper trading portfolio.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/Mattojjo/graphz/cmd"
	"github.com/google/subcommands"
)

func main() {
	// exits when called by the shell to complete a command line
	cmd.Completion().Complete("graphz")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	// unknown subcommands may be extensions
	if name := flag.Arg(0); name != "" && !cmd.Has(name) && !isHelp(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "graphz: unknown command %q, see 'graphz help'\n", name)
		os.Exit(int(subcommands.ExitUsageError))
	}

	os.Exit(int(commander.Execute(context.Background())))
}

func isHelp(name string) bool {
	return name == "help" || name == "flags" || name == "commands"
}
