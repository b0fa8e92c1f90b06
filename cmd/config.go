package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Mattojjo/graphz/config"
	"github.com/Mattojjo/graphz/renderer"
	"github.com/google/subcommands"
)

type configCmd struct {
	env bool
}

func (*configCmd) Name() string     { return "config" }
func (*configCmd) Synopsis() string { return "show the effective configuration" }
func (*configCmd) Usage() string {
	return `graphz config [-env]

  Shows the configuration after reading the environment, the .env file and
  the global flags. With -env, lists the environment variables instead.
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.env, "env", false, "List the recognized environment variables.")
}

func (c *configCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.env {
		if err := config.Usage(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ConfigMarkdown(cfg))
	return subcommands.ExitSuccess
}
