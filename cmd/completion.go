package cmd

import (
	"flag"
	"os"
	"slices"
	"strings"

	"github.com/Mattojjo/graphz"
	"github.com/Mattojjo/graphz/config"
	"github.com/Mattojjo/graphz/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// symbols completes the instruments of the registry named by the environment,
// the built-in one by default. Completion runs before the flags are parsed, so
// -registry is not seen.
func symbols() predict.Set {
	registry, err := graphz.LoadRegistry(os.Getenv(config.Prefix + "_REGISTRY_FILE"))
	if err != nil {
		registry = graphz.DefaultRegistry()
	}
	var set predict.Set
	for _, l := range registry.Listings() {
		set = append(set, l.Symbol)
	}
	return set
}

// Completion returns the shell completion of the graphz command line, built
// from the global flags and the flags of every subcommand.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range slices.Concat(Commands, helpCommands()) {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{
			Flags: flagPredictors(f),
			Args:  argsPredictor(c.Name()),
		}
	}
	return root
}

// helpCommands are the subcommands the commander provides itself.
func helpCommands() []subcommands.Command {
	c := subcommands.NewCommander(flag.NewFlagSet("graphz", flag.ContinueOnError), "graphz")
	return []subcommands.Command{c.HelpCommand(), c.FlagsCommand(), c.CommandsCommand()}
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		switch {
		case strings.HasSuffix(fl.Name, "file"), fl.Name == "registry":
			flags[fl.Name] = predict.Files("*")
		case isBool(fl):
			flags[fl.Name] = predict.Nothing
		default:
			flags[fl.Name] = predict.Something
		}
	})
	return flags
}

func isBool(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

func argsPredictor(name string) complete.Predictor {
	switch name {
	case "topic":
		topics, err := docs.GetAllTopics()
		if err != nil {
			return predict.Nothing
		}
		return predict.Set(topics)
	case "help":
		var names predict.Set
		for _, c := range Commands {
			names = append(names, c.Name())
		}
		return names
	case "play", "simulate":
		return symbols()
	default:
		return predict.Nothing
	}
}
