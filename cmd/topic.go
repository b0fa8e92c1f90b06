package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Mattojjo/graphz/docs"
	"github.com/Mattojjo/graphz/renderer"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the documentation" }
func (*topicCmd) Usage() string {
	return `graphz topic [<topic>...]

  Prints the documentation topics one after the other, '*' for all of them.
  Without a topic, lists the available topics.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out, err := topicMarkdown(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(out)
	return subcommands.ExitSuccess
}

// topicMarkdown returns the topics, or the index of the topics when there is none.
func topicMarkdown(topics []string) (string, error) {
	if len(topics) > 0 {
		return docs.GetTopics(topics...)
	}
	index, err := docs.Index()
	if err != nil {
		return "", err
	}
	return renderer.TopicsMarkdown(index), nil
}
