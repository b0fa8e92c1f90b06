package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
)

var plainOutput = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")

// printMarkdown renders md for the terminal, or prints it as is when it cannot.
func printMarkdown(md string) {
	fmt.Print(renderMarkdown(md))
}

func renderMarkdown(md string) string {
	if *plainOutput {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
