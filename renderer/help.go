package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
)

// CommandHelp describes one command of the trading session.
type CommandHelp struct {
	Usage       string // e.g. "buy SYMBOL QUANTITY"
	Description string
}

// SessionHelp renders the list of session commands.
func SessionHelp(commands []CommandHelp) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Commands")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{"Command", "Description"},
		Rows:      [][]string{},
	}
	for _, c := range commands {
		table.Rows = append(table.Rows, []string{c.Usage, c.Description})
	}
	doc.Table(table)

	return doc.String()
}
