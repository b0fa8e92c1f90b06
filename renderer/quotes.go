package renderer

import (
	"bytes"

	"github.com/Mattojjo/graphz"
	md "github.com/nao1215/markdown"
)

// QuotesMarkdown renders the quotes board. The selected symbol is in bold.
func QuotesMarkdown(s graphz.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Quotes")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Name", "Price", "Change", "Change %"},
		Rows:   [][]string{},
	}
	for _, in := range s.Instruments {
		symbol := in.Symbol
		if symbol == s.Selected {
			symbol = md.Bold(symbol)
		}
		table.Rows = append(table.Rows, []string{
			symbol,
			in.Name,
			graphz.FormatPrice(in.CurrentPrice),
			graphz.M(in.Change).SignedString(),
			in.ChangePercent.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
