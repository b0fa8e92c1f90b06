package renderer

import (
	"bytes"

	"github.com/Mattojjo/graphz/docs"
	md "github.com/nao1215/markdown"
)

// TopicsMarkdown renders the documentation index.
func TopicsMarkdown(topics []docs.Topic) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Topics")
	doc.PlainText("Run 'graphz topic <topic>' to read a topic, or 'graphz topic \"*\"' to read them all.")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{"Topic", "Description"},
		Rows:      [][]string{},
	}
	for _, t := range topics {
		table.Rows = append(table.Rows, []string{t.Name, t.Summary})
	}
	doc.Table(table)

	return doc.String()
}
