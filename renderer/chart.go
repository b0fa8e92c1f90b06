package renderer

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/Mattojjo/graphz"
	md "github.com/nao1215/markdown"
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values as a line of block characters.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		i := len(sparks) / 2
		if hi > lo {
			i = int((v - lo) / (hi - lo) * float64(len(sparks)-1))
		}
		b.WriteRune(sparks[i])
	}
	return b.String()
}

// ChartMarkdown renders the selected instrument: its price line over the whole
// history and a table of the last candles, oldest first, with the moving
// average of the closes ("-" until enough candles exist).
func ChartMarkdown(in graphz.Instrument, candles int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(fmt.Sprintf("%s · %s", in.Symbol, in.Name))
	doc.PlainText(fmt.Sprintf("%s %s (%s) since %s",
		md.Bold(graphz.FormatPrice(in.CurrentPrice)),
		graphz.M(in.Change).SignedString(),
		in.ChangePercent.SignedString(),
		graphz.FormatPrice(in.BasePrice),
	))

	closes := make([]float64, len(in.History))
	low, high := math.Inf(1), math.Inf(-1)
	for i, c := range in.History {
		closes[i] = c.Close
		low, high = math.Min(low, c.Low), math.Max(high, c.High)
	}
	if len(closes) > 0 {
		doc.CodeBlocks(md.SyntaxHighlightNone, Sparkline(closes))
		doc.PlainText(fmt.Sprintf("Range %s to %s", graphz.FormatPrice(low), graphz.FormatPrice(high)))
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Time", "Open", "High", "Low", "Close", fmt.Sprintf("MA%d", graphz.MovingAveragePeriod), "Volume"},
		Rows:   [][]string{},
	}
	ma := in.MovingAverage(graphz.MovingAveragePeriod)
	last := in.Last(candles)
	offset := len(in.History) - len(last) // index of last[0] in the history
	for i, c := range last {
		average := "-"
		if j := offset + i - (graphz.MovingAveragePeriod - 1); j >= 0 && j < len(ma) {
			average = graphz.FormatPrice(ma[j])
		}
		table.Rows = append(table.Rows, []string{
			c.Time,
			graphz.FormatPrice(c.Open),
			graphz.FormatPrice(c.High),
			graphz.FormatPrice(c.Low),
			graphz.FormatPrice(c.Close),
			average,
			graphz.FormatVolume(c.Volume),
		})
	}
	doc.Table(table)

	return doc.String()
}
