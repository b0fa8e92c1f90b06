package renderer

import (
	"bytes"

	"github.com/Mattojjo/graphz"
	md "github.com/nao1215/markdown"
)

// PortfolioMarkdown renders the portfolio panel: the account totals and every
// holding valued at the current price.
func PortfolioMarkdown(s graphz.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Portfolio")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Total Value"),
			md.Bold(s.TotalValue.String()),
			"",
		},
		Rows: [][]string{
			{"Cash", s.Cash.String(), ""},
			{"Holdings", s.PortfolioValue.String(), ""},
			{"Profit / Loss", s.TotalProfitLoss.SignedString(), s.TotalProfitLossPercent.SignedString()},
			{"Initial Cash", s.InitialCash.String(), ""},
		},
	})

	if len(s.Holdings) == 0 {
		doc.PlainText("No holdings yet.")
		return doc.String()
	}

	doc.H3("Holdings")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Shares", "Avg. Price", "Invested", "Price", "Value", "Gain / Loss", "Change"},
		Rows:   [][]string{},
	}
	for _, h := range s.Holdings {
		price := h.AveragePrice // a delisted symbol is shown at cost
		if in, ok := s.Instrument(h.Symbol); ok {
			price = in.Price()
		}
		table.Rows = append(table.Rows, []string{
			h.Symbol,
			h.Quantity.String(),
			h.AveragePrice.String(),
			h.Invested().String(),
			price.String(),
			h.MarketValue(price).String(),
			h.ProfitLoss(price).SignedString(),
			h.ProfitLossPercent(price).SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
